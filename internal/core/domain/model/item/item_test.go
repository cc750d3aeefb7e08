package item_test

import (
	"strings"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/item"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestItem(t *testing.T) *item.Item {
	t.Helper()
	i, err := item.NewItem(kernel.NewUUID(), "Wireless headphones", decimal.NewFromInt(120), 2, testTime)
	require.NoError(t, err)
	return i
}

func mustAdmin(t *testing.T, id string) item.Actor {
	t.Helper()
	a, err := item.AdminActor(id)
	require.NoError(t, err)
	return a
}

func advance(t *testing.T, i *item.Item, targets ...item.Status) {
	t.Helper()
	for _, target := range targets {
		require.NoError(t, i.Transition(target, item.SystemActor(), "", testTime))
	}
}

func TestNewItem(t *testing.T) {
	t.Run("starts in pending with empty history", func(t *testing.T) {
		i := newTestItem(t)

		assert.Equal(t, item.StatusPending, i.Status())
		assert.Empty(t, i.History())
		assert.False(t, i.IsLocked())
		assert.True(t, i.IsActive())
		assert.Equal(t, 0, i.Version())
		assert.Equal(t, testTime, i.StatusChangedAt())
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		id := kernel.NewUUID()
		price := decimal.NewFromInt(10)

		_, err := item.NewItem(kernel.UUID{}, "name", price, 1, testTime)
		require.Error(t, err)

		_, err = item.NewItem(id, "  ", price, 1, testTime)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = item.NewItem(id, "name", decimal.NewFromInt(-1), 1, testTime)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = item.NewItem(id, "name", price, 0, testTime)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestItem_LineTotal(t *testing.T) {
	i := newTestItem(t)
	assert.True(t, decimal.NewFromInt(240).Equal(i.LineTotal()))
}

func TestItem_Transition(t *testing.T) {
	t.Run("follows the legal path to delivered", func(t *testing.T) {
		i := newTestItem(t)

		advance(t, i,
			item.StatusOrdered,
			item.StatusInTransit,
			item.StatusArrivedIsrael,
			item.StatusShippedToCustomer,
			item.StatusDelivered,
		)

		assert.Equal(t, item.StatusDelivered, i.Status())
		assert.Len(t, i.History(), 5)
	})

	t.Run("allows the arrived_israel shortcut to delivered", func(t *testing.T) {
		i := newTestItem(t)
		advance(t, i, item.StatusOrdered, item.StatusInTransit, item.StatusArrivedIsrael)

		require.NoError(t, i.Transition(item.StatusDelivered, mustAdmin(t, "dana"), "handed over at pickup point", testTime))
		assert.Equal(t, item.StatusDelivered, i.Status())
	})

	t.Run("rejects skipping a step", func(t *testing.T) {
		i := newTestItem(t)

		err := i.Transition(item.StatusInTransit, item.SystemActor(), "", testTime)
		require.Error(t, err)
		assert.ErrorIs(t, err, item.ErrInvalidTransition)
		assert.Equal(t, item.StatusPending, i.Status())
		assert.Empty(t, i.History())
	})

	t.Run("terminal statuses have no outbound transitions", func(t *testing.T) {
		i := newTestItem(t)
		advance(t, i, item.StatusOrdered, item.StatusInTransit, item.StatusArrivedIsrael, item.StatusDelivered)

		for _, target := range item.OperatorTargets() {
			err := i.Transition(target, item.SystemActor(), "", testTime)
			require.ErrorIs(t, err, item.ErrInvalidTransition)
		}
	})

	t.Run("records actor and note in history", func(t *testing.T) {
		i := newTestItem(t)
		admin := mustAdmin(t, "noa")

		require.NoError(t, i.Transition(item.StatusOrdered, admin, "confirmed by supplier", testTime))

		history := i.History()
		require.Len(t, history, 1)
		assert.Equal(t, item.StatusPending, history[0].From)
		assert.Equal(t, item.StatusOrdered, history[0].To)
		assert.Equal(t, "admin:noa", history[0].Actor.String())
		assert.Equal(t, "confirmed by supplier", history[0].Note)
		assert.False(t, history[0].Override)
	})

	t.Run("resets the staleness clock", func(t *testing.T) {
		i := newTestItem(t)
		later := testTime.Add(48 * time.Hour)

		require.NoError(t, i.Transition(item.StatusOrdered, item.SystemActor(), "", later))
		assert.Equal(t, later, i.StatusChangedAt())
	})

	t.Run("rejects over-long notes", func(t *testing.T) {
		i := newTestItem(t)
		note := strings.Repeat("x", item.MaxNoteLength+1)

		err := i.Transition(item.StatusOrdered, item.SystemActor(), note, testTime)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestItem_Lock(t *testing.T) {
	t.Run("requires a non-blank reason", func(t *testing.T) {
		i := newTestItem(t)

		err := i.Lock(item.StatusOrdered, "", mustAdmin(t, "dana"), testTime)
		require.ErrorIs(t, err, item.ErrReasonRequired)

		err = i.Lock(item.StatusOrdered, "   ", mustAdmin(t, "dana"), testTime)
		require.ErrorIs(t, err, item.ErrReasonRequired)
	})

	t.Run("sets status and lock with audit trail", func(t *testing.T) {
		i := newTestItem(t)
		admin := mustAdmin(t, "dana")

		require.NoError(t, i.Lock(item.StatusShippedToCustomer, "customer confirmed by phone", admin, testTime))

		assert.Equal(t, item.StatusShippedToCustomer, i.Status())
		require.True(t, i.IsLocked())
		lock := i.Override()
		assert.Equal(t, item.StatusShippedToCustomer, lock.Status)
		assert.Equal(t, "customer confirmed by phone", lock.Reason)
		assert.Equal(t, admin, lock.Actor)

		history := i.History()
		require.Len(t, history, 1)
		assert.True(t, history[0].Override)
	})

	t.Run("blocks subsequent automated transitions", func(t *testing.T) {
		i := newTestItem(t)
		require.NoError(t, i.Lock(item.StatusShippedToCustomer, "customer confirmed by phone", mustAdmin(t, "dana"), testTime))

		err := i.Transition(item.StatusDelivered, item.SystemActor(), "", testTime)
		require.Error(t, err)
		assert.ErrorIs(t, err, item.ErrItemLocked)
		assert.Contains(t, err.Error(), "customer confirmed by phone")
		assert.Equal(t, item.StatusShippedToCustomer, i.Status())
	})

	t.Run("relock replaces the record with the fresh reason", func(t *testing.T) {
		i := newTestItem(t)
		require.NoError(t, i.Lock(item.StatusOrdered, "first reason", mustAdmin(t, "dana"), testTime))
		require.NoError(t, i.Lock(item.StatusOrdered, "second reason", mustAdmin(t, "noa"), testTime.Add(time.Hour)))

		lock := i.Override()
		assert.Equal(t, "second reason", lock.Reason)
		assert.Equal(t, "admin:noa", lock.Actor.String())
		// No silent no-op: both lock calls appear in history.
		assert.Len(t, i.History(), 2)
	})
}

func TestItem_Unlock(t *testing.T) {
	t.Run("clears the lock without changing status", func(t *testing.T) {
		i := newTestItem(t)
		require.NoError(t, i.Lock(item.StatusArrivedIsrael, "damaged box, holding", mustAdmin(t, "dana"), testTime))

		require.NoError(t, i.Unlock(mustAdmin(t, "dana")))

		assert.False(t, i.IsLocked())
		assert.Equal(t, item.StatusArrivedIsrael, i.Status())
	})

	t.Run("automated transitions resume from the current status", func(t *testing.T) {
		i := newTestItem(t)
		require.NoError(t, i.Lock(item.StatusArrivedIsrael, "holding", mustAdmin(t, "dana"), testTime))
		require.NoError(t, i.Unlock(mustAdmin(t, "dana")))

		require.NoError(t, i.Transition(item.StatusShippedToCustomer, item.SystemActor(), "", testTime))
		assert.Equal(t, item.StatusShippedToCustomer, i.Status())
	})

	t.Run("unlocking an unlocked item is a no-op", func(t *testing.T) {
		i := newTestItem(t)
		require.NoError(t, i.Unlock(mustAdmin(t, "dana")))
		assert.False(t, i.IsLocked())
	})
}

func TestItem_ForceSet(t *testing.T) {
	t.Run("bypasses the table but requires a reason", func(t *testing.T) {
		i := newTestItem(t)

		err := i.ForceSet(item.StatusDelivered, mustAdmin(t, "dana"), "", testTime)
		require.ErrorIs(t, err, item.ErrReasonRequired)

		require.NoError(t, i.ForceSet(item.StatusDelivered, mustAdmin(t, "dana"), "reconciling legacy record", testTime))
		assert.Equal(t, item.StatusDelivered, i.Status())

		history := i.History()
		require.Len(t, history, 1)
		assert.True(t, history[0].Override)
	})

	t.Run("succeeds on a locked item and clears nothing else", func(t *testing.T) {
		i := newTestItem(t)
		require.NoError(t, i.Lock(item.StatusShippedToCustomer, "customer confirmed by phone", mustAdmin(t, "dana"), testTime))

		require.NoError(t, i.ForceSet(item.StatusDelivered, mustAdmin(t, "dana"), "delivery confirmed", testTime))

		assert.Equal(t, item.StatusDelivered, i.Status())
		// The lock record survives; only an explicit Unlock clears it.
		assert.True(t, i.IsLocked())
	})
}

func TestItem_Cancel(t *testing.T) {
	t.Run("marks the item inactive and terminal", func(t *testing.T) {
		i := newTestItem(t)
		admin := mustAdmin(t, "dana")

		require.NoError(t, i.Cancel("customer changed mind", admin, testTime))

		assert.Equal(t, item.StatusCancelled, i.Status())
		assert.True(t, i.IsCancelled())
		assert.False(t, i.IsActive())
		require.NotNil(t, i.Cancellation())
		assert.Equal(t, "customer changed mind", i.Cancellation().Reason)
	})

	t.Run("rejects cancelling terminal items", func(t *testing.T) {
		i := newTestItem(t)
		require.NoError(t, i.Cancel("dup", mustAdmin(t, "dana"), testTime))

		err := i.Cancel("again", mustAdmin(t, "dana"), testTime)
		require.ErrorIs(t, err, item.ErrInvalidTransition)

		delivered := newTestItem(t)
		advance(t, delivered, item.StatusOrdered, item.StatusInTransit, item.StatusArrivedIsrael, item.StatusDelivered)
		err = delivered.Cancel("too late", mustAdmin(t, "dana"), testTime)
		require.ErrorIs(t, err, item.ErrInvalidTransition)
	})

	t.Run("clears an active override lock", func(t *testing.T) {
		i := newTestItem(t)
		require.NoError(t, i.Lock(item.StatusOrdered, "holding", mustAdmin(t, "dana"), testTime))

		require.NoError(t, i.Cancel("out of stock at supplier", mustAdmin(t, "dana"), testTime))
		assert.False(t, i.IsLocked())
	})
}

func TestItem_IsStale(t *testing.T) {
	threshold := 14 * 24 * time.Hour

	t.Run("ordered past threshold is stale", func(t *testing.T) {
		i := newTestItem(t)
		advance(t, i, item.StatusOrdered)

		assert.False(t, i.IsStale(testTime.Add(13*24*time.Hour), threshold))
		assert.True(t, i.IsStale(testTime.Add(20*24*time.Hour), threshold))
	})

	t.Run("only supplier-side statuses go stale", func(t *testing.T) {
		i := newTestItem(t)
		farFuture := testTime.Add(90 * 24 * time.Hour)

		assert.False(t, i.IsStale(farFuture, threshold), "pending never goes stale")

		advance(t, i, item.StatusOrdered, item.StatusInTransit, item.StatusArrivedIsrael)
		assert.False(t, i.IsStale(farFuture, threshold))
	})

	t.Run("cancelled items are never stale", func(t *testing.T) {
		i := newTestItem(t)
		advance(t, i, item.StatusOrdered)
		require.NoError(t, i.Cancel("", mustAdmin(t, "dana"), testTime))

		assert.False(t, i.IsStale(testTime.Add(60*24*time.Hour), threshold))
	})
}

func TestItem_RestoreItem(t *testing.T) {
	t.Run("round-trips state", func(t *testing.T) {
		id := kernel.NewUUID()
		admin := mustAdmin(t, "dana")
		history := []item.HistoryEntry{
			{From: item.StatusPending, To: item.StatusOrdered, Actor: admin, At: testTime},
		}

		restored, err := item.RestoreItem(
			id, "Espresso machine", decimal.NewFromFloat(349.90), 1,
			item.StatusOrdered, testTime, history, nil, nil, 3,
		)
		require.NoError(t, err)

		assert.Equal(t, item.StatusOrdered, restored.Status())
		assert.Equal(t, 3, restored.Version())
		assert.Len(t, restored.History(), 1)
	})

	t.Run("rejects invalid status and version", func(t *testing.T) {
		id := kernel.NewUUID()
		price := decimal.NewFromInt(10)

		_, err := item.RestoreItem(id, "n", price, 1, item.StatusUnknown, testTime, nil, nil, nil, 0)
		require.Error(t, err)

		_, err = item.RestoreItem(id, "n", price, 1, item.StatusOrdered, testTime, nil, nil, nil, -1)
		require.Error(t, err)
	})
}

func TestItem_ZeroValueFailsValidation(t *testing.T) {
	var i item.Item
	err := i.Transition(item.StatusOrdered, item.SystemActor(), "", testTime)
	require.ErrorIs(t, err, item.ErrItemIsNotConstructed)
}

func TestActor(t *testing.T) {
	t.Run("system actor", func(t *testing.T) {
		a := item.SystemActor()
		assert.True(t, a.IsSystem())
		assert.Equal(t, "system", a.String())
		require.NoError(t, a.Validate())
	})

	t.Run("admin actor requires id", func(t *testing.T) {
		_, err := item.AdminActor("  ")
		require.Error(t, err)

		a, err := item.AdminActor("dana")
		require.NoError(t, err)
		assert.False(t, a.IsSystem())
		assert.Equal(t, "admin:dana", a.String())
	})

	t.Run("parses persisted representation", func(t *testing.T) {
		a, err := item.ActorFromString("admin:noa")
		require.NoError(t, err)
		assert.Equal(t, "noa", a.AdminID())

		a, err = item.ActorFromString("system")
		require.NoError(t, err)
		assert.True(t, a.IsSystem())

		_, err = item.ActorFromString("robot")
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var a item.Actor
		require.Error(t, a.Validate())
	})
}
