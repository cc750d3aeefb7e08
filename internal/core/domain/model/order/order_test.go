package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/item"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testTime      = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	staleness     = 14 * 24 * time.Hour
	minItemCount  = 2
	defaultActor  = item.SystemActor()
	defaultWeekGo = testTime.Add(7 * 24 * time.Hour)
)

func newItem(t *testing.T, name string, price int64, quantity int) *item.Item {
	t.Helper()
	i, err := item.NewItem(kernel.NewUUID(), name, decimal.NewFromInt(price), quantity, testTime)
	require.NoError(t, err)
	return i
}

func newOrder(t *testing.T, items ...*item.Item) *order.Order {
	t.Helper()
	subtotal := decimal.Zero
	for _, i := range items {
		subtotal = subtotal.Add(i.LineTotal())
	}
	shipping := decimal.NewFromInt(40)
	pricing, err := order.NewPricing(subtotal, shipping, subtotal.Add(shipping))
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), items, pricing, testTime)
	require.NoError(t, err)
	return o
}

func advanceTo(t *testing.T, o *order.Order, i *item.Item, target item.Status) {
	t.Helper()
	path := map[item.Status][]item.Status{
		item.StatusOrdered:           {item.StatusOrdered},
		item.StatusInTransit:         {item.StatusOrdered, item.StatusInTransit},
		item.StatusArrivedIsrael:     {item.StatusOrdered, item.StatusInTransit, item.StatusArrivedIsrael},
		item.StatusShippedToCustomer: {item.StatusOrdered, item.StatusInTransit, item.StatusArrivedIsrael, item.StatusShippedToCustomer},
		item.StatusDelivered:         {item.StatusOrdered, item.StatusInTransit, item.StatusArrivedIsrael, item.StatusShippedToCustomer, item.StatusDelivered},
	}
	for _, step := range path[target] {
		require.NoError(t, o.TransitionItem(i.ID(), step, defaultActor, "", testTime))
	}
}

func TestNewOrder(t *testing.T) {
	t.Run("requires at least one item", func(t *testing.T) {
		pricing, err := order.NewPricing(decimal.Zero, decimal.Zero, decimal.Zero)
		require.NoError(t, err)

		_, err = order.NewOrder(kernel.NewUUID(), nil, pricing, testTime)
		require.ErrorIs(t, err, order.ErrOrderHasNoItems)
	})

	t.Run("starts with payment pending and a timeline entry", func(t *testing.T) {
		o := newOrder(t, newItem(t, "Laptop stand", 150, 1))

		assert.Equal(t, order.PaymentPending, o.PaymentStatus())
		msg, ok := o.LastTimelineMessage()
		require.True(t, ok)
		assert.Equal(t, "Order placed", msg)
	})
}

func TestNewPricing(t *testing.T) {
	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := order.NewPricing(decimal.NewFromInt(-1), decimal.Zero, decimal.NewFromInt(-1))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects inconsistent total", func(t *testing.T) {
		_, err := order.NewPricing(decimal.NewFromInt(100), decimal.NewFromInt(40), decimal.NewFromInt(100))
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Item(t *testing.T) {
	first := newItem(t, "Keyboard", 300, 1)
	o := newOrder(t, first, newItem(t, "Mouse", 120, 1))

	found, err := o.Item(first.ID())
	require.NoError(t, err)
	assert.Equal(t, first, found)

	_, err = o.Item(kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestOrder_CompletionPercentage(t *testing.T) {
	t.Run("zero active items means vacuously complete", func(t *testing.T) {
		i := newItem(t, "Keyboard", 300, 1)
		o := newOrder(t, i)
		require.NoError(t, o.CancelItem(i.ID(), "out of stock", defaultActor, testTime))

		assert.Equal(t, 100, o.CompletionPercentage())
		assert.False(t, o.HasActiveItems())
	})

	t.Run("counts only active items", func(t *testing.T) {
		a := newItem(t, "A", 100, 1)
		b := newItem(t, "B", 100, 1)
		c := newItem(t, "C", 100, 1)
		o := newOrder(t, a, b, c)

		advanceTo(t, o, a, item.StatusDelivered)
		require.NoError(t, o.CancelItem(c.ID(), "", defaultActor, testTime))

		// 1 of 2 active items delivered.
		assert.Equal(t, 50, o.CompletionPercentage())
	})

	t.Run("rounds to nearest integer", func(t *testing.T) {
		a := newItem(t, "A", 100, 1)
		b := newItem(t, "B", 100, 1)
		c := newItem(t, "C", 100, 1)
		o := newOrder(t, a, b, c)

		advanceTo(t, o, a, item.StatusDelivered)

		// 1/3 => 33.33 => 33
		assert.Equal(t, 33, o.CompletionPercentage())

		advanceTo(t, o, b, item.StatusDelivered)
		// 2/3 => 66.67 => 67
		assert.Equal(t, 67, o.CompletionPercentage())
	})

	t.Run("derivation is idempotent", func(t *testing.T) {
		a := newItem(t, "A", 100, 1)
		b := newItem(t, "B", 100, 1)
		o := newOrder(t, a, b)
		advanceTo(t, o, a, item.StatusDelivered)

		first := o.CompletionPercentage()
		assert.Equal(t, first, o.CompletionPercentage())
		assert.Equal(t, o.AllItemsDelivered(), o.AllItemsDelivered())
		assert.Equal(t,
			o.NeedsAttention(testTime, staleness, minItemCount),
			o.NeedsAttention(testTime, staleness, minItemCount),
		)
	})
}

func TestOrder_AllItemsDelivered(t *testing.T) {
	a := newItem(t, "A", 100, 1)
	b := newItem(t, "B", 100, 1)
	o := newOrder(t, a, b)

	assert.False(t, o.AllItemsDelivered())

	advanceTo(t, o, a, item.StatusDelivered)
	advanceTo(t, o, b, item.StatusDelivered)

	assert.True(t, o.AllItemsDelivered())
	assert.Equal(t, 100, o.CompletionPercentage())
}

func TestOrder_NeedsAttention(t *testing.T) {
	t.Run("stale supplier-side item flags the order", func(t *testing.T) {
		a := newItem(t, "A", 100, 1)
		o := newOrder(t, a)
		advanceTo(t, o, a, item.StatusOrdered)

		assert.False(t, o.NeedsAttention(defaultWeekGo, staleness, 1))
		assert.True(t, o.NeedsAttention(testTime.Add(20*24*time.Hour), staleness, 1))
	})

	t.Run("active count below minimum flags the order", func(t *testing.T) {
		a := newItem(t, "A", 100, 1)
		b := newItem(t, "B", 100, 1)
		o := newOrder(t, a, b)
		require.NoError(t, o.CancelItem(b.ID(), "", defaultActor, testTime))

		assert.True(t, o.NeedsAttention(testTime, staleness, minItemCount))
	})

	t.Run("zero active items never flags", func(t *testing.T) {
		a := newItem(t, "A", 100, 1)
		o := newOrder(t, a)
		require.NoError(t, o.CancelItem(a.ID(), "", defaultActor, testTime))

		assert.False(t, o.NeedsAttention(testTime, staleness, minItemCount))
	})
}

func TestOrder_DeriveStatus(t *testing.T) {
	t.Run("pending while nothing progressed", func(t *testing.T) {
		o := newOrder(t, newItem(t, "A", 100, 1))
		assert.Equal(t, order.StatusPending, o.DeriveStatus())
	})

	t.Run("in progress once any item moves", func(t *testing.T) {
		a := newItem(t, "A", 100, 1)
		o := newOrder(t, a, newItem(t, "B", 100, 1))
		advanceTo(t, o, a, item.StatusOrdered)

		assert.Equal(t, order.StatusInProgress, o.DeriveStatus())
	})

	t.Run("ready to ship once everything arrived", func(t *testing.T) {
		a := newItem(t, "A", 100, 1)
		b := newItem(t, "B", 100, 1)
		o := newOrder(t, a, b)
		advanceTo(t, o, a, item.StatusArrivedIsrael)
		advanceTo(t, o, b, item.StatusDelivered)

		assert.Equal(t, order.StatusReadyToShip, o.DeriveStatus())
	})

	t.Run("shipped once everything left the warehouse", func(t *testing.T) {
		a := newItem(t, "A", 100, 1)
		b := newItem(t, "B", 100, 1)
		o := newOrder(t, a, b)
		advanceTo(t, o, a, item.StatusShippedToCustomer)
		advanceTo(t, o, b, item.StatusDelivered)

		assert.Equal(t, order.StatusShipped, o.DeriveStatus())
	})

	t.Run("delivered once every active item is delivered", func(t *testing.T) {
		a := newItem(t, "A", 100, 1)
		b := newItem(t, "B", 100, 1)
		o := newOrder(t, a, b)
		advanceTo(t, o, a, item.StatusDelivered)
		require.NoError(t, o.CancelItem(b.ID(), "", defaultActor, testTime))

		assert.Equal(t, order.StatusDelivered, o.DeriveStatus())
	})

	t.Run("cancelled when no active items remain", func(t *testing.T) {
		a := newItem(t, "A", 100, 1)
		o := newOrder(t, a)
		require.NoError(t, o.CancelItem(a.ID(), "", defaultActor, testTime))

		assert.Equal(t, order.StatusCancelled, o.DeriveStatus())
	})
}

func TestOrder_ActiveTotal(t *testing.T) {
	a := newItem(t, "A", 100, 2)
	b := newItem(t, "B", 50, 1)
	o := newOrder(t, a, b)

	assert.True(t, decimal.NewFromInt(250).Equal(o.ActiveTotal()))

	require.NoError(t, o.CancelItem(b.ID(), "", defaultActor, testTime))
	assert.True(t, decimal.NewFromInt(200).Equal(o.ActiveTotal()))
}

func TestOrder_TransitionItem(t *testing.T) {
	a := newItem(t, "Headphones", 100, 1)
	o := newOrder(t, a)

	require.NoError(t, o.TransitionItem(a.ID(), item.StatusOrdered, defaultActor, "", testTime))

	msg, ok := o.LastTimelineMessage()
	require.True(t, ok)
	assert.Equal(t, "Headphones: pending -> ordered by system", msg)

	err := o.TransitionItem(kernel.NewUUID(), item.StatusOrdered, defaultActor, "", testTime)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestOrder_LockUnlockItem(t *testing.T) {
	a := newItem(t, "Headphones", 100, 1)
	o := newOrder(t, a)
	admin, err := item.AdminActor("dana")
	require.NoError(t, err)

	require.NoError(t, o.LockItem(a.ID(), item.StatusOrdered, "supplier dispute", admin, testTime))
	assert.True(t, a.IsLocked())

	err = o.TransitionItem(a.ID(), item.StatusInTransit, defaultActor, "", testTime)
	require.ErrorIs(t, err, item.ErrItemLocked)

	require.NoError(t, o.UnlockItem(a.ID(), admin, testTime))
	assert.False(t, a.IsLocked())
	require.NoError(t, o.TransitionItem(a.ID(), item.StatusInTransit, defaultActor, "", testTime))
}

func TestOrder_Cancel(t *testing.T) {
	a := newItem(t, "A", 100, 1)
	b := newItem(t, "B", 100, 1)
	o := newOrder(t, a, b)
	advanceTo(t, o, a, item.StatusDelivered)
	admin, err := item.AdminActor("dana")
	require.NoError(t, err)

	require.NoError(t, o.Cancel("customer requested refund", admin, testTime))

	assert.True(t, o.IsCancelled())
	assert.Equal(t, order.StatusCancelled, o.DeriveStatus())
	// Delivered items stay delivered; only non-terminal ones are cancelled.
	assert.Equal(t, item.StatusDelivered, a.Status())
	assert.Equal(t, item.StatusCancelled, b.Status())
}

func TestPaymentStatus(t *testing.T) {
	t.Run("round-trips wire values", func(t *testing.T) {
		for _, p := range []order.PaymentStatus{
			order.PaymentPending,
			order.PaymentHold,
			order.PaymentReadyToCharge,
			order.PaymentCharged,
			order.PaymentCancelled,
			order.PaymentFailed,
			order.PaymentPartialRefund,
			order.PaymentFullRefund,
		} {
			parsed, err := order.PaymentStatusFromString(p.String())
			require.NoError(t, err)
			assert.Equal(t, p, parsed)
		}
	})

	t.Run("rejects unknown values", func(t *testing.T) {
		_, err := order.PaymentStatusFromString("iou")
		require.Error(t, err)
	})

	t.Run("display labels", func(t *testing.T) {
		assert.Equal(t, "Payment on hold", order.PaymentHold.DisplayLabel())
	})
}

func TestOrderStatus_String(t *testing.T) {
	assert.Equal(t, "ready_to_ship", order.StatusReadyToShip.String())
	assert.Equal(t, "in_progress", order.StatusInProgress.String())
	assert.Equal(t, "unknown", order.Status(99).String())
}
