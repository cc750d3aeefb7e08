package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/item"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllUndelivered(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type itemSpec struct {
	status    item.Status
	price     int64
	changedAt time.Time
	override  *item.Override
	cancelled bool
}

// buildOrder assembles an order aggregate from item specs. Zero changedAt
// means "now".
func buildOrder(t *testing.T, specs ...itemSpec) *order.Order {
	t.Helper()

	now := time.Now()
	items := make([]*item.Item, 0, len(specs))
	subtotal := decimal.Zero

	for _, spec := range specs {
		changedAt := spec.changedAt
		if changedAt.IsZero() {
			changedAt = now
		}

		var cancellation *item.Cancellation
		if spec.cancelled {
			cancellation = &item.Cancellation{Reason: "test", Actor: item.SystemActor(), At: now}
		}

		i, err := item.RestoreItem(
			kernel.NewUUID(), "Headphones", decimal.NewFromInt(spec.price), 1,
			spec.status, changedAt, nil, spec.override, cancellation, 1)
		require.NoError(t, err)
		items = append(items, i)
		subtotal = subtotal.Add(decimal.NewFromInt(spec.price))
	}

	pricing, err := order.NewPricing(subtotal, decimal.Zero, subtotal)
	require.NoError(t, err)

	aggregate, err := order.RestoreOrder(
		kernel.NewUUID(), items, pricing, nil, order.PaymentCharged, "", false)
	require.NoError(t, err)
	return aggregate
}
