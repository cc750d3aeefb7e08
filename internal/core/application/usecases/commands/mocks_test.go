package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/item"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

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

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

// testOrder builds an order with one restored item per given status. Returns
// the aggregate and the item IDs in the same order as the statuses.
func testOrder(t *testing.T, statuses ...item.Status) (*order.Order, []kernel.UUID) {
	t.Helper()

	now := time.Now()
	items := make([]*item.Item, 0, len(statuses))
	ids := make([]kernel.UUID, 0, len(statuses))
	for _, st := range statuses {
		id := kernel.NewUUID()
		i, err := item.RestoreItem(id, "Headphones", decimal.NewFromInt(100), 1, st, now, nil, nil, nil, 1)
		require.NoError(t, err)
		items = append(items, i)
		ids = append(ids, id)
	}

	subtotal := decimal.NewFromInt(int64(100 * len(statuses)))
	pricing, err := order.NewPricing(subtotal, decimal.Zero, subtotal)
	require.NoError(t, err)

	aggregate, err := order.RestoreOrder(kernel.NewUUID(), items, pricing, nil, order.PaymentPending, "", false)
	require.NoError(t, err)
	return aggregate, ids
}

// testLockedOrder builds a single-item order whose item carries an override
// lock at the given status.
func testLockedOrder(t *testing.T, locked item.Status, reason string) (*order.Order, kernel.UUID) {
	t.Helper()

	now := time.Now()
	id := kernel.NewUUID()
	override := &item.Override{Status: locked, Reason: reason, Actor: item.SystemActor(), At: now}
	i, err := item.RestoreItem(id, "Headphones", decimal.NewFromInt(100), 1, locked, now, nil, override, nil, 1)
	require.NoError(t, err)

	pricing, err := order.NewPricing(decimal.NewFromInt(100), decimal.Zero, decimal.NewFromInt(100))
	require.NoError(t, err)

	aggregate, err := order.RestoreOrder(kernel.NewUUID(), []*item.Item{i}, pricing, nil, order.PaymentPending, "", false)
	require.NoError(t, err)
	return aggregate, id
}
