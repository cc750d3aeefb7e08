package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/item"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// CreateOrderCommandHandler places new orders.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle creates the order aggregate with every line in pending status and
// persists it.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := h.now()
	items := make([]*item.Item, 0, len(cmd.Lines()))
	subtotal := decimal.Zero
	for _, line := range cmd.Lines() {
		i, err := item.NewItem(kernel.NewUUID(), line.Name, line.Price, line.Quantity, now)
		if err != nil {
			return err
		}
		items = append(items, i)
		subtotal = subtotal.Add(i.LineTotal())
	}

	pricing, err := order.NewPricing(subtotal, cmd.Shipping(), subtotal.Add(cmd.Shipping()))
	if err != nil {
		return err
	}

	aggregate, err := order.NewOrder(cmd.OrderID(), items, pricing, now)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
