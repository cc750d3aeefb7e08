package commands

import (
	"context"
	"time"
)

// CancelItemCommandHandler cancels one item of an order.
type CancelItemCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

// NewCancelItemCommandHandler creates a handler for item cancellations.
func NewCancelItemCommandHandler(uowFactory OrderUoWFactory) CancelItemCommandHandler {
	return CancelItemCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle cancels the item. Terminal items (delivered or already cancelled)
// are rejected with item.ErrInvalidTransition.
func (h CancelItemCommandHandler) Handle(ctx context.Context, cmd CancelItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.CancelItem(cmd.ItemID(), cmd.Reason(), cmd.Actor(), h.now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
