package commands

import (
	"context"
	"time"
)

// UnlockItemCommandHandler clears an item's override lock.
type UnlockItemCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

// NewUnlockItemCommandHandler creates a handler for unlock operations.
func NewUnlockItemCommandHandler(uowFactory OrderUoWFactory) UnlockItemCommandHandler {
	return UnlockItemCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle clears the lock. The item's status is left untouched.
func (h UnlockItemCommandHandler) Handle(ctx context.Context, cmd UnlockItemCommand) error {
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

	if err = aggregate.UnlockItem(cmd.ItemID(), cmd.Actor(), h.now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
