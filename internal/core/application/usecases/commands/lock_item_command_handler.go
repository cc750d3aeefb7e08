package commands

import (
	"context"
	"time"
)

// LockItemCommandHandler applies a manual override lock to one item.
type LockItemCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

// NewLockItemCommandHandler creates a handler for override lock operations.
func NewLockItemCommandHandler(uowFactory OrderUoWFactory) LockItemCommandHandler {
	return LockItemCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle pins the item at the requested status and records the lock with its
// audit reason. Repeated locks replace the prior record.
func (h LockItemCommandHandler) Handle(ctx context.Context, cmd LockItemCommand) error {
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

	if err = aggregate.LockItem(cmd.ItemID(), cmd.Target(), cmd.Reason(), cmd.Actor(), h.now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
