package commands

import (
	"context"
	"time"
)

// ForceSetItemCommandHandler applies an administrative status override.
type ForceSetItemCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

// NewForceSetItemCommandHandler creates a handler for force-set operations.
func NewForceSetItemCommandHandler(uowFactory OrderUoWFactory) ForceSetItemCommandHandler {
	return ForceSetItemCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle forces the item to the requested status. An existing override lock
// stays in place; only the status and history change.
func (h ForceSetItemCommandHandler) Handle(ctx context.Context, cmd ForceSetItemCommand) error {
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

	if err = aggregate.ForceSetItem(cmd.ItemID(), cmd.Target(), cmd.Actor(), cmd.Reason(), h.now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
