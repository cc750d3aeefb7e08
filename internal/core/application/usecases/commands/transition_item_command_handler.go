package commands

import (
	"context"
	"time"
)

// TransitionItemCommandHandler applies one status change to one item.
// Loads the owning order, delegates to the aggregate's state machine, and
// persists the result; the repository's compare-and-swap on the item version
// rejects concurrent writers with errs.ErrVersionIsInvalid.
type TransitionItemCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

// NewTransitionItemCommandHandler creates a handler for item transitions.
func NewTransitionItemCommandHandler(uowFactory OrderUoWFactory) TransitionItemCommandHandler {
	return TransitionItemCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle processes the transition command. The order aggregate enforces the
// transition table and the override lock; errors are caller-correctable and
// leave the order untouched.
func (h TransitionItemCommandHandler) Handle(ctx context.Context, cmd TransitionItemCommand) error {
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

	if err = aggregate.TransitionItem(cmd.ItemID(), cmd.Target(), cmd.Actor(), cmd.Note(), h.now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
