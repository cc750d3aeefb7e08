package commands

import (
	"context"
	"time"
)

// BulkItemResult records the outcome of one entry of a bulk transition.
// Err is nil when the item moved to the target status.
type BulkItemResult struct {
	Ref BulkItemRef
	Err error
}

// BulkTransitionReport aggregates per-item outcomes of a bulk transition.
type BulkTransitionReport struct {
	Results []BulkItemResult
}

// Succeeded returns how many items transitioned.
func (r BulkTransitionReport) Succeeded() int {
	n := 0
	for _, res := range r.Results {
		if res.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns how many items were rejected.
func (r BulkTransitionReport) Failed() int {
	return len(r.Results) - r.Succeeded()
}

// BulkTransitionCommandHandler moves a batch of items to a common status.
type BulkTransitionCommandHandler struct {
	uowFactory OrderUoWFactory
	now        func() time.Time
}

// NewBulkTransitionCommandHandler creates a handler for bulk transitions.
func NewBulkTransitionCommandHandler(uowFactory OrderUoWFactory) BulkTransitionCommandHandler {
	return BulkTransitionCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle processes the batch in request order, one transaction per item, and
// reports every outcome. Locked or invalid items fail individually without
// stopping the rest. A cancelled context stops the batch; already-collected
// results are returned alongside the context error.
func (h BulkTransitionCommandHandler) Handle(
	ctx context.Context,
	cmd BulkTransitionCommand,
) (BulkTransitionReport, error) {
	if err := cmd.Validate(); err != nil {
		return BulkTransitionReport{}, err
	}

	report := BulkTransitionReport{}
	for _, ref := range cmd.Refs() {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		err := h.transitionOne(ctx, ref, cmd)
		report.Results = append(report.Results, BulkItemResult{Ref: ref, Err: err})
	}

	return report, nil
}

func (h BulkTransitionCommandHandler) transitionOne(
	ctx context.Context,
	ref BulkItemRef,
	cmd BulkTransitionCommand,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, ref.OrderID)
	if err != nil {
		return err
	}

	if err = aggregate.TransitionItem(ref.ItemID, cmd.Target(), cmd.Actor(), cmd.Note(), h.now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
