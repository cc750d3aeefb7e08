package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/services"
)

// staleEscalationMessage is appended to a critical order's timeline once per
// episode; repeated sweeps skip orders already flagged.
const staleEscalationMessage = "Escalation: order requires immediate attention"

// EscalateStaleOrdersCommandHandler sweeps undelivered orders and writes an
// escalation entry onto the timeline of every critical one.
type EscalateStaleOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	scorer     services.UrgencyScorer
	now        func() time.Time
}

// NewEscalateStaleOrdersCommandHandler creates a handler for the escalation
// sweep.
func NewEscalateStaleOrdersCommandHandler(
	uowFactory OrderUoWFactory,
	scorer services.UrgencyScorer,
) EscalateStaleOrdersCommandHandler {
	return EscalateStaleOrdersCommandHandler{
		uowFactory: uowFactory,
		scorer:     scorer,
		now:        time.Now,
	}
}

// Handle scores every undelivered order and flags the critical ones. Returns
// how many orders were newly flagged. An order whose latest timeline entry is
// already the escalation message is skipped, so repeated sweeps stay quiet
// until something else moves.
func (h EscalateStaleOrdersCommandHandler) Handle(ctx context.Context, cmd EscalateStaleOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregates, err := orderRepo.GetAllUndelivered(ctx)
	if err != nil {
		return 0, err
	}

	now := h.now()
	flagged := 0
	for _, aggregate := range aggregates {
		if h.scorer.Score(aggregate, now) != services.UrgencyCritical {
			continue
		}
		if last, ok := aggregate.LastTimelineMessage(); ok && last == staleEscalationMessage {
			continue
		}

		aggregate.AppendTimeline(staleEscalationMessage, now)
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return flagged, err
		}
		flagged++
	}

	if err = uow.Commit(ctx); err != nil {
		return flagged, err
	}

	return flagged, nil
}
