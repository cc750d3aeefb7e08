package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/item"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// GetOrderSummaryQueryHandler assembles the dashboard summary of one order.
// Annotations are computed on read from the restored aggregate; nothing
// display-level is stored.
type GetOrderSummaryQueryHandler struct {
	orderRepo ports.OrderRepository
	policy    services.MinimumOrderPolicy
	scorer    services.UrgencyScorer
	now       func() time.Time
}

// NewGetOrderSummaryQueryHandler creates a handler for order summaries.
func NewGetOrderSummaryQueryHandler(
	orderRepo ports.OrderRepository,
	policy services.MinimumOrderPolicy,
	scorer services.UrgencyScorer,
) GetOrderSummaryQueryHandler {
	return GetOrderSummaryQueryHandler{
		orderRepo: orderRepo,
		policy:    policy,
		scorer:    scorer,
		now:       time.Now,
	}
}

// Handle loads the order and computes its summary. Returns
// errs.ErrObjectNotFound when the order does not exist.
func (h GetOrderSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderSummaryQuery,
) (GetOrderSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}

	aggregate, err := h.orderRepo.Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}

	now := h.now()
	return h.summarize(aggregate, now), nil
}

func (h GetOrderSummaryQueryHandler) summarize(aggregate *order.Order, now time.Time) GetOrderSummaryQueryResponse {
	shortfall := h.policy.Evaluate(aggregate)

	resp := GetOrderSummaryQueryResponse{
		OrderID:            aggregate.ID(),
		Status:             aggregate.DeriveStatus().String(),
		PaymentStatus:      aggregate.PaymentStatus().String(),
		PaymentStatusLabel: aggregate.PaymentStatus().DisplayLabel(),
		CompletionPercent:  aggregate.CompletionPercentage(),
		ActiveTotal:        aggregate.ActiveTotal(),
		NeedsAttention:     aggregate.NeedsAttention(now, h.scorer.Staleness(), h.scorer.MinItemCount()),
		Urgency:            h.scorer.Score(aggregate, now).String(),
		MeetsMinimum:       shortfall.MeetsMinimum(),
		AmountDeficit:      shortfall.AmountDeficit,
		CountDeficit:       shortfall.CountDeficit,
		GeneratedAt:        now,
	}

	// Historical records may still carry a pre-migration status string; it is
	// surfaced display-only and never fed back into the state machine.
	if label, ok := item.LegacyStatusLabel(aggregate.LegacyStatus()); ok {
		resp.LegacyStatusLabel = label
	}

	if msg, ok := aggregate.LastTimelineMessage(); ok {
		resp.LastTimelineMessage = msg
	}

	for _, i := range aggregate.Items() {
		line := ItemSummaryResponse{
			ID:          i.ID(),
			Name:        i.Name(),
			Status:      i.Status().String(),
			StatusLabel: i.Status().DisplayLabel(),
			Quantity:    i.Quantity(),
			LineTotal:   i.LineTotal(),
			Locked:      i.IsLocked(),
			Cancelled:   i.IsCancelled(),
			Stale:       i.IsStale(now, h.scorer.Staleness()),
			Version:     i.Version(),
		}
		if override := i.Override(); override != nil {
			line.LockReason = override.Reason
		}
		resp.Items = append(resp.Items, line)
	}

	return resp
}
