package queries

import (
	"context"
	"sort"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// GetAttentionOrdersQueryHandler builds the operator triage list: every
// undelivered order scored and sorted so the critical ones surface first.
type GetAttentionOrdersQueryHandler struct {
	orderRepo ports.OrderRepository
	scorer    services.UrgencyScorer
	now       func() time.Time
}

// NewGetAttentionOrdersQueryHandler creates a handler for the triage list.
func NewGetAttentionOrdersQueryHandler(
	orderRepo ports.OrderRepository,
	scorer services.UrgencyScorer,
) GetAttentionOrdersQueryHandler {
	return GetAttentionOrdersQueryHandler{
		orderRepo: orderRepo,
		scorer:    scorer,
		now:       time.Now,
	}
}

// Handle scores all undelivered orders. Results are sorted most urgent
// first; ties keep the repository's order for a stable dashboard.
func (h GetAttentionOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAttentionOrdersQuery,
) ([]GetAttentionOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	aggregates, err := h.orderRepo.GetAllUndelivered(ctx)
	if err != nil {
		return nil, err
	}

	now := h.now()
	type scoredRow struct {
		row     GetAttentionOrdersQueryResponse
		urgency services.Urgency
	}

	scored := make([]scoredRow, 0, len(aggregates))
	for _, aggregate := range aggregates {
		urgency := h.scorer.Score(aggregate, now)
		scored = append(scored, scoredRow{row: h.annotate(aggregate, urgency, now), urgency: urgency})
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].urgency > scored[b].urgency
	})

	rows := make([]GetAttentionOrdersQueryResponse, 0, len(scored))
	for _, s := range scored {
		rows = append(rows, s.row)
	}

	return rows, nil
}

func (h GetAttentionOrdersQueryHandler) annotate(
	aggregate *order.Order,
	urgency services.Urgency,
	now time.Time,
) GetAttentionOrdersQueryResponse {
	stale := 0
	for _, i := range aggregate.ActiveItems() {
		if i.IsStale(now, h.scorer.Staleness()) {
			stale++
		}
	}

	return GetAttentionOrdersQueryResponse{
		OrderID:           aggregate.ID(),
		Status:            aggregate.DeriveStatus().String(),
		Urgency:           urgency.String(),
		NeedsAttention:    aggregate.NeedsAttention(now, h.scorer.Staleness(), h.scorer.MinItemCount()),
		CompletionPercent: aggregate.CompletionPercentage(),
		ActiveItemCount:   len(aggregate.ActiveItems()),
		StaleItemCount:    stale,
	}
}
