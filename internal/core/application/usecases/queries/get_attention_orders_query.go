package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetAttentionOrdersQueryIsNotConstructed = errors.New(
	"GetAttentionOrdersQuery must be created via NewGetAttentionOrdersQuery constructor",
)

// GetAttentionOrdersQuery retrieves every undelivered order annotated with
// its urgency tier, most urgent first. Parameterless: the handler owns the
// scoring configuration.
type GetAttentionOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAttentionOrdersQuery creates the attention dashboard query.
func NewGetAttentionOrdersQuery() GetAttentionOrdersQuery {
	return GetAttentionOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAttentionOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAttentionOrdersQueryIsNotConstructed)
}

// GetAttentionOrdersQueryResponse is one row of the attention dashboard.
type GetAttentionOrdersQueryResponse struct {
	OrderID           kernel.UUID
	Status            string
	Urgency           string
	NeedsAttention    bool
	CompletionPercent int
	ActiveItemCount   int
	StaleItemCount    int
}
