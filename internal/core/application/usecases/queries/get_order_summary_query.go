// Package queries contains read-only operations for dashboards and
// reporting. The read side computes its annotations (completion, urgency,
// shortfall) with the domain services instead of maintaining them in storage.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderSummaryQueryIsNotConstructed = errors.New(
	"GetOrderSummaryQuery must be created via NewGetOrderSummaryQuery constructor",
)

// GetOrderSummaryQuery retrieves the dashboard view of one order: derived
// status, completion, viability, and urgency, with a per-item breakdown.
type GetOrderSummaryQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderSummaryQuery creates a summary query for the given order.
func NewGetOrderSummaryQuery(orderID kernel.UUID) (GetOrderSummaryQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderSummaryQuery{}, err
	}
	return GetOrderSummaryQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderSummaryQueryIsNotConstructed)
}

// OrderID returns the order's identifier.
func (q GetOrderSummaryQuery) OrderID() kernel.UUID {
	return q.orderID
}

// ItemSummaryResponse is the per-item line of an order summary.
type ItemSummaryResponse struct {
	ID          kernel.UUID
	Name        string
	Status      string
	StatusLabel string
	Quantity    int
	LineTotal   decimal.Decimal
	Locked      bool
	LockReason  string
	Cancelled   bool
	Stale       bool
	Version     int
}

// GetOrderSummaryQueryResponse is the computed dashboard view of one order.
type GetOrderSummaryQueryResponse struct {
	OrderID             kernel.UUID
	Status              string
	LegacyStatusLabel   string
	PaymentStatus       string
	PaymentStatusLabel  string
	CompletionPercent   int
	ActiveTotal         decimal.Decimal
	NeedsAttention      bool
	Urgency             string
	MeetsMinimum        bool
	AmountDeficit       decimal.Decimal
	CountDeficit        int
	Items               []ItemSummaryResponse
	LastTimelineMessage string
	GeneratedAt         time.Time
}
