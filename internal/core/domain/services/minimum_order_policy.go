package services

import (
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ShortfallReport describes how far an order is from satisfying the policy
// minimums. Absence of shortfall (both Meets flags true, zero deficits) is
// the normal, silent case.
type ShortfallReport struct {
	MeetsAmount   bool
	MeetsCount    bool
	AmountDeficit decimal.Decimal
	CountDeficit  int
}

// MeetsMinimum reports whether the order satisfies both policy minimums.
func (r ShortfallReport) MeetsMinimum() bool {
	return r.MeetsAmount && r.MeetsCount
}

// MinimumOrderPolicy determines whether an order, after cancellations, still
// satisfies the configured monetary and item-count minimums. Thresholds are
// supplied by the configuration source at construction, never hardcoded.
type MinimumOrderPolicy struct {
	minAmount    decimal.Decimal
	minItemCount int
}

// NewMinimumOrderPolicy creates a policy with the given thresholds.
// Both thresholds must be non-negative.
func NewMinimumOrderPolicy(minAmount decimal.Decimal, minItemCount int) (MinimumOrderPolicy, error) {
	if minAmount.IsNegative() {
		return MinimumOrderPolicy{}, errs.NewValueIsInvalidError("minimum order amount")
	}
	if minItemCount < 0 {
		return MinimumOrderPolicy{}, errs.NewValueIsInvalidError("minimum item count")
	}
	return MinimumOrderPolicy{minAmount: minAmount, minItemCount: minItemCount}, nil
}

// MinAmount returns the configured monetary threshold.
func (p MinimumOrderPolicy) MinAmount() decimal.Decimal {
	return p.minAmount
}

// MinItemCount returns the configured item-count threshold.
func (p MinimumOrderPolicy) MinItemCount() int {
	return p.minItemCount
}

// Evaluate computes the shortfall report over the order's active items.
// Never errors: an order with no active items simply reports both deficits.
func (p MinimumOrderPolicy) Evaluate(o *order.Order) ShortfallReport {
	activeTotal := o.ActiveTotal()
	activeCount := len(o.ActiveItems())

	report := ShortfallReport{
		MeetsAmount:   activeTotal.GreaterThanOrEqual(p.minAmount),
		MeetsCount:    activeCount >= p.minItemCount,
		AmountDeficit: decimal.Zero,
	}
	if !report.MeetsAmount {
		report.AmountDeficit = p.minAmount.Sub(activeTotal)
	}
	if !report.MeetsCount {
		report.CountDeficit = p.minItemCount - activeCount
	}
	return report
}
