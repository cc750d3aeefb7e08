package services

import (
	"time"

	"fulfillment/internal/core/domain/model/item"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// Urgency is the triage tier of an order, used purely for dashboard sorting
// and color-coding.
type Urgency int

const (
	UrgencyLow Urgency = iota
	UrgencyMedium
	UrgencyHigh
	UrgencyCritical
)

var urgencyStrings = map[Urgency]string{
	UrgencyLow:      "low",
	UrgencyMedium:   "medium",
	UrgencyHigh:     "high",
	UrgencyCritical: "critical",
}

// String returns the wire representation of the urgency tier.
func (u Urgency) String() string {
	if s, ok := urgencyStrings[u]; ok {
		return s
	}
	return urgencyStrings[UrgencyLow]
}

// legacyPaymentHoldStatus is the historical order status that still demands
// operator attention when present on old records.
const legacyPaymentHoldStatus = "payment_hold"

// UrgencyScorer classifies an order into a priority tier from staleness and
// viability signals. The ladder is evaluated top-down, first match wins, and
// must stay deterministic: dashboards sort and color-code by the result.
type UrgencyScorer struct {
	staleness    time.Duration
	minItemCount int
}

// NewUrgencyScorer creates a scorer with the given staleness threshold and
// minimum viable item count.
func NewUrgencyScorer(staleness time.Duration, minItemCount int) (UrgencyScorer, error) {
	if staleness <= 0 {
		return UrgencyScorer{}, errs.NewValueIsInvalidError("staleness threshold")
	}
	if minItemCount < 0 {
		return UrgencyScorer{}, errs.NewValueIsInvalidError("minimum item count")
	}
	return UrgencyScorer{staleness: staleness, minItemCount: minItemCount}, nil
}

// Staleness returns the configured staleness threshold.
func (s UrgencyScorer) Staleness() time.Duration {
	return s.staleness
}

// MinItemCount returns the configured minimum viable item count.
func (s UrgencyScorer) MinItemCount() int {
	return s.minItemCount
}

// Score classifies the order. Never errors: an order with zero active items
// lands in the vacuous low tier.
//
// The ladder:
//  1. critical: an active item sat in ordered/in_transit beyond the
//     staleness threshold, or the active item count dropped below the
//     minimum while staying above zero
//  2. high: the order needs attention but is not critical, or its status is
//     pending (including the legacy payment_hold of historical records)
//  3. medium: an item is awaiting the supplier (ordered), moving but not home
//  4. low: everything else
func (s UrgencyScorer) Score(o *order.Order, now time.Time) Urgency {
	active := o.ActiveItems()

	for _, i := range active {
		if i.IsStale(now, s.staleness) {
			return UrgencyCritical
		}
	}
	if len(active) > 0 && len(active) < s.minItemCount {
		return UrgencyCritical
	}

	if o.NeedsAttention(now, s.staleness, s.minItemCount) {
		return UrgencyHigh
	}
	if o.DeriveStatus() == order.StatusPending || o.LegacyStatus() == legacyPaymentHoldStatus {
		return UrgencyHigh
	}

	for _, i := range active {
		if i.Status() == item.StatusOrdered {
			return UrgencyMedium
		}
	}

	return UrgencyLow
}
