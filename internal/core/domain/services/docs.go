// Package services contains stateless domain services operating across the
// order aggregate.
//
// MinimumOrderPolicy recomputes order viability against configured monetary
// and item-count minimums after cancellations. UrgencyScorer classifies an
// order into a triage tier for operator dashboards. Both are pure read-side
// derivations: they never mutate the aggregate and never fail. Missing or
// empty data degrades to the "everything fine" result.
package services
