package item

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the fulfillment state of a single order item as it moves
// through the cross-border import chain: supplier confirmation, international
// transit, arrival at the Israel warehouse, last-mile shipping, delivery.
//
// State transitions:
//
//	pending ──> ordered ──> in_transit ──> arrived_israel ──┬──> shipped_to_customer ──> delivered
//	                                                        └──────────────────────────────^
//
// delivered and cancelled are terminal. cancelled is reached only through the
// cancellation flow, never through the transition table.
//
// Status is a value object that validates state transitions and provides the
// wire representation used for persistence and display.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status assigned when the order is placed.
	// The item has not yet been ordered from the supplier.
	StatusPending

	// StatusOrdered means the item has been ordered from the supplier.
	StatusOrdered

	// StatusInTransit means the item is in international transit.
	StatusInTransit

	// StatusArrivedIsrael means the item has arrived at the Israel warehouse.
	StatusArrivedIsrael

	// StatusShippedToCustomer means the item has been shipped to the customer.
	StatusShippedToCustomer

	// StatusDelivered means the item reached the customer. Terminal.
	StatusDelivered

	// StatusCancelled means the item was cancelled. Terminal; reached only
	// through the cancellation flow.
	StatusCancelled
)

// statusStrings holds the wire representation of each status. These values
// are part of the persistence and API contract and must not change.
var statusStrings = map[Status]string{
	StatusUnknown:           "unknown",
	StatusPending:           "pending",
	StatusOrdered:           "ordered",
	StatusInTransit:         "in_transit",
	StatusArrivedIsrael:     "arrived_israel",
	StatusShippedToCustomer: "shipped_to_customer",
	StatusDelivered:         "delivered",
	StatusCancelled:         "cancelled",
}

// statusDisplayLabels maps each status to its operator-facing label.
// Static display configuration, loaded once at process start.
var statusDisplayLabels = map[Status]string{
	StatusPending:           "Pending",
	StatusOrdered:           "Ordered from supplier",
	StatusInTransit:         "In transit",
	StatusArrivedIsrael:     "Arrived in Israel",
	StatusShippedToCustomer: "Shipped to customer",
	StatusDelivered:         "Delivered",
	StatusCancelled:         "Cancelled",
}

// legacyStatusLabels maps historical status values that still exist in old
// records to display labels. These statuses are display-only: they are never
// produced by live logic and are not part of the transition graph.
var legacyStatusLabels = map[string]string{
	"payment_hold":         "Payment hold",
	"arrived_us_warehouse": "Arrived at US warehouse",
	"ordered_from_vendor":  "Ordered from vendor",
	"partially_shipped":    "Partially shipped",
	"awaiting_stock":       "Awaiting stock",
}

// transitionTable is the single source of truth for legal one-step item
// status transitions. Terminal statuses map to an empty set.
var transitionTable = map[Status][]Status{
	StatusPending:           {StatusOrdered},
	StatusOrdered:           {StatusInTransit},
	StatusInTransit:         {StatusArrivedIsrael},
	StatusArrivedIsrael:     {StatusShippedToCustomer, StatusDelivered},
	StatusShippedToCustomer: {StatusDelivered},
	StatusDelivered:         {},
	StatusCancelled:         {},
}

// StatusFromString parses a wire-format status value.
// Returns an error for unknown values, including legacy display statuses,
// which must never enter the live transition graph.
func StatusFromString(s string) (Status, error) {
	for status, str := range statusStrings {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid item status", s),
	)
}

// Validate checks if the Status value is valid.
// StatusUnknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := transitionTable[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the wire representation of the status.
// Implements fmt.Stringer; safe to call on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := statusStrings[s]; ok {
		return str
	}
	return statusStrings[StatusUnknown]
}

// DisplayLabel returns the operator-facing label for the status.
func (s Status) DisplayLabel() string {
	if label, ok := statusDisplayLabels[s]; ok {
		return label
	}
	return statusDisplayLabels[StatusPending]
}

// IsTerminal reports whether the status has no outbound transitions.
func (s Status) IsTerminal() bool {
	return len(transitionTable[s]) == 0 && s.Validate() == nil
}

// AllowedNext returns the set of statuses reachable from s in one step.
// Returns an empty slice for terminal or invalid statuses.
func (s Status) AllowedNext() []Status {
	next := transitionTable[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// IsValidTransition reports whether moving from one status to another is
// allowed by the transition table.
func IsValidTransition(from, to Status) bool {
	for _, allowed := range transitionTable[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// NextRecommended returns the first allowed next status, used as a UI
// default and never enforced. The second return is false when the status is
// terminal or invalid.
func NextRecommended(from Status) (Status, bool) {
	next := transitionTable[from]
	if len(next) == 0 {
		return StatusUnknown, false
	}
	return next[0], true
}

// OperatorTargets returns the statuses an operator may select as a
// transition target in the default selector. pending is only reachable at
// creation and cancelled only through the cancellation flow, so both are
// excluded.
func OperatorTargets() []Status {
	return []Status{
		StatusOrdered,
		StatusInTransit,
		StatusArrivedIsrael,
		StatusShippedToCustomer,
		StatusDelivered,
	}
}

// LegacyStatusLabel resolves a historical raw status value to its display
// label. The second return is false when the value is not a known legacy
// status.
func LegacyStatusLabel(raw string) (string, bool) {
	label, ok := legacyStatusLabels[raw]
	return label, ok
}
