package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the order-level fulfillment status. It is display-level
// only: always derived from the active items' statuses plus whole-order
// cancellation, never maintained by a separate state machine. The canonical
// source of truth is the per-item state.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusPending means no active item has progressed past pending.
	StatusPending

	// StatusInProgress means at least one active item has moved past pending.
	StatusInProgress

	// StatusReadyToShip means every active item has at least arrived at the
	// Israel warehouse.
	StatusReadyToShip

	// StatusShipped means every active item has at least been shipped to the
	// customer.
	StatusShipped

	// StatusDelivered means every active item has been delivered.
	StatusDelivered

	// StatusCancelled means the order was explicitly cancelled or has no
	// active items left.
	StatusCancelled
)

var statusStrings = map[Status]string{
	StatusUnknown:     "unknown",
	StatusPending:     "pending",
	StatusInProgress:  "in_progress",
	StatusReadyToShip: "ready_to_ship",
	StatusShipped:     "shipped",
	StatusDelivered:   "delivered",
	StatusCancelled:   "cancelled",
}

// String returns the wire representation of the status.
func (s Status) String() string {
	if str, ok := statusStrings[s]; ok {
		return str
	}
	return statusStrings[StatusUnknown]
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := statusStrings[s]; !ok || s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"order status", fmt.Errorf("%d is not a valid order status", s),
		)
	}
	return nil
}
