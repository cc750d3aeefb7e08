// Package item implements the per-item fulfillment state machine.
//
// An item is one product line within an order, progressing through the
// cross-border import chain: pending -> ordered -> in_transit ->
// arrived_israel -> shipped_to_customer -> delivered, with cancelled as a
// second terminal reached only through the cancellation flow.
//
// The package owns:
//   - the status taxonomy and the legal-transition table (status.go)
//   - the state machine applying transitions, administrative force-sets,
//     override locks, and cancellations (item.go)
//   - actor identity for audit records (actor.go)
//   - the caller-correctable error taxonomy (errors.go)
//
// An override lock pins an item's status so automated and bulk transitions
// skip it; only explicit operator actions may change a locked item. Every
// successful state change appends an immutable entry to the item's
// append-only history.
package item
