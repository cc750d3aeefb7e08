// Package order implements the Order aggregate root and the order-level
// aggregator.
//
// An order owns a sequence of items (package item), a pricing breakdown, a
// free-text audit timeline, and a payment-status label. Order-level fields
// such as the display status, completion percentage, and needs-attention
// flag are pure derivations over the active (non-cancelled) items; the
// per-item state machine remains the single source of truth.
//
// All item mutations flow through the aggregate root (TransitionItem,
// LockItem, UnlockItem, ForceSetItem, CancelItem, Cancel) so every change is
// recorded in the order timeline and aggregates are recomputed on read.
package order
