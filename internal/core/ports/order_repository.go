// Package ports defines repository and transaction interfaces for the
// fulfillment domain. These interfaces establish contracts between the
// domain layer and infrastructure, enabling dependency inversion and
// testability.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Implementations must provide read-your-writes consistency within a single
// transition call and load each order's full item set in one consistent
// snapshot (no partial-item-set reads).
type OrderRepository interface {
	// Add persists a new order aggregate with all of its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. Item writes
	// are compare-and-swap on each item's version: a stale snapshot is
	// rejected with errs.ErrVersionIsInvalid and the caller must reload
	// and retry.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, including
	// every item with history, override lock, and cancellation record.
	// Returns errs.ErrObjectNotFound when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllUndelivered retrieves every order that still has at least one
	// active item not yet delivered. Used by dashboards and scheduled jobs
	// to compute attention and urgency annotations.
	GetAllUndelivered(ctx context.Context) ([]*order.Order, error)
}
