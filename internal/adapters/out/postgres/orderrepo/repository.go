package orderrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/item"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NopTracker is an aggregateTracker that records nothing. Used on read-only
// paths that restore aggregates outside a unit of work.
type NopTracker struct{}

// TrackAggregate discards the aggregate.
func (NopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with all of its items to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database. The order row is written
// unconditionally; each modified item is written with a compare-and-swap on
// its version column. A stale item snapshot fails the whole update with
// errs.ErrVersionIsInvalid, so the caller reloads and retries.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"subtotal":       dto.Subtotal,
			"shipping":       dto.Shipping,
			"total":          dto.Total,
			"payment_status": dto.PaymentStatus,
			"legacy_status":  dto.LegacyStatus,
			"cancelled":      dto.Cancelled,
			"timeline":       dto.Timeline,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	for _, i := range aggregate.Items() {
		if !i.HasPendingChanges() {
			continue
		}
		if err := r.updateItem(ctx, dto.ID, i); err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// updateItem writes one item row guarded by the version it was loaded with.
func (r *GormOrderRepository) updateItem(ctx context.Context, orderID uuid.UUID, i *item.Item) error {
	dto, err := itemFromDomain(orderID, i)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&ItemDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"status":            dto.Status,
			"status_changed_at": dto.StatusChangedAt,
			"history":           dto.History,
			"override_status":   dto.OverrideStatus,
			"override_reason":   dto.OverrideReason,
			"override_actor":    dto.OverrideActor,
			"override_at":       dto.OverrideAt,
			"cancel_reason":     dto.CancelReason,
			"cancel_actor":      dto.CancelActor,
			"cancel_at":         dto.CancelAt,
			"version":           dto.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("item " + i.ID().String())
	}

	return nil
}

// Get retrieves an order by ID with every item in one consistent snapshot.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("items.id") }).
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllUndelivered retrieves every non-cancelled order that still has at
// least one active item short of delivered.
func (r *GormOrderRepository) GetAllUndelivered(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("items.id") }).
		Where("cancelled = ?", false).
		Where(`EXISTS (
			SELECT 1 FROM items
			WHERE items.order_id = orders.id
			  AND items.cancel_at IS NULL
			  AND items.status NOT IN (?, ?)
		)`, int(item.StatusDelivered), int(item.StatusCancelled)).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
