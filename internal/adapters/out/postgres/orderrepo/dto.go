// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows. Item
// history and the order timeline are stored as JSONB documents; the override
// lock and cancellation record are flattened into nullable columns.
package orderrepo

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/item"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
type OrderDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Subtotal      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Shipping      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Total         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PaymentStatus int             `gorm:"type:int;not null"`
	LegacyStatus  string          `gorm:"type:varchar(64)"`
	Cancelled     bool            `gorm:"not null"`
	Timeline      []byte          `gorm:"type:jsonb"`
	Items         []ItemDTO       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents the database structure for persisting order items.
// Version is the optimistic-concurrency token; writes are guarded by a
// compare-and-swap on it.
type ItemDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name            string          `gorm:"type:varchar(255);not null"`
	Price           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity        int             `gorm:"type:int;not null"`
	Status          int             `gorm:"type:int;not null;index"`
	StatusChangedAt time.Time       `gorm:"not null"`
	History         []byte          `gorm:"type:jsonb"`
	OverrideStatus  *int            `gorm:"type:int"`
	OverrideReason  *string         `gorm:"type:varchar(500)"`
	OverrideActor   *string         `gorm:"type:varchar(255)"`
	OverrideAt      *time.Time
	CancelReason    *string `gorm:"type:varchar(500)"`
	CancelActor     *string `gorm:"type:varchar(255)"`
	CancelAt        *time.Time
	Version         int `gorm:"type:int;not null"`
}

// TableName specifies the database table name for item entities.
func (ItemDTO) TableName() string {
	return "items"
}

// historyEntryDTO is the JSON shape of one status history record.
type historyEntryDTO struct {
	From     string    `json:"from"`
	To       string    `json:"to"`
	Actor    string    `json:"actor"`
	At       time.Time `json:"at"`
	Note     string    `json:"note,omitempty"`
	Override bool      `json:"override,omitempty"`
}

// timelineEntryDTO is the JSON shape of one order timeline record.
type timelineEntryDTO struct {
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// fromDomain converts an order domain aggregate to its database
// representation, including every item row.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	orderID := aggregate.ID().Bytes()

	timeline := make([]timelineEntryDTO, 0, len(aggregate.Timeline()))
	for _, entry := range aggregate.Timeline() {
		timeline = append(timeline, timelineEntryDTO{Message: entry.Message, At: entry.At})
	}
	timelineRaw, err := json.Marshal(timeline)
	if err != nil {
		return OrderDTO{}, err
	}

	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, i := range aggregate.Items() {
		dto, itemErr := itemFromDomain(orderID, i)
		if itemErr != nil {
			return OrderDTO{}, itemErr
		}
		items = append(items, dto)
	}

	pricing := aggregate.Pricing()
	return OrderDTO{
		ID:            orderID,
		Subtotal:      pricing.Subtotal,
		Shipping:      pricing.Shipping,
		Total:         pricing.Total,
		PaymentStatus: int(aggregate.PaymentStatus()),
		LegacyStatus:  aggregate.LegacyStatus(),
		Cancelled:     aggregate.IsCancelled(),
		Timeline:      timelineRaw,
		Items:         items,
	}, nil
}

func itemFromDomain(orderID uuid.UUID, i *item.Item) (ItemDTO, error) {
	history := make([]historyEntryDTO, 0, len(i.History()))
	for _, entry := range i.History() {
		history = append(history, historyEntryDTO{
			From:     entry.From.String(),
			To:       entry.To.String(),
			Actor:    entry.Actor.String(),
			At:       entry.At,
			Note:     entry.Note,
			Override: entry.Override,
		})
	}
	historyRaw, err := json.Marshal(history)
	if err != nil {
		return ItemDTO{}, err
	}

	dto := ItemDTO{
		ID:              i.ID().Bytes(),
		OrderID:         orderID,
		Name:            i.Name(),
		Price:           i.Price(),
		Quantity:        i.Quantity(),
		Status:          int(i.Status()),
		StatusChangedAt: i.StatusChangedAt(),
		History:         historyRaw,
		Version:         i.Version(),
	}

	if override := i.Override(); override != nil {
		status := int(override.Status)
		reason := override.Reason
		actor := override.Actor.String()
		at := override.At
		dto.OverrideStatus = &status
		dto.OverrideReason = &reason
		dto.OverrideActor = &actor
		dto.OverrideAt = &at
	}

	if cancellation := i.Cancellation(); cancellation != nil {
		reason := cancellation.Reason
		actor := cancellation.Actor.String()
		at := cancellation.At
		dto.CancelReason = &reason
		dto.CancelActor = &actor
		dto.CancelAt = &at
	}

	return dto, nil
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including all items using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	pricing, err := order.NewPricing(dto.Subtotal, dto.Shipping, dto.Total)
	if err != nil {
		return nil, err
	}

	var timelineDTOs []timelineEntryDTO
	if len(dto.Timeline) > 0 {
		if err = json.Unmarshal(dto.Timeline, &timelineDTOs); err != nil {
			return nil, err
		}
	}
	timeline := make([]order.TimelineEntry, 0, len(timelineDTOs))
	for _, entry := range timelineDTOs {
		timeline = append(timeline, order.TimelineEntry{Message: entry.Message, At: entry.At})
	}

	items := make([]*item.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		i, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, i)
	}

	return order.RestoreOrder(
		id, items, pricing, timeline,
		order.PaymentStatus(dto.PaymentStatus), dto.LegacyStatus, dto.Cancelled,
	)
}

func itemToDomain(dto ItemDTO) (*item.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var historyDTOs []historyEntryDTO
	if len(dto.History) > 0 {
		if err = json.Unmarshal(dto.History, &historyDTOs); err != nil {
			return nil, err
		}
	}
	history := make([]item.HistoryEntry, 0, len(historyDTOs))
	for _, entry := range historyDTOs {
		restored, entryErr := historyEntryToDomain(entry)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, restored)
	}

	var override *item.Override
	if dto.OverrideStatus != nil {
		actor, actorErr := item.ActorFromString(deref(dto.OverrideActor))
		if actorErr != nil {
			return nil, actorErr
		}
		override = &item.Override{
			Status: item.Status(*dto.OverrideStatus),
			Reason: deref(dto.OverrideReason),
			Actor:  actor,
			At:     derefTime(dto.OverrideAt),
		}
	}

	var cancellation *item.Cancellation
	if dto.CancelAt != nil {
		actor, actorErr := item.ActorFromString(deref(dto.CancelActor))
		if actorErr != nil {
			return nil, actorErr
		}
		cancellation = &item.Cancellation{
			Reason: deref(dto.CancelReason),
			Actor:  actor,
			At:     *dto.CancelAt,
		}
	}

	return item.RestoreItem(
		id, dto.Name, dto.Price, dto.Quantity,
		item.Status(dto.Status), dto.StatusChangedAt,
		history, override, cancellation, dto.Version,
	)
}

func historyEntryToDomain(dto historyEntryDTO) (item.HistoryEntry, error) {
	from, err := item.StatusFromString(dto.From)
	if err != nil {
		return item.HistoryEntry{}, err
	}
	to, err := item.StatusFromString(dto.To)
	if err != nil {
		return item.HistoryEntry{}, err
	}
	actor, err := item.ActorFromString(dto.Actor)
	if err != nil {
		return item.HistoryEntry{}, err
	}

	return item.HistoryEntry{
		From:     from,
		To:       to,
		Actor:    actor,
		At:       dto.At,
		Note:     dto.Note,
		Override: dto.Override,
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
