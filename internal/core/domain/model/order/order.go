package order

import (
	"errors"
	"fmt"
	"math"
	"time"

	"fulfillment/internal/core/domain/model/item"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrOrderHasNoItems is returned when creating an order without items.
	ErrOrderHasNoItems = errors.New("order must contain at least one item")

	// ErrOrderIsCancelled is returned when cancelling an order twice.
	ErrOrderIsCancelled = errors.New("order is already cancelled")
)

// Pricing is the order's monetary breakdown.
type Pricing struct {
	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal
}

// NewPricing creates a validated pricing breakdown.
// All amounts must be non-negative and total must equal subtotal plus shipping.
func NewPricing(subtotal, shipping, total decimal.Decimal) (Pricing, error) {
	if subtotal.IsNegative() || shipping.IsNegative() || total.IsNegative() {
		return Pricing{}, errs.NewValueIsInvalidError("pricing")
	}
	if !subtotal.Add(shipping).Equal(total) {
		return Pricing{}, errs.NewValueIsInvalidErrorWithCause(
			"pricing", errors.New("total must equal subtotal plus shipping"),
		)
	}
	return Pricing{Subtotal: subtotal, Shipping: shipping, Total: total}, nil
}

// TimelineEntry is one free-text audit message in the order's timeline.
type TimelineEntry struct {
	Message string
	At      time.Time
}

// Order is the aggregate root owning a sequence of items and their shared
// audit timeline. Order-level status, completion percentage, and attention
// flags are pure derivations over the active (non-cancelled) items; they are
// never stored independently except as a cache.
type Order struct {
	id            kernel.UUID
	items         []*item.Item
	pricing       Pricing
	timeline      []TimelineEntry
	paymentStatus PaymentStatus

	// legacyStatus carries a historical raw status value for old records.
	// Display-only; empty for orders created by live logic.
	legacyStatus string

	cancelled bool

	isConstructed bool
}

// NewOrder creates an order owning the given items.
// Orders must contain at least one item.
func NewOrder(id kernel.UUID, items []*item.Item, pricing Pricing, now time.Time) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrOrderHasNoItems
	}
	for _, i := range items {
		if err := i.Validate(); err != nil {
			return nil, err
		}
	}

	o := &Order{
		id:            id,
		items:         items,
		pricing:       pricing,
		paymentStatus: PaymentPending,
		isConstructed: true,
	}
	o.AppendTimeline("Order placed", now)
	return o, nil
}

// RestoreOrder reconstructs an order from persistence.
func RestoreOrder(
	id kernel.UUID,
	items []*item.Item,
	pricing Pricing,
	timeline []TimelineEntry,
	paymentStatus PaymentStatus,
	legacyStatus string,
	cancelled bool,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrOrderHasNoItems
	}
	if err := paymentStatus.Validate(); err != nil {
		return nil, err
	}

	restored := make([]TimelineEntry, len(timeline))
	copy(restored, timeline)

	return &Order{
		id:            id,
		items:         items,
		pricing:       pricing,
		timeline:      restored,
		paymentStatus: paymentStatus,
		legacyStatus:  legacyStatus,
		cancelled:     cancelled,
		isConstructed: true,
	}, nil
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Items returns the order's items in their original sequence.
func (o *Order) Items() []*item.Item {
	out := make([]*item.Item, len(o.items))
	copy(out, o.items)
	return out
}

// Item returns the item with the given identifier.
// Returns an ObjectNotFoundError when the order does not contain it.
func (o *Order) Item(id kernel.UUID) (*item.Item, error) {
	for _, i := range o.items {
		if i.ID().IsEqual(id) {
			return i, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("item", id.String())
}

// Pricing returns the order's monetary breakdown.
func (o *Order) Pricing() Pricing {
	return o.pricing
}

// Timeline returns a copy of the audit timeline, oldest first.
func (o *Order) Timeline() []TimelineEntry {
	out := make([]TimelineEntry, len(o.timeline))
	copy(out, o.timeline)
	return out
}

// LastTimelineMessage returns the newest timeline message.
// The second return is false for an empty timeline.
func (o *Order) LastTimelineMessage() (string, bool) {
	if len(o.timeline) == 0 {
		return "", false
	}
	return o.timeline[len(o.timeline)-1].Message, true
}

// AppendTimeline adds an audit message to the timeline.
func (o *Order) AppendTimeline(message string, now time.Time) {
	o.timeline = append(o.timeline, TimelineEntry{Message: message, At: now})
}

// PaymentStatus returns the order's payment status label.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// LegacyStatus returns the historical raw status of old records, empty for
// orders created by live logic.
func (o *Order) LegacyStatus() string {
	return o.legacyStatus
}

// IsCancelled reports whether the whole order was explicitly cancelled.
func (o *Order) IsCancelled() bool {
	return o.cancelled
}

// Validate checks that the order was properly constructed.
func (o *Order) Validate() error {
	if !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	for _, i := range o.items {
		if err := i.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ActiveItems returns the items not marked cancelled, in their original
// sequence. Active items are the basis for every aggregate computation.
func (o *Order) ActiveItems() []*item.Item {
	active := make([]*item.Item, 0, len(o.items))
	for _, i := range o.items {
		if i.IsActive() {
			active = append(active, i)
		}
	}
	return active
}

// HasActiveItems reports whether any item is still active.
func (o *Order) HasActiveItems() bool {
	return len(o.ActiveItems()) > 0
}

// ActiveTotal returns the sum of price times quantity over active items.
func (o *Order) ActiveTotal() decimal.Decimal {
	total := decimal.Zero
	for _, i := range o.ActiveItems() {
		total = total.Add(i.LineTotal())
	}
	return total
}

// CompletionPercentage returns the share of active items delivered, rounded
// to the nearest integer. An order with zero active items is vacuously 100%
// complete: nothing is pending.
func (o *Order) CompletionPercentage() int {
	active := o.ActiveItems()
	if len(active) == 0 {
		return 100
	}

	delivered := 0
	for _, i := range active {
		if i.Status() == item.StatusDelivered {
			delivered++
		}
	}
	return int(math.Round(100 * float64(delivered) / float64(len(active))))
}

// AllItemsDelivered reports whether every active item has been delivered.
// Vacuously true when no items are active.
func (o *Order) AllItemsDelivered() bool {
	for _, i := range o.ActiveItems() {
		if i.Status() != item.StatusDelivered {
			return false
		}
	}
	return true
}

// NeedsAttention reports whether the order should be surfaced to operators:
// an active item has sat in a supplier-side status (ordered or in_transit)
// beyond the staleness threshold, or cancellations have pushed the active
// item count below the minimum viable count while leaving at least one item.
func (o *Order) NeedsAttention(now time.Time, staleness time.Duration, minItemCount int) bool {
	active := o.ActiveItems()
	for _, i := range active {
		if i.IsStale(now, staleness) {
			return true
		}
	}
	return len(active) > 0 && len(active) < minItemCount
}

// DeriveStatus computes the display-level order status from the active
// items' statuses and whole-order cancellation. It duplicates no item-level
// transition rules; the per-item state remains the source of truth.
func (o *Order) DeriveStatus() Status {
	active := o.ActiveItems()
	if o.cancelled || len(active) == 0 {
		return StatusCancelled
	}

	allDelivered := true
	allShipped := true
	allArrived := true
	anyProgressed := false
	for _, i := range active {
		switch i.Status() {
		case item.StatusDelivered:
			anyProgressed = true
		case item.StatusShippedToCustomer:
			allDelivered = false
			anyProgressed = true
		case item.StatusArrivedIsrael:
			allDelivered = false
			allShipped = false
			anyProgressed = true
		case item.StatusPending:
			allDelivered = false
			allShipped = false
			allArrived = false
		default:
			allDelivered = false
			allShipped = false
			allArrived = false
			anyProgressed = true
		}
	}

	switch {
	case allDelivered:
		return StatusDelivered
	case allShipped:
		return StatusShipped
	case allArrived:
		return StatusReadyToShip
	case anyProgressed:
		return StatusInProgress
	default:
		return StatusPending
	}
}

// TransitionItem applies a regular status change to one of the order's items
// and records it in the timeline.
func (o *Order) TransitionItem(itemID kernel.UUID, to item.Status, actor item.Actor, note string, now time.Time) error {
	i, err := o.Item(itemID)
	if err != nil {
		return err
	}

	from := i.Status()
	if err := i.Transition(to, actor, note, now); err != nil {
		return err
	}

	o.AppendTimeline(fmt.Sprintf("%s: %s -> %s by %s", i.Name(), from, to, actor), now)
	return nil
}

// LockItem pins one of the order's items at the target status with an
// override lock and records it in the timeline.
func (o *Order) LockItem(itemID kernel.UUID, target item.Status, reason string, actor item.Actor, now time.Time) error {
	i, err := o.Item(itemID)
	if err != nil {
		return err
	}

	if err := i.Lock(target, reason, actor, now); err != nil {
		return err
	}

	o.AppendTimeline(fmt.Sprintf("%s: locked at %s by %s (%s)", i.Name(), target, actor, reason), now)
	return nil
}

// UnlockItem clears the override lock on one of the order's items and
// records it in the timeline.
func (o *Order) UnlockItem(itemID kernel.UUID, actor item.Actor, now time.Time) error {
	i, err := o.Item(itemID)
	if err != nil {
		return err
	}

	if err := i.Unlock(actor); err != nil {
		return err
	}

	o.AppendTimeline(fmt.Sprintf("%s: override cleared by %s", i.Name(), actor), now)
	return nil
}

// ForceSetItem applies an administrative status change to one of the order's
// items, bypassing the transition table, and records it in the timeline.
func (o *Order) ForceSetItem(itemID kernel.UUID, to item.Status, actor item.Actor, reason string, now time.Time) error {
	i, err := o.Item(itemID)
	if err != nil {
		return err
	}

	from := i.Status()
	if err := i.ForceSet(to, actor, reason, now); err != nil {
		return err
	}

	o.AppendTimeline(fmt.Sprintf("%s: forced %s -> %s by %s (%s)", i.Name(), from, to, actor, reason), now)
	return nil
}

// CancelItem cancels one of the order's items and records it in the timeline.
func (o *Order) CancelItem(itemID kernel.UUID, reason string, actor item.Actor, now time.Time) error {
	i, err := o.Item(itemID)
	if err != nil {
		return err
	}

	if err := i.Cancel(reason, actor, now); err != nil {
		return err
	}

	o.AppendTimeline(fmt.Sprintf("%s: cancelled by %s (%s)", i.Name(), actor, reason), now)
	return nil
}

// Cancel cancels the whole order: every active item is cancelled with the
// given reason and the order is marked cancelled. Already-terminal items are
// left untouched. Cancelling twice fails with ErrOrderIsCancelled.
func (o *Order) Cancel(reason string, actor item.Actor, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.cancelled {
		return ErrOrderIsCancelled
	}

	for _, i := range o.ActiveItems() {
		if i.Status().IsTerminal() {
			continue
		}
		if err := i.Cancel(reason, actor, now); err != nil {
			return err
		}
	}
	o.cancelled = true
	o.AppendTimeline(fmt.Sprintf("Order cancelled by %s (%s)", actor, reason), now)
	return nil
}
