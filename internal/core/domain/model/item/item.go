package item

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem or RestoreItem factory functions.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem")

// MaxNoteLength bounds the free-text note attached to a status change.
const MaxNoteLength = 500

// HistoryEntry is one immutable record in an item's status history.
// History is append-only, newest-last.
type HistoryEntry struct {
	From     Status
	To       Status
	Actor    Actor
	At       time.Time
	Note     string
	Override bool
}

// Override is an operator-set lock pinning an item's status. While present,
// automated transitions must not change the item's status; only an explicit
// override action (Lock, ForceSet, Cancel) or Unlock may.
type Override struct {
	Status Status
	Reason string
	Actor  Actor
	At     time.Time
}

// Cancellation records that an item was removed from the live order.
// Cancelled items are excluded from every aggregate computation.
type Cancellation struct {
	Reason string
	Actor  Actor
	At     time.Time
}

// Item is one product line within an order, with its own fulfillment status
// independent of sibling items. It owns the per-item state machine: every
// status change goes through Transition, ForceSet, Lock, or Cancel, which
// enforce the transition table, the override lock, and the append-only
// history invariant.
//
// Invariants:
//   - status changes only through the methods below
//   - history is append-only, newest-last; entries are immutable once written
//   - while an override lock is present, non-override transitions are rejected
//   - version is the optimistic-concurrency token checked at write time
type Item struct {
	id              kernel.UUID
	name            string
	price           decimal.Decimal
	quantity        int
	status          Status
	statusChangedAt time.Time
	history         []HistoryEntry
	override        *Override
	cancellation    *Cancellation
	version         int

	// dirty marks in-memory changes not yet persisted. The repository only
	// compare-and-swaps dirty items so that concurrent writes to sibling
	// items of the same order do not conflict with each other.
	dirty bool

	isConstructed bool
}

// NewItem creates an item in pending status, as assigned when the owning
// order is placed.
func NewItem(id kernel.UUID, name string, price decimal.Decimal, quantity int, now time.Time) (*Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if price.IsNegative() {
		return nil, errs.NewValueIsInvalidError("price")
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidError("quantity")
	}

	return &Item{
		id:              id,
		name:            name,
		price:           price,
		quantity:        quantity,
		status:          StatusPending,
		statusChangedAt: now,
		isConstructed:   true,
	}, nil
}

// RestoreItem reconstructs an item from persistence, including its history,
// lock, cancellation record, and concurrency version.
func RestoreItem(
	id kernel.UUID,
	name string,
	price decimal.Decimal,
	quantity int,
	status Status,
	statusChangedAt time.Time,
	history []HistoryEntry,
	override *Override,
	cancellation *Cancellation,
	version int,
) (*Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if version < 0 {
		return nil, errs.NewValueIsInvalidError("version")
	}

	restored := make([]HistoryEntry, len(history))
	copy(restored, history)

	return &Item{
		id:              id,
		name:            name,
		price:           price,
		quantity:        quantity,
		status:          status,
		statusChangedAt: statusChangedAt,
		history:         restored,
		override:        override,
		cancellation:    cancellation,
		version:         version,
		isConstructed:   true,
	}, nil
}

// ID returns the item's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// Name returns the item's display name.
func (i *Item) Name() string {
	return i.name
}

// Price returns the unit price.
func (i *Item) Price() decimal.Decimal {
	return i.price
}

// Quantity returns the ordered quantity.
func (i *Item) Quantity() int {
	return i.quantity
}

// LineTotal returns price multiplied by quantity.
func (i *Item) LineTotal() decimal.Decimal {
	return i.price.Mul(decimal.NewFromInt(int64(i.quantity)))
}

// Status returns the current fulfillment status.
func (i *Item) Status() Status {
	return i.status
}

// StatusChangedAt returns when the current status was entered.
// Staleness is measured from this timestamp.
func (i *Item) StatusChangedAt() time.Time {
	return i.statusChangedAt
}

// History returns a copy of the status history, oldest first.
func (i *Item) History() []HistoryEntry {
	out := make([]HistoryEntry, len(i.history))
	copy(out, i.history)
	return out
}

// Override returns a copy of the active override lock, or nil.
func (i *Item) Override() *Override {
	if i.override == nil {
		return nil
	}
	o := *i.override
	return &o
}

// IsLocked reports whether an override lock is active.
func (i *Item) IsLocked() bool {
	return i.override != nil
}

// Cancellation returns a copy of the cancellation record, or nil.
func (i *Item) Cancellation() *Cancellation {
	if i.cancellation == nil {
		return nil
	}
	c := *i.cancellation
	return &c
}

// IsCancelled reports whether the item has been cancelled.
func (i *Item) IsCancelled() bool {
	return i.cancellation != nil
}

// IsActive reports whether the item still counts toward order aggregates.
func (i *Item) IsActive() bool {
	return i.cancellation == nil
}

// Version returns the optimistic-concurrency token loaded from persistence.
// The repository rejects writes whose stored version differs.
func (i *Item) Version() int {
	return i.version
}

// HasPendingChanges reports whether the item was modified since it was
// loaded.
func (i *Item) HasPendingChanges() bool {
	return i.dirty
}

// IsStale reports whether the item has been waiting in a supplier-side
// status (ordered or in_transit) longer than the given threshold.
func (i *Item) IsStale(now time.Time, threshold time.Duration) bool {
	if i.IsCancelled() {
		return false
	}
	if i.status != StatusOrdered && i.status != StatusInTransit {
		return false
	}
	return now.Sub(i.statusChangedAt) > threshold
}

// Validate checks that the item was properly constructed and holds a valid status.
func (i *Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return i.status.Validate()
}

// Transition applies a regular status change, enforcing the transition table
// and the override lock.
//
// Fails with:
//   - ErrItemLocked when an override lock is active
//   - ErrInvalidTransition when the target is not reachable from the current
//     status in one step
//
// On success a history entry is appended and the staleness clock resets.
func (i *Item) Transition(to Status, actor Actor, note string, now time.Time) error {
	if err := i.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := validateNote(note); err != nil {
		return err
	}
	if i.override != nil {
		return NewItemLockedError(i.override.Reason)
	}
	if !IsValidTransition(i.status, to) {
		return NewInvalidTransitionError(i.status, to)
	}

	i.apply(to, actor, note, now, false)
	return nil
}

// ForceSet applies an administrative status change that bypasses the
// transition table and any override lock. A non-blank reason is mandatory;
// the resulting history entry is tagged as an override.
func (i *Item) ForceSet(to Status, actor Actor, reason string, now time.Time) error {
	if err := i.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(reason) == "" {
		return ErrReasonRequired
	}
	if err := validateNote(reason); err != nil {
		return err
	}
	if err := to.Validate(); err != nil {
		return err
	}

	i.apply(to, actor, reason, now, true)
	return nil
}

// Lock pins the item at the target status and suspends automated
// transitions until Unlock. A non-blank reason is mandatory on every call;
// repeated locks replace the prior lock record but never silently no-op.
func (i *Item) Lock(target Status, reason string, actor Actor, now time.Time) error {
	if err := i.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(reason) == "" {
		return ErrReasonRequired
	}
	if err := validateNote(reason); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}

	i.apply(target, actor, reason, now, true)
	i.override = &Override{
		Status: target,
		Reason: reason,
		Actor:  actor,
		At:     now,
	}
	return nil
}

// Unlock clears the override lock without changing the current status.
// Subsequent automated transitions resume normal validation from the item's
// current status. Unlocking an unlocked item is a no-op.
func (i *Item) Unlock(actor Actor) error {
	if err := i.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}

	i.override = nil
	i.dirty = true
	return nil
}

// Cancel removes the item from the live order. Allowed from any non-terminal
// status; delivered and already-cancelled items cannot be cancelled. Cancel
// is an explicit operator action, so an active override lock does not block
// it; the lock is cleared since the item leaves the live flow.
func (i *Item) Cancel(reason string, actor Actor, now time.Time) error {
	if err := i.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := validateNote(reason); err != nil {
		return err
	}
	if i.status.IsTerminal() {
		return NewInvalidTransitionError(i.status, StatusCancelled)
	}

	i.apply(StatusCancelled, actor, reason, now, false)
	i.override = nil
	i.cancellation = &Cancellation{
		Reason: reason,
		Actor:  actor,
		At:     now,
	}
	return nil
}

// apply performs the actual state change: appends the history entry
// (newest-last) and resets the staleness clock.
func (i *Item) apply(to Status, actor Actor, note string, now time.Time, override bool) {
	i.history = append(i.history, HistoryEntry{
		From:     i.status,
		To:       to,
		Actor:    actor,
		At:       now,
		Note:     note,
		Override: override,
	})
	i.status = to
	i.statusChangedAt = now
	i.dirty = true
}

func validateNote(note string) error {
	if len(note) > MaxNoteLength {
		return errs.NewValueIsOutOfRangeError("note", len(note), 0, MaxNoteLength)
	}
	return nil
}
