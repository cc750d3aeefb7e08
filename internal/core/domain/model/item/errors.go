package item

import (
	"errors"
	"fmt"
)

// Sentinel errors for the caller-correctable failure modes of the item state
// machine. Concrete error types unwrap to these so callers can classify with
// errors.Is.
var (
	// ErrInvalidTransition means the requested status is not reachable from
	// the item's current status via the transition table.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrItemLocked means an override lock is pinning the item's status and
	// the caller is not performing an explicit override action.
	ErrItemLocked = errors.New("item is locked")

	// ErrReasonRequired means a lock or force-set was attempted without a
	// non-blank reason.
	ErrReasonRequired = errors.New("reason is required")
)

// InvalidTransitionError reports a transition rejected by the table.
type InvalidTransitionError struct {
	From Status
	To   Status
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given pair.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ItemLockedError reports a transition blocked by an active override lock.
// Reason carries the operator's audit reason so it can be surfaced verbatim.
type ItemLockedError struct {
	Reason string
}

// NewItemLockedError creates an ItemLockedError carrying the lock reason.
func NewItemLockedError(reason string) *ItemLockedError {
	return &ItemLockedError{Reason: reason}
}

func (e *ItemLockedError) Error() string {
	return fmt.Sprintf("%s: reason=%s", ErrItemLocked, e.Reason)
}

func (e *ItemLockedError) Unwrap() error {
	return ErrItemLocked
}
