package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/item"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrLockItemCommandIsNotConstructed = errors.New(
	"LockItemCommand must be created via NewLockItemCommand constructor",
)

// LockItemCommand requests a manual override: the item is pinned at the
// target status and automated transitions skip it until an explicit unlock.
// A non-blank audit reason is mandatory on every call.
type LockItemCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	itemID  kernel.UUID
	target  item.Status
	reason  string
	actor   item.Actor

	guard guard.ConstructorGuard
}

// NewLockItemCommand creates a validated lock request.
// Fails with item.ErrReasonRequired when the reason is blank.
func NewLockItemCommand(
	orderID, itemID kernel.UUID,
	target item.Status,
	reason string,
	actor item.Actor,
) (LockItemCommand, error) {
	cmd := LockItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItemID(itemID),
		cmd.setTarget(target),
		cmd.setReason(reason),
		cmd.setActor(actor),
	); err != nil {
		return LockItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c LockItemCommand) Validate() error {
	return c.guard.Validate(ErrLockItemCommandIsNotConstructed)
}

// OrderID returns the owning order's identifier.
func (c LockItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ItemID returns the target item's identifier.
func (c LockItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Target returns the status the item is pinned at.
func (c LockItemCommand) Target() item.Status {
	return c.target
}

// Reason returns the mandatory audit reason.
func (c LockItemCommand) Reason() string {
	return c.reason
}

// Actor returns who set the lock.
func (c LockItemCommand) Actor() item.Actor {
	return c.actor
}

func (c *LockItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *LockItemCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}
	c.itemID = itemID
	return nil
}

func (c *LockItemCommand) setTarget(target item.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}

func (c *LockItemCommand) setReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return item.ErrReasonRequired
	}
	c.reason = reason
	return nil
}

func (c *LockItemCommand) setActor(actor item.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
