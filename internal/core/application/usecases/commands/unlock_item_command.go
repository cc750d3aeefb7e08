package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/item"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrUnlockItemCommandIsNotConstructed = errors.New(
	"UnlockItemCommand must be created via NewUnlockItemCommand constructor",
)

// UnlockItemCommand clears an item's override lock without changing its
// status; automated transitions then resume normal validation.
type UnlockItemCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	itemID  kernel.UUID
	actor   item.Actor

	guard guard.ConstructorGuard
}

// NewUnlockItemCommand creates a validated unlock request.
func NewUnlockItemCommand(orderID, itemID kernel.UUID, actor item.Actor) (UnlockItemCommand, error) {
	cmd := UnlockItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItemID(itemID),
		cmd.setActor(actor),
	); err != nil {
		return UnlockItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UnlockItemCommand) Validate() error {
	return c.guard.Validate(ErrUnlockItemCommandIsNotConstructed)
}

// OrderID returns the owning order's identifier.
func (c UnlockItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ItemID returns the target item's identifier.
func (c UnlockItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Actor returns who cleared the lock.
func (c UnlockItemCommand) Actor() item.Actor {
	return c.actor
}

func (c *UnlockItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UnlockItemCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}
	c.itemID = itemID
	return nil
}

func (c *UnlockItemCommand) setActor(actor item.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
