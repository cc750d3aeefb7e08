package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/item"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCancelItemCommandIsNotConstructed = errors.New(
	"CancelItemCommand must be created via NewCancelItemCommand constructor",
)

// CancelItemCommand removes one item from the live order. The cancelled item
// drops out of every aggregate computation; minimum-order viability is
// re-evaluated on the next dashboard read.
type CancelItemCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	itemID  kernel.UUID
	reason  string
	actor   item.Actor

	guard guard.ConstructorGuard
}

// NewCancelItemCommand creates a validated item cancellation request.
func NewCancelItemCommand(orderID, itemID kernel.UUID, reason string, actor item.Actor) (CancelItemCommand, error) {
	cmd := CancelItemCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItemID(itemID),
		cmd.setActor(actor),
	); err != nil {
		return CancelItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelItemCommand) Validate() error {
	return c.guard.Validate(ErrCancelItemCommandIsNotConstructed)
}

// OrderID returns the owning order's identifier.
func (c CancelItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ItemID returns the target item's identifier.
func (c CancelItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Reason returns the optional cancellation reason.
func (c CancelItemCommand) Reason() string {
	return c.reason
}

// Actor returns who cancelled the item.
func (c CancelItemCommand) Actor() item.Actor {
	return c.actor
}

func (c *CancelItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CancelItemCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}
	c.itemID = itemID
	return nil
}

func (c *CancelItemCommand) setActor(actor item.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
