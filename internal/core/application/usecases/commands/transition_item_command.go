package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/item"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrTransitionItemCommandIsNotConstructed = errors.New(
	"TransitionItemCommand must be created via NewTransitionItemCommand constructor",
)

// TransitionItemCommand requests a regular status change for one item of one
// order: the target must be reachable from the item's current status via the
// transition table and the item must not carry an override lock.
//
// Example:
//
//	cmd, err := NewTransitionItemCommand(orderID, itemID, item.StatusInTransit, actor, "left supplier hub")
//	if err != nil {
//	    return err
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    // errors.Is(err, item.ErrItemLocked) etc.
//	}
type TransitionItemCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	itemID  kernel.UUID
	target  item.Status
	actor   item.Actor
	note    string

	guard guard.ConstructorGuard
}

// NewTransitionItemCommand creates a validated transition request.
func NewTransitionItemCommand(
	orderID, itemID kernel.UUID,
	target item.Status,
	actor item.Actor,
	note string,
) (TransitionItemCommand, error) {
	cmd := TransitionItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItemID(itemID),
		cmd.setTarget(target),
		cmd.setActor(actor),
	); err != nil {
		return TransitionItemCommand{}, err
	}
	cmd.note = note

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionItemCommand) Validate() error {
	return c.guard.Validate(ErrTransitionItemCommandIsNotConstructed)
}

// OrderID returns the owning order's identifier.
func (c TransitionItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ItemID returns the target item's identifier.
func (c TransitionItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Target returns the requested status.
func (c TransitionItemCommand) Target() item.Status {
	return c.target
}

// Actor returns who requested the change.
func (c TransitionItemCommand) Actor() item.Actor {
	return c.actor
}

// Note returns the optional audit note.
func (c TransitionItemCommand) Note() string {
	return c.note
}

func (c *TransitionItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *TransitionItemCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}
	c.itemID = itemID
	return nil
}

func (c *TransitionItemCommand) setTarget(target item.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}

func (c *TransitionItemCommand) setActor(actor item.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
