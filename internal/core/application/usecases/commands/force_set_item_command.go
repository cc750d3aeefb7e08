package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/item"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrForceSetItemCommandIsNotConstructed = errors.New(
	"ForceSetItemCommand must be created via NewForceSetItemCommand constructor",
)

// ForceSetItemCommand sets an item to an arbitrary status, bypassing the
// transition table and any override lock. The reason is mandatory and is
// written into the item's history entry.
type ForceSetItemCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	itemID  kernel.UUID
	target  item.Status
	reason  string
	actor   item.Actor

	guard guard.ConstructorGuard
}

// NewForceSetItemCommand creates a validated force-set request. A blank
// reason fails with item.ErrReasonRequired.
func NewForceSetItemCommand(
	orderID, itemID kernel.UUID,
	target item.Status,
	reason string,
	actor item.Actor,
) (ForceSetItemCommand, error) {
	cmd := ForceSetItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItemID(itemID),
		cmd.setTarget(target),
		cmd.setReason(reason),
		cmd.setActor(actor),
	); err != nil {
		return ForceSetItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ForceSetItemCommand) Validate() error {
	return c.guard.Validate(ErrForceSetItemCommandIsNotConstructed)
}

// OrderID returns the owning order's identifier.
func (c ForceSetItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ItemID returns the target item's identifier.
func (c ForceSetItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Target returns the status being forced.
func (c ForceSetItemCommand) Target() item.Status {
	return c.target
}

// Reason returns the mandatory audit reason.
func (c ForceSetItemCommand) Reason() string {
	return c.reason
}

// Actor returns who forced the change.
func (c ForceSetItemCommand) Actor() item.Actor {
	return c.actor
}

func (c *ForceSetItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *ForceSetItemCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}
	c.itemID = itemID
	return nil
}

func (c *ForceSetItemCommand) setTarget(target item.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}

func (c *ForceSetItemCommand) setReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return item.ErrReasonRequired
	}
	c.reason = reason
	return nil
}

func (c *ForceSetItemCommand) setActor(actor item.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
