package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/item"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrBulkTransitionCommandIsNotConstructed = errors.New(
	"BulkTransitionCommand must be created via NewBulkTransitionCommand constructor",
)

// BulkItemRef addresses one item of one order inside a bulk request.
type BulkItemRef struct {
	OrderID kernel.UUID
	ItemID  kernel.UUID
}

// BulkTransitionCommand applies the same target status to a batch of items,
// possibly spanning several orders. Each item is processed in its own
// transaction; one failure never rolls back the others.
type BulkTransitionCommand struct { //nolint:recvcheck //using for validation
	refs   []BulkItemRef
	target item.Status
	actor  item.Actor
	note   string

	guard guard.ConstructorGuard
}

// NewBulkTransitionCommand creates a validated bulk transition request.
// The batch must contain at least one item reference.
func NewBulkTransitionCommand(
	refs []BulkItemRef,
	target item.Status,
	actor item.Actor,
	note string,
) (BulkTransitionCommand, error) {
	cmd := BulkTransitionCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRefs(refs),
		cmd.setTarget(target),
		cmd.setActor(actor),
	); err != nil {
		return BulkTransitionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c BulkTransitionCommand) Validate() error {
	return c.guard.Validate(ErrBulkTransitionCommandIsNotConstructed)
}

// Refs returns the item references in request order.
func (c BulkTransitionCommand) Refs() []BulkItemRef {
	refs := make([]BulkItemRef, len(c.refs))
	copy(refs, c.refs)
	return refs
}

// Target returns the status every item should move to.
func (c BulkTransitionCommand) Target() item.Status {
	return c.target
}

// Actor returns who requested the batch.
func (c BulkTransitionCommand) Actor() item.Actor {
	return c.actor
}

// Note returns the optional audit note shared by all entries.
func (c BulkTransitionCommand) Note() string {
	return c.note
}

func (c *BulkTransitionCommand) setRefs(refs []BulkItemRef) error {
	if len(refs) == 0 {
		return errs.NewValueIsRequiredError("refs")
	}

	for _, ref := range refs {
		if err := errors.Join(ref.OrderID.Validate(), ref.ItemID.Validate()); err != nil {
			return err
		}
	}

	c.refs = make([]BulkItemRef, len(refs))
	copy(c.refs, refs)
	return nil
}

func (c *BulkTransitionCommand) setTarget(target item.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	c.target = target
	return nil
}

func (c *BulkTransitionCommand) setActor(actor item.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
