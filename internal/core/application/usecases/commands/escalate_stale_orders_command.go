package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrEscalateStaleOrdersCommandIsNotConstructed = errors.New(
	"EscalateStaleOrdersCommand must be created via NewEscalateStaleOrdersCommand constructor",
)

// EscalateStaleOrdersCommand triggers a sweep over undelivered orders,
// flagging the critical ones on their timeline. Carries no parameters; the
// handler owns the scoring configuration.
type EscalateStaleOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewEscalateStaleOrdersCommand creates a sweep request.
func NewEscalateStaleOrdersCommand() EscalateStaleOrdersCommand {
	return EscalateStaleOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c EscalateStaleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrEscalateStaleOrdersCommandIsNotConstructed)
}
