package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// OrderLine is one requested product line of a new order.
type OrderLine struct {
	Name     string
	Price    decimal.Decimal
	Quantity int
}

// CreateOrderCommand places a new order. Every line starts in pending status;
// the subtotal is computed from the lines and shipping is added on top.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	lines    []OrderLine
	shipping decimal.Decimal

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a validated order placement request.
func NewCreateOrderCommand(orderID kernel.UUID, lines []OrderLine, shipping decimal.Decimal) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setLines(lines),
		cmd.setShipping(shipping),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the new order's identifier.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Lines returns the requested product lines.
func (c CreateOrderCommand) Lines() []OrderLine {
	lines := make([]OrderLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// Shipping returns the shipping cost.
func (c CreateOrderCommand) Shipping() decimal.Decimal {
	return c.shipping
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setLines(lines []OrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}
	for _, line := range lines {
		if strings.TrimSpace(line.Name) == "" {
			return errs.NewValueIsRequiredError("line name")
		}
		if line.Price.IsNegative() {
			return errs.NewValueIsInvalidError("line price")
		}
		if line.Quantity <= 0 {
			return errs.NewValueIsInvalidError("line quantity")
		}
	}

	c.lines = make([]OrderLine, len(lines))
	copy(c.lines, lines)
	return nil
}

func (c *CreateOrderCommand) setShipping(shipping decimal.Decimal) error {
	if shipping.IsNegative() {
		return errs.NewValueIsInvalidError("shipping")
	}
	c.shipping = shipping
	return nil
}
