package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// RequestValidator adapts go-playground/validator to echo's Validator
// interface so handlers can call ctx.Validate on bound requests.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates the request validator used by the server.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// Validate runs struct-tag validation on the bound request.
func (v *RequestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// OrderLineRequest is one product line of an order placement request.
type OrderLineRequest struct {
	Name     string          `json:"name" validate:"required"`
	Price    decimal.Decimal `json:"price" validate:"required"`
	Quantity int             `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderRequest places a new order.
type CreateOrderRequest struct {
	Lines    []OrderLineRequest `json:"lines" validate:"required,min=1,dive"`
	Shipping decimal.Decimal    `json:"shipping"`
}

// TransitionItemRequest moves one item to a target status through the
// transition table.
type TransitionItemRequest struct {
	Target string `json:"target" validate:"required"`
	Actor  string `json:"actor"`
	Note   string `json:"note" validate:"max=500"`
}

// LockItemRequest pins an item at a status with a mandatory reason.
type LockItemRequest struct {
	Target string `json:"target" validate:"required"`
	Reason string `json:"reason" validate:"required,max=500"`
	Actor  string `json:"actor"`
}

// UnlockItemRequest clears an item's override lock.
type UnlockItemRequest struct {
	Actor string `json:"actor"`
}

// ForceSetItemRequest sets an item's status bypassing the transition table.
type ForceSetItemRequest struct {
	Target string `json:"target" validate:"required"`
	Reason string `json:"reason" validate:"required,max=500"`
	Actor  string `json:"actor"`
}

// CancelItemRequest removes one item from the live order.
type CancelItemRequest struct {
	Reason string `json:"reason" validate:"max=500"`
	Actor  string `json:"actor"`
}

// CancelOrderRequest cancels a whole order.
type CancelOrderRequest struct {
	Reason string `json:"reason" validate:"max=500"`
	Actor  string `json:"actor"`
}

// BulkItemRefRequest addresses one item inside a bulk transition request.
type BulkItemRefRequest struct {
	OrderID string `json:"order_id" validate:"required,uuid"`
	ItemID  string `json:"item_id" validate:"required,uuid"`
}

// BulkTransitionRequest moves a batch of items to a common target status.
type BulkTransitionRequest struct {
	Items  []BulkItemRefRequest `json:"items" validate:"required,min=1,dive"`
	Target string               `json:"target" validate:"required"`
	Actor  string               `json:"actor"`
	Note   string               `json:"note" validate:"max=500"`
}

// bindAndValidate binds the JSON body and runs struct-tag validation.
func bindAndValidate(ctx echo.Context, req any) error {
	if err := ctx.Bind(req); err != nil {
		return err
	}
	return ctx.Validate(req)
}
