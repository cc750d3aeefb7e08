package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// PaymentStatus labels the independent payment lifecycle of an order:
// pending -> hold -> ready_to_charge -> charged, or one of the terminal
// cancellation/refund outcomes. The fulfillment core only consumes these
// labels; capture mechanics live outside this service.
type PaymentStatus int

const (
	// PaymentUnknown represents an invalid or undefined payment status.
	PaymentUnknown PaymentStatus = iota

	PaymentPending
	PaymentHold
	PaymentReadyToCharge
	PaymentCharged
	PaymentCancelled
	PaymentFailed
	PaymentPartialRefund
	PaymentFullRefund
)

var paymentStatusStrings = map[PaymentStatus]string{
	PaymentUnknown:       "unknown",
	PaymentPending:       "pending",
	PaymentHold:          "hold",
	PaymentReadyToCharge: "ready_to_charge",
	PaymentCharged:       "charged",
	PaymentCancelled:     "cancelled",
	PaymentFailed:        "failed",
	PaymentPartialRefund: "partial_refund",
	PaymentFullRefund:    "full_refund",
}

var paymentStatusLabels = map[PaymentStatus]string{
	PaymentPending:       "Payment pending",
	PaymentHold:          "Payment on hold",
	PaymentReadyToCharge: "Ready to charge",
	PaymentCharged:       "Charged",
	PaymentCancelled:     "Payment cancelled",
	PaymentFailed:        "Payment failed",
	PaymentPartialRefund: "Partially refunded",
	PaymentFullRefund:    "Fully refunded",
}

// PaymentStatusFromString parses a wire-format payment status value.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for status, str := range paymentStatusStrings {
		if str == s && status != PaymentUnknown {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment status", fmt.Errorf("%q is not a valid payment status", s),
	)
}

// String returns the wire representation of the payment status.
func (p PaymentStatus) String() string {
	if str, ok := paymentStatusStrings[p]; ok {
		return str
	}
	return paymentStatusStrings[PaymentUnknown]
}

// DisplayLabel returns the operator-facing label for the payment status.
func (p PaymentStatus) DisplayLabel() string {
	if label, ok := paymentStatusLabels[p]; ok {
		return label
	}
	return paymentStatusLabels[PaymentPending]
}

// Validate checks if the PaymentStatus value is valid.
func (p PaymentStatus) Validate() error {
	if _, ok := paymentStatusStrings[p]; !ok || p == PaymentUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment status", fmt.Errorf("%d is not a valid payment status", p),
		)
	}
	return nil
}
