package billing

import (
	"errors"
	"fmt"
)

// ErrInvoiceNotFound is returned when an invoice ID resolves to nothing.
var ErrInvoiceNotFound = errors.New("invoice not found")

// ErrInvoicePaid is returned on attempts to modify or delete an invoice
// that has been settled in full. Paid invoices are immutable.
var ErrInvoicePaid = errors.New("invoice is paid and can no longer be modified")

// ErrPaymentConflict is returned when a payment loses a race against
// another payment on the same invoice. Nothing was persisted; the caller
// should re-read the invoice and retry with the current balance.
var ErrPaymentConflict = errors.New("invoice balance changed while recording payment")

// ValidationError marks a local validation failure. No gateway or database
// work happens after one is raised.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// IsValidationError reports whether err is a local validation failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// GatewayError marks a tokenization or charge failure reported by the
// payment gateway. The invoice's persisted state is unchanged when one is
// returned.
type GatewayError struct {
	Stage   string // "tokenize" or "charge"
	Message string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway %s failed: %s", e.Stage, e.Message)
}

// IsGatewayError reports whether err came from the payment gateway.
func IsGatewayError(err error) bool {
	var ge *GatewayError
	return errors.As(err, &ge)
}
