package billingRepo

import (
	"errors"
	"time"

	"dentra/models"
)

// ErrNotFound is returned when no invoice matches the given ID.
var ErrNotFound = errors.New("invoice not found")

// ErrStaleBalance is returned when a guarded payment append matched no
// document: either the invoice is already paid or a concurrent payment
// shrank the balance below the amount being recorded.
var ErrStaleBalance = errors.New("invoice balance changed or invoice already paid")

// InvoiceFilter narrows invoice list queries.
type InvoiceFilter struct {
	PatientID string
	ClinicID  string
	Status    models.PaymentStatus
}

// PaymentUpdate carries the recomputed derived fields written atomically
// together with an appended payment.
type PaymentUpdate struct {
	PaidAmount    float64
	BalanceAmount float64
	Status        models.PaymentStatus
	PaidDate      *time.Time
}

// InvoiceRepository persists invoices and their append-only payment history.
type InvoiceRepository interface {
	Create(inv *models.Invoice) error
	Update(inv *models.Invoice) error
	Delete(id string) error
	GetByID(id string) (*models.Invoice, error)
	List(filter InvoiceFilter, p models.ListParams) ([]models.Invoice, int64, error)
	// AppendPayment pushes a payment onto the history and updates the
	// derived fields in one guarded write: the update only applies while
	// the stored balance still covers the payment amount and the invoice
	// is not yet paid. Racing payments lose with ErrStaleBalance instead
	// of overpaying.
	AppendPayment(invoiceID string, payment models.Payment, update PaymentUpdate) error
}
