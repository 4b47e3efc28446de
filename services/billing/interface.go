package billing

import (
	"context"
	"time"

	billingRepo "dentra/database/repository/billing"
	"dentra/models"
)

// CreateInvoiceRequest carries the writable fields of an invoice. The
// derived monetary fields are always recomputed server-side.
type CreateInvoiceRequest struct {
	PatientID      string               `json:"patientId"`
	ClinicID       string               `json:"clinicId,omitempty"`
	AppointmentID  string               `json:"appointmentId,omitempty"`
	Items          []models.InvoiceItem `json:"items"`
	TaxRate        *float64             `json:"taxRate,omitempty"`
	DiscountAmount float64              `json:"discountAmount,omitempty"`
	DueDate        time.Time            `json:"dueDate,omitempty"`
	Notes          string               `json:"notes,omitempty"`
}

// BillingService owns the invoice lifecycle: creation with server-side
// total computation, guarded payment recording through the gateway, and
// the paid-invoice immutability rule.
type BillingService interface {
	CreateInvoice(req CreateInvoiceRequest) (*models.Invoice, error)
	GetInvoice(id string) (*models.Invoice, error)
	ListInvoices(filter billingRepo.InvoiceFilter, p models.ListParams) ([]models.Invoice, models.Pagination, error)
	UpdateInvoice(id string, req CreateInvoiceRequest) (*models.Invoice, error)
	DeleteInvoice(id string) error
	AddPayment(ctx context.Context, invoiceID string, req models.AddPaymentRequest, recordedBy string) (*models.Invoice, error)
}

// DefaultBillingService is the production implementation.
type DefaultBillingService struct {
	Repo           billingRepo.InvoiceRepository
	Gateway        PaymentGateway
	DefaultTaxRate float64
}
