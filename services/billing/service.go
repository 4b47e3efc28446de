package billing

import (
	"errors"
	"fmt"
	"time"

	billingRepo "dentra/database/repository/billing"
	"dentra/models"
	"dentra/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// defaultDueTerm is applied when an invoice is created without a due date.
const defaultDueTerm = 30 * 24 * time.Hour

func (s *DefaultBillingService) validateInvoiceRequest(req CreateInvoiceRequest) error {
	if req.PatientID == "" {
		return NewValidationError("patientId is required")
	}
	if len(req.Items) == 0 {
		return NewValidationError("an invoice requires at least one item")
	}
	for i, item := range req.Items {
		if item.Description == "" {
			return NewValidationError(fmt.Sprintf("item %d: description is required", i+1))
		}
		if item.Quantity < 1 {
			return NewValidationError(fmt.Sprintf("item %d: quantity must be at least 1", i+1))
		}
		if item.UnitPrice < 0 {
			return NewValidationError(fmt.Sprintf("item %d: unit price cannot be negative", i+1))
		}
	}
	if req.TaxRate != nil && (*req.TaxRate < 0 || *req.TaxRate > 100) {
		return NewValidationError("tax rate must be between 0 and 100")
	}
	if req.DiscountAmount < 0 {
		return NewValidationError("discount amount cannot be negative")
	}
	return nil
}

// CreateInvoice validates the request, computes the derived totals and
// persists the invoice. A discount exceeding subtotal+tax clamps the total
// to zero; it is not rejected.
func (s *DefaultBillingService) CreateInvoice(req CreateInvoiceRequest) (*models.Invoice, error) {
	logger := utils.GetLogger()

	if err := s.validateInvoiceRequest(req); err != nil {
		return nil, err
	}

	taxRate := s.DefaultTaxRate
	if req.TaxRate != nil {
		taxRate = *req.TaxRate
	}

	totals := ComputeTotals(req.Items, taxRate, req.DiscountAmount)

	dueDate := req.DueDate
	if dueDate.IsZero() {
		dueDate = time.Now().Add(defaultDueTerm)
	}

	inv := &models.Invoice{
		ID:             uuid.New().String(),
		PatientID:      req.PatientID,
		ClinicID:       req.ClinicID,
		AppointmentID:  req.AppointmentID,
		Items:          req.Items,
		Subtotal:       totals.Subtotal,
		TaxRate:        taxRate,
		TaxAmount:      totals.TaxAmount,
		DiscountAmount: totals.DiscountAmount,
		TotalAmount:    totals.TotalAmount,
		PaidAmount:     0,
		BalanceAmount:  Balance(totals.TotalAmount, 0),
		PaymentStatus:  StoredStatus(totals.TotalAmount, 0),
		DueDate:        dueDate,
		PaymentHistory: []models.Payment{},
		Notes:          req.Notes,
	}

	if err := s.Repo.Create(inv); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	logger.Info("invoice created",
		zap.String("invoiceId", inv.ID),
		zap.String("patientId", inv.PatientID),
		zap.Float64("totalAmount", inv.TotalAmount))
	return inv, nil
}

// GetInvoice fetches an invoice by ID.
func (s *DefaultBillingService) GetInvoice(id string) (*models.Invoice, error) {
	inv, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, billingRepo.ErrNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}
	return inv, nil
}

// ListInvoices returns a page of invoices with pagination metadata.
func (s *DefaultBillingService) ListInvoices(filter billingRepo.InvoiceFilter, p models.ListParams) ([]models.Invoice, models.Pagination, error) {
	p.Normalize()
	invoices, total, err := s.Repo.List(filter, p)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	pagination := models.Pagination{
		Page:  p.Page,
		Limit: p.Limit,
		Total: total,
		Pages: p.PageCount(total),
	}
	return invoices, pagination, nil
}

// UpdateInvoice replaces the writable fields and recomputes totals. An
// invoice that has been paid in full is immutable; partial payments keep
// the invoice editable, but the new total must still cover what has
// already been paid.
func (s *DefaultBillingService) UpdateInvoice(id string, req CreateInvoiceRequest) (*models.Invoice, error) {
	inv, err := s.GetInvoice(id)
	if err != nil {
		return nil, err
	}
	if inv.PaymentStatus == models.PaymentStatusPaid {
		return nil, ErrInvoicePaid
	}
	if err := s.validateInvoiceRequest(req); err != nil {
		return nil, err
	}

	taxRate := inv.TaxRate
	if req.TaxRate != nil {
		taxRate = *req.TaxRate
	}
	totals := ComputeTotals(req.Items, taxRate, req.DiscountAmount)
	if totals.TotalAmount < inv.PaidAmount {
		return nil, NewValidationError(fmt.Sprintf(
			"new total %.2f is below the %.2f already paid", totals.TotalAmount, inv.PaidAmount))
	}

	inv.Items = req.Items
	inv.TaxRate = taxRate
	inv.Subtotal = totals.Subtotal
	inv.TaxAmount = totals.TaxAmount
	inv.DiscountAmount = totals.DiscountAmount
	inv.TotalAmount = totals.TotalAmount
	inv.BalanceAmount = Balance(totals.TotalAmount, inv.PaidAmount)
	inv.PaymentStatus = StoredStatus(totals.TotalAmount, inv.PaidAmount)
	if !req.DueDate.IsZero() {
		inv.DueDate = req.DueDate
	}
	if req.Notes != "" {
		inv.Notes = req.Notes
	}
	if inv.PaymentStatus == models.PaymentStatusPaid && inv.PaidDate == nil {
		now := time.Now()
		inv.PaidDate = &now
	}

	if err := s.Repo.Update(inv); err != nil {
		if errors.Is(err, billingRepo.ErrNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, err
	}
	return inv, nil
}

// DeleteInvoice removes an invoice. Paid invoices are part of the financial
// record and cannot be deleted.
func (s *DefaultBillingService) DeleteInvoice(id string) error {
	inv, err := s.GetInvoice(id)
	if err != nil {
		return err
	}
	if inv.PaymentStatus == models.PaymentStatusPaid {
		return ErrInvoicePaid
	}
	if err := s.Repo.Delete(id); err != nil {
		if errors.Is(err, billingRepo.ErrNotFound) {
			return ErrInvoiceNotFound
		}
		return err
	}
	return nil
}
