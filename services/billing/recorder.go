package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	billingRepo "dentra/database/repository/billing"
	"dentra/models"
	"dentra/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func validMethod(method string) bool {
	switch method {
	case models.PaymentMethodCash,
		models.PaymentMethodCreditCard,
		models.PaymentMethodDebitCard,
		models.PaymentMethodInsurance,
		models.PaymentMethodBankTransfer:
		return true
	}
	return false
}

// AddPayment records a payment against an invoice.
//
// The sequence is fixed: local validation of the amount against the
// outstanding balance and of all card fields happens before any gateway
// call; the gateway sees the raw card exactly once (tokenization) and the
// charge runs with the token; only then is the non-sensitive payment record
// persisted in a single atomic write. A failure at any earlier step leaves
// the invoice untouched. The stored reference is the charge transaction ID,
// falling back to the token when the processor returns none.
func (s *DefaultBillingService) AddPayment(ctx context.Context, invoiceID string, req models.AddPaymentRequest, recordedBy string) (*models.Invoice, error) {
	logger := utils.GetLogger()

	inv, err := s.GetInvoice(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.PaymentStatus == models.PaymentStatusPaid || inv.BalanceAmount == 0 {
		return nil, ErrInvoicePaid
	}

	if !validMethod(req.Method) {
		return nil, NewValidationError(fmt.Sprintf("unsupported payment method: %s", req.Method))
	}
	if req.Amount <= 0 || req.Amount > inv.BalanceAmount {
		return nil, NewValidationError(fmt.Sprintf(
			"payment amount must be greater than 0 and no more than the outstanding balance of %.2f", inv.BalanceAmount))
	}

	reference := ""
	if IsCardMethod(req.Method) {
		reference, err = s.chargeCard(ctx, req)
		if err != nil {
			return nil, err
		}
	}

	paymentDate := time.Now()
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	payment := models.Payment{
		ID:          uuid.New().String(),
		Amount:      Round2(req.Amount),
		Method:      req.Method,
		Reference:   reference,
		Notes:       req.Notes,
		PaymentDate: paymentDate,
		RecordedBy:  recordedBy,
	}

	newPaid := Round2(inv.PaidAmount + payment.Amount)
	update := billingRepo.PaymentUpdate{
		PaidAmount:    newPaid,
		BalanceAmount: Balance(inv.TotalAmount, newPaid),
		Status:        StoredStatus(inv.TotalAmount, newPaid),
	}
	if update.Status == models.PaymentStatusPaid {
		now := time.Now()
		update.PaidDate = &now
	}

	if err := s.Repo.AppendPayment(invoiceID, payment, update); err != nil {
		switch {
		case errors.Is(err, billingRepo.ErrNotFound):
			return nil, ErrInvoiceNotFound
		case errors.Is(err, billingRepo.ErrStaleBalance):
			return nil, ErrPaymentConflict
		default:
			return nil, fmt.Errorf("failed to record payment: %w", err)
		}
	}

	logger.Info("payment recorded",
		zap.String("invoiceId", invoiceID),
		zap.String("paymentId", payment.ID),
		zap.String("method", payment.Method),
		zap.Float64("amount", payment.Amount),
		zap.String("status", string(update.Status)))

	return s.GetInvoice(invoiceID)
}

// chargeCard runs the card leg: field validation, tokenization with the
// digits-only PAN, then the charge with the returned token. The PAN and CVV
// never appear in logs or leave this function.
func (s *DefaultBillingService) chargeCard(ctx context.Context, req models.AddPaymentRequest) (string, error) {
	if err := ValidateCardDetails(req.Card); err != nil {
		return "", err
	}

	card := *req.Card
	card.CardNumber = StripNonDigits(card.CardNumber)

	tokRes, err := s.Gateway.TokenizeCard(ctx, card)
	if err != nil {
		return "", err
	}
	if !tokRes.Success || tokRes.Token == "" {
		msg := tokRes.Message
		if msg == "" {
			msg = "tokenization failed"
		}
		return "", &GatewayError{Stage: "tokenize", Message: msg}
	}

	chargeRes, err := s.Gateway.ProcessPayment(ctx, ChargeRequest{
		Amount: req.Amount,
		Method: req.Method,
		Token:  tokRes.Token,
	})
	if err != nil {
		return "", err
	}
	if !chargeRes.Success {
		msg := chargeRes.Message
		if msg == "" {
			msg = "charge failed"
		}
		return "", &GatewayError{Stage: "charge", Message: msg}
	}

	reference := chargeRes.TransactionID
	if reference == "" {
		reference = tokRes.Token
	}
	return reference, nil
}
