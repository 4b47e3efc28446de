package models

import "time"

// Payment methods accepted on an invoice.
const (
	PaymentMethodCash         = "cash"
	PaymentMethodCreditCard   = "credit_card"
	PaymentMethodDebitCard    = "debit_card"
	PaymentMethodInsurance    = "insurance"
	PaymentMethodBankTransfer = "bank_transfer"
)

// Payment is one recorded payment against an invoice. Payments are
// append-only: once written to an invoice's history they are never
// mutated or deleted.
type Payment struct {
	ID          string    `bson:"id" json:"id"`
	Amount      float64   `bson:"amount" json:"amount"`
	Method      string    `bson:"method" json:"method"`
	Reference   string    `bson:"reference,omitempty" json:"reference,omitempty"`
	Notes       string    `bson:"notes,omitempty" json:"notes,omitempty"`
	PaymentDate time.Time `bson:"paymentDate" json:"paymentDate"`
	RecordedBy  string    `bson:"recordedBy,omitempty" json:"recordedBy,omitempty"`
}

// CardDetails carries raw card data for a card payment. It exists only in
// the request path: the PAN and CVV go to the gateway for tokenization and
// nowhere else. The struct is deliberately excluded from bson so it can
// never be persisted by accident.
type CardDetails struct {
	CardholderName string `bson:"-" json:"cardholderName"`
	CardNumber     string `bson:"-" json:"cardNumber"`
	ExpiryDate     string `bson:"-" json:"expiryDate"` // MM/YY
	CVV            string `bson:"-" json:"cvv"`
}

// AddPaymentRequest is the payload for recording a payment on an invoice.
// Card is required for card methods and ignored otherwise.
type AddPaymentRequest struct {
	Amount      float64      `json:"amount"`
	Method      string       `json:"method"`
	Notes       string       `json:"notes,omitempty"`
	PaymentDate *time.Time   `json:"paymentDate,omitempty"`
	Card        *CardDetails `json:"card,omitempty"`
}

// TokenizationResult is the ephemeral outcome of exchanging raw card data
// for an opaque token. It is never persisted alongside card data.
type TokenizationResult struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	Last4   string `json:"last4,omitempty"`
	Brand   string `json:"brand,omitempty"`
	Message string `json:"message,omitempty"`
}

// ChargeResult is the outcome of charging a tokenized card. TransactionID
// supplies the reference stored on the resulting Payment.
type ChargeResult struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transactionId,omitempty"`
	Message       string `json:"message,omitempty"`
}
