package billing

import (
	"context"
	"fmt"

	"dentra/models"
)

// ChargeRequest asks the gateway to charge a previously tokenized card.
// It carries the token only, never raw card data.
type ChargeRequest struct {
	Amount   float64
	Currency string
	Method   string
	Token    string
}

// PaymentGateway is the boundary to the external card processor. Raw card
// data crosses this boundary once, in TokenizeCard, and nowhere else.
type PaymentGateway interface {
	TokenizeCard(ctx context.Context, card models.CardDetails) (models.TokenizationResult, error)
	ProcessPayment(ctx context.Context, req ChargeRequest) (models.ChargeResult, error)
}

// NewGateway selects a PaymentGateway implementation by driver name.
func NewGateway(driver, stripeKey string) (PaymentGateway, error) {
	switch driver {
	case "stripe":
		return NewStripeGateway(stripeKey), nil
	case "mock":
		return NewMockGateway(), nil
	default:
		return nil, fmt.Errorf("unknown payment gateway driver %q", driver)
	}
}
