package billing

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"dentra/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/charge"
	"github.com/stripe/stripe-go/v76/token"
)

// StripeGateway is the production PaymentGateway, backed by Stripe card
// tokens and charges.
type StripeGateway struct{}

// NewStripeGateway configures the global Stripe key and returns the gateway.
func NewStripeGateway(apiKey string) *StripeGateway {
	stripe.Key = apiKey
	return &StripeGateway{}
}

func (g *StripeGateway) TokenizeCard(ctx context.Context, card models.CardDetails) (models.TokenizationResult, error) {
	month, year := ExpiryParts(card.ExpiryDate)
	params := &stripe.TokenParams{
		Card: &stripe.CardParams{
			Number:   stripe.String(StripNonDigits(card.CardNumber)),
			ExpMonth: stripe.String(strconv.Itoa(month)),
			ExpYear:  stripe.String(strconv.Itoa(year)),
			CVC:      stripe.String(card.CVV),
			Name:     stripe.String(card.CardholderName),
		},
	}
	params.Context = ctx

	tok, err := token.New(params)
	if err != nil {
		return models.TokenizationResult{Success: false, Message: err.Error()},
			&GatewayError{Stage: "tokenize", Message: err.Error()}
	}

	res := models.TokenizationResult{
		Success: true,
		Token:   tok.ID,
	}
	if tok.Card != nil {
		res.Last4 = tok.Card.Last4
		res.Brand = string(tok.Card.Brand)
	}
	return res, nil
}

func (g *StripeGateway) ProcessPayment(ctx context.Context, req ChargeRequest) (models.ChargeResult, error) {
	currency := req.Currency
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}

	params := &stripe.ChargeParams{
		Amount:      stripe.Int64(int64(math.Round(req.Amount * 100))),
		Currency:    stripe.String(currency),
		Description: stripe.String(fmt.Sprintf("dentra %s payment", req.Method)),
	}
	params.Context = ctx
	if err := params.SetSource(req.Token); err != nil {
		return models.ChargeResult{Success: false, Message: err.Error()},
			&GatewayError{Stage: "charge", Message: err.Error()}
	}

	ch, err := charge.New(params)
	if err != nil {
		return models.ChargeResult{Success: false, Message: err.Error()},
			&GatewayError{Stage: "charge", Message: err.Error()}
	}

	return models.ChargeResult{Success: true, TransactionID: ch.ID}, nil
}
