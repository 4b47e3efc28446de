package billing

import (
	"context"
	"math/rand"
	"strings"

	"dentra/models"

	"github.com/google/uuid"
)

// MockGateway is the development stand-in for a real processor. It is
// deterministic by default; a nonzero FailureRate makes it decline that
// fraction of calls, which is only useful for manual failure testing and
// must never be enabled in production.
type MockGateway struct {
	FailureRate float64
	rng         *rand.Rand
}

func NewMockGateway() *MockGateway {
	return &MockGateway{rng: rand.New(rand.NewSource(1))}
}

func (g *MockGateway) fails() bool {
	if g.FailureRate <= 0 {
		return false
	}
	return g.rng.Float64() < g.FailureRate
}

func (g *MockGateway) TokenizeCard(ctx context.Context, card models.CardDetails) (models.TokenizationResult, error) {
	if g.fails() {
		msg := "tokenization declined"
		return models.TokenizationResult{Success: false, Message: msg},
			&GatewayError{Stage: "tokenize", Message: msg}
	}

	digits := StripNonDigits(card.CardNumber)
	last4 := digits
	if len(digits) >= 4 {
		last4 = digits[len(digits)-4:]
	}

	return models.TokenizationResult{
		Success: true,
		Token:   "tok_" + uuid.New().String(),
		Last4:   last4,
		Brand:   cardBrand(digits),
	}, nil
}

func (g *MockGateway) ProcessPayment(ctx context.Context, req ChargeRequest) (models.ChargeResult, error) {
	if g.fails() {
		msg := "charge declined"
		return models.ChargeResult{Success: false, Message: msg},
			&GatewayError{Stage: "charge", Message: msg}
	}

	return models.ChargeResult{
		Success:       true,
		TransactionID: "txn_" + uuid.New().String(),
	}, nil
}

// cardBrand sniffs the card network from the PAN prefix, the same way the
// display layer labels stored payment references.
func cardBrand(digits string) string {
	switch {
	case strings.HasPrefix(digits, "4"):
		return "visa"
	case strings.HasPrefix(digits, "34"), strings.HasPrefix(digits, "37"):
		return "amex"
	case strings.HasPrefix(digits, "5"):
		return "mastercard"
	case strings.HasPrefix(digits, "6"):
		return "discover"
	default:
		return "unknown"
	}
}
