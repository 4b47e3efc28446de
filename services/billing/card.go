package billing

import (
	"strconv"
	"strings"

	"dentra/models"
)

// StripNonDigits removes every non-digit rune from s.
func StripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateCardNumber checks the PAN format: digits only after stripping
// separators, length 13-19, and a passing Luhn checksum. The Luhn check
// validates format, not authenticity.
func ValidateCardNumber(number string) bool {
	digits := StripNonDigits(number)
	if len(digits) < 13 || len(digits) > 19 {
		return false
	}
	return luhnChecksum(digits)%10 == 0
}

// luhnChecksum sums the digits with every second digit from the right
// doubled, doubled values over 9 reduced by 9.
func luhnChecksum(digits string) int {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum
}

// ValidateExpiryDate checks the MM/YY expiry format: exactly 4 digits after
// stripping separators, month in 1-12. It intentionally does not compare
// against the current date; see docs for the open product question.
func ValidateExpiryDate(expiry string) bool {
	digits := StripNonDigits(expiry)
	if len(digits) != 4 {
		return false
	}
	month, err := strconv.Atoi(digits[:2])
	if err != nil {
		return false
	}
	return month >= 1 && month <= 12
}

// ValidateCVV checks the CVV format: 3 or 4 digits.
func ValidateCVV(cvv string) bool {
	digits := StripNonDigits(cvv)
	return (len(digits) == 3 || len(digits) == 4) && digits == cvv
}

// ExpiryParts splits a validated MM/YY expiry into its month and the
// four-digit year the gateway expects.
func ExpiryParts(expiry string) (month, year int) {
	digits := StripNonDigits(expiry)
	if len(digits) != 4 {
		return 0, 0
	}
	month, _ = strconv.Atoi(digits[:2])
	yy, _ := strconv.Atoi(digits[2:])
	return month, 2000 + yy
}

// ValidateCardDetails runs the full card field validation in the fixed
// order: presence, card number (Luhn), expiry, CVV. The first failure wins
// and nothing downstream runs.
func ValidateCardDetails(card *models.CardDetails) error {
	if card == nil {
		return NewValidationError("card details are required for card payments")
	}
	if card.CardholderName == "" || card.CardNumber == "" || card.ExpiryDate == "" || card.CVV == "" {
		return NewValidationError("cardholder name, card number, expiry date and CVV are all required")
	}
	if !ValidateCardNumber(card.CardNumber) {
		return NewValidationError("invalid card number")
	}
	if !ValidateExpiryDate(card.ExpiryDate) {
		return NewValidationError("invalid expiry date, expected MM/YY")
	}
	if !ValidateCVV(card.CVV) {
		return NewValidationError("invalid CVV")
	}
	return nil
}

// IsCardMethod reports whether the payment method requires card details.
func IsCardMethod(method string) bool {
	return method == models.PaymentMethodCreditCard || method == models.PaymentMethodDebitCard
}
