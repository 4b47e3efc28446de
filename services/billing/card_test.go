package billing

import (
	"testing"

	"dentra/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateCardNumber(t *testing.T) {
	tests := []struct {
		name   string
		number string
		want   bool
	}{
		{"visa test number", "4111111111111111", true},
		{"single digit mutation fails luhn", "4111111111111112", false},
		{"spaces and dashes stripped", "4111-1111 1111-1111", true},
		{"amex test number", "378282246310005", true},
		{"mastercard test number", "5555555555554444", true},
		{"too short", "411111111111", false},
		{"too long", "41111111111111111111", false},
		{"letters only", "notacardnumber", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateCardNumber(tt.number))
		})
	}
}

func TestValidateExpiryDate(t *testing.T) {
	tests := []struct {
		name   string
		expiry string
		want   bool
	}{
		{"valid", "12/30", true},
		{"valid without separator", "0128", true},
		{"month zero", "00/28", false},
		{"month thirteen", "13/28", false},
		{"too few digits", "1/28", false},
		{"too many digits", "12/2030", false},
		{"empty", "", false},
		// An already-expired date still passes: only the format and month
		// range are checked.
		{"past date accepted", "01/20", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateExpiryDate(tt.expiry))
		})
	}
}

func TestValidateCVV(t *testing.T) {
	assert.True(t, ValidateCVV("123"))
	assert.True(t, ValidateCVV("1234"))
	assert.False(t, ValidateCVV("12"))
	assert.False(t, ValidateCVV("12345"))
	assert.False(t, ValidateCVV("12a"))
	assert.False(t, ValidateCVV(""))
}

func TestExpiryParts(t *testing.T) {
	month, year := ExpiryParts("12/30")
	assert.Equal(t, 12, month)
	assert.Equal(t, 2030, year)
}

func TestValidateCardDetailsOrdering(t *testing.T) {
	// Missing fields are reported before any format check runs.
	err := ValidateCardDetails(&models.CardDetails{CardNumber: "garbage"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "required")

	// With all fields present, the card number is checked first.
	err = ValidateCardDetails(&models.CardDetails{
		CardholderName: "Jan Kowalski",
		CardNumber:     "4111111111111112",
		ExpiryDate:     "99/99",
		CVV:            "1",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "card number")

	// Then the expiry.
	err = ValidateCardDetails(&models.CardDetails{
		CardholderName: "Jan Kowalski",
		CardNumber:     "4111111111111111",
		ExpiryDate:     "99/99",
		CVV:            "1",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "expiry")

	// Then the CVV.
	err = ValidateCardDetails(&models.CardDetails{
		CardholderName: "Jan Kowalski",
		CardNumber:     "4111111111111111",
		ExpiryDate:     "12/30",
		CVV:            "1",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "CVV")

	// A fully valid card passes.
	err = ValidateCardDetails(&models.CardDetails{
		CardholderName: "Jan Kowalski",
		CardNumber:     "4111 1111 1111 1111",
		ExpiryDate:     "12/30",
		CVV:            "123",
	})
	assert.NoError(t, err)

	assert.Error(t, ValidateCardDetails(nil))
}

func TestIsCardMethod(t *testing.T) {
	assert.True(t, IsCardMethod(models.PaymentMethodCreditCard))
	assert.True(t, IsCardMethod(models.PaymentMethodDebitCard))
	assert.False(t, IsCardMethod(models.PaymentMethodCash))
	assert.False(t, IsCardMethod(models.PaymentMethodInsurance))
}
