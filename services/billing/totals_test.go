package billing

import (
	"testing"

	"dentra/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	items := []models.InvoiceItem{
		{Description: "Scaling and polishing", Quantity: 1, UnitPrice: 80.00},
		{Description: "Composite filling", Quantity: 2, UnitPrice: 45.50},
	}

	totals := ComputeTotals(items, 10, 5)

	assert.Equal(t, 80.00, items[0].Total)
	assert.Equal(t, 91.00, items[1].Total)
	assert.Equal(t, 171.00, totals.Subtotal)
	assert.InDelta(t, 17.10, totals.TaxAmount, 0.001)
	assert.InDelta(t, 183.10, totals.TotalAmount, 0.001)
}

func TestComputeTotalsItemRounding(t *testing.T) {
	items := []models.InvoiceItem{
		{Description: "Fluoride varnish", Quantity: 3, UnitPrice: 19.99},
	}

	totals := ComputeTotals(items, 0, 0)

	assert.InDelta(t, 59.97, items[0].Total, 0.001)
	assert.InDelta(t, 59.97, totals.Subtotal, 0.001)
	assert.InDelta(t, 59.97, totals.TotalAmount, 0.001)
}

func TestComputeTotalsDiscountClampsToZero(t *testing.T) {
	items := []models.InvoiceItem{
		{Description: "Consultation", Quantity: 1, UnitPrice: 40.00},
	}

	// Discount above subtotal+tax clamps the total rather than failing.
	totals := ComputeTotals(items, 0, 100.00)

	assert.Equal(t, 40.00, totals.Subtotal)
	assert.Equal(t, 0.00, totals.TotalAmount)
}

func TestComputeTotalsZeroTaxRate(t *testing.T) {
	items := []models.InvoiceItem{
		{Description: "Extraction", Quantity: 1, UnitPrice: 120.00},
	}

	totals := ComputeTotals(items, 0, 0)

	assert.Equal(t, 0.00, totals.TaxAmount)
	assert.Equal(t, 120.00, totals.TotalAmount)
}

func TestBalance(t *testing.T) {
	assert.Equal(t, 100.00, Balance(100.00, 0))
	assert.Equal(t, 40.00, Balance(100.00, 60.00))
	assert.Equal(t, 0.00, Balance(100.00, 100.00))
	// Overpayment still floors at zero.
	assert.Equal(t, 0.00, Balance(100.00, 120.00))
}

func TestRound2(t *testing.T) {
	// 0.125 is exactly representable in binary, so the half case is stable.
	assert.Equal(t, 0.13, Round2(0.125))
	assert.Equal(t, -0.13, Round2(-0.125))
	assert.Equal(t, 1.01, Round2(1.012))
	assert.Equal(t, 1.02, Round2(1.018))
}
