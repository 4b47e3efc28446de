package billing

import (
	"math"

	"dentra/models"
)

// Round2 rounds a currency amount to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Totals holds the derived monetary fields of an invoice.
type Totals struct {
	Subtotal       float64
	TaxAmount      float64
	DiscountAmount float64
	TotalAmount    float64
}

// ItemTotal computes the rounded line total for a single invoice item.
func ItemTotal(item models.InvoiceItem) float64 {
	return Round2(float64(item.Quantity) * item.UnitPrice)
}

// ComputeTotals derives subtotal, tax and total from the item list. Each
// item's Total field is filled in place. A discount larger than
// subtotal+tax clamps the total to zero rather than failing; callers that
// want to reject that case must do so themselves.
func ComputeTotals(items []models.InvoiceItem, taxRate, discountAmount float64) Totals {
	var subtotal float64
	for i := range items {
		items[i].Total = ItemTotal(items[i])
		subtotal += items[i].Total
	}
	subtotal = Round2(subtotal)

	taxAmount := Round2(subtotal * taxRate / 100)

	total := Round2(subtotal + taxAmount - discountAmount)
	if total < 0 {
		total = 0
	}

	return Totals{
		Subtotal:       subtotal,
		TaxAmount:      taxAmount,
		DiscountAmount: discountAmount,
		TotalAmount:    total,
	}
}

// Balance is the remaining unpaid amount, floored at zero.
func Balance(totalAmount, paidAmount float64) float64 {
	b := Round2(totalAmount - paidAmount)
	if b < 0 {
		return 0
	}
	return b
}
