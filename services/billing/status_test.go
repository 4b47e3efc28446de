package billing

import (
	"testing"
	"time"

	"dentra/models"

	"github.com/stretchr/testify/assert"
)

func TestStoredStatus(t *testing.T) {
	assert.Equal(t, models.PaymentStatusPending, StoredStatus(100, 0))
	assert.Equal(t, models.PaymentStatusPartial, StoredStatus(100, 40))
	assert.Equal(t, models.PaymentStatusPaid, StoredStatus(100, 100))
	// Stored status never reports overdue.
	assert.NotEqual(t, models.PaymentStatusOverdue, StoredStatus(100, 0))
}

func TestDisplayStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	nextWeek := now.Add(7 * 24 * time.Hour)

	tests := []struct {
		name    string
		total   float64
		paid    float64
		dueDate time.Time
		want    models.PaymentStatus
	}{
		{"unpaid before due", 100, 0, nextWeek, models.PaymentStatusPending},
		{"partially paid before due", 100, 40, nextWeek, models.PaymentStatusPartial},
		{"fully paid", 100, 100, nextWeek, models.PaymentStatusPaid},
		{"unpaid past due", 100, 0, yesterday, models.PaymentStatusOverdue},
		{"partially paid past due", 100, 40, yesterday, models.PaymentStatusOverdue},
		// Paid wins over overdue regardless of the due date.
		{"paid past due", 100, 100, yesterday, models.PaymentStatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayStatus(tt.total, tt.paid, tt.dueDate, now))
		})
	}
}

func TestDisplayStatusPathIndependent(t *testing.T) {
	now := time.Now()
	due := now.Add(24 * time.Hour)

	// One payment of 100 and two payments summing to 100 end in the same state.
	assert.Equal(t,
		DisplayStatus(100, 100, due, now),
		DisplayStatus(100, 60+40, due, now))
	assert.Equal(t, models.PaymentStatusPaid, DisplayStatus(100, 100, due, now))
}

func TestInvoiceDisplayStatus(t *testing.T) {
	now := time.Now()

	inv := models.Invoice{
		TotalAmount:   100,
		PaidAmount:    0,
		BalanceAmount: 100,
		PaymentStatus: models.PaymentStatusPending,
		DueDate:       now.Add(-time.Hour),
	}
	// Stored status stays pending; the derived display reads overdue.
	assert.Equal(t, models.PaymentStatusPending, inv.PaymentStatus)
	assert.Equal(t, models.PaymentStatusOverdue, inv.DisplayStatus(now))

	inv.PaymentStatus = models.PaymentStatusPaid
	assert.Equal(t, models.PaymentStatusPaid, inv.DisplayStatus(now))
}
