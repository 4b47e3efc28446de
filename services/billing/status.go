package billing

import (
	"time"

	"dentra/models"
)

// StoredStatus is the persisted status axis: pending, partial or paid.
// It never returns overdue.
func StoredStatus(totalAmount, paidAmount float64) models.PaymentStatus {
	if Balance(totalAmount, paidAmount) == 0 {
		return models.PaymentStatusPaid
	}
	if paidAmount > 0 {
		return models.PaymentStatusPartial
	}
	return models.PaymentStatusPending
}

// DisplayStatus derives the status shown to clients. It is a pure function
// of the amounts and dates: paid wins over everything, then overdue when the
// due date has passed, then partial/pending. Path-independent: only the
// current paid amount matters, not the sequence of payments that produced it.
func DisplayStatus(totalAmount, paidAmount float64, dueDate, now time.Time) models.PaymentStatus {
	if Balance(totalAmount, paidAmount) == 0 {
		return models.PaymentStatusPaid
	}
	if dueDate.Before(now) {
		return models.PaymentStatusOverdue
	}
	if paidAmount > 0 {
		return models.PaymentStatusPartial
	}
	return models.PaymentStatusPending
}
