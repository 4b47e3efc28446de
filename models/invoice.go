package models

import "time"

// PaymentStatus is the persisted payment state of an invoice. Only
// pending, partial and paid are ever stored; overdue is derived for
// display from the due date and is never written to the database.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusOverdue PaymentStatus = "overdue"
)

// InvoiceItem is a single billable line on an invoice.
type InvoiceItem struct {
	Description string  `bson:"description" json:"description"`
	Quantity    int     `bson:"quantity" json:"quantity"`
	UnitPrice   float64 `bson:"unitPrice" json:"unitPrice"`
	Total       float64 `bson:"total" json:"total"`
}

// Invoice is a billable record of service items, computed totals and payment
// status for one patient encounter. The monetary fields below the item list
// are derivations recomputed on every write; they are never taken from a
// request body.
type Invoice struct {
	ID             string        `bson:"id" json:"id"`
	PatientID      string        `bson:"patientId" json:"patientId"`
	ClinicID       string        `bson:"clinicId,omitempty" json:"clinicId,omitempty"`
	AppointmentID  string        `bson:"appointmentId,omitempty" json:"appointmentId,omitempty"`
	Items          []InvoiceItem `bson:"items" json:"items"`
	Subtotal       float64       `bson:"subtotal" json:"subtotal"`
	TaxRate        float64       `bson:"taxRate" json:"taxRate"`
	TaxAmount      float64       `bson:"taxAmount" json:"taxAmount"`
	DiscountAmount float64       `bson:"discountAmount" json:"discountAmount"`
	TotalAmount    float64       `bson:"totalAmount" json:"totalAmount"`
	PaidAmount     float64       `bson:"paidAmount" json:"paidAmount"`
	BalanceAmount  float64       `bson:"balanceAmount" json:"balanceAmount"`
	PaymentStatus  PaymentStatus `bson:"paymentStatus" json:"paymentStatus"`
	DueDate        time.Time     `bson:"dueDate" json:"dueDate"`
	PaidDate       *time.Time    `bson:"paidDate,omitempty" json:"paidDate,omitempty"`
	PaymentHistory []Payment     `bson:"paymentHistory" json:"paymentHistory"`
	Notes          string        `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt      time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// DisplayStatus is the status shown to clients: the stored status, except
// that an unpaid invoice past its due date reads as overdue.
func (inv Invoice) DisplayStatus(now time.Time) PaymentStatus {
	if inv.PaymentStatus != PaymentStatusPaid && inv.DueDate.Before(now) {
		return PaymentStatusOverdue
	}
	return inv.PaymentStatus
}
