package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	billingRepo "dentra/database/repository/billing"
	"dentra/middleware"
	"dentra/models"
	"dentra/services/billing"

	"github.com/gin-gonic/gin"
)

// invoiceView is the API shape of an invoice: the stored document plus the
// display status, which reads overdue for unpaid invoices past due date.
type invoiceView struct {
	models.Invoice
	DisplayStatus models.PaymentStatus `json:"displayStatus"`
}

func viewOf(inv models.Invoice, now time.Time) invoiceView {
	return invoiceView{Invoice: inv, DisplayStatus: inv.DisplayStatus(now)}
}

func viewsOf(invoices []models.Invoice, now time.Time) []invoiceView {
	views := make([]invoiceView, 0, len(invoices))
	for _, inv := range invoices {
		views = append(views, viewOf(inv, now))
	}
	return views
}

// billingErrStatus maps billing service errors to HTTP status codes.
func billingErrStatus(err error) int {
	switch {
	case errors.Is(err, billing.ErrInvoiceNotFound):
		return http.StatusNotFound
	case errors.Is(err, billing.ErrInvoicePaid), errors.Is(err, billing.ErrPaymentConflict):
		return http.StatusConflict
	case billing.IsValidationError(err):
		return http.StatusBadRequest
	case billing.IsGatewayError(err):
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

func listParams(c *gin.Context) models.ListParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return models.ListParams{Page: page, Limit: limit}
}

// ListInvoicesHandler returns a page of invoices, optionally filtered by
// status, patient or clinic.
func ListInvoicesHandler(svc billing.BillingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := billingRepo.InvoiceFilter{
			PatientID: c.Query("patientId"),
			ClinicID:  c.Query("clinicId"),
			Status:    models.PaymentStatus(c.Query("status")),
		}
		invoices, pagination, err := svc.ListInvoices(filter, listParams(c))
		if err != nil {
			c.JSON(billingErrStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"data":       viewsOf(invoices, time.Now()),
			"pagination": pagination,
		})
	}
}

// GetInvoiceHandler returns a single invoice by ID.
func GetInvoiceHandler(svc billing.BillingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		inv, err := svc.GetInvoice(c.Param("id"))
		if err != nil {
			c.JSON(billingErrStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": viewOf(*inv, time.Now())})
	}
}

// ListPatientInvoicesHandler returns a page of one patient's invoices.
func ListPatientInvoicesHandler(svc billing.BillingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := billingRepo.InvoiceFilter{
			PatientID: c.Param("patientId"),
			Status:    models.PaymentStatus(c.Query("status")),
		}
		invoices, pagination, err := svc.ListInvoices(filter, listParams(c))
		if err != nil {
			c.JSON(billingErrStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"data":       viewsOf(invoices, time.Now()),
			"pagination": pagination,
		})
	}
}

// CreateInvoiceHandler creates an invoice. Totals are always computed
// server-side from the items.
func CreateInvoiceHandler(svc billing.BillingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req billing.CreateInvoiceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		inv, err := svc.CreateInvoice(req)
		if err != nil {
			c.JSON(billingErrStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": viewOf(*inv, time.Now())})
	}
}

// UpdateInvoiceHandler replaces the writable fields of an unpaid invoice.
func UpdateInvoiceHandler(svc billing.BillingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req billing.CreateInvoiceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		inv, err := svc.UpdateInvoice(c.Param("id"), req)
		if err != nil {
			c.JSON(billingErrStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": viewOf(*inv, time.Now())})
	}
}

// DeleteInvoiceHandler deletes an unpaid invoice.
func DeleteInvoiceHandler(svc billing.BillingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteInvoice(c.Param("id")); err != nil {
			c.JSON(billingErrStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "invoice deleted"})
	}
}

// AddPaymentHandler records a payment against an invoice. Card payments
// are tokenized and charged through the gateway before anything persists;
// card fields travel only in the request and are never stored.
func AddPaymentHandler(svc billing.BillingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.AddPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		principal, _ := middleware.GetPrincipal(c)
		inv, err := svc.AddPayment(c.Request.Context(), c.Param("id"), req, principal.StaffID)
		if err != nil {
			c.JSON(billingErrStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": viewOf(*inv, time.Now())})
	}
}
