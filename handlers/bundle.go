package handlers

import (
	"net/http"

	staffRepo "dentra/database/repository/staff"
	"dentra/utils"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct so routing
// needs a single argument.
type HandlerBundle struct {
	StaffRepo staffRepo.StaffRepository

	// Billing endpoints
	ListInvoicesHandler        gin.HandlerFunc
	GetInvoiceHandler          gin.HandlerFunc
	ListPatientInvoicesHandler gin.HandlerFunc
	CreateInvoiceHandler       gin.HandlerFunc
	UpdateInvoiceHandler       gin.HandlerFunc
	DeleteInvoiceHandler       gin.HandlerFunc
	AddPaymentHandler          gin.HandlerFunc

	// Patient endpoints
	CreatePatientHandler gin.HandlerFunc
	GetPatientHandler    gin.HandlerFunc
	UpdatePatientHandler gin.HandlerFunc
	DeletePatientHandler gin.HandlerFunc
	ListPatientsHandler  gin.HandlerFunc

	// Appointment endpoints
	CreateAppointmentHandler       gin.HandlerFunc
	GetAppointmentHandler          gin.HandlerFunc
	RescheduleAppointmentHandler   gin.HandlerFunc
	UpdateAppointmentStatusHandler gin.HandlerFunc
	CancelAppointmentHandler       gin.HandlerFunc
	ListAppointmentsHandler        gin.HandlerFunc

	// Medication endpoints
	CreateMedicationHandler gin.HandlerFunc
	GetMedicationHandler    gin.HandlerFunc
	UpdateMedicationHandler gin.HandlerFunc
	DeleteMedicationHandler gin.HandlerFunc
	ListMedicationsHandler  gin.HandlerFunc

	// Prescription endpoints
	CreatePrescriptionHandler gin.HandlerFunc
	GetPrescriptionHandler    gin.HandlerFunc
	UpdatePrescriptionHandler gin.HandlerFunc
	DeletePrescriptionHandler gin.HandlerFunc
	ListPrescriptionsHandler  gin.HandlerFunc

	// Staff auth endpoints
	RegisterStaffHandler  gin.HandlerFunc
	LoginHandler          gin.HandlerFunc
	LogoutHandler         gin.HandlerFunc
	MeHandler             gin.HandlerFunc
	ChangePasswordHandler gin.HandlerFunc
	ListStaffHandler      gin.HandlerFunc
	UpdateStaffHandler    gin.HandlerFunc

	// Document storage endpoints
	UploadDocumentHandler gin.HandlerFunc
	GetDocumentURLHandler gin.HandlerFunc
	DeleteDocumentHandler gin.HandlerFunc
}

// HealthHandler reports the latest health snapshot of mongo and redis.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}
