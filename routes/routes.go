package routes

import (
	"time"

	"dentra/handlers"
	"dentra/middleware"
	"dentra/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers staff account and sign-in endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", hb.LoginHandler)

		protected := api.Group("")
		protected.Use(middleware.StaffAuthMiddleware(hb.StaffRepo))
		protected.POST("/logout", hb.LogoutHandler)
		protected.GET("/me", hb.MeHandler)
		protected.PUT("/password", hb.ChangePasswordHandler)

		admin := api.Group("/staff")
		admin.Use(middleware.StaffAuthMiddleware(hb.StaffRepo), middleware.RequireRoles(models.RoleAdmin))
		admin.POST("", hb.RegisterStaffHandler)
		admin.GET("", hb.ListStaffHandler)
		admin.PUT("/:id", hb.UpdateStaffHandler)
	}
}

// RegisterBillingRoutes registers invoice and payment endpoints. Reads are
// open to any authenticated staff; mutations require billing access.
func RegisterBillingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/billing")
	api.Use(middleware.StaffAuthMiddleware(hb.StaffRepo))
	{
		api.GET("", hb.ListInvoicesHandler)
		api.GET("/:id", hb.GetInvoiceHandler)
		api.GET("/patient/:patientId", hb.ListPatientInvoicesHandler)

		manage := api.Group("")
		manage.Use(middleware.RequireBillingAccess())
		manage.POST("", hb.CreateInvoiceHandler)
		manage.PUT("/:id", hb.UpdateInvoiceHandler)
		manage.DELETE("/:id", hb.DeleteInvoiceHandler)
		manage.POST("/:id/payments", hb.AddPaymentHandler)
	}
}

// RegisterPatientRoutes registers patient record endpoints.
func RegisterPatientRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/patients")
	api.Use(middleware.StaffAuthMiddleware(hb.StaffRepo))
	{
		api.GET("", hb.ListPatientsHandler)
		api.GET("/:id", hb.GetPatientHandler)
		api.POST("", hb.CreatePatientHandler)
		api.PUT("/:id", hb.UpdatePatientHandler)
		api.DELETE("/:id", hb.DeletePatientHandler)
	}
}

// RegisterAppointmentRoutes registers scheduling endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	api.Use(middleware.StaffAuthMiddleware(hb.StaffRepo))
	{
		api.GET("", hb.ListAppointmentsHandler)
		api.GET("/:id", hb.GetAppointmentHandler)
		api.POST("", hb.CreateAppointmentHandler)
		api.PUT("/:id/reschedule", hb.RescheduleAppointmentHandler)
		api.PUT("/:id/status", hb.UpdateAppointmentStatusHandler)
		api.DELETE("/:id", hb.CancelAppointmentHandler)
	}
}

// RegisterMedicationRoutes registers medication catalog endpoints.
func RegisterMedicationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/medications")
	api.Use(middleware.StaffAuthMiddleware(hb.StaffRepo))
	{
		api.GET("", hb.ListMedicationsHandler)
		api.GET("/:id", hb.GetMedicationHandler)

		manage := api.Group("")
		manage.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleDentist))
		manage.POST("", hb.CreateMedicationHandler)
		manage.PUT("/:id", hb.UpdateMedicationHandler)
		manage.DELETE("/:id", hb.DeleteMedicationHandler)
	}
}

// RegisterPrescriptionRoutes registers prescription endpoints. Issuing and
// editing prescriptions is reserved for dentists and admins.
func RegisterPrescriptionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/prescriptions")
	api.Use(middleware.StaffAuthMiddleware(hb.StaffRepo))
	{
		api.GET("", hb.ListPrescriptionsHandler)
		api.GET("/:id", hb.GetPrescriptionHandler)

		manage := api.Group("")
		manage.Use(middleware.RequireRoles(models.RoleAdmin, models.RoleDentist))
		manage.POST("", hb.CreatePrescriptionHandler)
		manage.PUT("/:id", hb.UpdatePrescriptionHandler)
		manage.DELETE("/:id", hb.DeletePrescriptionHandler)
	}
}

// RegisterStorageRoutes registers patient document endpoints.
func RegisterStorageRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/storage")
	api.Use(middleware.StaffAuthMiddleware(hb.StaffRepo))
	{
		api.POST("/patients/:patientId/documents", hb.UploadDocumentHandler)
		api.GET("/documents/url", hb.GetDocumentURLHandler)
		api.DELETE("/documents", hb.DeleteDocumentHandler)
	}
}

// RegisterHealthRoute registers the health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterAuthRoutes(r, hb)
	RegisterBillingRoutes(r, hb)
	RegisterPatientRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterMedicationRoutes(r, hb)
	RegisterPrescriptionRoutes(r, hb)
	RegisterStorageRoutes(r, hb)
	RegisterHealthRoute(r)
}
