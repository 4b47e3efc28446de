package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dentra/config"
	"dentra/cron"
	"dentra/database"
	appointmentRepoPkg "dentra/database/repository/appointment"
	billingRepoPkg "dentra/database/repository/billing"
	medicationRepoPkg "dentra/database/repository/medication"
	patientRepoPkg "dentra/database/repository/patient"
	prescriptionRepoPkg "dentra/database/repository/prescription"
	staffRepoPkg "dentra/database/repository/staff"
	"dentra/handlers"
	"dentra/routes"
	"dentra/services/appointment"
	"dentra/services/billing"
	"dentra/services/medication"
	"dentra/services/notification"
	"dentra/services/patient"
	"dentra/services/prescription"
	"dentra/services/staff"
	"dentra/services/storage"
	"dentra/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	var documentStorage storage.DocumentStorage
	if cld, err := storage.NewCloudinaryStorage(); err != nil {
		logger.Sugar().Warnf("main: document storage disabled: %v", err)
	} else {
		documentStorage = cld
	}

	gateway, err := billing.NewGateway(config.AppConfig.GatewayDriver, config.AppConfig.StripeKey)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize payment gateway: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// Repositories.
	invoiceRepo := billingRepoPkg.NewMongoInvoiceRepo()
	patientRepo := patientRepoPkg.NewMongoPatientRepo()
	appointmentRepo := appointmentRepoPkg.NewMongoAppointmentRepo()
	medicationRepo := medicationRepoPkg.NewMongoMedicationRepo()
	prescriptionRepo := prescriptionRepoPkg.NewMongoPrescriptionRepo()
	staffRepo := staffRepoPkg.NewMongoStaffRepo()

	// Reminder queue client.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	})
	defer asynqClient.Close()

	// Services.
	billingService := &billing.DefaultBillingService{
		Repo:           invoiceRepo,
		Gateway:        gateway,
		DefaultTaxRate: config.AppConfig.DefaultTaxRate,
	}
	patientService := &patient.DefaultPatientService{
		Repo:        patientRepo,
		InvoiceRepo: invoiceRepo,
	}
	appointmentService := &appointment.DefaultAppointmentService{
		Repo:         appointmentRepo,
		Patients:     patientRepo,
		AsynqClient:  asynqClient,
		ReminderLead: time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute,
	}
	medicationService := &medication.DefaultMedicationService{Repo: medicationRepo}
	prescriptionService := &prescription.DefaultPrescriptionService{
		Repo:        prescriptionRepo,
		Medications: medicationRepo,
	}
	staffService := &staff.DefaultStaffService{Repo: staffRepo}

	notificationService, err := notification.NewDefaultNotificationService(patientRepo)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	storageHandler := handlers.NewStorageHandler(documentStorage)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		StaffRepo: staffRepo,

		// Billing endpoints.
		ListInvoicesHandler:        handlers.ListInvoicesHandler(billingService),
		GetInvoiceHandler:          handlers.GetInvoiceHandler(billingService),
		ListPatientInvoicesHandler: handlers.ListPatientInvoicesHandler(billingService),
		CreateInvoiceHandler:       handlers.CreateInvoiceHandler(billingService),
		UpdateInvoiceHandler:       handlers.UpdateInvoiceHandler(billingService),
		DeleteInvoiceHandler:       handlers.DeleteInvoiceHandler(billingService),
		AddPaymentHandler:          handlers.AddPaymentHandler(billingService),

		// Patient endpoints.
		CreatePatientHandler: handlers.CreatePatientHandler(patientService),
		GetPatientHandler:    handlers.GetPatientHandler(patientService),
		UpdatePatientHandler: handlers.UpdatePatientHandler(patientService),
		DeletePatientHandler: handlers.DeletePatientHandler(patientService),
		ListPatientsHandler:  handlers.ListPatientsHandler(patientService),

		// Appointment endpoints.
		CreateAppointmentHandler:       handlers.CreateAppointmentHandler(appointmentService),
		GetAppointmentHandler:          handlers.GetAppointmentHandler(appointmentService),
		RescheduleAppointmentHandler:   handlers.RescheduleAppointmentHandler(appointmentService),
		UpdateAppointmentStatusHandler: handlers.UpdateAppointmentStatusHandler(appointmentService),
		CancelAppointmentHandler:       handlers.CancelAppointmentHandler(appointmentService),
		ListAppointmentsHandler:        handlers.ListAppointmentsHandler(appointmentService),

		// Medication endpoints.
		CreateMedicationHandler: handlers.CreateMedicationHandler(medicationService),
		GetMedicationHandler:    handlers.GetMedicationHandler(medicationService),
		UpdateMedicationHandler: handlers.UpdateMedicationHandler(medicationService),
		DeleteMedicationHandler: handlers.DeleteMedicationHandler(medicationService),
		ListMedicationsHandler:  handlers.ListMedicationsHandler(medicationService),

		// Prescription endpoints.
		CreatePrescriptionHandler: handlers.CreatePrescriptionHandler(prescriptionService),
		GetPrescriptionHandler:    handlers.GetPrescriptionHandler(prescriptionService),
		UpdatePrescriptionHandler: handlers.UpdatePrescriptionHandler(prescriptionService),
		DeletePrescriptionHandler: handlers.DeletePrescriptionHandler(prescriptionService),
		ListPrescriptionsHandler:  handlers.ListPrescriptionsHandler(prescriptionService),

		// Staff auth endpoints.
		RegisterStaffHandler:  handlers.RegisterStaffHandler(staffService),
		LoginHandler:          handlers.LoginHandler(staffService),
		LogoutHandler:         handlers.LogoutHandler(staffService),
		MeHandler:             handlers.MeHandler(staffService),
		ChangePasswordHandler: handlers.ChangePasswordHandler(staffService),
		ListStaffHandler:      handlers.ListStaffHandler(staffService),
		UpdateStaffHandler:    handlers.UpdateStaffHandler(staffService),

		// Document storage endpoints.
		UploadDocumentHandler: storageHandler.UploadDocumentHandler,
		GetDocumentURLHandler: storageHandler.GetDocumentURLHandler,
		DeleteDocumentHandler: storageHandler.DeleteDocumentHandler,
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Background reminder worker and health monitor.
	cron.InitReminderWorker(notificationService, appointmentRepo)
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
