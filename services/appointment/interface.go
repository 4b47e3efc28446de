package appointment

import (
	"time"

	appointmentRepo "dentra/database/repository/appointment"
	patientRepo "dentra/database/repository/patient"
	"dentra/models"

	"github.com/hibiken/asynq"
)

// AppointmentService schedules patient visits. A dentist's calendar never
// holds two active appointments that intersect in time.
type AppointmentService interface {
	CreateAppointment(a models.Appointment) (*models.Appointment, error)
	GetAppointmentByID(id string) (*models.Appointment, error)
	RescheduleAppointment(id string, start, end time.Time) (*models.Appointment, error)
	UpdateAppointmentStatus(id string, status models.AppointmentStatus) (*models.Appointment, error)
	CancelAppointment(id string) error
	ListAppointments(filter appointmentRepo.AppointmentFilter, params models.ListParams) ([]models.Appointment, models.Pagination, error)
}

// DefaultAppointmentService is the production implementation. AsynqClient
// may be nil, in which case reminders are not scheduled.
type DefaultAppointmentService struct {
	Repo         appointmentRepo.AppointmentRepository
	Patients     patientRepo.PatientRepository
	AsynqClient  *asynq.Client
	ReminderLead time.Duration
}
