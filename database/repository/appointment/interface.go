package appointmentRepo

import (
	"errors"
	"time"

	"dentra/models"
)

// ErrNotFound is returned when no appointment matches the given ID.
var ErrNotFound = errors.New("appointment not found")

// AppointmentFilter narrows appointment list queries.
type AppointmentFilter struct {
	PatientID string
	DentistID string
	Status    models.AppointmentStatus
	// Day restricts results to appointments starting within [Day, Day+24h).
	Day *time.Time
}

// AppointmentRepository persists scheduled patient visits.
type AppointmentRepository interface {
	Create(a *models.Appointment) error
	Update(a *models.Appointment) error
	GetByID(id string) (*models.Appointment, error)
	List(filter AppointmentFilter, params models.ListParams) ([]models.Appointment, int64, error)
	// FindOverlapping returns active (scheduled or confirmed) appointments
	// for the dentist intersecting [start, end), excluding excludeID.
	FindOverlapping(dentistID string, start, end time.Time, excludeID string) ([]models.Appointment, error)
}
