package models

import "time"

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentNoShow    AppointmentStatus = "no_show"
)

// Appointment is one scheduled patient visit with a dentist. Cancelling
// sets the status rather than deleting, so visit history is preserved.
type Appointment struct {
	ID          string            `bson:"id" json:"id"`
	ClinicID    string            `bson:"clinicId,omitempty" json:"clinicId,omitempty"`
	PatientID   string            `bson:"patientId" json:"patientId"`
	DentistID   string            `bson:"dentistId" json:"dentistId"`
	ServiceType string            `bson:"serviceType,omitempty" json:"serviceType,omitempty"`
	StartTime   time.Time         `bson:"startTime" json:"startTime"`
	EndTime     time.Time         `bson:"endTime" json:"endTime"`
	Status      AppointmentStatus `bson:"status" json:"status"`
	Reason      string            `bson:"reason,omitempty" json:"reason,omitempty"`
	Notes       string            `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt   time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time         `bson:"updatedAt" json:"updatedAt"`
}

// Overlaps reports whether two appointments intersect in time, treating
// intervals as half-open [start, end).
func (a Appointment) Overlaps(other Appointment) bool {
	return a.StartTime.Before(other.EndTime) && other.StartTime.Before(a.EndTime)
}

// ReminderPayload is the asynq task payload for an appointment reminder.
type ReminderPayload struct {
	AppointmentID string    `json:"appointmentId"`
	PatientID     string    `json:"patientId"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	StartTime     time.Time `json:"startTime"`
}
