package appointment

import (
	"errors"
	"fmt"
	"time"

	appointmentRepo "dentra/database/repository/appointment"
	patientRepo "dentra/database/repository/patient"
	"dentra/models"
	"dentra/services/tasks"
	"dentra/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrAppointmentNotFound is returned when no appointment matches the ID.
var ErrAppointmentNotFound = errors.New("appointment not found")

// ErrSlotTaken is returned when the dentist already has an active
// appointment intersecting the requested window.
var ErrSlotTaken = errors.New("the dentist already has an appointment in this time slot")

// ErrAppointmentClosed is returned when mutating a completed, cancelled
// or no-show appointment.
var ErrAppointmentClosed = errors.New("appointment is no longer active")

func validateWindow(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("startTime and endTime are required")
	}
	if !end.After(start) {
		return fmt.Errorf("endTime must be after startTime")
	}
	return nil
}

func (s *DefaultAppointmentService) checkSlot(dentistID string, start, end time.Time, excludeID string) error {
	conflicts, err := s.Repo.FindOverlapping(dentistID, start, end, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check dentist availability: %w", err)
	}
	if len(conflicts) > 0 {
		return ErrSlotTaken
	}
	return nil
}

func (s *DefaultAppointmentService) CreateAppointment(a models.Appointment) (*models.Appointment, error) {
	if a.PatientID == "" {
		return nil, fmt.Errorf("patientId is required")
	}
	if a.DentistID == "" {
		return nil, fmt.Errorf("dentistId is required")
	}
	if err := validateWindow(a.StartTime, a.EndTime); err != nil {
		return nil, err
	}
	if _, err := s.Patients.GetByID(a.PatientID); err != nil {
		if errors.Is(err, patientRepo.ErrNotFound) {
			return nil, fmt.Errorf("unknown patient: %s", a.PatientID)
		}
		return nil, fmt.Errorf("failed to verify patient: %w", err)
	}
	if err := s.checkSlot(a.DentistID, a.StartTime, a.EndTime, ""); err != nil {
		return nil, err
	}

	now := time.Now()
	a.ID = uuid.New().String()
	a.Status = models.AppointmentScheduled
	a.CreatedAt = now
	a.UpdatedAt = now
	if err := s.Repo.Create(&a); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.scheduleReminder(a)

	utils.GetLogger().Info("appointment scheduled",
		zap.String("appointmentID", a.ID),
		zap.String("dentistID", a.DentistID),
		zap.Time("startTime", a.StartTime),
	)
	return &a, nil
}

func (s *DefaultAppointmentService) GetAppointmentByID(id string) (*models.Appointment, error) {
	a, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("failed to fetch appointment: %w", err)
	}
	return a, nil
}

// RescheduleAppointment moves an active appointment to a new window,
// subject to the same overlap rule as creation.
func (s *DefaultAppointmentService) RescheduleAppointment(id string, start, end time.Time) (*models.Appointment, error) {
	a, err := s.GetAppointmentByID(id)
	if err != nil {
		return nil, err
	}
	if a.Status != models.AppointmentScheduled && a.Status != models.AppointmentConfirmed {
		return nil, ErrAppointmentClosed
	}
	if err := validateWindow(start, end); err != nil {
		return nil, err
	}
	if err := s.checkSlot(a.DentistID, start, end, a.ID); err != nil {
		return nil, err
	}

	a.StartTime = start
	a.EndTime = end
	a.UpdatedAt = time.Now()
	if err := s.Repo.Update(a); err != nil {
		return nil, fmt.Errorf("failed to reschedule appointment: %w", err)
	}

	s.scheduleReminder(*a)
	return a, nil
}

var statusTransitions = map[models.AppointmentStatus][]models.AppointmentStatus{
	models.AppointmentScheduled: {models.AppointmentConfirmed, models.AppointmentCompleted, models.AppointmentCancelled, models.AppointmentNoShow},
	models.AppointmentConfirmed: {models.AppointmentCompleted, models.AppointmentCancelled, models.AppointmentNoShow},
}

func (s *DefaultAppointmentService) UpdateAppointmentStatus(id string, status models.AppointmentStatus) (*models.Appointment, error) {
	a, err := s.GetAppointmentByID(id)
	if err != nil {
		return nil, err
	}
	allowed := false
	for _, next := range statusTransitions[a.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("cannot move appointment from %s to %s", a.Status, status)
	}

	a.Status = status
	a.UpdatedAt = time.Now()
	if err := s.Repo.Update(a); err != nil {
		return nil, fmt.Errorf("failed to update appointment status: %w", err)
	}
	return a, nil
}

// CancelAppointment marks the appointment cancelled. The record is kept
// so visit history survives.
func (s *DefaultAppointmentService) CancelAppointment(id string) error {
	_, err := s.UpdateAppointmentStatus(id, models.AppointmentCancelled)
	return err
}

func (s *DefaultAppointmentService) ListAppointments(filter appointmentRepo.AppointmentFilter, params models.ListParams) ([]models.Appointment, models.Pagination, error) {
	params.Normalize()
	appts, total, err := s.Repo.List(filter, params)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("failed to list appointments: %w", err)
	}
	pagination := models.Pagination{
		Page:  params.Page,
		Limit: params.Limit,
		Total: total,
		Pages: params.PageCount(total),
	}
	return appts, pagination, nil
}

// scheduleReminder enqueues a push reminder ahead of the appointment
// start. Enqueue failures are logged, never surfaced: the appointment
// itself is already committed.
func (s *DefaultAppointmentService) scheduleReminder(a models.Appointment) {
	if s.AsynqClient == nil {
		return
	}
	fireAt := a.StartTime.Add(-s.ReminderLead)
	if !fireAt.After(time.Now()) {
		return
	}

	payload := models.ReminderPayload{
		AppointmentID: a.ID,
		PatientID:     a.PatientID,
		Title:         "Upcoming dental appointment",
		Body:          fmt.Sprintf("You have an appointment at %s.", a.StartTime.Format("3:04 PM, Jan 2")),
		StartTime:     a.StartTime,
	}
	task, opts, err := tasks.NewReminderTask(payload, fireAt)
	if err != nil {
		utils.GetLogger().Error("failed to build reminder task",
			zap.Error(err), zap.String("appointmentID", a.ID))
		return
	}
	if _, err := s.AsynqClient.Enqueue(task, opts...); err != nil {
		utils.GetLogger().Error("failed to enqueue reminder task",
			zap.Error(err), zap.String("appointmentID", a.ID))
	}
}
