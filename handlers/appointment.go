package handlers

import (
	"errors"
	"net/http"
	"time"

	appointmentRepo "dentra/database/repository/appointment"
	"dentra/models"
	"dentra/services/appointment"

	"github.com/gin-gonic/gin"
)

func appointmentErrStatus(err error) int {
	switch {
	case errors.Is(err, appointment.ErrAppointmentNotFound):
		return http.StatusNotFound
	case errors.Is(err, appointment.ErrSlotTaken), errors.Is(err, appointment.ErrAppointmentClosed):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func CreateAppointmentHandler(svc appointment.AppointmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var a models.Appointment
		if err := c.ShouldBindJSON(&a); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		created, err := svc.CreateAppointment(a)
		if err != nil {
			c.JSON(appointmentErrStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": created})
	}
}

func GetAppointmentHandler(svc appointment.AppointmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, err := svc.GetAppointmentByID(c.Param("id"))
		if err != nil {
			c.JSON(appointmentErrStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": a})
	}
}

// RescheduleAppointmentHandler moves an appointment to a new time window.
func RescheduleAppointmentHandler(svc appointment.AppointmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			StartTime time.Time `json:"startTime"`
			EndTime   time.Time `json:"endTime"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		a, err := svc.RescheduleAppointment(c.Param("id"), input.StartTime, input.EndTime)
		if err != nil {
			c.JSON(appointmentErrStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": a})
	}
}

// UpdateAppointmentStatusHandler advances the appointment lifecycle
// (confirm, complete, cancel, no_show).
func UpdateAppointmentStatusHandler(svc appointment.AppointmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Status models.AppointmentStatus `json:"status"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		a, err := svc.UpdateAppointmentStatus(c.Param("id"), input.Status)
		if err != nil {
			c.JSON(appointmentErrStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": a})
	}
}

func CancelAppointmentHandler(svc appointment.AppointmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.CancelAppointment(c.Param("id")); err != nil {
			c.JSON(appointmentErrStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "appointment cancelled"})
	}
}

// ListAppointmentsHandler lists appointments, optionally filtered by
// patient, dentist, status or day (RFC 3339 date).
func ListAppointmentsHandler(svc appointment.AppointmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := appointmentRepo.AppointmentFilter{
			PatientID: c.Query("patientId"),
			DentistID: c.Query("dentistId"),
			Status:    models.AppointmentStatus(c.Query("status")),
		}
		if day := c.Query("day"); day != "" {
			parsed, err := time.Parse("2006-01-02", day)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "day must be formatted YYYY-MM-DD"})
				return
			}
			filter.Day = &parsed
		}
		appts, pagination, err := svc.ListAppointments(filter, listParams(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": appts, "pagination": pagination})
	}
}
