package handlers

import (
	"errors"
	"net/http"

	"dentra/models"
	"dentra/services/patient"

	"github.com/gin-gonic/gin"
)

func patientErrStatus(err error) int {
	switch {
	case errors.Is(err, patient.ErrPatientNotFound):
		return http.StatusNotFound
	case errors.Is(err, patient.ErrEmailTaken), errors.Is(err, patient.ErrOutstandingInvoices):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func CreatePatientHandler(svc patient.PatientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p models.Patient
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		created, err := svc.CreatePatient(p)
		if err != nil {
			c.JSON(patientErrStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": created})
	}
}

func GetPatientHandler(svc patient.PatientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.GetPatientByID(c.Param("id"))
		if err != nil {
			c.JSON(patientErrStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": p})
	}
}

func UpdatePatientHandler(svc patient.PatientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p models.Patient
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		p.ID = c.Param("id")
		updated, err := svc.UpdatePatient(p)
		if err != nil {
			c.JSON(patientErrStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": updated})
	}
}

func DeletePatientHandler(svc patient.PatientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeletePatient(c.Param("id")); err != nil {
			c.JSON(patientErrStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "patient deleted"})
	}
}

// ListPatientsHandler lists patients; a non-empty q query switches to
// name/email/phone search.
func ListPatientsHandler(svc patient.PatientService) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := listParams(c)
		var (
			patients   []models.Patient
			pagination models.Pagination
			err        error
		)
		if q := c.Query("q"); q != "" {
			patients, pagination, err = svc.SearchPatients(q, params)
		} else {
			patients, pagination, err = svc.ListPatients(params)
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": patients, "pagination": pagination})
	}
}
