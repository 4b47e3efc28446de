package handlers

import (
	"errors"
	"net/http"

	"dentra/models"
	"dentra/services/prescription"

	"github.com/gin-gonic/gin"
)

func prescriptionErrStatus(err error) int {
	if errors.Is(err, prescription.ErrPrescriptionNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func CreatePrescriptionHandler(svc prescription.PrescriptionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p models.Prescription
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		created, err := svc.CreatePrescription(p)
		if err != nil {
			// Item validation failures are plain errors from the service.
			status := prescriptionErrStatus(err)
			if status == http.StatusInternalServerError {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": created})
	}
}

func GetPrescriptionHandler(svc prescription.PrescriptionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.GetPrescriptionByID(c.Param("id"))
		if err != nil {
			c.JSON(prescriptionErrStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": p})
	}
}

func UpdatePrescriptionHandler(svc prescription.PrescriptionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p models.Prescription
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		p.ID = c.Param("id")
		updated, err := svc.UpdatePrescription(p)
		if err != nil {
			status := prescriptionErrStatus(err)
			if status == http.StatusInternalServerError {
				status = http.StatusBadRequest
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": updated})
	}
}

func DeletePrescriptionHandler(svc prescription.PrescriptionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeletePrescription(c.Param("id")); err != nil {
			c.JSON(prescriptionErrStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "prescription deleted"})
	}
}

// ListPrescriptionsHandler lists prescriptions, optionally narrowed to a
// patient via the patientId query.
func ListPrescriptionsHandler(svc prescription.PrescriptionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := listParams(c)
		var (
			list       []models.Prescription
			pagination models.Pagination
			err        error
		)
		if patientID := c.Query("patientId"); patientID != "" {
			list, pagination, err = svc.GetPatientPrescriptions(patientID, params)
		} else {
			list, pagination, err = svc.ListPrescriptions(params)
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": list, "pagination": pagination})
	}
}
