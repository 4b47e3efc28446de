package handlers

import (
	"errors"
	"net/http"

	"dentra/models"
	"dentra/services/medication"

	"github.com/gin-gonic/gin"
)

func medicationErrStatus(err error) int {
	if errors.Is(err, medication.ErrMedicationNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func CreateMedicationHandler(svc medication.MedicationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var m models.Medication
		if err := c.ShouldBindJSON(&m); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		created, err := svc.CreateMedication(m)
		if err != nil {
			c.JSON(medicationErrStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"data": created})
	}
}

func GetMedicationHandler(svc medication.MedicationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, err := svc.GetMedicationByID(c.Param("id"))
		if err != nil {
			c.JSON(medicationErrStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": m})
	}
}

func UpdateMedicationHandler(svc medication.MedicationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var m models.Medication
		if err := c.ShouldBindJSON(&m); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		m.ID = c.Param("id")
		updated, err := svc.UpdateMedication(m)
		if err != nil {
			c.JSON(medicationErrStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": updated})
	}
}

func DeleteMedicationHandler(svc medication.MedicationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.DeleteMedication(c.Param("id")); err != nil {
			c.JSON(medicationErrStatus(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "medication deleted"})
	}
}

// ListMedicationsHandler lists the catalog; a non-empty q query switches
// to name search.
func ListMedicationsHandler(svc medication.MedicationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := listParams(c)
		var (
			meds       []models.Medication
			pagination models.Pagination
			err        error
		)
		if q := c.Query("q"); q != "" {
			meds, pagination, err = svc.SearchMedications(q, params)
		} else {
			meds, pagination, err = svc.ListMedications(params)
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": meds, "pagination": pagination})
	}
}
