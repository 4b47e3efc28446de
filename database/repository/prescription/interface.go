package prescriptionRepo

import (
	"errors"

	"dentra/models"
)

// ErrNotFound is returned when no prescription matches the given ID.
var ErrNotFound = errors.New("prescription not found")

// PrescriptionRepository persists issued prescriptions.
type PrescriptionRepository interface {
	Create(p *models.Prescription) error
	Update(p *models.Prescription) error
	Delete(id string) error
	GetByID(id string) (*models.Prescription, error)
	GetByPatient(patientID string, params models.ListParams) ([]models.Prescription, int64, error)
	List(params models.ListParams) ([]models.Prescription, int64, error)
}
