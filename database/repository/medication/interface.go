package medicationRepo

import (
	"errors"

	"dentra/models"
)

// ErrNotFound is returned when no medication matches the given ID.
var ErrNotFound = errors.New("medication not found")

// MedicationRepository persists the clinic's medication catalog.
type MedicationRepository interface {
	Create(m *models.Medication) error
	Update(m *models.Medication) error
	Delete(id string) error
	GetByID(id string) (*models.Medication, error)
	GetByIDs(ids []string) ([]models.Medication, error)
	Search(query string, params models.ListParams) ([]models.Medication, int64, error)
	List(params models.ListParams) ([]models.Medication, int64, error)
}
