package patientRepo

import (
	"errors"

	"dentra/models"
)

// ErrNotFound is returned when no patient matches the given ID.
var ErrNotFound = errors.New("patient not found")

// PatientRepository persists clinic patient records.
type PatientRepository interface {
	Create(p *models.Patient) error
	Update(p *models.Patient) error
	Delete(id string) error
	GetByID(id string) (*models.Patient, error)
	GetByEmail(email string) (*models.Patient, error)
	Search(query string, params models.ListParams) ([]models.Patient, int64, error)
	List(params models.ListParams) ([]models.Patient, int64, error)
}
