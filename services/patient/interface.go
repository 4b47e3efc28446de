package patient

import (
	billingRepo "dentra/database/repository/billing"
	patientRepo "dentra/database/repository/patient"
	"dentra/models"
)

// PatientService manages clinic patient records.
type PatientService interface {
	CreatePatient(p models.Patient) (*models.Patient, error)
	GetPatientByID(id string) (*models.Patient, error)
	UpdatePatient(p models.Patient) (*models.Patient, error)
	DeletePatient(id string) error
	SearchPatients(query string, params models.ListParams) ([]models.Patient, models.Pagination, error)
	ListPatients(params models.ListParams) ([]models.Patient, models.Pagination, error)
}

// DefaultPatientService is the production implementation. InvoiceRepo is
// consulted on delete: patients with outstanding invoices cannot be removed.
type DefaultPatientService struct {
	Repo        patientRepo.PatientRepository
	InvoiceRepo billingRepo.InvoiceRepository
}
