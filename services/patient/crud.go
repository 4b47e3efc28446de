package patient

import (
	"errors"
	"fmt"
	"time"

	billingRepo "dentra/database/repository/billing"
	patientRepo "dentra/database/repository/patient"
	"dentra/models"
	"dentra/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrPatientNotFound is returned when no patient matches the given ID.
var ErrPatientNotFound = errors.New("patient not found")

// ErrEmailTaken is returned when another patient already uses the email.
var ErrEmailTaken = errors.New("a patient with this email already exists")

// ErrOutstandingInvoices blocks deletion while unpaid invoices reference
// the patient.
var ErrOutstandingInvoices = errors.New("patient has outstanding invoices")

func (s *DefaultPatientService) CreatePatient(p models.Patient) (*models.Patient, error) {
	if p.FirstName == "" && p.LastName == "" {
		return nil, fmt.Errorf("patient name is required")
	}
	if p.Email != "" {
		existing, err := s.Repo.GetByEmail(p.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check patient email: %w", err)
		}
		if existing != nil {
			return nil, ErrEmailTaken
		}
	}

	now := time.Now()
	p.ID = uuid.New().String()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.Repo.Create(&p); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	utils.GetLogger().Info("patient created",
		zap.String("patientID", p.ID),
		zap.String("name", p.FullName()),
	)
	return &p, nil
}

func (s *DefaultPatientService) GetPatientByID(id string) (*models.Patient, error) {
	p, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, patientRepo.ErrNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("failed to fetch patient: %w", err)
	}
	return p, nil
}

func (s *DefaultPatientService) UpdatePatient(p models.Patient) (*models.Patient, error) {
	existing, err := s.GetPatientByID(p.ID)
	if err != nil {
		return nil, err
	}
	if p.Email != "" && p.Email != existing.Email {
		other, err := s.Repo.GetByEmail(p.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check patient email: %w", err)
		}
		if other != nil && other.ID != p.ID {
			return nil, ErrEmailTaken
		}
	}

	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now()
	if err := s.Repo.Update(&p); err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	return &p, nil
}

// DeletePatient removes a patient record. Patients with unpaid invoices
// cannot be deleted; settle or void the invoices first.
func (s *DefaultPatientService) DeletePatient(id string) error {
	if _, err := s.GetPatientByID(id); err != nil {
		return err
	}

	for _, status := range []models.PaymentStatus{models.PaymentStatusPending, models.PaymentStatusPartial} {
		_, total, err := s.InvoiceRepo.List(
			billingRepo.InvoiceFilter{PatientID: id, Status: status},
			models.ListParams{Page: 1, Limit: 1},
		)
		if err != nil {
			return fmt.Errorf("failed to check patient invoices: %w", err)
		}
		if total > 0 {
			return ErrOutstandingInvoices
		}
	}

	if err := s.Repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	utils.GetLogger().Info("patient deleted", zap.String("patientID", id))
	return nil
}

func (s *DefaultPatientService) SearchPatients(query string, params models.ListParams) ([]models.Patient, models.Pagination, error) {
	params.Normalize()
	patients, total, err := s.Repo.Search(query, params)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("failed to search patients: %w", err)
	}
	return patients, paginationFor(params, total), nil
}

func (s *DefaultPatientService) ListPatients(params models.ListParams) ([]models.Patient, models.Pagination, error) {
	params.Normalize()
	patients, total, err := s.Repo.List(params)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, paginationFor(params, total), nil
}

func paginationFor(p models.ListParams, total int64) models.Pagination {
	return models.Pagination{
		Page:  p.Page,
		Limit: p.Limit,
		Total: total,
		Pages: p.PageCount(total),
	}
}
