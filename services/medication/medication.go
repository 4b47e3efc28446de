package medication

import (
	"errors"
	"fmt"
	"time"

	medicationRepo "dentra/database/repository/medication"
	"dentra/models"

	"github.com/google/uuid"
)

// ErrMedicationNotFound is returned when no catalog entry matches the ID.
var ErrMedicationNotFound = errors.New("medication not found")

// MedicationService manages the clinic's medication catalog.
type MedicationService interface {
	CreateMedication(m models.Medication) (*models.Medication, error)
	GetMedicationByID(id string) (*models.Medication, error)
	UpdateMedication(m models.Medication) (*models.Medication, error)
	DeleteMedication(id string) error
	SearchMedications(query string, params models.ListParams) ([]models.Medication, models.Pagination, error)
	ListMedications(params models.ListParams) ([]models.Medication, models.Pagination, error)
}

type DefaultMedicationService struct {
	Repo medicationRepo.MedicationRepository
}

func (s *DefaultMedicationService) CreateMedication(m models.Medication) (*models.Medication, error) {
	if m.Name == "" {
		return nil, fmt.Errorf("medication name is required")
	}
	now := time.Now()
	m.ID = uuid.New().String()
	m.CreatedAt = now
	m.UpdatedAt = now
	if err := s.Repo.Create(&m); err != nil {
		return nil, fmt.Errorf("failed to create medication: %w", err)
	}
	return &m, nil
}

func (s *DefaultMedicationService) GetMedicationByID(id string) (*models.Medication, error) {
	m, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, medicationRepo.ErrNotFound) {
			return nil, ErrMedicationNotFound
		}
		return nil, fmt.Errorf("failed to fetch medication: %w", err)
	}
	return m, nil
}

func (s *DefaultMedicationService) UpdateMedication(m models.Medication) (*models.Medication, error) {
	existing, err := s.GetMedicationByID(m.ID)
	if err != nil {
		return nil, err
	}
	if m.Name == "" {
		return nil, fmt.Errorf("medication name is required")
	}
	m.CreatedAt = existing.CreatedAt
	m.UpdatedAt = time.Now()
	if err := s.Repo.Update(&m); err != nil {
		return nil, fmt.Errorf("failed to update medication: %w", err)
	}
	return &m, nil
}

func (s *DefaultMedicationService) DeleteMedication(id string) error {
	if _, err := s.GetMedicationByID(id); err != nil {
		return err
	}
	if err := s.Repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete medication: %w", err)
	}
	return nil
}

func (s *DefaultMedicationService) SearchMedications(query string, params models.ListParams) ([]models.Medication, models.Pagination, error) {
	params.Normalize()
	meds, total, err := s.Repo.Search(query, params)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("failed to search medications: %w", err)
	}
	return meds, pageOf(params, total), nil
}

func (s *DefaultMedicationService) ListMedications(params models.ListParams) ([]models.Medication, models.Pagination, error) {
	params.Normalize()
	meds, total, err := s.Repo.List(params)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("failed to list medications: %w", err)
	}
	return meds, pageOf(params, total), nil
}

func pageOf(p models.ListParams, total int64) models.Pagination {
	return models.Pagination{Page: p.Page, Limit: p.Limit, Total: total, Pages: p.PageCount(total)}
}
