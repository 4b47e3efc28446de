package prescription

import (
	"errors"
	"fmt"
	"time"

	medicationRepo "dentra/database/repository/medication"
	prescriptionRepo "dentra/database/repository/prescription"
	"dentra/models"
	"dentra/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrPrescriptionNotFound is returned when no prescription matches the ID.
var ErrPrescriptionNotFound = errors.New("prescription not found")

// PrescriptionService issues and manages prescriptions. Every item must
// reference a medication present in the catalog.
type PrescriptionService interface {
	CreatePrescription(p models.Prescription) (*models.Prescription, error)
	GetPrescriptionByID(id string) (*models.Prescription, error)
	UpdatePrescription(p models.Prescription) (*models.Prescription, error)
	DeletePrescription(id string) error
	GetPatientPrescriptions(patientID string, params models.ListParams) ([]models.Prescription, models.Pagination, error)
	ListPrescriptions(params models.ListParams) ([]models.Prescription, models.Pagination, error)
}

type DefaultPrescriptionService struct {
	Repo        prescriptionRepo.PrescriptionRepository
	Medications medicationRepo.MedicationRepository
}

func (s *DefaultPrescriptionService) validateItems(items []models.PrescriptionItem) error {
	if len(items) == 0 {
		return fmt.Errorf("prescription must include at least one item")
	}
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if item.MedicationID == "" {
			return fmt.Errorf("prescription item is missing a medication")
		}
		if item.Dosage == "" || item.Frequency == "" {
			return fmt.Errorf("prescription item requires dosage and frequency")
		}
		ids = append(ids, item.MedicationID)
	}

	found, err := s.Medications.GetByIDs(ids)
	if err != nil {
		return fmt.Errorf("failed to verify medications: %w", err)
	}
	known := make(map[string]bool, len(found))
	for _, m := range found {
		known[m.ID] = true
	}
	for _, id := range ids {
		if !known[id] {
			return fmt.Errorf("unknown medication: %s", id)
		}
	}
	return nil
}

func (s *DefaultPrescriptionService) CreatePrescription(p models.Prescription) (*models.Prescription, error) {
	if p.PatientID == "" {
		return nil, fmt.Errorf("patientId is required")
	}
	if p.DentistID == "" {
		return nil, fmt.Errorf("dentistId is required")
	}
	if err := s.validateItems(p.Items); err != nil {
		return nil, err
	}

	now := time.Now()
	p.ID = uuid.New().String()
	if p.IssuedAt.IsZero() {
		p.IssuedAt = now
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := s.Repo.Create(&p); err != nil {
		return nil, fmt.Errorf("failed to create prescription: %w", err)
	}

	utils.GetLogger().Info("prescription issued",
		zap.String("prescriptionID", p.ID),
		zap.String("patientID", p.PatientID),
		zap.Int("items", len(p.Items)),
	)
	return &p, nil
}

func (s *DefaultPrescriptionService) GetPrescriptionByID(id string) (*models.Prescription, error) {
	p, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, prescriptionRepo.ErrNotFound) {
			return nil, ErrPrescriptionNotFound
		}
		return nil, fmt.Errorf("failed to fetch prescription: %w", err)
	}
	return p, nil
}

func (s *DefaultPrescriptionService) UpdatePrescription(p models.Prescription) (*models.Prescription, error) {
	existing, err := s.GetPrescriptionByID(p.ID)
	if err != nil {
		return nil, err
	}
	if err := s.validateItems(p.Items); err != nil {
		return nil, err
	}
	p.PatientID = existing.PatientID
	p.DentistID = existing.DentistID
	p.IssuedAt = existing.IssuedAt
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now()
	if err := s.Repo.Update(&p); err != nil {
		return nil, fmt.Errorf("failed to update prescription: %w", err)
	}
	return &p, nil
}

func (s *DefaultPrescriptionService) DeletePrescription(id string) error {
	if _, err := s.GetPrescriptionByID(id); err != nil {
		return err
	}
	if err := s.Repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete prescription: %w", err)
	}
	return nil
}

func (s *DefaultPrescriptionService) GetPatientPrescriptions(patientID string, params models.ListParams) ([]models.Prescription, models.Pagination, error) {
	params.Normalize()
	list, total, err := s.Repo.GetByPatient(patientID, params)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	return list, pageOf(params, total), nil
}

func (s *DefaultPrescriptionService) ListPrescriptions(params models.ListParams) ([]models.Prescription, models.Pagination, error) {
	params.Normalize()
	list, total, err := s.Repo.List(params)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	return list, pageOf(params, total), nil
}

func pageOf(p models.ListParams, total int64) models.Pagination {
	return models.Pagination{Page: p.Page, Limit: p.Limit, Total: total, Pages: p.PageCount(total)}
}
