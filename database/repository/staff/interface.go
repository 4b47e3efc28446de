package staffRepo

import (
	"errors"

	"dentra/models"
)

// ErrNotFound is returned when no staff account matches the lookup.
var ErrNotFound = errors.New("staff account not found")

// StaffRepository persists clinic staff accounts.
type StaffRepository interface {
	Create(s *models.Staff) error
	Update(s *models.Staff) error
	Delete(id string) error
	GetByID(id string) (*models.Staff, error)
	// GetByEmail returns nil, nil when no account exists for the email.
	GetByEmail(email string) (*models.Staff, error)
	List(params models.ListParams) ([]models.Staff, int64, error)
}
