package staff

import (
	staffRepo "dentra/database/repository/staff"
	"dentra/models"
)

// AuthResult is returned on successful sign-in.
type AuthResult struct {
	Staff *models.Staff `json:"staff"`
	Token string        `json:"token"`
}

// StaffService manages clinic staff accounts and sign-in.
type StaffService interface {
	RegisterStaff(s models.Staff, password string) (*models.Staff, error)
	Authenticate(email, password string) (*AuthResult, error)
	RevokeToken(token string) error
	GetStaffByID(id string) (*models.Staff, error)
	UpdateStaff(s models.Staff) (*models.Staff, error)
	ChangePassword(staffID, currentPassword, newPassword string) error
	ListStaff(params models.ListParams) ([]models.Staff, models.Pagination, error)
}

// DefaultStaffService is the production implementation.
type DefaultStaffService struct {
	Repo staffRepo.StaffRepository
}
