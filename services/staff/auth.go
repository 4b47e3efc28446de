package staff

import (
	"context"
	"errors"
	"fmt"
	"time"

	staffRepo "dentra/database/repository/staff"
	"dentra/models"
	"dentra/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenDuration = 12 * time.Hour

// ErrStaffNotFound is returned when no staff account matches the lookup.
var ErrStaffNotFound = errors.New("staff account not found")

// ErrInvalidCredentials is returned on a failed sign-in. The message never
// says whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrEmailTaken is returned when another staff account uses the email.
var ErrEmailTaken = errors.New("a staff account with this email already exists")

var validRoles = map[string]bool{
	models.RoleAdmin:        true,
	models.RoleDentist:      true,
	models.RoleReceptionist: true,
}

// RegisterStaff creates a staff account with a bcrypt-hashed password.
// Route-level authorization restricts this to admins.
func (s *DefaultStaffService) RegisterStaff(st models.Staff, password string) (*models.Staff, error) {
	if st.Name == "" || st.Email == "" {
		return nil, fmt.Errorf("name and email are required")
	}
	if !validRoles[st.Role] {
		return nil, fmt.Errorf("unknown role: %s", st.Role)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}
	existing, err := s.Repo.GetByEmail(st.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check staff email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	st.ID = uuid.New().String()
	st.PasswordHash = string(hash)
	st.CreatedAt = now
	st.UpdatedAt = now
	if err := s.Repo.Create(&st); err != nil {
		return nil, fmt.Errorf("failed to create staff account: %w", err)
	}

	utils.GetLogger().Info("staff account created",
		zap.String("staffID", st.ID),
		zap.String("role", st.Role),
	)
	return &st, nil
}

// Authenticate verifies credentials and issues a JWT. The token hash is
// primed into the auth cache so middleware can skip the DB on the hot path.
func (s *DefaultStaffService) Authenticate(email, password string) (*AuthResult, error) {
	st, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up staff account: %w", err)
	}
	if st == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(st.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(st.ID, st.Email, st.Role, tokenDuration)
	if err != nil {
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	cacheKey := utils.AuthCachePrefix + utils.HashToken(token)
	authCache := utils.GetAuthCacheClient()
	if authCache != nil {
		if err := authCache.Set(context.Background(), cacheKey, st.ID+":"+st.Role, utils.AuthCacheTTL).Err(); err != nil {
			utils.GetLogger().Warn("failed to prime auth cache", zap.Error(err))
		}
	}

	utils.GetLogger().Info("staff signed in", zap.String("staffID", st.ID))
	return &AuthResult{Staff: st, Token: token}, nil
}

// RevokeToken removes the token from the auth cache. The JWT itself stays
// valid until expiry; revocation only drops the cached fast path.
func (s *DefaultStaffService) RevokeToken(token string) error {
	authCache := utils.GetAuthCacheClient()
	if authCache == nil {
		return nil
	}
	cacheKey := utils.AuthCachePrefix + utils.HashToken(token)
	if err := authCache.Del(context.Background(), cacheKey).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

func (s *DefaultStaffService) GetStaffByID(id string) (*models.Staff, error) {
	st, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, staffRepo.ErrNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, fmt.Errorf("failed to fetch staff account: %w", err)
	}
	return st, nil
}

func (s *DefaultStaffService) UpdateStaff(st models.Staff) (*models.Staff, error) {
	existing, err := s.GetStaffByID(st.ID)
	if err != nil {
		return nil, err
	}
	if st.Role != "" && !validRoles[st.Role] {
		return nil, fmt.Errorf("unknown role: %s", st.Role)
	}
	if st.Email != "" && st.Email != existing.Email {
		other, err := s.Repo.GetByEmail(st.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check staff email: %w", err)
		}
		if other != nil && other.ID != st.ID {
			return nil, ErrEmailTaken
		}
	}

	st.PasswordHash = existing.PasswordHash
	st.CreatedAt = existing.CreatedAt
	st.UpdatedAt = time.Now()
	if err := s.Repo.Update(&st); err != nil {
		return nil, fmt.Errorf("failed to update staff account: %w", err)
	}
	return &st, nil
}

func (s *DefaultStaffService) ChangePassword(staffID, currentPassword, newPassword string) error {
	st, err := s.GetStaffByID(staffID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(st.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}
	if len(newPassword) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	st.PasswordHash = string(hash)
	st.UpdatedAt = time.Now()
	if err := s.Repo.Update(st); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func (s *DefaultStaffService) ListStaff(params models.ListParams) ([]models.Staff, models.Pagination, error) {
	params.Normalize()
	accounts, total, err := s.Repo.List(params)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("failed to list staff: %w", err)
	}
	pagination := models.Pagination{
		Page:  params.Page,
		Limit: params.Limit,
		Total: total,
		Pages: params.PageCount(total),
	}
	return accounts, pagination, nil
}
