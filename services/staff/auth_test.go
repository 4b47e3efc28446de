package staff

import (
	"testing"

	staffRepo "dentra/database/repository/staff"
	"dentra/models"
	"dentra/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStaffRepo struct {
	accounts map[string]models.Staff
}

func newFakeStaffRepo() *fakeStaffRepo {
	return &fakeStaffRepo{accounts: make(map[string]models.Staff)}
}

func (f *fakeStaffRepo) Create(s *models.Staff) error {
	f.accounts[s.ID] = *s
	return nil
}

func (f *fakeStaffRepo) Update(s *models.Staff) error {
	if _, ok := f.accounts[s.ID]; !ok {
		return staffRepo.ErrNotFound
	}
	f.accounts[s.ID] = *s
	return nil
}

func (f *fakeStaffRepo) Delete(id string) error {
	delete(f.accounts, id)
	return nil
}

func (f *fakeStaffRepo) GetByID(id string) (*models.Staff, error) {
	s, ok := f.accounts[id]
	if !ok {
		return nil, staffRepo.ErrNotFound
	}
	out := s
	return &out, nil
}

func (f *fakeStaffRepo) GetByEmail(email string) (*models.Staff, error) {
	for _, s := range f.accounts {
		if s.Email == email {
			out := s
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeStaffRepo) List(params models.ListParams) ([]models.Staff, int64, error) {
	var out []models.Staff
	for _, s := range f.accounts {
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

func registerTestStaff(t *testing.T, svc *DefaultStaffService) *models.Staff {
	t.Helper()
	created, err := svc.RegisterStaff(models.Staff{
		Name:  "Grace Odhiambo",
		Email: "grace@clinic.test",
		Role:  models.RoleReceptionist,
	}, "correct-horse-battery")
	require.NoError(t, err)
	return created
}

func TestRegisterStaff(t *testing.T) {
	svc := &DefaultStaffService{Repo: newFakeStaffRepo()}

	created := registerTestStaff(t, svc)
	assert.NotEmpty(t, created.ID)
	assert.NotEmpty(t, created.PasswordHash)
	assert.NotEqual(t, "correct-horse-battery", created.PasswordHash)
}

func TestRegisterStaffValidation(t *testing.T) {
	svc := &DefaultStaffService{Repo: newFakeStaffRepo()}
	registerTestStaff(t, svc)

	cases := []struct {
		name     string
		staff    models.Staff
		password string
	}{
		{"missing name", models.Staff{Email: "a@b.test", Role: models.RoleDentist}, "longenough1"},
		{"unknown role", models.Staff{Name: "X", Email: "a@b.test", Role: "janitor"}, "longenough1"},
		{"short password", models.Staff{Name: "X", Email: "a@b.test", Role: models.RoleDentist}, "short"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.RegisterStaff(tc.staff, tc.password)
			assert.Error(t, err)
		})
	}

	_, err := svc.RegisterStaff(models.Staff{
		Name: "Dup", Email: "grace@clinic.test", Role: models.RoleDentist,
	}, "longenough1")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthenticate(t *testing.T) {
	svc := &DefaultStaffService{Repo: newFakeStaffRepo()}
	created := registerTestStaff(t, svc)

	result, err := svc.Authenticate("grace@clinic.test", "correct-horse-battery")
	require.NoError(t, err)
	assert.Equal(t, created.ID, result.Staff.ID)
	assert.NotEmpty(t, result.Token)

	staffID, role, err := utils.ExtractClaimsFromToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, staffID)
	assert.Equal(t, models.RoleReceptionist, role)
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	svc := &DefaultStaffService{Repo: newFakeStaffRepo()}
	registerTestStaff(t, svc)

	_, err := svc.Authenticate("grace@clinic.test", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate("nobody@clinic.test", "correct-horse-battery")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	svc := &DefaultStaffService{Repo: newFakeStaffRepo()}
	created := registerTestStaff(t, svc)

	err := svc.ChangePassword(created.ID, "wrong-password", "a-new-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(created.ID, "correct-horse-battery", "a-new-password"))

	_, err = svc.Authenticate("grace@clinic.test", "correct-horse-battery")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Authenticate("grace@clinic.test", "a-new-password")
	assert.NoError(t, err)
}

func TestUpdateStaffKeepsPasswordHash(t *testing.T) {
	svc := &DefaultStaffService{Repo: newFakeStaffRepo()}
	created := registerTestStaff(t, svc)

	updated, err := svc.UpdateStaff(models.Staff{
		ID:    created.ID,
		Name:  "Grace A. Odhiambo",
		Email: created.Email,
		Role:  models.RoleAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, created.PasswordHash, updated.PasswordHash)

	_, err = svc.Authenticate("grace@clinic.test", "correct-horse-battery")
	assert.NoError(t, err)
}
