package patient

import (
	"strings"
	"testing"

	billingRepo "dentra/database/repository/billing"
	patientRepo "dentra/database/repository/patient"
	"dentra/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePatientRepo struct {
	patients map[string]models.Patient
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: make(map[string]models.Patient)}
}

func (f *fakePatientRepo) Create(p *models.Patient) error {
	f.patients[p.ID] = *p
	return nil
}

func (f *fakePatientRepo) Update(p *models.Patient) error {
	if _, ok := f.patients[p.ID]; !ok {
		return patientRepo.ErrNotFound
	}
	f.patients[p.ID] = *p
	return nil
}

func (f *fakePatientRepo) Delete(id string) error {
	if _, ok := f.patients[id]; !ok {
		return patientRepo.ErrNotFound
	}
	delete(f.patients, id)
	return nil
}

func (f *fakePatientRepo) GetByID(id string) (*models.Patient, error) {
	p, ok := f.patients[id]
	if !ok {
		return nil, patientRepo.ErrNotFound
	}
	out := p
	return &out, nil
}

func (f *fakePatientRepo) GetByEmail(email string) (*models.Patient, error) {
	for _, p := range f.patients {
		if p.Email == email {
			out := p
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakePatientRepo) Search(query string, params models.ListParams) ([]models.Patient, int64, error) {
	var out []models.Patient
	for _, p := range f.patients {
		if strings.Contains(strings.ToLower(p.FullName()), strings.ToLower(query)) {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakePatientRepo) List(params models.ListParams) ([]models.Patient, int64, error) {
	var out []models.Patient
	for _, p := range f.patients {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

// fakeInvoiceRepo only needs List for the delete-block rule.
type fakeInvoiceRepo struct {
	invoices []models.Invoice
}

func (f *fakeInvoiceRepo) Create(inv *models.Invoice) error { return nil }
func (f *fakeInvoiceRepo) Update(inv *models.Invoice) error { return nil }
func (f *fakeInvoiceRepo) Delete(id string) error           { return nil }
func (f *fakeInvoiceRepo) GetByID(id string) (*models.Invoice, error) {
	return nil, billingRepo.ErrNotFound
}

func (f *fakeInvoiceRepo) List(filter billingRepo.InvoiceFilter, p models.ListParams) ([]models.Invoice, int64, error) {
	var out []models.Invoice
	for _, inv := range f.invoices {
		if filter.PatientID != "" && inv.PatientID != filter.PatientID {
			continue
		}
		if filter.Status != "" && inv.PaymentStatus != filter.Status {
			continue
		}
		out = append(out, inv)
	}
	return out, int64(len(out)), nil
}

func (f *fakeInvoiceRepo) AppendPayment(invoiceID string, payment models.Payment, update billingRepo.PaymentUpdate) error {
	return billingRepo.ErrNotFound
}

func newTestService(invoices ...models.Invoice) *DefaultPatientService {
	return &DefaultPatientService{
		Repo:        newFakePatientRepo(),
		InvoiceRepo: &fakeInvoiceRepo{invoices: invoices},
	}
}

func TestCreatePatient(t *testing.T) {
	svc := newTestService()

	created, err := svc.CreatePatient(models.Patient{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.test",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Ada Lovelace", created.FullName())
}

func TestCreatePatientEmailTaken(t *testing.T) {
	svc := newTestService()

	_, err := svc.CreatePatient(models.Patient{FirstName: "Ada", Email: "ada@example.test"})
	require.NoError(t, err)

	_, err = svc.CreatePatient(models.Patient{FirstName: "Other", Email: "ada@example.test"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestDeletePatient(t *testing.T) {
	svc := newTestService()

	created, err := svc.CreatePatient(models.Patient{FirstName: "Ada"})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePatient(created.ID))
	_, err = svc.GetPatientByID(created.ID)
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestDeletePatientBlockedByUnpaidInvoices(t *testing.T) {
	cases := []struct {
		name   string
		status models.PaymentStatus
	}{
		{"pending invoice", models.PaymentStatusPending},
		{"partial invoice", models.PaymentStatusPartial},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestService()
			created, err := svc.CreatePatient(models.Patient{FirstName: "Ada"})
			require.NoError(t, err)

			svc.InvoiceRepo = &fakeInvoiceRepo{invoices: []models.Invoice{
				{ID: "inv-1", PatientID: created.ID, PaymentStatus: tc.status},
			}}

			err = svc.DeletePatient(created.ID)
			assert.ErrorIs(t, err, ErrOutstandingInvoices)
			_, err = svc.GetPatientByID(created.ID)
			assert.NoError(t, err)
		})
	}
}

func TestDeletePatientAllowedWhenSettled(t *testing.T) {
	svc := newTestService()
	created, err := svc.CreatePatient(models.Patient{FirstName: "Ada"})
	require.NoError(t, err)

	svc.InvoiceRepo = &fakeInvoiceRepo{invoices: []models.Invoice{
		{ID: "inv-1", PatientID: created.ID, PaymentStatus: models.PaymentStatusPaid},
	}}
	assert.NoError(t, svc.DeletePatient(created.ID))
}

func TestUpdatePatientEmailConflict(t *testing.T) {
	svc := newTestService()

	ada, err := svc.CreatePatient(models.Patient{FirstName: "Ada", Email: "ada@example.test"})
	require.NoError(t, err)
	bob, err := svc.CreatePatient(models.Patient{FirstName: "Bob", Email: "bob@example.test"})
	require.NoError(t, err)

	bob.Email = ada.Email
	_, err = svc.UpdatePatient(*bob)
	assert.ErrorIs(t, err, ErrEmailTaken)
}
