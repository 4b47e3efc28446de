package prescription

import (
	"testing"

	medicationRepo "dentra/database/repository/medication"
	prescriptionRepo "dentra/database/repository/prescription"
	"dentra/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePrescriptionRepo struct {
	prescriptions map[string]models.Prescription
}

func newFakePrescriptionRepo() *fakePrescriptionRepo {
	return &fakePrescriptionRepo{prescriptions: make(map[string]models.Prescription)}
}

func (f *fakePrescriptionRepo) Create(p *models.Prescription) error {
	f.prescriptions[p.ID] = *p
	return nil
}

func (f *fakePrescriptionRepo) Update(p *models.Prescription) error {
	if _, ok := f.prescriptions[p.ID]; !ok {
		return prescriptionRepo.ErrNotFound
	}
	f.prescriptions[p.ID] = *p
	return nil
}

func (f *fakePrescriptionRepo) Delete(id string) error {
	delete(f.prescriptions, id)
	return nil
}

func (f *fakePrescriptionRepo) GetByID(id string) (*models.Prescription, error) {
	p, ok := f.prescriptions[id]
	if !ok {
		return nil, prescriptionRepo.ErrNotFound
	}
	out := p
	return &out, nil
}

func (f *fakePrescriptionRepo) GetByPatient(patientID string, params models.ListParams) ([]models.Prescription, int64, error) {
	var out []models.Prescription
	for _, p := range f.prescriptions {
		if p.PatientID == patientID {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakePrescriptionRepo) List(params models.ListParams) ([]models.Prescription, int64, error) {
	var out []models.Prescription
	for _, p := range f.prescriptions {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

type fakeMedicationRepo struct {
	catalog map[string]models.Medication
}

func newFakeMedicationRepo(meds ...models.Medication) *fakeMedicationRepo {
	f := &fakeMedicationRepo{catalog: make(map[string]models.Medication)}
	for _, m := range meds {
		f.catalog[m.ID] = m
	}
	return f
}

func (f *fakeMedicationRepo) Create(m *models.Medication) error {
	f.catalog[m.ID] = *m
	return nil
}

func (f *fakeMedicationRepo) Update(m *models.Medication) error {
	f.catalog[m.ID] = *m
	return nil
}

func (f *fakeMedicationRepo) Delete(id string) error {
	delete(f.catalog, id)
	return nil
}

func (f *fakeMedicationRepo) GetByID(id string) (*models.Medication, error) {
	m, ok := f.catalog[id]
	if !ok {
		return nil, medicationRepo.ErrNotFound
	}
	out := m
	return &out, nil
}

func (f *fakeMedicationRepo) GetByIDs(ids []string) ([]models.Medication, error) {
	var out []models.Medication
	for _, id := range ids {
		if m, ok := f.catalog[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMedicationRepo) Search(query string, params models.ListParams) ([]models.Medication, int64, error) {
	return nil, 0, nil
}

func (f *fakeMedicationRepo) List(params models.ListParams) ([]models.Medication, int64, error) {
	return nil, 0, nil
}

func newTestService() *DefaultPrescriptionService {
	return &DefaultPrescriptionService{
		Repo: newFakePrescriptionRepo(),
		Medications: newFakeMedicationRepo(
			models.Medication{ID: "med-amox", Name: "Amoxicillin", Strength: "500mg"},
			models.Medication{ID: "med-ibu", Name: "Ibuprofen", Strength: "400mg"},
		),
	}
}

func validItem() models.PrescriptionItem {
	return models.PrescriptionItem{
		MedicationID: "med-amox",
		Dosage:       "500mg",
		Frequency:    "3x daily",
		Duration:     "7 days",
	}
}

func TestCreatePrescription(t *testing.T) {
	svc := newTestService()

	created, err := svc.CreatePrescription(models.Prescription{
		PatientID: "pat-1",
		DentistID: "den-1",
		Items:     []models.PrescriptionItem{validItem()},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.IssuedAt.IsZero())
}

func TestCreatePrescriptionRejectsUnknownMedication(t *testing.T) {
	svc := newTestService()

	item := validItem()
	item.MedicationID = "med-unknown"
	_, err := svc.CreatePrescription(models.Prescription{
		PatientID: "pat-1",
		DentistID: "den-1",
		Items:     []models.PrescriptionItem{validItem(), item},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "med-unknown")
}

func TestCreatePrescriptionValidation(t *testing.T) {
	svc := newTestService()

	noDosage := validItem()
	noDosage.Dosage = ""

	cases := []struct {
		name string
		p    models.Prescription
	}{
		{"missing patient", models.Prescription{DentistID: "den-1", Items: []models.PrescriptionItem{validItem()}}},
		{"missing dentist", models.Prescription{PatientID: "pat-1", Items: []models.PrescriptionItem{validItem()}}},
		{"no items", models.Prescription{PatientID: "pat-1", DentistID: "den-1"}},
		{"item missing dosage", models.Prescription{PatientID: "pat-1", DentistID: "den-1", Items: []models.PrescriptionItem{noDosage}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreatePrescription(tc.p)
			assert.Error(t, err)
		})
	}
}

func TestUpdatePrescriptionKeepsIdentity(t *testing.T) {
	svc := newTestService()

	created, err := svc.CreatePrescription(models.Prescription{
		PatientID: "pat-1",
		DentistID: "den-1",
		Items:     []models.PrescriptionItem{validItem()},
	})
	require.NoError(t, err)

	ibu := validItem()
	ibu.MedicationID = "med-ibu"
	updated, err := svc.UpdatePrescription(models.Prescription{
		ID:        created.ID,
		PatientID: "someone-else",
		Items:     []models.PrescriptionItem{ibu},
	})
	require.NoError(t, err)
	// Patient and dentist are fixed at issue time.
	assert.Equal(t, "pat-1", updated.PatientID)
	assert.Equal(t, "den-1", updated.DentistID)
	assert.Equal(t, "med-ibu", updated.Items[0].MedicationID)
}
