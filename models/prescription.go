package models

import "time"

// PrescriptionItem is one prescribed medication with its directions.
type PrescriptionItem struct {
	MedicationID string `bson:"medicationId" json:"medicationId"`
	Dosage       string `bson:"dosage" json:"dosage"`
	Frequency    string `bson:"frequency" json:"frequency"`
	Duration     string `bson:"duration" json:"duration"`
	Instructions string `bson:"instructions,omitempty" json:"instructions,omitempty"`
}

// Prescription links a patient and prescribing dentist to a set of
// medication items. Items must reference medications in the catalog.
type Prescription struct {
	ID        string             `bson:"id" json:"id"`
	PatientID string             `bson:"patientId" json:"patientId"`
	DentistID string             `bson:"dentistId" json:"dentistId"`
	Items     []PrescriptionItem `bson:"items" json:"items"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	IssuedAt  time.Time          `bson:"issuedAt" json:"issuedAt"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}
