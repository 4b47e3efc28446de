package models

import "time"

// Patient is a clinic patient record.
type Patient struct {
	ID             string     `bson:"id" json:"id"`
	ClinicID       string     `bson:"clinicId,omitempty" json:"clinicId,omitempty"`
	FirstName      string     `bson:"firstName" json:"firstName"`
	LastName       string     `bson:"lastName" json:"lastName"`
	Email          string     `bson:"email,omitempty" json:"email,omitempty"`
	PhoneNumber    string     `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	DateOfBirth    *time.Time `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	Gender         string     `bson:"gender,omitempty" json:"gender,omitempty"`
	Address        string     `bson:"address,omitempty" json:"address,omitempty"`
	Allergies      []string   `bson:"allergies,omitempty" json:"allergies,omitempty"`
	MedicalHistory []string   `bson:"medicalHistory,omitempty" json:"medicalHistory,omitempty"`
	// FCMToken is the patient's device token for appointment reminder pushes.
	FCMToken  string    `bson:"fcmToken,omitempty" json:"fcmToken,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// FullName returns the patient's display name.
func (p Patient) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
