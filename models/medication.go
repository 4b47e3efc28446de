package models

import "time"

// Medication is one entry in the clinic's medication catalog.
type Medication struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	GenericName string    `bson:"genericName,omitempty" json:"genericName,omitempty"`
	Form        string    `bson:"form,omitempty" json:"form,omitempty"` // tablet, capsule, rinse...
	Strength    string    `bson:"strength,omitempty" json:"strength,omitempty"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}
