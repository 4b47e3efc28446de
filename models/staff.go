package models

import "time"

// Staff roles.
const (
	RoleAdmin        = "admin"
	RoleDentist      = "dentist"
	RoleReceptionist = "receptionist"
)

// Staff is a clinic staff account (dentist, receptionist or admin).
type Staff struct {
	ID           string    `bson:"id" json:"id"`
	ClinicID     string    `bson:"clinicId,omitempty" json:"clinicId,omitempty"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PhoneNumber  string    `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	Role         string    `bson:"role" json:"role"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Principal is the authenticated identity attached to a request by the auth
// middleware. Handlers and services receive it explicitly rather than
// reading ambient globals.
type Principal struct {
	StaffID string `json:"staffId"`
	Role    string `json:"role"`
}

// CanManageBilling reports whether the principal may create, modify or
// record payments on invoices.
func (p Principal) CanManageBilling() bool {
	return p.Role == RoleAdmin || p.Role == RoleReceptionist
}
