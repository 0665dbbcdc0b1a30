package models

import (
	"time"

	"github.com/google/uuid"
)

type RoleType string

const (
	RoleTenant   RoleType = "tenant"
	RoleLandlord RoleType = "landlord"
)

func (r RoleType) Valid() bool {
	return r == RoleTenant || r == RoleLandlord
}

// User is an identity record. Users are never hard-deleted.
type User struct {
	Versioned

	ID           uuid.UUID `json:"id"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	PhoneNumber  string    `json:"phone_number"`
	PasswordHash string    `json:"-"`
	Role         RoleType  `json:"role"`
	Apartment    string    `json:"apartment,omitempty"`
	HouseNumber  string    `json:"house_number,omitempty"`
	MpesaNumber  string    `json:"mpesa_number,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) GetID() string { return u.ID.String() }
