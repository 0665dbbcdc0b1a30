package dtos

import (
	"github.com/google/uuid"

	"github.com/kodipay/kodipay-server/internal/models"
)

// ----------------------
// Register
// ----------------------

type RegisterRequest struct {
	FirstName   string `json:"firstName" validate:"required,max=100"`
	LastName    string `json:"lastName" validate:"required,max=100"`
	PhoneNumber string `json:"phoneNumber" validate:"required,e164"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	Role        string `json:"role" validate:"omitempty,oneof=tenant landlord"`
}

// ----------------------
// Login
// ----------------------

type LoginRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required"`
	Password    string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User         UserResponse `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
}

// ----------------------
// Refresh
// ----------------------

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// ----------------------
// User payloads
// ----------------------

type UserResponse struct {
	ID          uuid.UUID       `json:"id"`
	FirstName   string          `json:"firstName"`
	LastName    string          `json:"lastName"`
	PhoneNumber string          `json:"phoneNumber"`
	Role        models.RoleType `json:"role"`
	Apartment   string          `json:"apartment,omitempty"`
	HouseNumber string          `json:"houseNumber,omitempty"`
	MpesaNumber string          `json:"mpesaNumber,omitempty"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
		Apartment:   u.Apartment,
		HouseNumber: u.HouseNumber,
		MpesaNumber: u.MpesaNumber,
	}
}

type UpdateUserRequest struct {
	FirstName   *string `json:"firstName" validate:"omitempty,max=100"`
	LastName    *string `json:"lastName" validate:"omitempty,max=100"`
	Apartment   *string `json:"apartment"`
	HouseNumber *string `json:"houseNumber"`
	MpesaNumber *string `json:"mpesaNumber" validate:"omitempty,e164"`
}
