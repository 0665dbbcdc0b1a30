package dtos

// ----------------------
// Tenant profiles
// ----------------------

type CreateTenantRequest struct {
	Name       string `json:"name" validate:"required,max=200"`
	Phone      string `json:"phone" validate:"required"`
	Email      string `json:"email" validate:"omitempty,email"`
	NationalID string `json:"nationalId" validate:"omitempty,max=20"`
}
