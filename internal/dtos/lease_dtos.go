package dtos

import (
	"time"

	"github.com/google/uuid"
)

// ----------------------
// Leases
// ----------------------

type CreateLeaseRequest struct {
	TenantID   uuid.UUID `json:"tenantId" validate:"required"`
	PropertyID uuid.UUID `json:"propertyId" validate:"required"`
	StartDate  time.Time `json:"startDate" validate:"required"`
	EndDate    time.Time `json:"endDate" validate:"required"`
	RentAmount float64   `json:"rentAmount" validate:"required,gt=0"`
}

type UpdateLeaseRequest struct {
	StartDate  *time.Time `json:"startDate"`
	EndDate    *time.Time `json:"endDate"`
	RentAmount *float64   `json:"rentAmount" validate:"omitempty,gt=0"`
}
