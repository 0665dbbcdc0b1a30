package dtos

import (
	"time"

	"github.com/google/uuid"
)

// ----------------------
// Create Bill
// ----------------------

type CreateBillRequest struct {
	TenantID    uuid.UUID `json:"tenantId" validate:"required"`
	PropertyID  uuid.UUID `json:"propertyId" validate:"required"`
	Amount      float64   `json:"amount" validate:"required,gt=0"`
	Description string    `json:"description" validate:"max=500"`
	DueDate     time.Time `json:"dueDate" validate:"required"`
	Type        string    `json:"type" validate:"required,oneof=rent utility maintenance other"`
}

// ----------------------
// Filtering
// ----------------------

// BillFilterQuery mirrors the query-string filters on the landlord listing.
type BillFilterQuery struct {
	Status     string `json:"status" validate:"omitempty,oneof=pending paid overdue cancelled"`
	Type       string `json:"type" validate:"omitempty,oneof=rent utility maintenance other"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	TenantName string `json:"tenantName"`
}
