package models

import (
	"time"

	"github.com/google/uuid"
)

// Lease binds one tenant to one property for a date range. Balance updates
// go through the optimistic-retry path, so the model is versioned.
type Lease struct {
	Versioned

	ID         uuid.UUID `json:"id"`
	TenantID   uuid.UUID `json:"tenant_id"`
	PropertyID uuid.UUID `json:"property_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	RentAmount float64   `json:"rent_amount"`
	Balance    float64   `json:"balance"`
	CreatedAt  time.Time `json:"created_at"`
}

func (l *Lease) GetID() string { return l.ID.String() }
