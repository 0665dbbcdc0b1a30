package models

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is a read-model projection of room occupancy, kept for external
// consumers of the old flat Room/Tenant surface. The occupancy manager owns
// it; nothing else writes the property/room references.
type Tenant struct {
	ID         uuid.UUID  `json:"id"`
	UserID     *uuid.UUID `json:"user_id,omitempty"`
	Name       string     `json:"name"`
	Phone      string     `json:"phone"`
	Email      string     `json:"email,omitempty"`
	NationalID string     `json:"national_id,omitempty"`
	PropertyID *uuid.UUID `json:"property_id,omitempty"`
	RoomID     *uuid.UUID `json:"room_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
