package dtos

import (
	"github.com/google/uuid"

	"github.com/kodipay/kodipay-server/internal/models"
)

// ----------------------
// Create Property
// ----------------------

type CreateRoomRequest struct {
	RoomNumber string `json:"roomNumber" validate:"required,max=20"`
}

type CreateFloorRequest struct {
	FloorNumber int                 `json:"floorNumber" validate:"min=0"`
	Rooms       []CreateRoomRequest `json:"rooms" validate:"required,min=1,dive"`
}

type CreatePropertyRequest struct {
	Name        string               `json:"name" validate:"required,max=200"`
	Address     string               `json:"address" validate:"required,max=500"`
	RentAmount  float64              `json:"rentAmount" validate:"required,gt=0"`
	Description string               `json:"description" validate:"max=2000"`
	Floors      []CreateFloorRequest `json:"floors" validate:"required,min=1,dive"`
}

// ----------------------
// Assign / Release
// ----------------------

type AssignTenantRequest struct {
	TenantID    uuid.UUID `json:"tenantId" validate:"required"`
	FloorNumber int       `json:"floorNumber" validate:"min=0"`
	RoomNumber  string    `json:"roomNumber" validate:"required"`
}

type ReleaseTenantRequest struct {
	FloorNumber int    `json:"floorNumber" validate:"min=0"`
	RoomNumber  string `json:"roomNumber" validate:"required"`
}

// AssignRoomRequest targets a room directly by its id.
type AssignRoomRequest struct {
	TenantID uuid.UUID `json:"tenantId" validate:"required"`
}

// ----------------------
// Responses
// ----------------------

type PropertyResponse struct {
	*models.Property
	OccupiedRooms int `json:"occupiedRooms"`
}
