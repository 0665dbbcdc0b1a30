package models

import (
	"time"

	"github.com/google/uuid"
)

// Room is embedded in a Floor. It is addressable within the aggregate by
// its own uuid so callers can target a room without knowing its position.
// Invariant: IsOccupied == (TenantID != nil) after every occupancy operation.
type Room struct {
	ID         uuid.UUID  `json:"id"`
	RoomNumber string     `json:"roomNumber"`
	TenantID   *uuid.UUID `json:"tenantId"`
	IsOccupied bool       `json:"isOccupied"`
}

// Floor is embedded in a Property. Floors have no independent lifecycle.
type Floor struct {
	FloorNumber int    `json:"floorNumber"`
	Rooms       []Room `json:"rooms"`
}

// Property is the aggregate root. The floors tree is persisted as a single
// JSONB column, so a property write atomically covers every floor and room.
type Property struct {
	Versioned

	ID          uuid.UUID `json:"id"`
	LandlordID  uuid.UUID `json:"landlord_id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	RentAmount  float64   `json:"rent_amount"`
	Description string    `json:"description,omitempty"`
	Floors      []Floor   `json:"floors"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Property) GetID() string { return p.ID.String() }

// RoomLookup distinguishes "floor missing" from "room missing" so callers
// can report a precise not-found reason.
type RoomLookup int

const (
	RoomFound RoomLookup = iota
	FloorMissing
	RoomMissing
)

// FindRoom walks the in-memory tree. The returned pointer aliases the
// aggregate's slice, so mutations through it are persisted with the property.
func (p *Property) FindRoom(floorNumber int, roomNumber string) (*Room, RoomLookup) {
	for fi := range p.Floors {
		if p.Floors[fi].FloorNumber != floorNumber {
			continue
		}
		for ri := range p.Floors[fi].Rooms {
			if p.Floors[fi].Rooms[ri].RoomNumber == roomNumber {
				return &p.Floors[fi].Rooms[ri], RoomFound
			}
		}
		return nil, RoomMissing
	}
	return nil, FloorMissing
}

// FindRoomByID locates a room by its embedded uuid.
func (p *Property) FindRoomByID(roomID uuid.UUID) (*Room, int) {
	for fi := range p.Floors {
		for ri := range p.Floors[fi].Rooms {
			if p.Floors[fi].Rooms[ri].ID == roomID {
				return &p.Floors[fi].Rooms[ri], p.Floors[fi].FloorNumber
			}
		}
	}
	return nil, 0
}

// FindRoomByTenant returns the room currently holding the tenant, if any.
func (p *Property) FindRoomByTenant(tenantID uuid.UUID) *Room {
	for fi := range p.Floors {
		for ri := range p.Floors[fi].Rooms {
			r := &p.Floors[fi].Rooms[ri]
			if r.TenantID != nil && *r.TenantID == tenantID {
				return r
			}
		}
	}
	return nil
}

// OccupiedRooms counts rooms with a tenant across all floors.
func (p *Property) OccupiedRooms() int {
	n := 0
	for _, f := range p.Floors {
		for _, r := range f.Rooms {
			if r.IsOccupied {
				n++
			}
		}
	}
	return n
}

// NormalizeFloors mints ids for rooms that arrived without one and forces
// the occupancy flag to mirror the tenant reference.
func NormalizeFloors(floors []Floor) []Floor {
	for fi := range floors {
		for ri := range floors[fi].Rooms {
			r := &floors[fi].Rooms[ri]
			if r.ID == uuid.Nil {
				r.ID = uuid.New()
			}
			r.IsOccupied = r.TenantID != nil
		}
	}
	return floors
}
