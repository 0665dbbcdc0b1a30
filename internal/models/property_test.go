package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func testProperty() *Property {
	tenantID := uuid.New()
	return &Property{
		ID:         uuid.New(),
		LandlordID: uuid.New(),
		Name:       "Green Court",
		Floors: NormalizeFloors([]Floor{
			{FloorNumber: 0, Rooms: []Room{
				{RoomNumber: "G1", TenantID: &tenantID},
				{RoomNumber: "G2"},
			}},
			{FloorNumber: 2, Rooms: []Room{
				{RoomNumber: "201"},
			}},
		}),
	}
}

func TestFindRoomDistinguishesFloorAndRoomMisses(t *testing.T) {
	p := testProperty()

	room, outcome := p.FindRoom(0, "G2")
	require.Equal(t, RoomFound, outcome)
	require.Equal(t, "G2", room.RoomNumber)

	_, outcome = p.FindRoom(0, "G9")
	require.Equal(t, RoomMissing, outcome)

	_, outcome = p.FindRoom(5, "G1")
	require.Equal(t, FloorMissing, outcome)
}

func TestFindRoomReturnsAliasIntoAggregate(t *testing.T) {
	p := testProperty()

	room, outcome := p.FindRoom(2, "201")
	require.Equal(t, RoomFound, outcome)

	id := uuid.New()
	room.TenantID = &id
	room.IsOccupied = true

	// Mutation through the pointer is visible on the aggregate.
	require.True(t, p.Floors[1].Rooms[0].IsOccupied)
	require.Equal(t, id, *p.Floors[1].Rooms[0].TenantID)
}

func TestFindRoomByID(t *testing.T) {
	p := testProperty()
	want := p.Floors[1].Rooms[0]

	room, floorNumber := p.FindRoomByID(want.ID)
	require.NotNil(t, room)
	require.Equal(t, 2, floorNumber)
	require.Equal(t, "201", room.RoomNumber)

	room, _ = p.FindRoomByID(uuid.New())
	require.Nil(t, room)
}

func TestFindRoomByTenant(t *testing.T) {
	p := testProperty()
	occupant := *p.Floors[0].Rooms[0].TenantID

	room := p.FindRoomByTenant(occupant)
	require.NotNil(t, room)
	require.Equal(t, "G1", room.RoomNumber)

	require.Nil(t, p.FindRoomByTenant(uuid.New()))
}

func TestOccupiedRoomsCount(t *testing.T) {
	p := testProperty()
	require.Equal(t, 1, p.OccupiedRooms())
}

func TestNormalizeFloorsMintsIDsAndSyncsFlag(t *testing.T) {
	tenantID := uuid.New()
	keep := uuid.New()
	floors := NormalizeFloors([]Floor{
		{FloorNumber: 0, Rooms: []Room{
			{RoomNumber: "A", TenantID: &tenantID, IsOccupied: false}, // flag lies
			{RoomNumber: "B", IsOccupied: true},                       // flag lies the other way
			{ID: keep, RoomNumber: "C"},
		}},
	})

	require.NotEqual(t, uuid.Nil, floors[0].Rooms[0].ID)
	require.True(t, floors[0].Rooms[0].IsOccupied)
	require.False(t, floors[0].Rooms[1].IsOccupied)
	// Existing ids are preserved.
	require.Equal(t, keep, floors[0].Rooms[2].ID)
}
