package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/kodipay/kodipay-server/internal/models"
	"github.com/kodipay/kodipay-server/internal/utils"
)

func buildProperty(landlordID uuid.UUID) *models.Property {
	p := &models.Property{
		ID:         uuid.New(),
		LandlordID: landlordID,
		Name:       "Sunrise Apartments",
		Address:    "Ngong Road, Nairobi",
		RentAmount: 15000,
		Floors: []models.Floor{
			{FloorNumber: 0, Rooms: []models.Room{
				{RoomNumber: "G1"}, {RoomNumber: "G2"},
			}},
			{FloorNumber: 1, Rooms: []models.Room{
				{RoomNumber: "101"}, {RoomNumber: "102"},
			}},
		},
	}
	p.Floors = models.NormalizeFloors(p.Floors)
	return p
}

func tenantUser() *models.User {
	return &models.User{
		ID:          uuid.New(),
		FirstName:   "Akinyi",
		LastName:    "Odhiambo",
		PhoneNumber: "+254700000001",
		Role:        models.RoleTenant,
	}
}

type occupancyFixture struct {
	svc      OccupancyService
	props    *fakePropertyRepo
	users    *fakeUserRepo
	tenants  *fakeTenantRepo
	notifier *recordingNotifier
}

func newOccupancyFixture(props *fakePropertyRepo, users *fakeUserRepo) *occupancyFixture {
	tenants := newFakeTenantRepo()
	notifier := &recordingNotifier{}
	return &occupancyFixture{
		svc:      NewOccupancyService(props, users, tenants, notifier),
		props:    props,
		users:    users,
		tenants:  tenants,
		notifier: notifier,
	}
}

func appErrCode(t *testing.T, err error) (int, string) {
	t.Helper()
	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	return appErr.StatusCode, appErr.Code
}

func TestAssignTenantHappyPath(t *testing.T) {
	landlordID := uuid.New()
	property := buildProperty(landlordID)
	tenant := tenantUser()

	f := newOccupancyFixture(newFakePropertyRepo(property), newFakeUserRepo(tenant))

	updated, err := f.svc.AssignTenant(context.Background(), property.ID, 1, "101", tenant.ID, landlordID)
	require.NoError(t, err)

	room, outcome := updated.FindRoom(1, "101")
	require.Equal(t, models.RoomFound, outcome)
	require.True(t, room.IsOccupied)
	require.NotNil(t, room.TenantID)
	require.Equal(t, tenant.ID, *room.TenantID)

	// The projection row points at the property and room.
	proj, err := f.tenants.GetByUserID(context.Background(), tenant.ID)
	require.NoError(t, err)
	require.NotNil(t, proj)
	require.Equal(t, property.ID, *proj.PropertyID)
	require.Equal(t, room.ID, *proj.RoomID)

	// The tenant was told about the move.
	require.Len(t, f.notifier.contents, 1)
	require.Equal(t, tenant.ID, f.notifier.tenants[0])
	require.Contains(t, f.notifier.contents[0], "room 101")
	require.Contains(t, f.notifier.contents[0], "Sunrise Apartments")
}

func TestAssignTenantRoomAlreadyOccupied(t *testing.T) {
	landlordID := uuid.New()
	property := buildProperty(landlordID)
	sitting := tenantUser()
	incoming := tenantUser()

	f := newOccupancyFixture(newFakePropertyRepo(property), newFakeUserRepo(sitting, incoming))

	_, err := f.svc.AssignTenant(context.Background(), property.ID, 0, "G1", sitting.ID, landlordID)
	require.NoError(t, err)

	_, err = f.svc.AssignTenant(context.Background(), property.ID, 0, "G1", incoming.ID, landlordID)
	status, code := appErrCode(t, err)
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, utils.ErrCodeRoomOccupied, code)

	// The failed assign left the room untouched.
	stored, err := f.props.GetByID(context.Background(), property.ID)
	require.NoError(t, err)
	room, _ := stored.FindRoom(0, "G1")
	require.True(t, room.IsOccupied)
	require.Equal(t, sitting.ID, *room.TenantID)
}

func TestAssignTenantAlreadyHousedElsewhere(t *testing.T) {
	landlordID := uuid.New()
	first := buildProperty(landlordID)
	second := buildProperty(landlordID)
	tenant := tenantUser()

	f := newOccupancyFixture(newFakePropertyRepo(first, second), newFakeUserRepo(tenant))

	_, err := f.svc.AssignTenant(context.Background(), first.ID, 0, "G1", tenant.ID, landlordID)
	require.NoError(t, err)

	// Same tenant, different property of the same landlord.
	_, err = f.svc.AssignTenant(context.Background(), second.ID, 1, "102", tenant.ID, landlordID)
	status, code := appErrCode(t, err)
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, utils.ErrCodeTenantAlreadyAssigned, code)
}

func TestAssignTenantRacingAssignSameProperty(t *testing.T) {
	landlordID := uuid.New()
	property := buildProperty(landlordID)
	tenant := tenantUser()

	props := newFakePropertyRepo(property)
	f := newOccupancyFixture(props, newFakeUserRepo(tenant))

	// A rival assign of the same tenant to another room of this property
	// commits after our pre-checks have passed but before our write loop.
	props.beforeWrite = func() {
		stored := props.byID[property.ID]
		room, _ := stored.FindRoom(0, "G1")
		id := tenant.ID
		room.TenantID = &id
		room.IsOccupied = true
		stored.RowVersion++
	}

	_, err := f.svc.AssignTenant(context.Background(), property.ID, 1, "101", tenant.ID, landlordID)
	status, code := appErrCode(t, err)
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, utils.ErrCodeTenantAlreadyAssigned, code)

	// The tenant holds exactly the rival's room, nothing more.
	stored, err := props.GetByID(context.Background(), property.ID)
	require.NoError(t, err)
	held := 0
	for _, fl := range stored.Floors {
		for _, rm := range fl.Rooms {
			if rm.TenantID != nil && *rm.TenantID == tenant.ID {
				held++
			}
		}
	}
	require.Equal(t, 1, held)
	room, _ := stored.FindRoom(1, "101")
	require.False(t, room.IsOccupied)
}

func TestAssignTenantMissingFloorVsMissingRoom(t *testing.T) {
	landlordID := uuid.New()
	property := buildProperty(landlordID)
	tenant := tenantUser()

	f := newOccupancyFixture(newFakePropertyRepo(property), newFakeUserRepo(tenant))

	_, err := f.svc.AssignTenant(context.Background(), property.ID, 7, "101", tenant.ID, landlordID)
	_, code := appErrCode(t, err)
	require.Equal(t, utils.ErrCodeFloorNotFound, code)

	_, err = f.svc.AssignTenant(context.Background(), property.ID, 1, "999", tenant.ID, landlordID)
	_, code = appErrCode(t, err)
	require.Equal(t, utils.ErrCodeRoomNotFound, code)
}

func TestAssignTenantNotOwner(t *testing.T) {
	landlordID := uuid.New()
	property := buildProperty(landlordID)
	tenant := tenantUser()

	f := newOccupancyFixture(newFakePropertyRepo(property), newFakeUserRepo(tenant))

	_, err := f.svc.AssignTenant(context.Background(), property.ID, 1, "101", tenant.ID, uuid.New())
	status, code := appErrCode(t, err)
	require.Equal(t, http.StatusForbidden, status)
	require.Equal(t, utils.ErrCodeForbidden, code)
}

func TestAssignTenantUnknownProperty(t *testing.T) {
	tenant := tenantUser()
	f := newOccupancyFixture(newFakePropertyRepo(), newFakeUserRepo(tenant))

	_, err := f.svc.AssignTenant(context.Background(), uuid.New(), 0, "G1", tenant.ID, uuid.New())
	status, code := appErrCode(t, err)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, utils.ErrCodeNotFound, code)
}

func TestAssignTenantRejectsNonTenantRole(t *testing.T) {
	landlordID := uuid.New()
	property := buildProperty(landlordID)
	otherLandlord := &models.User{ID: uuid.New(), Role: models.RoleLandlord}

	f := newOccupancyFixture(newFakePropertyRepo(property), newFakeUserRepo(otherLandlord))

	_, err := f.svc.AssignTenant(context.Background(), property.ID, 0, "G1", otherLandlord.ID, landlordID)
	status, code := appErrCode(t, err)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, utils.ErrCodeInvalidTenant, code)
}

func TestReleaseTenantRoundTrip(t *testing.T) {
	landlordID := uuid.New()
	property := buildProperty(landlordID)
	tenant := tenantUser()

	f := newOccupancyFixture(newFakePropertyRepo(property), newFakeUserRepo(tenant))
	ctx := context.Background()

	_, err := f.svc.AssignTenant(ctx, property.ID, 1, "101", tenant.ID, landlordID)
	require.NoError(t, err)

	updated, err := f.svc.ReleaseTenant(ctx, property.ID, 1, "101", landlordID)
	require.NoError(t, err)

	room, _ := updated.FindRoom(1, "101")
	require.False(t, room.IsOccupied)
	require.Nil(t, room.TenantID)

	proj, err := f.tenants.GetByUserID(ctx, tenant.ID)
	require.NoError(t, err)
	require.Nil(t, proj.PropertyID)
	require.Nil(t, proj.RoomID)

	// The room is assignable again.
	_, err = f.svc.AssignTenant(ctx, property.ID, 1, "101", tenant.ID, landlordID)
	require.NoError(t, err)
}

func TestReleaseTenantVacantRoom(t *testing.T) {
	landlordID := uuid.New()
	property := buildProperty(landlordID)

	f := newOccupancyFixture(newFakePropertyRepo(property), newFakeUserRepo())

	_, err := f.svc.ReleaseTenant(context.Background(), property.ID, 0, "G2", landlordID)
	status, code := appErrCode(t, err)
	require.Equal(t, http.StatusConflict, status)
	require.Equal(t, utils.ErrCodeRoomVacant, code)
}

func TestAssignTenantRetriesOnVersionConflict(t *testing.T) {
	landlordID := uuid.New()
	property := buildProperty(landlordID)
	tenant := tenantUser()

	props := newFakePropertyRepo(property)
	props.conflicts = 2
	f := newOccupancyFixture(props, newFakeUserRepo(tenant))

	updated, err := f.svc.AssignTenant(context.Background(), property.ID, 0, "G1", tenant.ID, landlordID)
	require.NoError(t, err)
	require.Equal(t, 3, props.mutateCalls)

	room, _ := updated.FindRoom(0, "G1")
	require.True(t, room.IsOccupied)
}

func TestAssignTenantGivesUpUnderSustainedContention(t *testing.T) {
	landlordID := uuid.New()
	property := buildProperty(landlordID)
	tenant := tenantUser()

	props := newFakePropertyRepo(property)
	props.conflicts = 3
	f := newOccupancyFixture(props, newFakeUserRepo(tenant))

	_, err := f.svc.AssignTenant(context.Background(), property.ID, 0, "G1", tenant.ID, landlordID)
	require.Error(t, err)
	require.Contains(t, err.Error(), "contention")
}

func TestAssignTenantToRoomByID(t *testing.T) {
	landlordID := uuid.New()
	property := buildProperty(landlordID)
	tenant := tenantUser()

	f := newOccupancyFixture(newFakePropertyRepo(property), newFakeUserRepo(tenant))

	roomID := property.Floors[1].Rooms[0].ID
	updated, err := f.svc.AssignTenantToRoom(context.Background(), roomID, tenant.ID, landlordID)
	require.NoError(t, err)

	room, floorNumber := updated.FindRoomByID(roomID)
	require.NotNil(t, room)
	require.Equal(t, 1, floorNumber)
	require.True(t, room.IsOccupied)
}

func TestAssignTenantToRoomUnknownID(t *testing.T) {
	landlordID := uuid.New()
	property := buildProperty(landlordID)
	tenant := tenantUser()

	f := newOccupancyFixture(newFakePropertyRepo(property), newFakeUserRepo(tenant))

	_, err := f.svc.AssignTenantToRoom(context.Background(), uuid.New(), tenant.ID, landlordID)
	_, code := appErrCode(t, err)
	require.Equal(t, utils.ErrCodeRoomNotFound, code)
}
