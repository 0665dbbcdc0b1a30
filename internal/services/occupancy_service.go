package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/kodipay/kodipay-server/internal/models"
	"github.com/kodipay/kodipay-server/internal/repositories"
	"github.com/kodipay/kodipay-server/internal/utils"
)

// OccupancyNotifier tells a tenant their room changed. Implementations must
// be best-effort: a notification failure never unwinds the assignment.
type OccupancyNotifier interface {
	NotifyAssignment(ctx context.Context, landlordID, tenantID uuid.UUID, content string)
}

// ---------------------------------------------------------------------
// OccupancyService interface
// ---------------------------------------------------------------------

/*
OccupancyService owns tenant-to-room assignment inside a landlord's
property inventory. All mutations are single-aggregate writes guarded by
the property's row version, so two concurrent assignments against the same
property serialize, and the occupancy flag can never be observed out of
step with the tenant reference.

Invariants after every operation:
  - a room's IsOccupied equals (TenantID != nil)
  - a tenant holds at most one room across all properties of one landlord
*/
type OccupancyService interface {
	AssignTenant(ctx context.Context, propertyID uuid.UUID, floorNumber int, roomNumber string, tenantID, requesterID uuid.UUID) (*models.Property, error)
	ReleaseTenant(ctx context.Context, propertyID uuid.UUID, floorNumber int, roomNumber string, requesterID uuid.UUID) (*models.Property, error)

	// AssignTenantToRoom resolves an embedded room uuid to its aggregate
	// and assigns through the same path. This is what the old flat
	// Room-collection surface now routes through.
	AssignTenantToRoom(ctx context.Context, roomID, tenantID, requesterID uuid.UUID) (*models.Property, error)
}

// ---------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------

type occupancyService struct {
	props    repositories.PropertyRepository
	users    repositories.UserRepository
	tenants  repositories.TenantRepository
	notifier OccupancyNotifier
}

func NewOccupancyService(
	props repositories.PropertyRepository,
	users repositories.UserRepository,
	tenants repositories.TenantRepository,
	notifier OccupancyNotifier,
) OccupancyService {
	return &occupancyService{props: props, users: users, tenants: tenants, notifier: notifier}
}

func (s *occupancyService) AssignTenant(
	ctx context.Context,
	propertyID uuid.UUID,
	floorNumber int,
	roomNumber string,
	tenantID, requesterID uuid.UUID,
) (*models.Property, error) {

	property, err := s.loadOwnedProperty(ctx, propertyID, requesterID)
	if err != nil {
		return nil, err
	}

	// Cheap precondition pass against the loaded copy for precise errors;
	// the mutate closure re-validates against the current version.
	if _, err := lookupRoom(property, floorNumber, roomNumber); err != nil {
		return nil, err
	}

	tenant, err := s.users.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil || tenant.Role != models.RoleTenant {
		return nil, utils.NewAppError(http.StatusBadRequest, utils.ErrCodeInvalidTenant,
			"Invalid tenant", nil)
	}

	// One room per tenant across this landlord's whole inventory.
	occupied, err := s.props.FindByOccupant(ctx, property.LandlordID, tenantID)
	if err != nil {
		return nil, err
	}
	if occupied != nil {
		return nil, utils.NewAppError(http.StatusConflict, utils.ErrCodeTenantAlreadyAssigned,
			"Tenant is already assigned to another room", nil)
	}

	var updated *models.Property
	err = s.props.UpdateWithRetry(ctx, propertyID, func(p *models.Property) error {
		room, err := lookupRoom(p, floorNumber, roomNumber)
		if err != nil {
			return err
		}
		if room.IsOccupied || room.TenantID != nil {
			return utils.NewAppError(http.StatusConflict, utils.ErrCodeRoomOccupied,
				"Room is already assigned", nil)
		}
		// Re-check within the fresh aggregate: a concurrent assign of the
		// same tenant to another room of this property passes the outer
		// FindByOccupant check but loses here after the CAS reload.
		if p.FindRoomByTenant(tenantID) != nil {
			return utils.NewAppError(http.StatusConflict, utils.ErrCodeTenantAlreadyAssigned,
				"Tenant is already assigned to another room", nil)
		}
		id := tenantID
		room.TenantID = &id
		room.IsOccupied = true
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	room, _ := updated.FindRoom(floorNumber, roomNumber)
	if err := s.tenants.UpsertOccupancy(ctx, tenant, updated.ID, room.ID); err != nil {
		utils.Logger.WithError(err).Warnf("Failed to project occupancy for tenant %s", tenantID)
	}

	s.notifier.NotifyAssignment(ctx, requesterID, tenantID, fmt.Sprintf(
		"You have been assigned to room %s on floor %d in property %s.",
		roomNumber, floorNumber, updated.Name,
	))

	return updated, nil
}

func (s *occupancyService) ReleaseTenant(
	ctx context.Context,
	propertyID uuid.UUID,
	floorNumber int,
	roomNumber string,
	requesterID uuid.UUID,
) (*models.Property, error) {

	property, err := s.loadOwnedProperty(ctx, propertyID, requesterID)
	if err != nil {
		return nil, err
	}
	if _, err := lookupRoom(property, floorNumber, roomNumber); err != nil {
		return nil, err
	}

	var (
		updated  *models.Property
		released uuid.UUID
	)
	err = s.props.UpdateWithRetry(ctx, propertyID, func(p *models.Property) error {
		room, err := lookupRoom(p, floorNumber, roomNumber)
		if err != nil {
			return err
		}
		if !room.IsOccupied || room.TenantID == nil {
			return utils.NewAppError(http.StatusConflict, utils.ErrCodeRoomVacant,
				"Room is not occupied", nil)
		}
		released = *room.TenantID
		room.TenantID = nil
		room.IsOccupied = false
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.tenants.ClearOccupancyByUser(ctx, released); err != nil {
		utils.Logger.WithError(err).Warnf("Failed to clear occupancy projection for tenant %s", released)
	}

	return updated, nil
}

func (s *occupancyService) AssignTenantToRoom(ctx context.Context, roomID, tenantID, requesterID uuid.UUID) (*models.Property, error) {
	property, err := s.props.FindByRoomID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeRoomNotFound,
			"Room not found", nil)
	}

	room, floorNumber := property.FindRoomByID(roomID)
	if room == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeRoomNotFound,
			"Room not found", nil)
	}

	return s.AssignTenant(ctx, property.ID, floorNumber, room.RoomNumber, tenantID, requesterID)
}

/* ------------------------------------------------------------------
   helpers
------------------------------------------------------------------ */

func (s *occupancyService) loadOwnedProperty(ctx context.Context, propertyID, requesterID uuid.UUID) (*models.Property, error) {
	property, err := s.props.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeNotFound,
			"Property not found", nil)
	}
	if property.LandlordID != requesterID {
		return nil, utils.NewAppError(http.StatusForbidden, utils.ErrCodeForbidden,
			"Unauthorized", nil)
	}
	return property, nil
}

func lookupRoom(p *models.Property, floorNumber int, roomNumber string) (*models.Room, error) {
	room, outcome := p.FindRoom(floorNumber, roomNumber)
	switch outcome {
	case models.FloorMissing:
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeFloorNotFound,
			"Floor not found", nil)
	case models.RoomMissing:
		return nil, utils.NewAppError(http.StatusNotFound, utils.ErrCodeRoomNotFound,
			"Room not found", nil)
	}
	return room, nil
}
