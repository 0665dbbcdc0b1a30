package controllers

import (
	"net/http"

	"github.com/kodipay/kodipay-server/internal/dtos"
	"github.com/kodipay/kodipay-server/internal/services"
	"github.com/kodipay/kodipay-server/internal/utils"
)

// RoomController serves the room-id addressed assignment surface. Rooms live
// inside property aggregates; these handlers resolve the id first.
type RoomController struct {
	occupancyService services.OccupancyService
	tenantService    services.TenantService
}

func NewRoomController(occupancyService services.OccupancyService, tenantService services.TenantService) *RoomController {
	return &RoomController{occupancyService: occupancyService, tenantService: tenantService}
}

// AssignTenant -> PUT /api/rooms/{roomID}/assign-tenant
func (c *RoomController) AssignTenant(w http.ResponseWriter, r *http.Request) {
	landlordID, _, ok := identity(w, r)
	if !ok {
		return
	}
	roomID, ok := pathUUID(w, r, "roomID")
	if !ok {
		return
	}

	var req dtos.AssignRoomRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	property, err := c.occupancyService.AssignTenantToRoom(r.Context(), roomID, req.TenantID, landlordID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, property)
}

// AssignNewTenant -> POST /api/rooms/{roomID}/assign-tenant
//
// Creates the tenant profile and assigns in one call. The profile creation is
// rolled back if the assignment does not go through.
func (c *RoomController) AssignNewTenant(w http.ResponseWriter, r *http.Request) {
	landlordID, _, ok := identity(w, r)
	if !ok {
		return
	}
	roomID, ok := pathUUID(w, r, "roomID")
	if !ok {
		return
	}

	var req dtos.CreateTenantRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	property, err := c.tenantService.AssignNewToRoom(
		r.Context(), roomID, landlordID,
		req.Name, req.Phone, req.Email, req.NationalID,
	)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, property)
}
