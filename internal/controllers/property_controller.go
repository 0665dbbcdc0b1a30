package controllers

import (
	"net/http"

	"github.com/kodipay/kodipay-server/internal/dtos"
	"github.com/kodipay/kodipay-server/internal/models"
	"github.com/kodipay/kodipay-server/internal/services"
	"github.com/kodipay/kodipay-server/internal/utils"
)

type PropertyController struct {
	propertyService  services.PropertyService
	occupancyService services.OccupancyService
}

func NewPropertyController(
	propertyService services.PropertyService,
	occupancyService services.OccupancyService,
) *PropertyController {
	return &PropertyController{
		propertyService:  propertyService,
		occupancyService: occupancyService,
	}
}

// Create -> POST /api/properties
func (c *PropertyController) Create(w http.ResponseWriter, r *http.Request) {
	landlordID, _, ok := identity(w, r)
	if !ok {
		return
	}

	var req dtos.CreatePropertyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	floors := make([]models.Floor, 0, len(req.Floors))
	for _, f := range req.Floors {
		rooms := make([]models.Room, 0, len(f.Rooms))
		for _, room := range f.Rooms {
			rooms = append(rooms, models.Room{RoomNumber: room.RoomNumber})
		}
		floors = append(floors, models.Floor{FloorNumber: f.FloorNumber, Rooms: rooms})
	}

	property, err := c.propertyService.Create(
		r.Context(), landlordID, req.Name, req.Address, req.RentAmount, req.Description, floors,
	)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, property)
}

// List -> GET /api/properties
func (c *PropertyController) List(w http.ResponseWriter, r *http.Request) {
	landlordID, _, ok := identity(w, r)
	if !ok {
		return
	}

	views, err := c.propertyService.ListByLandlord(r.Context(), landlordID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, views)
}

// Delete -> DELETE /api/properties/{propertyID}
func (c *PropertyController) Delete(w http.ResponseWriter, r *http.Request) {
	landlordID, _, ok := identity(w, r)
	if !ok {
		return
	}
	propertyID, ok := pathUUID(w, r, "propertyID")
	if !ok {
		return
	}

	if err := c.propertyService.Delete(r.Context(), propertyID, landlordID); err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Property deleted"})
}

// AssignTenant -> PUT /api/properties/{propertyID}/assign-tenant
func (c *PropertyController) AssignTenant(w http.ResponseWriter, r *http.Request) {
	landlordID, _, ok := identity(w, r)
	if !ok {
		return
	}
	propertyID, ok := pathUUID(w, r, "propertyID")
	if !ok {
		return
	}

	var req dtos.AssignTenantRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	property, err := c.occupancyService.AssignTenant(
		r.Context(), propertyID, req.FloorNumber, req.RoomNumber, req.TenantID, landlordID,
	)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, property)
}

// ReleaseTenant -> DELETE /api/properties/{propertyID}/unassign
func (c *PropertyController) ReleaseTenant(w http.ResponseWriter, r *http.Request) {
	landlordID, _, ok := identity(w, r)
	if !ok {
		return
	}
	propertyID, ok := pathUUID(w, r, "propertyID")
	if !ok {
		return
	}

	var req dtos.ReleaseTenantRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	property, err := c.occupancyService.ReleaseTenant(
		r.Context(), propertyID, req.FloorNumber, req.RoomNumber, landlordID,
	)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, property)
}
