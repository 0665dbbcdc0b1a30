package controllers

import (
	"net/http"

	"github.com/kodipay/kodipay-server/internal/dtos"
	"github.com/kodipay/kodipay-server/internal/services"
	"github.com/kodipay/kodipay-server/internal/utils"
)

type TenantController struct {
	tenantService services.TenantService
}

func NewTenantController(tenantService services.TenantService) *TenantController {
	return &TenantController{tenantService: tenantService}
}

// Create -> POST /api/tenants
func (c *TenantController) Create(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := identity(w, r); !ok {
		return
	}

	var req dtos.CreateTenantRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	tenant, err := c.tenantService.CreateProfile(
		r.Context(), req.Name, req.Phone, req.Email, req.NationalID,
	)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, tenant)
}

// Get -> GET /api/tenants/{tenantID}
func (c *TenantController) Get(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := identity(w, r); !ok {
		return
	}
	tenantID, ok := pathUUID(w, r, "tenantID")
	if !ok {
		return
	}

	tenant, err := c.tenantService.Get(r.Context(), tenantID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, tenant)
}

// MostRecentLease -> GET /api/tenants/{tenantID}/lease
func (c *TenantController) MostRecentLease(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := identity(w, r); !ok {
		return
	}
	tenantID, ok := pathUUID(w, r, "tenantID")
	if !ok {
		return
	}

	lease, err := c.tenantService.GetMostRecentLease(r.Context(), tenantID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, lease)
}
