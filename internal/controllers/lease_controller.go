package controllers

import (
	"net/http"

	"github.com/kodipay/kodipay-server/internal/dtos"
	"github.com/kodipay/kodipay-server/internal/models"
	"github.com/kodipay/kodipay-server/internal/services"
	"github.com/kodipay/kodipay-server/internal/utils"
)

type LeaseController struct {
	leaseService services.LeaseService
}

func NewLeaseController(leaseService services.LeaseService) *LeaseController {
	return &LeaseController{leaseService: leaseService}
}

// Create -> POST /api/leases
func (c *LeaseController) Create(w http.ResponseWriter, r *http.Request) {
	landlordID, _, ok := identity(w, r)
	if !ok {
		return
	}

	var req dtos.CreateLeaseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	lease, err := c.leaseService.Create(
		r.Context(), landlordID, req.TenantID, req.PropertyID,
		req.StartDate, req.EndDate, req.RentAmount,
	)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, lease)
}

// Get -> GET /api/leases/{leaseID}
func (c *LeaseController) Get(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := identity(w, r); !ok {
		return
	}
	leaseID, ok := pathUUID(w, r, "leaseID")
	if !ok {
		return
	}

	lease, err := c.leaseService.GetByID(r.Context(), leaseID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, lease)
}

// List -> GET /api/leases
func (c *LeaseController) List(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := identity(w, r); !ok {
		return
	}

	leases, err := c.leaseService.List(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, leases)
}

// ListForTenant -> GET /api/leases/tenant/{tenantID}
func (c *LeaseController) ListForTenant(w http.ResponseWriter, r *http.Request) {
	requesterID, role, ok := identity(w, r)
	if !ok {
		return
	}
	tenantID, ok := pathUUID(w, r, "tenantID")
	if !ok {
		return
	}

	leases, err := c.leaseService.ListByTenant(r.Context(), requesterID, role, tenantID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, leases)
}

// Update -> PUT /api/leases/{leaseID}
func (c *LeaseController) Update(w http.ResponseWriter, r *http.Request) {
	landlordID, _, ok := identity(w, r)
	if !ok {
		return
	}
	leaseID, ok := pathUUID(w, r, "leaseID")
	if !ok {
		return
	}

	var req dtos.UpdateLeaseRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	lease, err := c.leaseService.Update(r.Context(), landlordID, leaseID, func(l *models.Lease) error {
		if req.StartDate != nil {
			l.StartDate = *req.StartDate
		}
		if req.EndDate != nil {
			l.EndDate = *req.EndDate
		}
		if req.RentAmount != nil {
			// Keep the amount already paid; reprice the remainder.
			paid := l.RentAmount - l.Balance
			l.RentAmount = *req.RentAmount
			l.Balance = *req.RentAmount - paid
			if l.Balance < 0 {
				l.Balance = 0
			}
		}
		if !l.EndDate.After(l.StartDate) {
			return utils.NewAppError(http.StatusBadRequest, utils.ErrCodeValidation,
				"Lease end date must be after start date", nil)
		}
		return nil
	})
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, lease)
}

// Delete -> DELETE /api/leases/{leaseID}
func (c *LeaseController) Delete(w http.ResponseWriter, r *http.Request) {
	landlordID, _, ok := identity(w, r)
	if !ok {
		return
	}
	leaseID, ok := pathUUID(w, r, "leaseID")
	if !ok {
		return
	}

	if err := c.leaseService.Delete(r.Context(), landlordID, leaseID); err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Lease deleted"})
}
