package controllers

import (
	"net/http"

	"github.com/kodipay/kodipay-server/internal/dtos"
	"github.com/kodipay/kodipay-server/internal/models"
	"github.com/kodipay/kodipay-server/internal/services"
	"github.com/kodipay/kodipay-server/internal/utils"
)

type ComplaintController struct {
	complaintService services.ComplaintService
}

func NewComplaintController(complaintService services.ComplaintService) *ComplaintController {
	return &ComplaintController{complaintService: complaintService}
}

// Create -> POST /api/complaints
func (c *ComplaintController) Create(w http.ResponseWriter, r *http.Request) {
	tenantID, _, ok := identity(w, r)
	if !ok {
		return
	}

	var req dtos.CreateComplaintRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	complaint, err := c.complaintService.Create(
		r.Context(), tenantID, req.PropertyID, req.Title, req.Description,
	)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, complaint)
}

// List -> GET /api/complaints
//
// Tenants see their own filings; landlords see complaints across their
// properties.
func (c *ComplaintController) List(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identity(w, r)
	if !ok {
		return
	}

	var (
		complaints []*models.Complaint
		err        error
	)
	if role == models.RoleLandlord {
		complaints, err = c.complaintService.ListByLandlord(r.Context(), userID)
	} else {
		complaints, err = c.complaintService.ListByTenant(r.Context(), userID)
	}
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, complaints)
}

// Update -> PUT /api/complaints/{complaintID}
//
// Role-sensitive: a landlord setting status resolved closes the complaint
// with notes; a tenant amends title and description while still pending.
func (c *ComplaintController) Update(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := identity(w, r)
	if !ok {
		return
	}
	complaintID, ok := pathUUID(w, r, "complaintID")
	if !ok {
		return
	}

	var req dtos.UpdateComplaintRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	var (
		complaint *models.Complaint
		err       error
	)
	if role == models.RoleLandlord && req.Status == string(models.ComplaintStatusResolved) {
		complaint, err = c.complaintService.Resolve(r.Context(), userID, complaintID, req.ResolutionNotes)
	} else {
		complaint, err = c.complaintService.Amend(r.Context(), userID, complaintID, req.Title, req.Description)
	}
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, complaint)
}

// Delete -> DELETE /api/complaints/{complaintID}
func (c *ComplaintController) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := identity(w, r)
	if !ok {
		return
	}
	complaintID, ok := pathUUID(w, r, "complaintID")
	if !ok {
		return
	}

	if err := c.complaintService.Delete(r.Context(), userID, complaintID); err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Complaint deleted"})
}
