package controllers

import (
	"net/http"
	"time"

	"github.com/kodipay/kodipay-server/internal/dtos"
	"github.com/kodipay/kodipay-server/internal/models"
	"github.com/kodipay/kodipay-server/internal/repositories"
	"github.com/kodipay/kodipay-server/internal/services"
	"github.com/kodipay/kodipay-server/internal/utils"
)

type BillController struct {
	billService services.BillService
}

func NewBillController(billService services.BillService) *BillController {
	return &BillController{billService: billService}
}

// Create -> POST /api/bills
func (c *BillController) Create(w http.ResponseWriter, r *http.Request) {
	landlordID, _, ok := identity(w, r)
	if !ok {
		return
	}

	var req dtos.CreateBillRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	bill, err := c.billService.Create(
		r.Context(), landlordID, req.TenantID, req.PropertyID,
		req.Amount, req.Description, req.DueDate, models.BillType(req.Type),
	)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, bill)
}

// ListMine -> GET /api/bills/tenant
func (c *BillController) ListMine(w http.ResponseWriter, r *http.Request) {
	tenantID, _, ok := identity(w, r)
	if !ok {
		return
	}

	bills, err := c.billService.ListByTenant(r.Context(), tenantID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bills)
}

// ListForLandlord -> GET /api/bills/landlord
//
// Supports optional query filters: status, type, startDate, endDate
// (RFC 3339 dates) and tenantName (substring match).
func (c *BillController) ListForLandlord(w http.ResponseWriter, r *http.Request) {
	landlordID, _, ok := identity(w, r)
	if !ok {
		return
	}

	filter, ok := c.parseFilter(w, r)
	if !ok {
		return
	}
	filter.LandlordID = &landlordID

	bills, err := c.billService.ListFiltered(r.Context(), filter)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bills)
}

// MarkPaid -> PUT /api/bills/{billID}/pay
func (c *BillController) MarkPaid(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := identity(w, r); !ok {
		return
	}
	billID, ok := pathUUID(w, r, "billID")
	if !ok {
		return
	}

	bill, err := c.billService.MarkPaid(r.Context(), billID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, bill)
}

func (c *BillController) parseFilter(w http.ResponseWriter, r *http.Request) (repositories.BillFilter, bool) {
	q := r.URL.Query()
	filter := repositories.BillFilter{
		Status:     models.BillStatusType(q.Get("status")),
		Type:       models.BillType(q.Get("type")),
		TenantName: q.Get("tenantName"),
	}

	if filter.Status != "" && !filter.Status.Valid() {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation,
			"Invalid status filter", nil)
		return filter, false
	}
	if filter.Type != "" && !filter.Type.Valid() {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation,
			"Invalid type filter", nil)
		return filter, false
	}

	for name, dst := range map[string]**time.Time{
		"startDate": &filter.StartDate,
		"endDate":   &filter.EndDate,
	} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation,
				"Invalid "+name, nil, err)
			return filter, false
		}
		*dst = &t
	}
	return filter, true
}
