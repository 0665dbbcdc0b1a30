package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/kodipay/kodipay-server/internal/dtos"
	"github.com/kodipay/kodipay-server/internal/services"
	"github.com/kodipay/kodipay-server/internal/utils"
	"github.com/kodipay/kodipay-server/internal/utils/mpesa"
)

type PaymentController struct {
	paymentService services.PaymentService
}

func NewPaymentController(paymentService services.PaymentService) *PaymentController {
	return &PaymentController{paymentService: paymentService}
}

// ListForTenant -> GET /api/payments/tenant/{tenantID}
func (c *PaymentController) ListForTenant(w http.ResponseWriter, r *http.Request) {
	requesterID, role, ok := identity(w, r)
	if !ok {
		return
	}
	tenantID, ok := pathUUID(w, r, "tenantID")
	if !ok {
		return
	}

	payments, err := c.paymentService.ListByTenant(r.Context(), requesterID, role, tenantID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, payments)
}

// Submit -> POST /api/payments
func (c *PaymentController) Submit(w http.ResponseWriter, r *http.Request) {
	requesterID, _, ok := identity(w, r)
	if !ok {
		return
	}

	var req dtos.SubmitPaymentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	payment, err := c.paymentService.SubmitLeasePayment(
		r.Context(), requesterID, req.LeaseID, req.Amount, req.Method, req.TransactionID,
	)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, payment)
}

// InitiateCharge -> POST /api/payments/initiate
func (c *PaymentController) InitiateCharge(w http.ResponseWriter, r *http.Request) {
	requesterID, _, ok := identity(w, r)
	if !ok {
		return
	}

	var req dtos.InitiateChargeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := c.paymentService.InitiateCharge(r.Context(), requesterID, req.BillID, req.PhoneNumber)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.InitiateChargeResponse{
		CheckoutRequestID: resp.CheckoutRequestID,
		CustomerMessage:   resp.CustomerMessage,
	})
}

// Callback -> POST /api/payments/callback
//
// Unauthenticated: Daraja calls this. Always acknowledges with 200 once the
// payload parses, so the provider does not retry settled charges.
func (c *PaymentController) Callback(w http.ResponseWriter, r *http.Request) {
	var envelope mpesa.CallbackEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid callback payload", nil, err,
		)
		return
	}

	if err := c.paymentService.HandleCallback(r.Context(), &envelope.Body.StkCallback); err != nil {
		utils.Logger.WithError(err).Error("M-Pesa callback processing failed")
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{
		"ResultCode": 0,
		"ResultDesc": "Accepted",
	})
}
