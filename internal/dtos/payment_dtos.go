package dtos

import "github.com/google/uuid"

// ----------------------
// Lease payment
// ----------------------

type SubmitPaymentRequest struct {
	LeaseID       uuid.UUID `json:"leaseId" validate:"required"`
	Amount        float64   `json:"amount" validate:"required,gt=0"`
	Method        string    `json:"method" validate:"required,oneof=cash bank mpesa"`
	TransactionID string    `json:"transactionId" validate:"max=100"`
}

// ----------------------
// M-Pesa charge
// ----------------------

type InitiateChargeRequest struct {
	BillID      uuid.UUID `json:"billId" validate:"required"`
	PhoneNumber string    `json:"phoneNumber" validate:"required"`
}

type InitiateChargeResponse struct {
	CheckoutRequestID string `json:"checkoutRequestId"`
	CustomerMessage   string `json:"customerMessage"`
}
