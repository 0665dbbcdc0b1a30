package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment is an immutable record of a completed transaction. One is created
// only when a payment actually succeeds.
type Payment struct {
	ID            uuid.UUID  `json:"id"`
	TenantID      uuid.UUID  `json:"tenant_id"`
	BillID        *uuid.UUID `json:"bill_id,omitempty"`
	LeaseID       *uuid.UUID `json:"lease_id,omitempty"`
	Amount        float64    `json:"amount"`
	Method        string     `json:"method"`
	TransactionID string     `json:"transaction_id,omitempty"`
	PaymentDate   time.Time  `json:"payment_date"`
}

type ChargeStatusType string

const (
	ChargeStatusPending   ChargeStatusType = "pending"
	ChargeStatusCompleted ChargeStatusType = "completed"
	ChargeStatusFailed    ChargeStatusType = "failed"
)

// MpesaCharge tracks an in-flight STK push so the asynchronous provider
// callback can be matched back to the bill it pays.
type MpesaCharge struct {
	CheckoutRequestID string           `json:"checkout_request_id"`
	BillID            uuid.UUID        `json:"bill_id"`
	PhoneNumber       string           `json:"phone_number"`
	Amount            float64          `json:"amount"`
	Status            ChargeStatusType `json:"status"`
	CreatedAt         time.Time        `json:"created_at"`
}
