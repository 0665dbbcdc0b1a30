package models

import (
	"time"

	"github.com/google/uuid"
)

type BillStatusType string

const (
	BillStatusPending   BillStatusType = "pending"
	BillStatusPaid      BillStatusType = "paid"
	BillStatusOverdue   BillStatusType = "overdue"
	BillStatusCancelled BillStatusType = "cancelled"
)

func (s BillStatusType) Valid() bool {
	switch s {
	case BillStatusPending, BillStatusPaid, BillStatusOverdue, BillStatusCancelled:
		return true
	}
	return false
}

type BillType string

const (
	BillTypeRent        BillType = "rent"
	BillTypeUtility     BillType = "utility"
	BillTypeMaintenance BillType = "maintenance"
	BillTypeOther       BillType = "other"
)

func (t BillType) Valid() bool {
	switch t {
	case BillTypeRent, BillTypeUtility, BillTypeMaintenance, BillTypeOther:
		return true
	}
	return false
}

type Bill struct {
	ID          uuid.UUID      `json:"id"`
	TenantID    uuid.UUID      `json:"tenant_id"`
	PropertyID  uuid.UUID      `json:"property_id"`
	Amount      float64        `json:"amount"`
	Description string         `json:"description"`
	DueDate     time.Time      `json:"due_date"`
	Status      BillStatusType `json:"status"`
	Type        BillType       `json:"type"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
