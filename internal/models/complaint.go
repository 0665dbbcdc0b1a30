package models

import (
	"time"

	"github.com/google/uuid"
)

type ComplaintStatusType string

const (
	ComplaintStatusPending  ComplaintStatusType = "pending"
	ComplaintStatusResolved ComplaintStatusType = "resolved"
)

func (s ComplaintStatusType) Valid() bool {
	return s == ComplaintStatusPending || s == ComplaintStatusResolved
}

type Complaint struct {
	ID              uuid.UUID           `json:"id"`
	TenantID        uuid.UUID           `json:"tenant_id"`
	PropertyID      uuid.UUID           `json:"property_id"`
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	Status          ComplaintStatusType `json:"status"`
	SubmittedAt     time.Time           `json:"submitted_at"`
	ResolvedAt      *time.Time          `json:"resolved_at,omitempty"`
	ResolutionNotes string              `json:"resolution_notes,omitempty"`
}
