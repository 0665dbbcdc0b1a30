package dtos

import "github.com/google/uuid"

// ----------------------
// Complaints
// ----------------------

type CreateComplaintRequest struct {
	PropertyID  uuid.UUID `json:"propertyId" validate:"required"`
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description" validate:"required,max=2000"`
}

// UpdateComplaintRequest is role-sensitive: tenants may amend title and
// description while pending; landlords resolve with notes.
type UpdateComplaintRequest struct {
	Title           string `json:"title" validate:"omitempty,max=200"`
	Description     string `json:"description" validate:"omitempty,max=2000"`
	Status          string `json:"status" validate:"omitempty,oneof=pending resolved"`
	ResolutionNotes string `json:"resolutionNotes" validate:"omitempty,max=2000"`
}
