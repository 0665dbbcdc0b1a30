package dtos

import "github.com/google/uuid"

// ----------------------
// Chat (REST history + send)
// ----------------------

type SendGroupMessageRequest struct {
	PropertyID uuid.UUID `json:"propertyId" validate:"required"`
	Content    string    `json:"content" validate:"required,max=2000"`
}

type SendDirectMessageRequest struct {
	RecipientID uuid.UUID `json:"recipientId" validate:"required"`
	Content     string    `json:"content" validate:"required,max=2000"`
}
