package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is immutable once created. Group messages are scoped to a
// property; direct messages to a sender+recipient pair.
type Message struct {
	ID          uuid.UUID  `json:"id"`
	SenderID    uuid.UUID  `json:"sender_id"`
	RecipientID *uuid.UUID `json:"recipient_id,omitempty"`
	PropertyID  *uuid.UUID `json:"property_id,omitempty"`
	Content     string     `json:"content"`
	IsGroup     bool       `json:"is_group_message"`
	CreatedAt   time.Time  `json:"created_at"`
}
