package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kodipay/kodipay-server/internal/models"
	"github.com/kodipay/kodipay-server/internal/realtime"
	"github.com/kodipay/kodipay-server/internal/repositories"
	"github.com/kodipay/kodipay-server/internal/utils"
)

// Publisher is the live side channel. realtime.Hub satisfies it; tests use
// a recording fake.
type Publisher interface {
	Publish(room, event string, data any)
}

// ---------------------------------------------------------------------
// MessageService interface
// ---------------------------------------------------------------------

// MessageService persists chat messages, then relays them to connected
// parties. Persistence is authoritative; the relay is fire-and-forget and a
// disconnected recipient reads history later.
type MessageService interface {
	realtime.Dispatcher
	OccupancyNotifier

	GroupHistory(ctx context.Context, propertyID uuid.UUID) ([]*models.Message, error)
	DirectHistory(ctx context.Context, userID, otherID uuid.UUID) ([]*models.Message, error)
}

// ---------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------

type messageService struct {
	messages  repositories.MessageRepository
	publisher Publisher
}

func NewMessageService(messages repositories.MessageRepository, publisher Publisher) MessageService {
	return &messageService{messages: messages, publisher: publisher}
}

type groupMessageData struct {
	Sender    uuid.UUID `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type directMessageData struct {
	Sender    uuid.UUID `json:"sender"`
	Recipient uuid.UUID `json:"recipient"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

func (s *messageService) SendGroup(ctx context.Context, propertyID, senderID uuid.UUID, content string) error {
	msg := &models.Message{
		ID:         uuid.New(),
		SenderID:   senderID,
		PropertyID: &propertyID,
		Content:    content,
		IsGroup:    true,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return err
	}

	s.publisher.Publish(realtime.GroupRoom(propertyID), "groupMessage", groupMessageData{
		Sender:    senderID,
		Content:   content,
		Timestamp: msg.CreatedAt,
	})
	return nil
}

func (s *messageService) SendDirect(ctx context.Context, senderID, recipientID uuid.UUID, content string) error {
	msg := &models.Message{
		ID:          uuid.New(),
		SenderID:    senderID,
		RecipientID: &recipientID,
		Content:     content,
		IsGroup:     false,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return err
	}

	s.publisher.Publish(realtime.DirectRoom(senderID, recipientID), "directMessage", directMessageData{
		Sender:    senderID,
		Recipient: recipientID,
		Content:   content,
		Timestamp: msg.CreatedAt,
	})
	return nil
}

// NotifyAssignment implements OccupancyNotifier. The assignment itself has
// already committed, so failures here are logged and swallowed.
func (s *messageService) NotifyAssignment(ctx context.Context, landlordID, tenantID uuid.UUID, content string) {
	if err := s.SendDirect(ctx, landlordID, tenantID, content); err != nil {
		utils.Logger.WithError(err).Warnf("Failed to persist assignment notification for tenant %s", tenantID)
	}
}

func (s *messageService) GroupHistory(ctx context.Context, propertyID uuid.UUID) ([]*models.Message, error) {
	return s.messages.ListGroup(ctx, propertyID)
}

func (s *messageService) DirectHistory(ctx context.Context, userID, otherID uuid.UUID) ([]*models.Message, error) {
	return s.messages.ListDirect(ctx, userID, otherID)
}
