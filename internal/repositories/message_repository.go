package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/kodipay/kodipay-server/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type MessageRepository interface {
	Create(ctx context.Context, m *models.Message) error

	// ListGroup returns a property's group-chat history, oldest first.
	ListGroup(ctx context.Context, propertyID uuid.UUID) ([]*models.Message, error)
	// ListDirect returns the conversation between two users, oldest first.
	ListDirect(ctx context.Context, userA, userB uuid.UUID) ([]*models.Message, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type messageRepo struct{ db DB }

func NewMessageRepository(db DB) MessageRepository { return &messageRepo{db: db} }

func (r *messageRepo) Create(ctx context.Context, m *models.Message) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO messages (
            id, sender_id, recipient_id, property_id, content, is_group, created_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7)
    `, m.ID, m.SenderID, m.RecipientID, m.PropertyID, m.Content, m.IsGroup, m.CreatedAt)
	return err
}

func (r *messageRepo) ListGroup(ctx context.Context, propertyID uuid.UUID) ([]*models.Message, error) {
	rows, err := r.db.Query(ctx,
		baseSelectMessage()+" WHERE property_id=$1 AND is_group ORDER BY created_at",
		propertyID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

func (r *messageRepo) ListDirect(ctx context.Context, userA, userB uuid.UUID) ([]*models.Message, error) {
	rows, err := r.db.Query(ctx, baseSelectMessage()+`
        WHERE NOT is_group
          AND ((sender_id=$1 AND recipient_id=$2) OR (sender_id=$2 AND recipient_id=$1))
        ORDER BY created_at
    `, userA, userB)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

func baseSelectMessage() string {
	return `
        SELECT id, sender_id, recipient_id, property_id, content, is_group, created_at
        FROM messages
    `
}

func scanMessages(rows pgx.Rows) ([]*models.Message, error) {
	var out []*models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(
			&m.ID,
			&m.SenderID,
			&m.RecipientID,
			&m.PropertyID,
			&m.Content,
			&m.IsGroup,
			&m.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
