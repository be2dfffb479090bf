package repository

import (
	"context"
	"time"

	"skillex/internal/database"

	"github.com/google/uuid"
)

type Message struct {
	ID          uuid.UUID
	SenderID    uuid.UUID
	RecipientID uuid.UUID
	Body        string
	SentAt      time.Time
	ReadAt      *time.Time
}

type MessageRepository interface {
	Create(ctx context.Context, m Message) (Message, error)
	ListConversation(ctx context.Context, a, b uuid.UUID, limit int) ([]Message, error)
	MarkRead(ctx context.Context, recipientID, senderID uuid.UUID) (int64, error)
}

type PostgresMessageRepository struct {
	db database.DB
}

func NewPostgresMessageRepository(db database.DB) *PostgresMessageRepository {
	return &PostgresMessageRepository{db: db}
}

func (r *PostgresMessageRepository) Create(ctx context.Context, m Message) (Message, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO messages (id, sender_id, recipient_id, body) VALUES ($1, $2, $3, $4)`,
		m.ID, m.SenderID, m.RecipientID, m.Body,
	)
	if err != nil {
		return Message{}, err
	}

	row := r.db.QueryRow(ctx,
		`SELECT id, sender_id, recipient_id, body, sent_at, read_at FROM messages WHERE id = $1`,
		m.ID,
	)
	var created Message
	if err := row.Scan(&created.ID, &created.SenderID, &created.RecipientID, &created.Body, &created.SentAt, &created.ReadAt); err != nil {
		return Message{}, err
	}
	return created, nil
}

// ListConversation returns the newest messages between two users in
// chronological order.
func (r *PostgresMessageRepository) ListConversation(ctx context.Context, a, b uuid.UUID, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, sender_id, recipient_id, body, sent_at, read_at
		 FROM (
			SELECT id, sender_id, recipient_id, body, sent_at, read_at
			FROM messages
			WHERE (sender_id = $1 AND recipient_id = $2) OR (sender_id = $2 AND recipient_id = $1)
			ORDER BY sent_at DESC
			LIMIT $3
		 ) latest
		 ORDER BY sent_at ASC`,
		a, b, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Message, 0, limit)
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Body, &m.SentAt, &m.ReadAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresMessageRepository) MarkRead(ctx context.Context, recipientID, senderID uuid.UUID) (int64, error) {
	return r.db.Exec(ctx,
		`UPDATE messages SET read_at = now() WHERE recipient_id = $1 AND sender_id = $2 AND read_at IS NULL`,
		recipientID, senderID,
	)
}
