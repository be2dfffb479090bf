package repository

import (
	"context"
	"errors"
	"time"

	"skillex/internal/database"

	"github.com/google/uuid"
)

var ErrFeedbackExists = errors.New("feedback already submitted")

type Feedback struct {
	ID        uuid.UUID
	SessionID uuid.UUID
	AuthorID  uuid.UUID
	Rating    int
	Comment   string
	CreatedAt time.Time
}

type FeedbackRepository interface {
	Create(ctx context.Context, f Feedback) (Feedback, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]Feedback, error)
}

type PostgresFeedbackRepository struct {
	db database.DB
}

func NewPostgresFeedbackRepository(db database.DB) *PostgresFeedbackRepository {
	return &PostgresFeedbackRepository{db: db}
}

func (p *PostgresFeedbackRepository) Create(ctx context.Context, f Feedback) (Feedback, error) {
	affected, err := p.db.Exec(ctx,
		`INSERT INTO feedback (id, session_id, author_id, rating, comment)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (session_id, author_id) DO NOTHING`,
		f.ID, f.SessionID, f.AuthorID, f.Rating, f.Comment,
	)
	if err != nil {
		return Feedback{}, err
	}
	if affected == 0 {
		return Feedback{}, ErrFeedbackExists
	}

	row := p.db.QueryRow(ctx,
		`SELECT id, session_id, author_id, rating, comment, created_at FROM feedback WHERE id = $1`,
		f.ID,
	)
	var created Feedback
	if err := row.Scan(&created.ID, &created.SessionID, &created.AuthorID, &created.Rating, &created.Comment, &created.CreatedAt); err != nil {
		return Feedback{}, err
	}
	return created, nil
}

func (p *PostgresFeedbackRepository) ListBySession(ctx context.Context, sessionID uuid.UUID) ([]Feedback, error) {
	rows, err := p.db.Query(ctx,
		`SELECT id, session_id, author_id, rating, comment, created_at
		 FROM feedback
		 WHERE session_id = $1
		 ORDER BY created_at`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Feedback, 0)
	for rows.Next() {
		var f Feedback
		if err := rows.Scan(&f.ID, &f.SessionID, &f.AuthorID, &f.Rating, &f.Comment, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
