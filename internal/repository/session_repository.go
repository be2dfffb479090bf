package repository

import (
	"context"
	"errors"

	"skillex/internal/database"
	"skillex/internal/domain/cohort"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExists   = errors.New("session already scheduled at that slot")
)

type SessionRepository interface {
	Create(ctx context.Context, s cohort.Session) (cohort.Session, error)
	GetByID(ctx context.Context, id uuid.UUID) (cohort.Session, error)
	ListByCohort(ctx context.Context, cohortID uuid.UUID) ([]cohort.Session, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type PostgresSessionRepository struct {
	db database.DB
}

func NewPostgresSessionRepository(db database.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

const sessionSelect = `SELECT id, cohort_id, title, day, hour, duration, status, created_by, created_at FROM sessions`

func (r *PostgresSessionRepository) Create(ctx context.Context, s cohort.Session) (cohort.Session, error) {
	affected, err := r.db.Exec(ctx,
		`INSERT INTO sessions (id, cohort_id, title, day, hour, duration, status, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (cohort_id, day, hour) DO NOTHING`,
		s.ID, s.CohortID, s.Title, s.Day, s.Hour, s.Duration, s.Status, s.CreatedBy,
	)
	if err != nil {
		return cohort.Session{}, err
	}
	if affected == 0 {
		return cohort.Session{}, ErrSessionExists
	}
	return r.GetByID(ctx, s.ID)
}

func (r *PostgresSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (cohort.Session, error) {
	row := r.db.QueryRow(ctx, sessionSelect+` WHERE id = $1`, id)

	var s cohort.Session
	if err := row.Scan(&s.ID, &s.CohortID, &s.Title, &s.Day, &s.Hour, &s.Duration, &s.Status, &s.CreatedBy, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return cohort.Session{}, ErrSessionNotFound
		}
		return cohort.Session{}, err
	}
	return s, nil
}

func (r *PostgresSessionRepository) ListByCohort(ctx context.Context, cohortID uuid.UUID) ([]cohort.Session, error) {
	rows, err := r.db.Query(ctx, sessionSelect+` WHERE cohort_id = $1 ORDER BY day, hour`, cohortID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]cohort.Session, 0)
	for rows.Next() {
		var s cohort.Session
		if err := rows.Scan(&s.ID, &s.CohortID, &s.Title, &s.Day, &s.Hour, &s.Duration, &s.Status, &s.CreatedBy, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSessionRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	affected, err := r.db.Exec(ctx, `UPDATE sessions SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSessionNotFound
	}
	return nil
}
