package repository

import (
	"context"
	"errors"

	"skillex/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrAvailabilityNotFound = errors.New("availability not found")

type AvailabilityRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]bool, error)
	GetByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]bool, error)
	Replace(ctx context.Context, userID uuid.UUID, slots []bool) error
}

type PostgresAvailabilityRepository struct {
	db database.DB
}

func NewPostgresAvailabilityRepository(db database.DB) *PostgresAvailabilityRepository {
	return &PostgresAvailabilityRepository{db: db}
}

func (r *PostgresAvailabilityRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]bool, error) {
	row := r.db.QueryRow(ctx, `SELECT slots FROM availability WHERE user_id = $1`, userID)

	var slots []bool
	if err := row.Scan(&slots); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAvailabilityNotFound
		}
		return nil, err
	}
	return slots, nil
}

func (r *PostgresAvailabilityRepository) GetByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]bool, error) {
	if len(userIDs) == 0 {
		return map[uuid.UUID][]bool{}, nil
	}

	rows, err := r.db.Query(ctx, `SELECT user_id, slots FROM availability WHERE user_id = ANY($1)`, userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]bool, len(userIDs))
	for rows.Next() {
		var id uuid.UUID
		var slots []bool
		if err := rows.Scan(&id, &slots); err != nil {
			return nil, err
		}
		out[id] = slots
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Replace stores the full weekly mask. There is no partial update: the
// caller always supplies all 168 slots.
func (r *PostgresAvailabilityRepository) Replace(ctx context.Context, userID uuid.UUID, slots []bool) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO availability (user_id, slots, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (user_id) DO UPDATE SET slots = EXCLUDED.slots, updated_at = now()`,
		userID, slots,
	)
	return err
}
