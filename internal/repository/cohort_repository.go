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
	ErrCohortNotFound = errors.New("cohort not found")
	ErrAlreadyMember  = errors.New("already a member")
	ErrNotMember      = errors.New("not a member")
)

type CohortRepository interface {
	Create(ctx context.Context, c cohort.Cohort) (cohort.Cohort, error)
	GetByID(ctx context.Context, id uuid.UUID) (cohort.Cohort, error)
	List(ctx context.Context, limit, offset int) ([]cohort.Cohort, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]cohort.Cohort, error)

	AddMember(ctx context.Context, cohortID, userID uuid.UUID) error
	RemoveMember(ctx context.Context, cohortID, userID uuid.UUID) error
	ListMemberIDs(ctx context.Context, cohortID uuid.UUID) ([]uuid.UUID, error)
	CountMembers(ctx context.Context, cohortID uuid.UUID) (int, error)
	IsMember(ctx context.Context, cohortID, userID uuid.UUID) (bool, error)
}

type PostgresCohortRepository struct {
	db database.DB
}

func NewPostgresCohortRepository(db database.DB) *PostgresCohortRepository {
	return &PostgresCohortRepository{db: db}
}

const cohortSelect = `SELECT id, name, skill_id, created_by, capacity, created_at FROM cohorts`

func (r *PostgresCohortRepository) Create(ctx context.Context, c cohort.Cohort) (cohort.Cohort, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO cohorts (id, name, skill_id, created_by, capacity) VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Name, c.SkillID, c.CreatedBy, c.Capacity,
	)
	if err != nil {
		return cohort.Cohort{}, err
	}
	return r.GetByID(ctx, c.ID)
}

func (r *PostgresCohortRepository) GetByID(ctx context.Context, id uuid.UUID) (cohort.Cohort, error) {
	row := r.db.QueryRow(ctx, cohortSelect+` WHERE id = $1`, id)
	return scanCohort(row)
}

func (r *PostgresCohortRepository) List(ctx context.Context, limit, offset int) ([]cohort.Cohort, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.db.Query(ctx, cohortSelect+` ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCohorts(rows)
}

func (r *PostgresCohortRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]cohort.Cohort, error) {
	rows, err := r.db.Query(ctx,
		cohortSelect+` WHERE id IN (SELECT cohort_id FROM cohort_members WHERE user_id = $1) ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCohorts(rows)
}

func (r *PostgresCohortRepository) AddMember(ctx context.Context, cohortID, userID uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`INSERT INTO cohort_members (cohort_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		cohortID, userID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAlreadyMember
	}
	return nil
}

func (r *PostgresCohortRepository) RemoveMember(ctx context.Context, cohortID, userID uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM cohort_members WHERE cohort_id = $1 AND user_id = $2`,
		cohortID, userID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotMember
	}
	return nil
}

func (r *PostgresCohortRepository) ListMemberIDs(ctx context.Context, cohortID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id FROM cohort_members WHERE cohort_id = $1 ORDER BY joined_at`,
		cohortID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCohortRepository) CountMembers(ctx context.Context, cohortID uuid.UUID) (int, error) {
	var n int
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM cohort_members WHERE cohort_id = $1`, cohortID)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresCohortRepository) IsMember(ctx context.Context, cohortID, userID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM cohort_members WHERE cohort_id = $1 AND user_id = $2)`,
		cohortID, userID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanCohort(row database.Row) (cohort.Cohort, error) {
	var c cohort.Cohort
	if err := row.Scan(&c.ID, &c.Name, &c.SkillID, &c.CreatedBy, &c.Capacity, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return cohort.Cohort{}, ErrCohortNotFound
		}
		return cohort.Cohort{}, err
	}
	return c, nil
}

func scanCohorts(rows database.Rows) ([]cohort.Cohort, error) {
	out := make([]cohort.Cohort, 0)
	for rows.Next() {
		var c cohort.Cohort
		if err := rows.Scan(&c.ID, &c.Name, &c.SkillID, &c.CreatedBy, &c.Capacity, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
