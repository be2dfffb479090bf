package repository

import (
	"context"
	"errors"

	"skillex/internal/database"
	"skillex/internal/domain/skill"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrUserSkillNotFound = errors.New("user skill not found")
	ErrUserSkillExists   = errors.New("user skill already exists")
)

// UserSkillRow is a user_skills row joined with the skill name.
type UserSkillRow struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	SkillID     uuid.UUID
	SkillName   string
	Role        string
	Proficiency int
}

type UserSkillRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]UserSkillRow, error)
	FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]UserSkillRow, error)
	Create(ctx context.Context, us skill.UserSkill) (UserSkillRow, error)
	Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	ListComplementaryUserIDs(ctx context.Context, userID uuid.UUID, limit int) ([]uuid.UUID, error)
}

type PostgresUserSkillRepository struct {
	db database.DB
}

func NewPostgresUserSkillRepository(db database.DB) *PostgresUserSkillRepository {
	return &PostgresUserSkillRepository{db: db}
}

const userSkillSelect = `
SELECT us.id, us.user_id, us.skill_id, s.name, us.role, COALESCE(us.proficiency, 0)
FROM user_skills us
JOIN skills s ON s.id = us.skill_id`

func (r *PostgresUserSkillRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]UserSkillRow, error) {
	rows, err := r.db.Query(ctx, userSkillSelect+` WHERE us.user_id = $1 ORDER BY us.role, s.name`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUserSkillRows(rows)
}

func (r *PostgresUserSkillRepository) FindByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]UserSkillRow, error) {
	out := make(map[uuid.UUID][]UserSkillRow, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	rows, err := r.db.Query(ctx, userSkillSelect+` WHERE us.user_id = ANY($1) ORDER BY us.role, s.name`, userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items, err := scanUserSkillRows(rows)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		out[it.UserID] = append(out[it.UserID], it)
	}
	return out, nil
}

func (r *PostgresUserSkillRepository) Create(ctx context.Context, us skill.UserSkill) (UserSkillRow, error) {
	affected, err := r.db.Exec(ctx,
		`INSERT INTO user_skills (id, user_id, skill_id, role, proficiency)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id, skill_id, role) DO NOTHING`,
		us.ID, us.UserID, us.SkillID, us.Role, us.Proficiency,
	)
	if err != nil {
		return UserSkillRow{}, err
	}
	if affected == 0 {
		return UserSkillRow{}, ErrUserSkillExists
	}

	row := r.db.QueryRow(ctx, userSkillSelect+` WHERE us.id = $1`, us.ID)
	var created UserSkillRow
	if err := row.Scan(&created.ID, &created.UserID, &created.SkillID, &created.SkillName, &created.Role, &created.Proficiency); err != nil {
		return UserSkillRow{}, err
	}
	return created, nil
}

func (r *PostgresUserSkillRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	var owner uuid.UUID
	row := r.db.QueryRow(ctx, `SELECT user_id FROM user_skills WHERE id = $1`, id)
	if err := row.Scan(&owner); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserSkillNotFound
		}
		return err
	}
	if owner != userID {
		return ErrUserSkillNotFound
	}

	_, err := r.db.Exec(ctx, `DELETE FROM user_skills WHERE id = $1`, id)
	return err
}

// ListComplementaryUserIDs finds users whose teach/learn listings mirror
// the given user's in at least one skill, most recently active first.
func (r *PostgresUserSkillRepository) ListComplementaryUserIDs(ctx context.Context, userID uuid.UUID, limit int) ([]uuid.UUID, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT other.user_id
		 FROM user_skills mine
		 JOIN user_skills other
		   ON other.skill_id = mine.skill_id
		  AND other.role <> mine.role
		  AND other.user_id <> mine.user_id
		 WHERE mine.user_id = $1
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0, limit)
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

func scanUserSkillRows(rows database.Rows) ([]UserSkillRow, error) {
	out := make([]UserSkillRow, 0)
	for rows.Next() {
		var us UserSkillRow
		if err := rows.Scan(&us.ID, &us.UserID, &us.SkillID, &us.SkillName, &us.Role, &us.Proficiency); err != nil {
			return nil, err
		}
		out = append(out, us)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
