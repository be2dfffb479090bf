package repository

import (
	"context"
	"errors"
	"time"

	"skillex/internal/database"

	"github.com/google/uuid"
)

var ErrEndorsementExists = errors.New("endorsement already exists")

type Endorsement struct {
	ID         uuid.UUID
	EndorserID uuid.UUID
	UserID     uuid.UUID
	SkillID    uuid.UUID
	SkillName  string
	Comment    string
	CreatedAt  time.Time
}

type EndorsementRepository interface {
	Create(ctx context.Context, e Endorsement) (Endorsement, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]Endorsement, error)
}

type PostgresEndorsementRepository struct {
	db database.DB
}

func NewPostgresEndorsementRepository(db database.DB) *PostgresEndorsementRepository {
	return &PostgresEndorsementRepository{db: db}
}

func (p *PostgresEndorsementRepository) Create(ctx context.Context, e Endorsement) (Endorsement, error) {
	affected, err := p.db.Exec(ctx,
		`INSERT INTO endorsements (id, endorser_id, user_id, skill_id, comment)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (endorser_id, user_id, skill_id) DO NOTHING`,
		e.ID, e.EndorserID, e.UserID, e.SkillID, e.Comment,
	)
	if err != nil {
		return Endorsement{}, err
	}
	if affected == 0 {
		return Endorsement{}, ErrEndorsementExists
	}

	row := p.db.QueryRow(ctx,
		`SELECT e.id, e.endorser_id, e.user_id, e.skill_id, s.name, e.comment, e.created_at
		 FROM endorsements e JOIN skills s ON s.id = e.skill_id
		 WHERE e.id = $1`,
		e.ID,
	)
	var created Endorsement
	if err := row.Scan(&created.ID, &created.EndorserID, &created.UserID, &created.SkillID, &created.SkillName, &created.Comment, &created.CreatedAt); err != nil {
		return Endorsement{}, err
	}
	return created, nil
}

func (p *PostgresEndorsementRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]Endorsement, error) {
	rows, err := p.db.Query(ctx,
		`SELECT e.id, e.endorser_id, e.user_id, e.skill_id, s.name, e.comment, e.created_at
		 FROM endorsements e JOIN skills s ON s.id = e.skill_id
		 WHERE e.user_id = $1
		 ORDER BY e.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Endorsement, 0)
	for rows.Next() {
		var e Endorsement
		if err := rows.Scan(&e.ID, &e.EndorserID, &e.UserID, &e.SkillID, &e.SkillName, &e.Comment, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
