package repository

import (
	"context"
	"errors"
	"time"

	"skillex/internal/database"

	"github.com/google/uuid"
)

var ErrReferralExists = errors.New("referral already exists")

type Referral struct {
	ID         uuid.UUID
	ReferrerID uuid.UUID
	ReferredID uuid.UUID
	SkillID    uuid.UUID
	SkillName  string
	Note       string
	CreatedAt  time.Time
}

type ReferralRepository interface {
	Create(ctx context.Context, r Referral) (Referral, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]Referral, error)
}

type PostgresReferralRepository struct {
	db database.DB
}

func NewPostgresReferralRepository(db database.DB) *PostgresReferralRepository {
	return &PostgresReferralRepository{db: db}
}

func (p *PostgresReferralRepository) Create(ctx context.Context, r Referral) (Referral, error) {
	affected, err := p.db.Exec(ctx,
		`INSERT INTO referrals (id, referrer_id, referred_id, skill_id, note)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (referrer_id, referred_id, skill_id) DO NOTHING`,
		r.ID, r.ReferrerID, r.ReferredID, r.SkillID, r.Note,
	)
	if err != nil {
		return Referral{}, err
	}
	if affected == 0 {
		return Referral{}, ErrReferralExists
	}

	row := p.db.QueryRow(ctx,
		`SELECT r.id, r.referrer_id, r.referred_id, r.skill_id, s.name, r.note, r.created_at
		 FROM referrals r JOIN skills s ON s.id = r.skill_id
		 WHERE r.id = $1`,
		r.ID,
	)
	var created Referral
	if err := row.Scan(&created.ID, &created.ReferrerID, &created.ReferredID, &created.SkillID, &created.SkillName, &created.Note, &created.CreatedAt); err != nil {
		return Referral{}, err
	}
	return created, nil
}

func (p *PostgresReferralRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]Referral, error) {
	rows, err := p.db.Query(ctx,
		`SELECT r.id, r.referrer_id, r.referred_id, r.skill_id, s.name, r.note, r.created_at
		 FROM referrals r JOIN skills s ON s.id = r.skill_id
		 WHERE r.referred_id = $1
		 ORDER BY r.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Referral, 0)
	for rows.Next() {
		var r Referral
		if err := rows.Scan(&r.ID, &r.ReferrerID, &r.ReferredID, &r.SkillID, &r.SkillName, &r.Note, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
