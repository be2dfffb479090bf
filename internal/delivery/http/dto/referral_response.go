package dto

import (
	"time"

	"github.com/google/uuid"
)

type ReferralResponse struct {
	ID         uuid.UUID `json:"id"`
	ReferrerID uuid.UUID `json:"referrer_id"`
	ReferredID uuid.UUID `json:"referred_id"`
	SkillID    uuid.UUID `json:"skill_id"`
	SkillName  string    `json:"skill_name"`
	Note       string    `json:"note"`
	CreatedAt  time.Time `json:"created_at"`
}

type EndorsementResponse struct {
	ID         uuid.UUID `json:"id"`
	EndorserID uuid.UUID `json:"endorser_id"`
	UserID     uuid.UUID `json:"user_id"`
	SkillID    uuid.UUID `json:"skill_id"`
	SkillName  string    `json:"skill_name"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

type FeedbackResponse struct {
	ID        uuid.UUID `json:"id"`
	SessionID uuid.UUID `json:"session_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
