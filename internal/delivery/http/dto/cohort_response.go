package dto

import (
	"time"

	"github.com/google/uuid"
)

type CohortResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	SkillID   uuid.UUID `json:"skill_id"`
	CreatedBy uuid.UUID `json:"created_by"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
}

type CohortDetailResponse struct {
	CohortResponse
	MemberIDs []uuid.UUID `json:"member_ids"`
}

type SessionResponse struct {
	ID        uuid.UUID `json:"id"`
	CohortID  uuid.UUID `json:"cohort_id"`
	Title     string    `json:"title"`
	Day       int       `json:"day"`
	Hour      int       `json:"hour"`
	Duration  int       `json:"duration"`
	Status    string    `json:"status"`
	CreatedBy uuid.UUID `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}
