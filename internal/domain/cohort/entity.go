package cohort

import (
	"time"

	"github.com/google/uuid"
)

const (
	SessionStatusScheduled = "scheduled"
	SessionStatusCompleted = "completed"
	SessionStatusCanceled  = "canceled"
)

// Cohort is a small group of users matched around one skill for a
// multi-week exchange.
type Cohort struct {
	ID        uuid.UUID
	Name      string
	SkillID   uuid.UUID
	CreatedBy uuid.UUID
	Capacity  int
	CreatedAt time.Time
}

type Member struct {
	CohortID uuid.UUID
	UserID   uuid.UUID
	JoinedAt time.Time
}

// Session is a recurring weekly meeting slot for a cohort. Day 0 is
// Monday, Hour is the starting hour, Duration in whole hours.
type Session struct {
	ID        uuid.UUID
	CohortID  uuid.UUID
	Title     string
	Day       int
	Hour      int
	Duration  int
	Status    string
	CreatedBy uuid.UUID
	CreatedAt time.Time
}
