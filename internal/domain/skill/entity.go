package skill

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleTeach = "teach"
	RoleLearn = "learn"
)

type Skill struct {
	ID        uuid.UUID
	Name      string
	Category  string
	CreatedAt time.Time
}

// UserSkill links a user to a catalog skill in one direction of the
// exchange: something they offer to teach or something they want to
// learn. Proficiency is the user's current level, 0-5.
type UserSkill struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	SkillID     uuid.UUID
	Role        string
	Proficiency int
	CreatedAt   time.Time
}

func ValidRole(role string) bool {
	return role == RoleTeach || role == RoleLearn
}
