package dto

import "github.com/google/uuid"

type SkillResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
}

type UserSkillResponse struct {
	ID          uuid.UUID `json:"id"`
	SkillID     uuid.UUID `json:"skill_id"`
	SkillName   string    `json:"skill_name"`
	Role        string    `json:"role"`
	Proficiency int       `json:"proficiency"`
}
