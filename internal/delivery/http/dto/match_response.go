package dto

import "github.com/google/uuid"

type CandidateResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	MatchScore   int       `json:"match_score"`
	OverlapHours int       `json:"overlap_hours"`
}

type MatchedSkillResponse struct {
	SkillID           uuid.UUID `json:"skill_id"`
	SkillName         string    `json:"skill_name"`
	TeacherID         uuid.UUID `json:"teacher_id"`
	ScoreContribution int       `json:"score_contribution"`
}

type UnmetSkillResponse struct {
	SkillID   uuid.UUID `json:"skill_id"`
	SkillName string    `json:"skill_name"`
	LearnerID uuid.UUID `json:"learner_id"`
}

type MatchDetailResponse struct {
	MatchScore    int                    `json:"match_score"`
	OverlapHours  int                    `json:"overlap_hours"`
	CommonBlocks  []string               `json:"common_blocks"`
	MatchedSkills []MatchedSkillResponse `json:"matched_skills"`
	UnmetSkills   []UnmetSkillResponse   `json:"unmet_skills"`
}
