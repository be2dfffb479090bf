package matching

import (
	"math"

	"skillex/internal/domain/availability"

	"github.com/google/uuid"
)

type Skill struct {
	SkillID     uuid.UUID
	SkillName   string
	Proficiency int
}

// Participant is one side of a prospective exchange: what they can teach,
// what they want to learn, and when they are free.
type Participant struct {
	UserID  uuid.UUID
	Teaches []Skill
	Learns  []Skill
	Week    availability.Mask
}

type MatchedSkill struct {
	SkillID           uuid.UUID
	SkillName         string
	TeacherID         uuid.UUID
	ScoreContribution int
}

type UnmetSkill struct {
	SkillID   uuid.UUID
	SkillName string
	LearnerID uuid.UUID
}

type Result struct {
	MatchScore    int
	OverlapHours  int
	CommonBlocks  []availability.Block
	MatchedSkills []MatchedSkill
	UnmetSkills   []UnmetSkill
}

// Calculate scores a prospective skill exchange 0-100. Up to 45 points
// for each teaching direction (how well one side's teach skills cover the
// other's learn wishes), up to 10 for shared weekly availability. The
// score is symmetric: swapping a and b yields the same number.
func Calculate(a, b Participant) Result {
	res := Result{
		MatchedSkills: make([]MatchedSkill, 0, len(a.Learns)+len(b.Learns)),
		UnmetSkills:   make([]UnmetSkill, 0),
	}

	total := scoreDirection(&res, b, a)
	total += scoreDirection(&res, a, b)

	common := a.Week.Intersect(b.Week)
	res.OverlapHours = common.Count()
	res.CommonBlocks = common.Blocks()

	overlapPts := float64(res.OverlapHours)
	if overlapPts > 10 {
		overlapPts = 10
	}
	total += overlapPts

	score := int(math.Round(total))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	res.MatchScore = score
	return res
}

// scoreDirection measures how well teacher covers learner's wishes and
// appends the matched/unmet details. Worth at most 45 points.
func scoreDirection(res *Result, teacher, learner Participant) float64 {
	if len(learner.Learns) == 0 {
		return 0
	}

	teachBySkill := make(map[uuid.UUID]Skill, len(teacher.Teaches))
	for _, s := range teacher.Teaches {
		if s.SkillID == uuid.Nil {
			continue
		}
		teachBySkill[s.SkillID] = s
	}

	per := 45.0 / float64(len(learner.Learns))

	var total float64
	for _, want := range learner.Learns {
		if want.SkillID == uuid.Nil {
			continue
		}
		ts, ok := teachBySkill[want.SkillID]
		if !ok {
			res.UnmetSkills = append(res.UnmetSkills, UnmetSkill{
				SkillID:   want.SkillID,
				SkillName: want.SkillName,
				LearnerID: learner.UserID,
			})
			continue
		}

		contrib := per * teachRatio(ts.Proficiency, want.Proficiency)
		total += contrib
		res.MatchedSkills = append(res.MatchedSkills, MatchedSkill{
			SkillID:           want.SkillID,
			SkillName:         want.SkillName,
			TeacherID:         teacher.UserID,
			ScoreContribution: int(math.Round(contrib)),
		})
	}
	return total
}

// teachRatio compares the teacher's proficiency against the level the
// learner wants to reach (one above their current level). A teacher at or
// above that level contributes fully, below it proportionally.
func teachRatio(teachLevel, learnerLevel int) float64 {
	tp := clampInt(teachLevel, 0, 5)
	if tp <= 0 {
		return 0
	}
	want := clampInt(learnerLevel+1, 1, 5)
	if tp >= want {
		return 1
	}
	return float64(tp) / float64(want)
}

func clampInt(v, minV, maxV int) int {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
