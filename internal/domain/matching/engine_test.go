package matching

import (
	"testing"

	"skillex/internal/domain/availability"

	"github.com/google/uuid"
)

func weekOf(t *testing.T, indices ...int) availability.Mask {
	t.Helper()
	slots := make([]bool, availability.SlotsPerWeek)
	for _, i := range indices {
		slots[i] = true
	}
	m, err := availability.Parse(slots)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return m
}

func TestCalculate_PerfectComplement(t *testing.T) {
	goID := uuid.New()
	pianoID := uuid.New()

	// a teaches Go (5), wants piano; b teaches piano (5), wants Go. Both
	// free for 10+ common hours.
	hours := make([]int, 0, 12)
	for h := 0; h < 12; h++ {
		hours = append(hours, 18+h*12)
	}
	week := weekOf(t, hours...)

	a := Participant{
		UserID:  uuid.New(),
		Teaches: []Skill{{SkillID: goID, SkillName: "Go", Proficiency: 5}},
		Learns:  []Skill{{SkillID: pianoID, SkillName: "Piano", Proficiency: 1}},
		Week:    week,
	}
	b := Participant{
		UserID:  uuid.New(),
		Teaches: []Skill{{SkillID: pianoID, SkillName: "Piano", Proficiency: 5}},
		Learns:  []Skill{{SkillID: goID, SkillName: "Go", Proficiency: 2}},
		Week:    week,
	}

	res := Calculate(a, b)
	if res.MatchScore != 100 {
		t.Fatalf("expected score 100, got %d", res.MatchScore)
	}
	if len(res.MatchedSkills) != 2 {
		t.Fatalf("expected 2 matched skills, got %+v", res.MatchedSkills)
	}
	if len(res.UnmetSkills) != 0 {
		t.Fatalf("expected no unmet skills, got %+v", res.UnmetSkills)
	}
	if res.OverlapHours != 12 {
		t.Fatalf("expected 12 overlap hours, got %d", res.OverlapHours)
	}
}

func TestCalculate_Symmetric(t *testing.T) {
	goID := uuid.New()
	sqlID := uuid.New()
	pianoID := uuid.New()

	a := Participant{
		UserID: uuid.New(),
		Teaches: []Skill{
			{SkillID: goID, SkillName: "Go", Proficiency: 4},
		},
		Learns: []Skill{
			{SkillID: pianoID, SkillName: "Piano", Proficiency: 0},
			{SkillID: sqlID, SkillName: "SQL", Proficiency: 2},
		},
		Week: weekOf(t, 18, 19, 42),
	}
	b := Participant{
		UserID: uuid.New(),
		Teaches: []Skill{
			{SkillID: pianoID, SkillName: "Piano", Proficiency: 2},
		},
		Learns: []Skill{
			{SkillID: goID, SkillName: "Go", Proficiency: 1},
		},
		Week: weekOf(t, 18, 43),
	}

	if Calculate(a, b).MatchScore != Calculate(b, a).MatchScore {
		t.Fatalf("score must be symmetric")
	}
}

func TestCalculate_NoComplementNoOverlap(t *testing.T) {
	a := Participant{
		UserID:  uuid.New(),
		Teaches: []Skill{{SkillID: uuid.New(), SkillName: "Go", Proficiency: 5}},
		Learns:  []Skill{{SkillID: uuid.New(), SkillName: "Piano", Proficiency: 0}},
		Week:    weekOf(t, 10),
	}
	b := Participant{
		UserID:  uuid.New(),
		Teaches: []Skill{{SkillID: uuid.New(), SkillName: "Spanish", Proficiency: 5}},
		Learns:  []Skill{{SkillID: uuid.New(), SkillName: "Drums", Proficiency: 0}},
		Week:    weekOf(t, 11),
	}

	res := Calculate(a, b)
	if res.MatchScore != 0 {
		t.Fatalf("expected score 0, got %d", res.MatchScore)
	}
	if len(res.UnmetSkills) != 2 {
		t.Fatalf("expected 2 unmet skills, got %+v", res.UnmetSkills)
	}
	if res.OverlapHours != 0 {
		t.Fatalf("expected no overlap, got %d", res.OverlapHours)
	}
}

func TestCalculate_WeakTeacherScoresPartially(t *testing.T) {
	skillID := uuid.New()
	a := Participant{
		UserID:  uuid.New(),
		Teaches: []Skill{{SkillID: skillID, SkillName: "Guitar", Proficiency: 2}},
	}
	b := Participant{
		UserID: uuid.New(),
		Learns: []Skill{{SkillID: skillID, SkillName: "Guitar", Proficiency: 3}},
	}

	res := Calculate(a, b)
	// Teacher level 2 against a wanted level of 4: half the 45 points
	// for that direction, rounded.
	if res.MatchScore != 23 {
		t.Fatalf("expected score 23, got %d", res.MatchScore)
	}
	if len(res.MatchedSkills) != 1 || res.MatchedSkills[0].TeacherID != a.UserID {
		t.Fatalf("unexpected matched skills %+v", res.MatchedSkills)
	}
}
