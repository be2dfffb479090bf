package usecase

import (
	"context"
	"errors"
	"testing"

	"skillex/internal/domain/cohort"
	"skillex/internal/domain/skill"

	"github.com/google/uuid"
)

type mockSkillRepo struct {
	known map[uuid.UUID]bool
}

func (m *mockSkillRepo) ListSkills(context.Context) ([]skill.Skill, error) { return nil, nil }
func (m *mockSkillRepo) GetByID(_ context.Context, id uuid.UUID) (skill.Skill, error) {
	return skill.Skill{ID: id}, nil
}
func (m *mockSkillRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	return m.known[id], nil
}

func TestCohortUsecase_Create_AddsCreatorAsMember(t *testing.T) {
	skillID := uuid.New()
	creator := uuid.New()
	cohorts := &mockCohortRepo{cohorts: map[uuid.UUID]cohort.Cohort{}, members: map[uuid.UUID][]uuid.UUID{}}
	uc := NewCohortUsecase(cohorts, &mockSkillRepo{known: map[uuid.UUID]bool{skillID: true}}, nil)

	c, err := uc.Create(context.Background(), creator, CreateCohortInput{Name: "Spanish circle", SkillID: skillID, Capacity: 4})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(cohorts.members[c.ID]) != 1 || cohorts.members[c.ID][0] != creator {
		t.Fatalf("expected creator as first member")
	}
}

func TestCohortUsecase_Create_Validation(t *testing.T) {
	skillID := uuid.New()
	uc := NewCohortUsecase(&mockCohortRepo{}, &mockSkillRepo{known: map[uuid.UUID]bool{skillID: true}}, nil)

	cases := []CreateCohortInput{
		{Name: "", SkillID: skillID, Capacity: 4},
		{Name: "ok", SkillID: skillID, Capacity: 1},
		{Name: "ok", SkillID: skillID, Capacity: 25},
	}
	for i, in := range cases {
		if _, err := uc.Create(context.Background(), uuid.New(), in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}

	if _, err := uc.Create(context.Background(), uuid.New(), CreateCohortInput{Name: "ok", SkillID: uuid.New(), Capacity: 4}); !errors.Is(err, ErrSkillNotFound) {
		t.Fatalf("expected ErrSkillNotFound, got %v", err)
	}
}

func TestCohortUsecase_Join_CapacityEnforced(t *testing.T) {
	cohortID := uuid.New()
	a, b := uuid.New(), uuid.New()
	cohorts := &mockCohortRepo{
		cohorts: map[uuid.UUID]cohort.Cohort{cohortID: {ID: cohortID, Capacity: 2}},
		members: map[uuid.UUID][]uuid.UUID{cohortID: {a, b}},
	}
	uc := NewCohortUsecase(cohorts, &mockSkillRepo{}, nil)

	if err := uc.Join(context.Background(), cohortID, uuid.New()); !errors.Is(err, ErrCohortFull) {
		t.Fatalf("expected ErrCohortFull, got %v", err)
	}
}

func TestCohortUsecase_Join_Duplicate(t *testing.T) {
	cohortID := uuid.New()
	a := uuid.New()
	cohorts := &mockCohortRepo{
		cohorts: map[uuid.UUID]cohort.Cohort{cohortID: {ID: cohortID, Capacity: 4}},
		members: map[uuid.UUID][]uuid.UUID{cohortID: {a}},
	}
	uc := NewCohortUsecase(cohorts, &mockSkillRepo{}, nil)

	if err := uc.Join(context.Background(), cohortID, a); !errors.Is(err, ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember, got %v", err)
	}
}

func TestCohortUsecase_Leave_NotMember(t *testing.T) {
	cohortID := uuid.New()
	cohorts := &mockCohortRepo{
		cohorts: map[uuid.UUID]cohort.Cohort{cohortID: {ID: cohortID, Capacity: 4}},
		members: map[uuid.UUID][]uuid.UUID{},
	}
	uc := NewCohortUsecase(cohorts, &mockSkillRepo{}, nil)

	if err := uc.Leave(context.Background(), cohortID, uuid.New()); !errors.Is(err, ErrNotMember) {
		t.Fatalf("expected ErrNotMember, got %v", err)
	}
}
