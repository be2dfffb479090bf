package usecase

import (
	"context"
	"errors"
	"testing"

	"skillex/internal/domain/availability"
	"skillex/internal/repository"

	"github.com/google/uuid"
)

type mockAvailabilityRepo struct {
	byUser map[uuid.UUID][]bool
	err    error

	replaced map[uuid.UUID][]bool
}

func (m *mockAvailabilityRepo) GetByUserID(_ context.Context, userID uuid.UUID) ([]bool, error) {
	if m.err != nil {
		return nil, m.err
	}
	slots, ok := m.byUser[userID]
	if !ok {
		return nil, repository.ErrAvailabilityNotFound
	}
	return slots, nil
}

func (m *mockAvailabilityRepo) GetByUserIDs(_ context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]bool, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make(map[uuid.UUID][]bool, len(userIDs))
	for _, id := range userIDs {
		if slots, ok := m.byUser[id]; ok {
			out[id] = slots
		}
	}
	return out, nil
}

func (m *mockAvailabilityRepo) Replace(_ context.Context, userID uuid.UUID, slots []bool) error {
	if m.err != nil {
		return m.err
	}
	if m.replaced == nil {
		m.replaced = make(map[uuid.UUID][]bool)
	}
	m.replaced[userID] = slots
	return nil
}

func weekSlots(indices ...int) []bool {
	slots := make([]bool, availability.SlotsPerWeek)
	for _, i := range indices {
		slots[i] = true
	}
	return slots
}

func TestAvailabilityUsecase_Replace_InvalidLength(t *testing.T) {
	uc := NewAvailabilityUsecase(&mockAvailabilityRepo{}, nil)
	_, err := uc.Replace(context.Background(), uuid.New(), make([]bool, 167))
	if !errors.Is(err, ErrInvalidMask) {
		t.Fatalf("expected ErrInvalidMask, got %v", err)
	}
}

func TestAvailabilityUsecase_Replace_Stores(t *testing.T) {
	repo := &mockAvailabilityRepo{}
	uc := NewAvailabilityUsecase(repo, nil)
	userID := uuid.New()

	// Mon 18:00-20:00
	sum, err := uc.Replace(context.Background(), userID, weekSlots(18, 19))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !sum.HasAvailability {
		t.Fatalf("expected availability")
	}
	if sum.Summary != "Mon 6-8 PM" {
		t.Fatalf("unexpected summary %q", sum.Summary)
	}
	if got := repo.replaced[userID]; len(got) != availability.SlotsPerWeek {
		t.Fatalf("expected full week stored, got %d slots", len(got))
	}
}

func TestAvailabilityUsecase_Get_MissingReadsAsEmptyWeek(t *testing.T) {
	uc := NewAvailabilityUsecase(&mockAvailabilityRepo{}, nil)

	slots, sum, err := uc.Get(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(slots) != availability.SlotsPerWeek {
		t.Fatalf("expected %d slots, got %d", availability.SlotsPerWeek, len(slots))
	}
	for i, s := range slots {
		if s {
			t.Fatalf("expected slot %d false", i)
		}
	}
	if sum.HasAvailability {
		t.Fatalf("expected no availability")
	}
	if sum.Summary != "Not specified" {
		t.Fatalf("unexpected summary %q", sum.Summary)
	}
}

func TestAvailabilityUsecase_CommonTimes_MondayEvening(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	repo := &mockAvailabilityRepo{byUser: map[uuid.UUID][]bool{
		// a: Mon 18-20, Tue 18-20; b: Mon 18-19 plus all of Tuesday.
		a: weekSlots(18, 19, 42, 43),
		b: weekSlots(append([]int{18}, seqRange(24, 48)...)...),
	}}
	uc := NewAvailabilityUsecase(repo, nil)

	out, err := uc.CommonTimes(context.Background(), []uuid.UUID{a, b})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	common := 0
	for _, s := range out.Slots {
		if s {
			common++
		}
	}
	// Mon 18 and Tue 18-19 survive the intersection.
	if common != 3 {
		t.Fatalf("expected 3 common slots, got %d", common)
	}
	if !out.Slots[18] || !out.Slots[42] || !out.Slots[43] {
		t.Fatalf("unexpected common slots")
	}
	if out.Summary.Summary != "Mon 6-7 PM, Tue 6-8 PM" {
		t.Fatalf("unexpected summary %q", out.Summary.Summary)
	}
}

func TestAvailabilityUsecase_CommonTimes_MissingUser(t *testing.T) {
	a := uuid.New()
	repo := &mockAvailabilityRepo{byUser: map[uuid.UUID][]bool{
		a: weekSlots(18),
	}}
	uc := NewAvailabilityUsecase(repo, nil)

	_, err := uc.CommonTimes(context.Background(), []uuid.UUID{a, uuid.New()})
	if !errors.Is(err, ErrAvailabilityNotFound) {
		t.Fatalf("expected ErrAvailabilityNotFound, got %v", err)
	}
}

func TestAvailabilityUsecase_CommonTimes_NoUsers(t *testing.T) {
	uc := NewAvailabilityUsecase(&mockAvailabilityRepo{}, nil)
	_, err := uc.CommonTimes(context.Background(), nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func seqRange(from, to int) []int {
	out := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, i)
	}
	return out
}
