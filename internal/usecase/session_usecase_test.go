package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"skillex/internal/domain/cohort"
	"skillex/internal/repository"

	"github.com/google/uuid"
)

type mockSessionRepo struct {
	created  []cohort.Session
	existing map[uuid.UUID]cohort.Session
	taken    bool
}

func (m *mockSessionRepo) Create(_ context.Context, s cohort.Session) (cohort.Session, error) {
	if m.taken {
		return cohort.Session{}, repository.ErrSessionExists
	}
	s.CreatedAt = time.Now().UTC()
	m.created = append(m.created, s)
	return s, nil
}

func (m *mockSessionRepo) GetByID(_ context.Context, id uuid.UUID) (cohort.Session, error) {
	s, ok := m.existing[id]
	if !ok {
		return cohort.Session{}, repository.ErrSessionNotFound
	}
	return s, nil
}

func (m *mockSessionRepo) ListByCohort(_ context.Context, cohortID uuid.UUID) ([]cohort.Session, error) {
	var out []cohort.Session
	for _, s := range m.existing {
		if s.CohortID == cohortID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockSessionRepo) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	s, ok := m.existing[id]
	if !ok {
		return repository.ErrSessionNotFound
	}
	s.Status = status
	m.existing[id] = s
	return nil
}

type mockCohortRepo struct {
	cohorts map[uuid.UUID]cohort.Cohort
	members map[uuid.UUID][]uuid.UUID
}

func (m *mockCohortRepo) Create(_ context.Context, c cohort.Cohort) (cohort.Cohort, error) {
	if m.cohorts == nil {
		m.cohorts = make(map[uuid.UUID]cohort.Cohort)
	}
	m.cohorts[c.ID] = c
	return c, nil
}

func (m *mockCohortRepo) GetByID(_ context.Context, id uuid.UUID) (cohort.Cohort, error) {
	c, ok := m.cohorts[id]
	if !ok {
		return cohort.Cohort{}, repository.ErrCohortNotFound
	}
	return c, nil
}

func (m *mockCohortRepo) List(context.Context, int, int) ([]cohort.Cohort, error) { return nil, nil }
func (m *mockCohortRepo) ListByUser(context.Context, uuid.UUID) ([]cohort.Cohort, error) {
	return nil, nil
}

func (m *mockCohortRepo) AddMember(_ context.Context, cohortID, userID uuid.UUID) error {
	for _, id := range m.members[cohortID] {
		if id == userID {
			return repository.ErrAlreadyMember
		}
	}
	if m.members == nil {
		m.members = make(map[uuid.UUID][]uuid.UUID)
	}
	m.members[cohortID] = append(m.members[cohortID], userID)
	return nil
}

func (m *mockCohortRepo) RemoveMember(_ context.Context, cohortID, userID uuid.UUID) error {
	ids := m.members[cohortID]
	for i, id := range ids {
		if id == userID {
			m.members[cohortID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotMember
}

func (m *mockCohortRepo) ListMemberIDs(_ context.Context, cohortID uuid.UUID) ([]uuid.UUID, error) {
	return m.members[cohortID], nil
}

func (m *mockCohortRepo) CountMembers(_ context.Context, cohortID uuid.UUID) (int, error) {
	return len(m.members[cohortID]), nil
}

func (m *mockCohortRepo) IsMember(_ context.Context, cohortID, userID uuid.UUID) (bool, error) {
	for _, id := range m.members[cohortID] {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

type mockLockCache struct {
	busy  bool
	locks []string
}

func (m *mockLockCache) GetJSON(context.Context, string, any) (bool, error)        { return false, nil }
func (m *mockLockCache) SetJSON(context.Context, string, any, time.Duration) error { return nil }
func (m *mockLockCache) Delete(context.Context, string) error                      { return nil }
func (m *mockLockCache) InvalidateUser(context.Context, string) error              { return nil }
func (m *mockLockCache) Generation(context.Context) int64                          { return 0 }
func (m *mockLockCache) SetIfNotExists(_ context.Context, key string, _ string, _ time.Duration) (bool, error) {
	if m.busy {
		return false, nil
	}
	m.locks = append(m.locks, key)
	return true, nil
}

type mockNotifier struct {
	events []string
}

func (m *mockNotifier) NotifyUser(_ string, event string, _ any)    { m.events = append(m.events, event) }
func (m *mockNotifier) NotifyUsers(_ []string, event string, _ any) { m.events = append(m.events, event) }

func newScheduleFixture(t *testing.T) (*Sessions, uuid.UUID, uuid.UUID, *mockSessionRepo, *mockNotifier) {
	t.Helper()
	cohortID := uuid.New()
	alice := uuid.New()
	bob := uuid.New()

	cohorts := &mockCohortRepo{
		cohorts: map[uuid.UUID]cohort.Cohort{cohortID: {ID: cohortID, Capacity: 4}},
		members: map[uuid.UUID][]uuid.UUID{cohortID: {alice, bob}},
	}
	// Both free Mon 18-20; only alice free Tue evening.
	avail := &mockAvailabilityRepo{byUser: map[uuid.UUID][]bool{
		alice: weekSlots(18, 19, 42, 43),
		bob:   weekSlots(18, 19),
	}}
	sessions := &mockSessionRepo{existing: map[uuid.UUID]cohort.Session{}}
	notify := &mockNotifier{}
	uc := NewSessionUsecase(sessions, cohorts, avail, &mockLockCache{}, notify)
	return uc, cohortID, alice, sessions, notify
}

func TestSessionUsecase_Schedule_Success(t *testing.T) {
	uc, cohortID, alice, sessions, notify := newScheduleFixture(t)

	s, err := uc.Schedule(context.Background(), cohortID, alice, ScheduleSessionInput{
		Title: "Week 1 kickoff", Day: 0, Hour: 18, Duration: 2,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if s.Status != cohort.SessionStatusScheduled {
		t.Fatalf("unexpected status %q", s.Status)
	}
	if len(sessions.created) != 1 {
		t.Fatalf("expected 1 session, got %d", len(sessions.created))
	}
	if len(notify.events) != 1 || notify.events[0] != EventSessionScheduled {
		t.Fatalf("expected session_scheduled event, got %v", notify.events)
	}
}

func TestSessionUsecase_Schedule_OutsideCommonAvailability(t *testing.T) {
	uc, cohortID, alice, _, _ := newScheduleFixture(t)

	// Tue evening works for alice but not for bob.
	_, err := uc.Schedule(context.Background(), cohortID, alice, ScheduleSessionInput{
		Title: "Week 1", Day: 1, Hour: 18, Duration: 1,
	})
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable, got %v", err)
	}
}

func TestSessionUsecase_Schedule_DurationSpillsPastAvailability(t *testing.T) {
	uc, cohortID, alice, _, _ := newScheduleFixture(t)

	// Mon 18-21 needs slot 20, which nobody has.
	_, err := uc.Schedule(context.Background(), cohortID, alice, ScheduleSessionInput{
		Title: "Long session", Day: 0, Hour: 18, Duration: 3,
	})
	if !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable, got %v", err)
	}
}

func TestSessionUsecase_Schedule_NotMember(t *testing.T) {
	uc, cohortID, _, _, _ := newScheduleFixture(t)

	_, err := uc.Schedule(context.Background(), cohortID, uuid.New(), ScheduleSessionInput{
		Title: "Week 1", Day: 0, Hour: 18, Duration: 1,
	})
	if !errors.Is(err, ErrNotMember) {
		t.Fatalf("expected ErrNotMember, got %v", err)
	}
}

func TestSessionUsecase_Schedule_InvalidSlot(t *testing.T) {
	uc, cohortID, alice, _, _ := newScheduleFixture(t)

	cases := []ScheduleSessionInput{
		{Title: "x", Day: -1, Hour: 18, Duration: 1},
		{Title: "x", Day: 7, Hour: 18, Duration: 1},
		{Title: "x", Day: 0, Hour: 24, Duration: 1},
		{Title: "x", Day: 0, Hour: 23, Duration: 2},
		{Title: "x", Day: 0, Hour: 18, Duration: 0},
		{Title: "", Day: 0, Hour: 18, Duration: 1},
	}
	for i, in := range cases {
		if _, err := uc.Schedule(context.Background(), cohortID, alice, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestSessionUsecase_Schedule_LockHeld(t *testing.T) {
	cohortID := uuid.New()
	alice := uuid.New()
	cohorts := &mockCohortRepo{
		cohorts: map[uuid.UUID]cohort.Cohort{cohortID: {ID: cohortID, Capacity: 4}},
		members: map[uuid.UUID][]uuid.UUID{cohortID: {alice}},
	}
	avail := &mockAvailabilityRepo{byUser: map[uuid.UUID][]bool{alice: weekSlots(18)}}
	uc := NewSessionUsecase(&mockSessionRepo{}, cohorts, avail, &mockLockCache{busy: true}, nil)

	_, err := uc.Schedule(context.Background(), cohortID, alice, ScheduleSessionInput{
		Title: "Week 1", Day: 0, Hour: 18, Duration: 1,
	})
	if !errors.Is(err, ErrSchedulingBusy) {
		t.Fatalf("expected ErrSchedulingBusy, got %v", err)
	}
}

func TestSessionUsecase_Schedule_SlotTaken(t *testing.T) {
	cohortID := uuid.New()
	alice := uuid.New()
	cohorts := &mockCohortRepo{
		cohorts: map[uuid.UUID]cohort.Cohort{cohortID: {ID: cohortID, Capacity: 4}},
		members: map[uuid.UUID][]uuid.UUID{cohortID: {alice}},
	}
	avail := &mockAvailabilityRepo{byUser: map[uuid.UUID][]bool{alice: weekSlots(18)}}
	uc := NewSessionUsecase(&mockSessionRepo{taken: true}, cohorts, avail, nil, nil)

	_, err := uc.Schedule(context.Background(), cohortID, alice, ScheduleSessionInput{
		Title: "Week 1", Day: 0, Hour: 18, Duration: 1,
	})
	if !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("expected ErrSlotTaken, got %v", err)
	}
}

func TestSessionUsecase_SetStatus_Transitions(t *testing.T) {
	cohortID := uuid.New()
	alice := uuid.New()
	sessionID := uuid.New()
	cohorts := &mockCohortRepo{
		cohorts: map[uuid.UUID]cohort.Cohort{cohortID: {ID: cohortID, Capacity: 4}},
		members: map[uuid.UUID][]uuid.UUID{cohortID: {alice}},
	}
	sessions := &mockSessionRepo{existing: map[uuid.UUID]cohort.Session{
		sessionID: {ID: sessionID, CohortID: cohortID, Status: cohort.SessionStatusScheduled},
	}}
	uc := NewSessionUsecase(sessions, cohorts, &mockAvailabilityRepo{}, nil, nil)

	s, err := uc.SetStatus(context.Background(), sessionID, alice, cohort.SessionStatusCompleted)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if s.Status != cohort.SessionStatusCompleted {
		t.Fatalf("unexpected status %q", s.Status)
	}

	// Already completed: no further transitions.
	if _, err := uc.SetStatus(context.Background(), sessionID, alice, cohort.SessionStatusCanceled); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	// Only completed/canceled are accepted.
	if _, err := uc.SetStatus(context.Background(), sessionID, alice, "rescheduled"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
