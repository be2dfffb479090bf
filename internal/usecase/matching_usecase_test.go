package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"skillex/internal/domain/skill"
	"skillex/internal/repository"

	"github.com/google/uuid"
)

type mockUserSkillRepo struct {
	byUser        map[uuid.UUID][]repository.UserSkillRow
	complementary []uuid.UUID
}

func (m *mockUserSkillRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]repository.UserSkillRow, error) {
	return m.byUser[userID], nil
}

func (m *mockUserSkillRepo) FindByUserIDs(_ context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]repository.UserSkillRow, error) {
	out := make(map[uuid.UUID][]repository.UserSkillRow, len(userIDs))
	for _, id := range userIDs {
		out[id] = m.byUser[id]
	}
	return out, nil
}

func (m *mockUserSkillRepo) Create(_ context.Context, us skill.UserSkill) (repository.UserSkillRow, error) {
	return repository.UserSkillRow{}, nil
}

func (m *mockUserSkillRepo) Delete(context.Context, uuid.UUID, uuid.UUID) error { return nil }

func (m *mockUserSkillRepo) ListComplementaryUserIDs(context.Context, uuid.UUID, int) ([]uuid.UUID, error) {
	return m.complementary, nil
}

func teachRow(userID uuid.UUID, skillID uuid.UUID, name string, prof int) repository.UserSkillRow {
	return repository.UserSkillRow{ID: uuid.New(), UserID: userID, SkillID: skillID, SkillName: name, Role: skill.RoleTeach, Proficiency: prof}
}

func learnRow(userID uuid.UUID, skillID uuid.UUID, name string, level int) repository.UserSkillRow {
	return repository.UserSkillRow{ID: uuid.New(), UserID: userID, SkillID: skillID, SkillName: name, Role: skill.RoleLearn, Proficiency: level}
}

func TestMatchingUsecase_ListCandidates_EmptyProfile(t *testing.T) {
	uc := NewMatchingUsecase(&mockUserSkillRepo{}, &mockAvailabilityRepo{}, nil)
	_, err := uc.ListCandidates(context.Background(), uuid.New(), 20)
	if !errors.Is(err, ErrSkillProfileEmpty) {
		t.Fatalf("expected ErrSkillProfileEmpty, got %v", err)
	}
}

func TestMatchingUsecase_ListCandidates_RanksByScore(t *testing.T) {
	me := uuid.New()
	strong := uuid.New()
	weak := uuid.New()
	spanish := uuid.New()
	guitar := uuid.New()

	skills := &mockUserSkillRepo{
		byUser: map[uuid.UUID][]repository.UserSkillRow{
			me: {teachRow(me, guitar, "Guitar", 5), learnRow(me, spanish, "Spanish", 0)},
			// strong teaches spanish well and wants guitar; weak only
			// wants guitar.
			strong: {teachRow(strong, spanish, "Spanish", 5), learnRow(strong, guitar, "Guitar", 0)},
			weak:   {learnRow(weak, guitar, "Guitar", 0)},
		},
		complementary: []uuid.UUID{weak, strong},
	}
	avail := &mockAvailabilityRepo{byUser: map[uuid.UUID][]bool{
		me:     weekSlots(18, 19),
		strong: weekSlots(18, 19),
		weak:   weekSlots(18, 19),
	}}

	uc := NewMatchingUsecase(skills, avail, nil)
	out, err := uc.ListCandidates(context.Background(), me, 20)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(out))
	}
	if out[0].UserID != strong {
		t.Fatalf("expected strongest candidate first")
	}
	if out[0].MatchScore <= out[1].MatchScore {
		t.Fatalf("expected descending scores, got %d then %d", out[0].MatchScore, out[1].MatchScore)
	}
	if out[0].OverlapHours != 2 {
		t.Fatalf("expected 2 overlap hours, got %d", out[0].OverlapHours)
	}
}

type mockFeedCache struct {
	gen    int64
	stored map[string][]byte
	hits   int
}

func (m *mockFeedCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	raw, ok := m.stored[key]
	if !ok {
		return false, nil
	}
	m.hits++
	return true, json.Unmarshal(raw, out)
}

func (m *mockFeedCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if m.stored == nil {
		m.stored = make(map[string][]byte)
	}
	m.stored[key] = raw
	return nil
}

func (m *mockFeedCache) Delete(context.Context, string) error { return nil }

func (m *mockFeedCache) InvalidateUser(context.Context, string) error {
	m.gen++
	return nil
}

func (m *mockFeedCache) SetIfNotExists(context.Context, string, string, time.Duration) (bool, error) {
	return true, nil
}

func (m *mockFeedCache) Generation(context.Context) int64 { return m.gen }

func TestMatchingUsecase_ListCandidates_FeedRetiredOnOtherUsersChange(t *testing.T) {
	me := uuid.New()
	other := uuid.New()
	spanish := uuid.New()
	guitar := uuid.New()

	skills := &mockUserSkillRepo{
		byUser: map[uuid.UUID][]repository.UserSkillRow{
			me:    {teachRow(me, guitar, "Guitar", 5), learnRow(me, spanish, "Spanish", 0)},
			other: {teachRow(other, spanish, "Spanish", 5), learnRow(other, guitar, "Guitar", 0)},
		},
		complementary: []uuid.UUID{other},
	}
	avail := &mockAvailabilityRepo{byUser: map[uuid.UUID][]bool{
		me:    weekSlots(18, 19),
		other: weekSlots(18, 19),
	}}
	feed := &mockFeedCache{}

	uc := NewMatchingUsecase(skills, avail, feed)
	first, err := uc.ListCandidates(context.Background(), me, 20)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(first) != 1 || first[0].OverlapHours != 2 {
		t.Fatalf("unexpected initial feed %+v", first)
	}

	// A repeat read serves the cached feed.
	if _, err := uc.ListCandidates(context.Background(), me, 20); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if feed.hits != 1 {
		t.Fatalf("expected a cache hit on the repeat read, got %d", feed.hits)
	}

	// The other user clears their availability. Their invalidation
	// moves the generation forward, so my next read recomputes instead
	// of serving their old hours from my feed.
	avail.byUser[other] = weekSlots()
	if err := feed.InvalidateUser(context.Background(), other.String()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	out, err := uc.ListCandidates(context.Background(), me, 20)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if feed.hits != 1 {
		t.Fatalf("expected a miss after invalidation, got %d hits", feed.hits)
	}
	if len(out) != 1 || out[0].OverlapHours != 0 {
		t.Fatalf("stale feed served: %+v", out)
	}
}

func TestMatchingUsecase_CalculateMatch_SelfRejected(t *testing.T) {
	uc := NewMatchingUsecase(&mockUserSkillRepo{}, &mockAvailabilityRepo{}, nil)
	id := uuid.New()
	_, err := uc.CalculateMatch(context.Background(), id, id)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMatchingUsecase_CalculateMatch_PerfectComplement(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	spanish := uuid.New()
	guitar := uuid.New()

	skills := &mockUserSkillRepo{byUser: map[uuid.UUID][]repository.UserSkillRow{
		a: {teachRow(a, guitar, "Guitar", 5), learnRow(a, spanish, "Spanish", 0)},
		b: {teachRow(b, spanish, "Spanish", 5), learnRow(b, guitar, "Guitar", 0)},
	}}
	avail := &mockAvailabilityRepo{byUser: map[uuid.UUID][]bool{
		a: weekSlots(seqRange(0, 24)...),
		b: weekSlots(seqRange(0, 24)...),
	}}

	uc := NewMatchingUsecase(skills, avail, nil)
	res, err := uc.CalculateMatch(context.Background(), a, b)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.MatchScore != 100 {
		t.Fatalf("expected score 100, got %d", res.MatchScore)
	}
	if res.OverlapHours != 24 {
		t.Fatalf("expected 24 overlap hours, got %d", res.OverlapHours)
	}
}
