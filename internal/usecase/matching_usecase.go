package usecase

import (
	"context"
	"errors"
	"sort"

	"skillex/internal/domain/availability"
	"skillex/internal/domain/matching"
	"skillex/internal/domain/skill"
	"skillex/internal/repository"

	"github.com/google/uuid"
)

var ErrSkillProfileEmpty = errors.New("skill profile empty")

// Candidate is one scored row of the partner feed.
type Candidate struct {
	UserID       uuid.UUID `json:"user_id"`
	MatchScore   int       `json:"match_score"`
	OverlapHours int       `json:"overlap_hours"`
}

type MatchingUsecase interface {
	ListCandidates(ctx context.Context, userID uuid.UUID, limit int) ([]Candidate, error)
	CalculateMatch(ctx context.Context, userID, otherID uuid.UUID) (matching.Result, error)
}

type Matching struct {
	userSkills   repository.UserSkillRepository
	availability repository.AvailabilityRepository
	cache        MatchCache
}

func NewMatchingUsecase(userSkills repository.UserSkillRepository, avail repository.AvailabilityRepository, cache MatchCache) *Matching {
	return &Matching{userSkills: userSkills, availability: avail, cache: cache}
}

func (u *Matching) ListCandidates(ctx context.Context, userID uuid.UUID, limit int) ([]Candidate, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var key string
	if u.cache != nil {
		key = MatchCandidatesCacheKey(u.cache.Generation(ctx), userID, limit)
		var cached []Candidate
		if ok, err := u.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	me, err := u.loadParticipant(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(me.Teaches) == 0 && len(me.Learns) == 0 {
		return nil, ErrSkillProfileEmpty
	}

	otherIDs, err := u.userSkills.ListComplementaryUserIDs(ctx, userID, limit)
	if err != nil {
		return nil, ErrInternal
	}

	others, err := u.loadParticipants(ctx, otherIDs)
	if err != nil {
		return nil, err
	}

	out := make([]Candidate, 0, len(others))
	for _, other := range others {
		res := matching.Calculate(me, other)
		out = append(out, Candidate{
			UserID:       other.UserID,
			MatchScore:   res.MatchScore,
			OverlapHours: res.OverlapHours,
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].MatchScore > out[j].MatchScore })
	if len(out) > limit {
		out = out[:limit]
	}

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, out, 0)
	}
	return out, nil
}

func (u *Matching) CalculateMatch(ctx context.Context, userID, otherID uuid.UUID) (matching.Result, error) {
	if userID == uuid.Nil {
		return matching.Result{}, ErrUnauthorized
	}
	if otherID == uuid.Nil || otherID == userID {
		return matching.Result{}, ErrInvalidInput
	}

	me, err := u.loadParticipant(ctx, userID)
	if err != nil {
		return matching.Result{}, err
	}
	other, err := u.loadParticipant(ctx, otherID)
	if err != nil {
		return matching.Result{}, err
	}

	return matching.Calculate(me, other), nil
}

func (u *Matching) loadParticipant(ctx context.Context, userID uuid.UUID) (matching.Participant, error) {
	rows, err := u.userSkills.FindByUserID(ctx, userID)
	if err != nil {
		return matching.Participant{}, ErrInternal
	}

	p := matching.Participant{UserID: userID}
	for _, r := range rows {
		s := matching.Skill{SkillID: r.SkillID, SkillName: r.SkillName, Proficiency: r.Proficiency}
		if r.Role == skill.RoleTeach {
			p.Teaches = append(p.Teaches, s)
		} else {
			p.Learns = append(p.Learns, s)
		}
	}

	slots, err := u.availability.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrAvailabilityNotFound) {
			return matching.Participant{}, ErrInternal
		}
		// No published mask: treated as never available.
		return p, nil
	}

	mask, err := availability.Parse(slots)
	if err != nil {
		return matching.Participant{}, ErrInternal
	}
	p.Week = mask
	return p, nil
}

func (u *Matching) loadParticipants(ctx context.Context, userIDs []uuid.UUID) ([]matching.Participant, error) {
	skillsByUser, err := u.userSkills.FindByUserIDs(ctx, userIDs)
	if err != nil {
		return nil, ErrInternal
	}
	masksByUser, err := u.availability.GetByUserIDs(ctx, userIDs)
	if err != nil {
		return nil, ErrInternal
	}

	out := make([]matching.Participant, 0, len(userIDs))
	for _, id := range userIDs {
		p := matching.Participant{UserID: id}
		for _, r := range skillsByUser[id] {
			s := matching.Skill{SkillID: r.SkillID, SkillName: r.SkillName, Proficiency: r.Proficiency}
			if r.Role == skill.RoleTeach {
				p.Teaches = append(p.Teaches, s)
			} else {
				p.Learns = append(p.Learns, s)
			}
		}
		if slots, ok := masksByUser[id]; ok {
			if mask, err := availability.Parse(slots); err == nil {
				p.Week = mask
			}
		}
		out = append(out, p)
	}
	return out, nil
}
