package usecase

import (
	"context"
	"errors"

	"skillex/internal/domain/availability"
	"skillex/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidMask          = errors.New("invalid availability mask")
	ErrAvailabilityNotFound = errors.New("availability not found")
	ErrUserNotFound         = errors.New("user not found")
)

// OverlapOutput is the "common times" view for a set of users.
type OverlapOutput struct {
	UserIDs []uuid.UUID          `json:"user_ids"`
	Slots   []bool               `json:"slots"`
	Summary availability.Summary `json:"summary"`
}

type AvailabilityUsecase interface {
	Get(ctx context.Context, userID uuid.UUID) ([]bool, availability.Summary, error)
	Replace(ctx context.Context, userID uuid.UUID, slots []bool) (availability.Summary, error)
	CommonTimes(ctx context.Context, userIDs []uuid.UUID) (OverlapOutput, error)
}

type Availability struct {
	repo  repository.AvailabilityRepository
	cache MatchCache
}

func NewAvailabilityUsecase(repo repository.AvailabilityRepository, cache MatchCache) *Availability {
	return &Availability{repo: repo, cache: cache}
}

func (u *Availability) Get(ctx context.Context, userID uuid.UUID) ([]bool, availability.Summary, error) {
	slots, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrAvailabilityNotFound) {
			// No mask yet reads as an all-false week.
			empty := make([]bool, availability.SlotsPerWeek)
			var zero availability.Mask
			return empty, availability.Summarize(zero), nil
		}
		return nil, availability.Summary{}, ErrInternal
	}

	mask, err := availability.Parse(slots)
	if err != nil {
		// Stored data violating the length invariant is a server-side
		// defect, not caller error.
		return nil, availability.Summary{}, ErrInternal
	}

	sum := u.cachedSummary(ctx, userID, mask)
	return mask.Slots(), sum, nil
}

// Replace stores a full 168-slot mask. Partial updates do not exist:
// callers always send the whole week.
func (u *Availability) Replace(ctx context.Context, userID uuid.UUID, slots []bool) (availability.Summary, error) {
	mask, err := availability.Parse(slots)
	if err != nil {
		return availability.Summary{}, ErrInvalidMask
	}

	if err := u.repo.Replace(ctx, userID, mask.Slots()); err != nil {
		return availability.Summary{}, ErrInternal
	}

	if u.cache != nil {
		_ = u.cache.InvalidateUser(ctx, userID.String())
	}

	sum := availability.Summarize(mask)
	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, AvailabilitySummaryCacheKey(userID), sum, 0)
	}
	return sum, nil
}

func (u *Availability) CommonTimes(ctx context.Context, userIDs []uuid.UUID) (OverlapOutput, error) {
	if len(userIDs) == 0 {
		return OverlapOutput{}, ErrInvalidInput
	}

	key := OverlapCacheKey(userIDs)
	if u.cache != nil {
		var cached OverlapOutput
		if ok, err := u.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	byUser, err := u.repo.GetByUserIDs(ctx, userIDs)
	if err != nil {
		return OverlapOutput{}, ErrInternal
	}

	masks := make([]availability.Mask, 0, len(userIDs))
	for _, id := range userIDs {
		slots, ok := byUser[id]
		if !ok {
			return OverlapOutput{}, ErrAvailabilityNotFound
		}
		m, err := availability.Parse(slots)
		if err != nil {
			return OverlapOutput{}, ErrInternal
		}
		masks = append(masks, m)
	}

	res, err := availability.Overlap(masks)
	if err != nil {
		return OverlapOutput{}, ErrInvalidInput
	}

	out := OverlapOutput{
		UserIDs: userIDs,
		Slots:   res.Common.Slots(),
		Summary: availability.Summarize(res.Common),
	}
	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, out, 0)
	}
	return out, nil
}

func (u *Availability) cachedSummary(ctx context.Context, userID uuid.UUID, mask availability.Mask) availability.Summary {
	key := AvailabilitySummaryCacheKey(userID)
	if u.cache != nil {
		var cached availability.Summary
		if ok, err := u.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached
		}
	}

	sum := availability.Summarize(mask)
	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, sum, 0)
	}
	return sum
}
