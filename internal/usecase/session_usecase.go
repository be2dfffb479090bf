package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"skillex/internal/domain/availability"
	"skillex/internal/domain/cohort"
	"skillex/internal/repository"

	"github.com/google/uuid"
)

const (
	sessionMinDuration = 1
	sessionMaxDuration = 8

	// Guards concurrent scheduling of the same cohort slot between the
	// availability check and the insert.
	sessionLockTTL = 10 * time.Second
)

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrSlotTaken         = errors.New("a session is already scheduled at that slot")
	ErrSlotUnavailable   = errors.New("slot is outside a member's availability")
	ErrSchedulingBusy    = errors.New("another scheduling attempt is in progress")
	ErrInvalidTransition = errors.New("invalid session status transition")
)

type ScheduleSessionInput struct {
	Title    string
	Day      int
	Hour     int
	Duration int
}

type SessionUsecase interface {
	Schedule(ctx context.Context, cohortID, userID uuid.UUID, in ScheduleSessionInput) (cohort.Session, error)
	List(ctx context.Context, cohortID, userID uuid.UUID) ([]cohort.Session, error)
	SetStatus(ctx context.Context, sessionID, userID uuid.UUID, status string) (cohort.Session, error)
}

type Sessions struct {
	sessions     repository.SessionRepository
	cohorts      repository.CohortRepository
	availability repository.AvailabilityRepository
	cache        MatchCache
	notify       Notifier
}

func NewSessionUsecase(
	sessions repository.SessionRepository,
	cohorts repository.CohortRepository,
	avail repository.AvailabilityRepository,
	cache MatchCache,
	notify Notifier,
) *Sessions {
	return &Sessions{
		sessions:     sessions,
		cohorts:      cohorts,
		availability: avail,
		cache:        cache,
		notify:       notify,
	}
}

func (u *Sessions) Schedule(ctx context.Context, cohortID, userID uuid.UUID, in ScheduleSessionInput) (cohort.Session, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || len(title) > 160 {
		return cohort.Session{}, ErrInvalidInput
	}
	if in.Day < 0 || in.Day >= availability.DaysPerWeek {
		return cohort.Session{}, ErrInvalidInput
	}
	if in.Hour < 0 || in.Hour >= availability.HoursPerDay {
		return cohort.Session{}, ErrInvalidInput
	}
	if in.Duration < sessionMinDuration || in.Duration > sessionMaxDuration {
		return cohort.Session{}, ErrInvalidInput
	}
	if in.Hour+in.Duration > availability.HoursPerDay {
		return cohort.Session{}, ErrInvalidInput
	}

	member, err := u.cohorts.IsMember(ctx, cohortID, userID)
	if err != nil {
		return cohort.Session{}, ErrInternal
	}
	if !member {
		return cohort.Session{}, ErrNotMember
	}

	memberIDs, err := u.cohorts.ListMemberIDs(ctx, cohortID)
	if err != nil {
		return cohort.Session{}, ErrInternal
	}
	common, err := u.commonMask(ctx, memberIDs)
	if err != nil {
		return cohort.Session{}, err
	}
	for h := in.Hour; h < in.Hour+in.Duration; h++ {
		if !common.Slot(in.Day, h) {
			return cohort.Session{}, ErrSlotUnavailable
		}
	}

	if u.cache != nil {
		ok, err := u.cache.SetIfNotExists(ctx, SessionLockKey(cohortID, in.Day, in.Hour), userID.String(), sessionLockTTL)
		if err == nil && !ok {
			return cohort.Session{}, ErrSchedulingBusy
		}
	}

	created, err := u.sessions.Create(ctx, cohort.Session{
		ID:        uuid.New(),
		CohortID:  cohortID,
		Title:     title,
		Day:       in.Day,
		Hour:      in.Hour,
		Duration:  in.Duration,
		Status:    cohort.SessionStatusScheduled,
		CreatedBy: userID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrSessionExists) {
			return cohort.Session{}, ErrSlotTaken
		}
		return cohort.Session{}, ErrInternal
	}

	if u.notify != nil {
		u.notify.NotifyUsers(idStrings(memberIDs), EventSessionScheduled, created)
	}
	return created, nil
}

func (u *Sessions) List(ctx context.Context, cohortID, userID uuid.UUID) ([]cohort.Session, error) {
	member, err := u.cohorts.IsMember(ctx, cohortID, userID)
	if err != nil {
		return nil, ErrInternal
	}
	if !member {
		return nil, ErrNotMember
	}
	out, err := u.sessions.ListByCohort(ctx, cohortID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Sessions) SetStatus(ctx context.Context, sessionID, userID uuid.UUID, status string) (cohort.Session, error) {
	if status != cohort.SessionStatusCompleted && status != cohort.SessionStatusCanceled {
		return cohort.Session{}, ErrInvalidInput
	}

	s, err := u.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return cohort.Session{}, ErrSessionNotFound
		}
		return cohort.Session{}, ErrInternal
	}
	member, err := u.cohorts.IsMember(ctx, s.CohortID, userID)
	if err != nil {
		return cohort.Session{}, ErrInternal
	}
	if !member {
		return cohort.Session{}, ErrNotMember
	}
	if s.Status != cohort.SessionStatusScheduled {
		return cohort.Session{}, ErrInvalidTransition
	}

	if err := u.sessions.UpdateStatus(ctx, sessionID, status); err != nil {
		return cohort.Session{}, ErrInternal
	}
	s.Status = status

	if u.notify != nil {
		if memberIDs, err := u.cohorts.ListMemberIDs(ctx, s.CohortID); err == nil {
			u.notify.NotifyUsers(idStrings(memberIDs), EventSessionUpdated, s)
		}
	}
	return s, nil
}

// commonMask intersects every member's weekly availability. A member
// without a stored week counts as never available, which blocks
// scheduling until they fill one in.
func (u *Sessions) commonMask(ctx context.Context, memberIDs []uuid.UUID) (availability.Mask, error) {
	byUser, err := u.availability.GetByUserIDs(ctx, memberIDs)
	if err != nil {
		return availability.Mask{}, ErrInternal
	}
	masks := make([]availability.Mask, 0, len(memberIDs))
	for _, id := range memberIDs {
		slots, ok := byUser[id]
		if !ok {
			return availability.Mask{}, ErrSlotUnavailable
		}
		m, err := availability.Parse(slots)
		if err != nil {
			return availability.Mask{}, ErrInternal
		}
		masks = append(masks, m)
	}
	res, err := availability.Overlap(masks)
	if err != nil {
		return availability.Mask{}, ErrInternal
	}
	return res.Common, nil
}
