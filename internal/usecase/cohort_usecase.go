package usecase

import (
	"context"
	"errors"
	"strings"

	"skillex/internal/domain/cohort"
	"skillex/internal/repository"

	"github.com/google/uuid"
)

const (
	cohortMinCapacity = 2
	cohortMaxCapacity = 24

	defaultCohortListLimit = 20
	maxCohortListLimit     = 100
)

var (
	ErrCohortNotFound = errors.New("cohort not found")
	ErrCohortFull     = errors.New("cohort is full")
	ErrAlreadyMember  = errors.New("already a member of this cohort")
	ErrNotMember      = errors.New("not a member of this cohort")
)

type CohortDetail struct {
	Cohort    cohort.Cohort
	MemberIDs []uuid.UUID
}

type CreateCohortInput struct {
	Name     string
	SkillID  uuid.UUID
	Capacity int
}

type CohortUsecase interface {
	Create(ctx context.Context, creatorID uuid.UUID, in CreateCohortInput) (cohort.Cohort, error)
	Get(ctx context.Context, id uuid.UUID) (CohortDetail, error)
	List(ctx context.Context, limit, offset int) ([]cohort.Cohort, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]cohort.Cohort, error)
	Join(ctx context.Context, cohortID, userID uuid.UUID) error
	Leave(ctx context.Context, cohortID, userID uuid.UUID) error
}

type Cohorts struct {
	cohorts repository.CohortRepository
	skills  repository.SkillRepository
	notify  Notifier
}

func NewCohortUsecase(cohorts repository.CohortRepository, skills repository.SkillRepository, notify Notifier) *Cohorts {
	return &Cohorts{cohorts: cohorts, skills: skills, notify: notify}
}

func (u *Cohorts) Create(ctx context.Context, creatorID uuid.UUID, in CreateCohortInput) (cohort.Cohort, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || len(name) > 120 {
		return cohort.Cohort{}, ErrInvalidInput
	}
	if in.Capacity < cohortMinCapacity || in.Capacity > cohortMaxCapacity {
		return cohort.Cohort{}, ErrInvalidInput
	}

	exists, err := u.skills.ExistsByID(ctx, in.SkillID)
	if err != nil {
		return cohort.Cohort{}, ErrInternal
	}
	if !exists {
		return cohort.Cohort{}, ErrSkillNotFound
	}

	created, err := u.cohorts.Create(ctx, cohort.Cohort{
		ID:        uuid.New(),
		Name:      name,
		SkillID:   in.SkillID,
		CreatedBy: creatorID,
		Capacity:  in.Capacity,
	})
	if err != nil {
		return cohort.Cohort{}, ErrInternal
	}

	// The creator is always the first member.
	if err := u.cohorts.AddMember(ctx, created.ID, creatorID); err != nil {
		return cohort.Cohort{}, ErrInternal
	}
	return created, nil
}

func (u *Cohorts) Get(ctx context.Context, id uuid.UUID) (CohortDetail, error) {
	c, err := u.cohorts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCohortNotFound) {
			return CohortDetail{}, ErrCohortNotFound
		}
		return CohortDetail{}, ErrInternal
	}
	members, err := u.cohorts.ListMemberIDs(ctx, id)
	if err != nil {
		return CohortDetail{}, ErrInternal
	}
	return CohortDetail{Cohort: c, MemberIDs: members}, nil
}

func (u *Cohorts) List(ctx context.Context, limit, offset int) ([]cohort.Cohort, error) {
	if limit <= 0 {
		limit = defaultCohortListLimit
	}
	if limit > maxCohortListLimit {
		limit = maxCohortListLimit
	}
	if offset < 0 {
		offset = 0
	}
	out, err := u.cohorts.List(ctx, limit, offset)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Cohorts) ListMine(ctx context.Context, userID uuid.UUID) ([]cohort.Cohort, error) {
	out, err := u.cohorts.ListByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Cohorts) Join(ctx context.Context, cohortID, userID uuid.UUID) error {
	c, err := u.cohorts.GetByID(ctx, cohortID)
	if err != nil {
		if errors.Is(err, repository.ErrCohortNotFound) {
			return ErrCohortNotFound
		}
		return ErrInternal
	}

	count, err := u.cohorts.CountMembers(ctx, cohortID)
	if err != nil {
		return ErrInternal
	}
	if count >= c.Capacity {
		return ErrCohortFull
	}

	if err := u.cohorts.AddMember(ctx, cohortID, userID); err != nil {
		if errors.Is(err, repository.ErrAlreadyMember) {
			return ErrAlreadyMember
		}
		return ErrInternal
	}

	if u.notify != nil {
		members, err := u.cohorts.ListMemberIDs(ctx, cohortID)
		if err == nil {
			u.notify.NotifyUsers(idStrings(members), EventCohortJoined, map[string]string{
				"cohort_id": cohortID.String(),
				"user_id":   userID.String(),
			})
		}
	}
	return nil
}

func (u *Cohorts) Leave(ctx context.Context, cohortID, userID uuid.UUID) error {
	if err := u.cohorts.RemoveMember(ctx, cohortID, userID); err != nil {
		if errors.Is(err, repository.ErrNotMember) {
			return ErrNotMember
		}
		return ErrInternal
	}
	return nil
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
