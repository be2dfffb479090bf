package usecase

import (
	"context"
	"errors"

	"skillex/internal/domain/skill"
	"skillex/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrSkillNotFound      = errors.New("skill not found")
	ErrUserSkillNotFound  = errors.New("user skill not found")
	ErrUserSkillDuplicate = errors.New("user skill already listed")
)

type SkillUsecase interface {
	ListCatalog(ctx context.Context) ([]skill.Skill, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]repository.UserSkillRow, error)
	Add(ctx context.Context, userID, skillID uuid.UUID, role string, proficiency int) (repository.UserSkillRow, error)
	Remove(ctx context.Context, userID, userSkillID uuid.UUID) error
}

type Skills struct {
	skills     repository.SkillRepository
	userSkills repository.UserSkillRepository
	cache      MatchCache
}

func NewSkillUsecase(skills repository.SkillRepository, userSkills repository.UserSkillRepository, cache MatchCache) *Skills {
	return &Skills{skills: skills, userSkills: userSkills, cache: cache}
}

func (u *Skills) ListCatalog(ctx context.Context) ([]skill.Skill, error) {
	out, err := u.skills.ListSkills(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Skills) ListMine(ctx context.Context, userID uuid.UUID) ([]repository.UserSkillRow, error) {
	out, err := u.userSkills.FindByUserID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Skills) Add(ctx context.Context, userID, skillID uuid.UUID, role string, proficiency int) (repository.UserSkillRow, error) {
	if !skill.ValidRole(role) {
		return repository.UserSkillRow{}, ErrInvalidInput
	}
	if proficiency < 0 || proficiency > 5 {
		return repository.UserSkillRow{}, ErrInvalidInput
	}

	exists, err := u.skills.ExistsByID(ctx, skillID)
	if err != nil {
		return repository.UserSkillRow{}, ErrInternal
	}
	if !exists {
		return repository.UserSkillRow{}, ErrSkillNotFound
	}

	created, err := u.userSkills.Create(ctx, skill.UserSkill{
		ID:          uuid.New(),
		UserID:      userID,
		SkillID:     skillID,
		Role:        role,
		Proficiency: proficiency,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserSkillExists) {
			return repository.UserSkillRow{}, ErrUserSkillDuplicate
		}
		return repository.UserSkillRow{}, ErrInternal
	}

	// Listing a new skill changes who this user can be matched with.
	if u.cache != nil {
		_ = u.cache.InvalidateUser(ctx, userID.String())
	}
	return created, nil
}

func (u *Skills) Remove(ctx context.Context, userID, userSkillID uuid.UUID) error {
	if err := u.userSkills.Delete(ctx, userSkillID, userID); err != nil {
		if errors.Is(err, repository.ErrUserSkillNotFound) {
			return ErrUserSkillNotFound
		}
		return ErrInternal
	}
	if u.cache != nil {
		_ = u.cache.InvalidateUser(ctx, userID.String())
	}
	return nil
}
