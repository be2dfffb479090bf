package usecase

import (
	"context"
	"errors"
	"strings"

	"skillex/internal/domain/user"
	"skillex/internal/repository"

	"github.com/google/uuid"
)

const maxNoteLength = 1000

var (
	ErrReferralExists    = errors.New("referral already given for this skill")
	ErrEndorsementExists = errors.New("endorsement already given for this skill")
	ErrFeedbackExists    = errors.New("feedback already submitted for this session")
)

type ReferralUsecase interface {
	Refer(ctx context.Context, referrerID, referredID, skillID uuid.UUID, note string) (repository.Referral, error)
	ListReferrals(ctx context.Context, userID uuid.UUID) ([]repository.Referral, error)
	Endorse(ctx context.Context, endorserID, userID, skillID uuid.UUID, comment string) (repository.Endorsement, error)
	ListEndorsements(ctx context.Context, userID uuid.UUID) ([]repository.Endorsement, error)
	SubmitFeedback(ctx context.Context, sessionID, authorID uuid.UUID, rating int, comment string) (repository.Feedback, error)
	ListFeedback(ctx context.Context, sessionID, userID uuid.UUID) ([]repository.Feedback, error)
}

type Referrals struct {
	referrals    repository.ReferralRepository
	endorsements repository.EndorsementRepository
	feedback     repository.FeedbackRepository
	sessions     repository.SessionRepository
	cohorts      repository.CohortRepository
	users        user.Repository
	skills       repository.SkillRepository
}

func NewReferralUsecase(
	referrals repository.ReferralRepository,
	endorsements repository.EndorsementRepository,
	feedback repository.FeedbackRepository,
	sessions repository.SessionRepository,
	cohorts repository.CohortRepository,
	users user.Repository,
	skills repository.SkillRepository,
) *Referrals {
	return &Referrals{
		referrals:    referrals,
		endorsements: endorsements,
		feedback:     feedback,
		sessions:     sessions,
		cohorts:      cohorts,
		users:        users,
		skills:       skills,
	}
}

func (u *Referrals) Refer(ctx context.Context, referrerID, referredID, skillID uuid.UUID, note string) (repository.Referral, error) {
	note = strings.TrimSpace(note)
	if referrerID == referredID || len(note) > maxNoteLength {
		return repository.Referral{}, ErrInvalidInput
	}
	if err := u.checkUserAndSkill(ctx, referredID, skillID); err != nil {
		return repository.Referral{}, err
	}

	created, err := u.referrals.Create(ctx, repository.Referral{
		ID:         uuid.New(),
		ReferrerID: referrerID,
		ReferredID: referredID,
		SkillID:    skillID,
		Note:       note,
	})
	if err != nil {
		if errors.Is(err, repository.ErrReferralExists) {
			return repository.Referral{}, ErrReferralExists
		}
		return repository.Referral{}, ErrInternal
	}
	return created, nil
}

func (u *Referrals) ListReferrals(ctx context.Context, userID uuid.UUID) ([]repository.Referral, error) {
	out, err := u.referrals.ListForUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Referrals) Endorse(ctx context.Context, endorserID, userID, skillID uuid.UUID, comment string) (repository.Endorsement, error) {
	comment = strings.TrimSpace(comment)
	if endorserID == userID || len(comment) > maxNoteLength {
		return repository.Endorsement{}, ErrInvalidInput
	}
	if err := u.checkUserAndSkill(ctx, userID, skillID); err != nil {
		return repository.Endorsement{}, err
	}

	created, err := u.endorsements.Create(ctx, repository.Endorsement{
		ID:         uuid.New(),
		EndorserID: endorserID,
		UserID:     userID,
		SkillID:    skillID,
		Comment:    comment,
	})
	if err != nil {
		if errors.Is(err, repository.ErrEndorsementExists) {
			return repository.Endorsement{}, ErrEndorsementExists
		}
		return repository.Endorsement{}, ErrInternal
	}
	return created, nil
}

func (u *Referrals) ListEndorsements(ctx context.Context, userID uuid.UUID) ([]repository.Endorsement, error) {
	out, err := u.endorsements.ListForUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Referrals) SubmitFeedback(ctx context.Context, sessionID, authorID uuid.UUID, rating int, comment string) (repository.Feedback, error) {
	comment = strings.TrimSpace(comment)
	if rating < 1 || rating > 5 || len(comment) > maxNoteLength {
		return repository.Feedback{}, ErrInvalidInput
	}

	s, err := u.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return repository.Feedback{}, ErrSessionNotFound
		}
		return repository.Feedback{}, ErrInternal
	}
	member, err := u.cohorts.IsMember(ctx, s.CohortID, authorID)
	if err != nil {
		return repository.Feedback{}, ErrInternal
	}
	if !member {
		return repository.Feedback{}, ErrNotMember
	}

	created, err := u.feedback.Create(ctx, repository.Feedback{
		ID:        uuid.New(),
		SessionID: sessionID,
		AuthorID:  authorID,
		Rating:    rating,
		Comment:   comment,
	})
	if err != nil {
		if errors.Is(err, repository.ErrFeedbackExists) {
			return repository.Feedback{}, ErrFeedbackExists
		}
		return repository.Feedback{}, ErrInternal
	}
	return created, nil
}

func (u *Referrals) ListFeedback(ctx context.Context, sessionID, userID uuid.UUID) ([]repository.Feedback, error) {
	s, err := u.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, ErrInternal
	}
	member, err := u.cohorts.IsMember(ctx, s.CohortID, userID)
	if err != nil {
		return nil, ErrInternal
	}
	if !member {
		return nil, ErrNotMember
	}

	out, err := u.feedback.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Referrals) checkUserAndSkill(ctx context.Context, userID, skillID uuid.UUID) error {
	if _, err := u.users.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrUserNotFound
		}
		return ErrInternal
	}
	exists, err := u.skills.ExistsByID(ctx, skillID)
	if err != nil {
		return ErrInternal
	}
	if !exists {
		return ErrSkillNotFound
	}
	return nil
}
