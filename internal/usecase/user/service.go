package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"skillex/internal/domain/user"
	"skillex/internal/pkg/avatar"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

// Me is a user together with their profile, as shown on a profile card.
type Me struct {
	ID          uuid.UUID
	Email       string
	DisplayName string
	Bio         string
	Timezone    string
	AvatarURL   string
	CreatedAt   time.Time
}

type UpdateProfileInput struct {
	DisplayName *string
	Bio         *string
	Timezone    *string
}

type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) GetMe(ctx context.Context, userID uuid.UUID) (Me, error) {
	usr, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Me{}, user.ErrNotFound
		}
		return Me{}, ErrInternal
	}

	prof, err := s.users.GetProfile(ctx, userID)
	if err != nil && !errors.Is(err, user.ErrNotFound) {
		return Me{}, ErrInternal
	}

	return buildMe(usr, prof), nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) (Me, error) {
	if in.DisplayName == nil && in.Bio == nil && in.Timezone == nil {
		return Me{}, ErrInvalidInput
	}

	usr, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Me{}, user.ErrNotFound
		}
		return Me{}, ErrInternal
	}

	prof, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		if !errors.Is(err, user.ErrNotFound) {
			return Me{}, ErrInternal
		}
		prof = user.Profile{UserID: userID, Timezone: "UTC"}
	}

	if in.DisplayName != nil {
		prof.DisplayName = strings.TrimSpace(*in.DisplayName)
	}
	if in.Bio != nil {
		prof.Bio = strings.TrimSpace(*in.Bio)
	}
	if in.Timezone != nil {
		tz := strings.TrimSpace(*in.Timezone)
		if _, err := time.LoadLocation(tz); err != nil {
			return Me{}, ErrInvalidInput
		}
		prof.Timezone = tz
	}

	if err := s.users.UpsertProfile(ctx, prof); err != nil {
		return Me{}, ErrInternal
	}

	updated, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		return Me{}, ErrInternal
	}
	return buildMe(usr, updated), nil
}

func buildMe(usr user.User, prof user.Profile) Me {
	return Me{
		ID:          usr.ID,
		Email:       usr.Email,
		DisplayName: prof.DisplayName,
		Bio:         prof.Bio,
		Timezone:    prof.Timezone,
		AvatarURL:   avatar.URL(usr.Email),
		CreatedAt:   usr.CreatedAt,
	}
}
