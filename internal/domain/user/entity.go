package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Profile struct {
	UserID      uuid.UUID
	DisplayName string
	Bio         string
	Timezone    string
	AvatarURL   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
