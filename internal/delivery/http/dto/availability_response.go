package dto

import (
	"skillex/internal/domain/availability"

	"github.com/google/uuid"
)

type AvailabilityResponse struct {
	Slots   []bool               `json:"slots"`
	Summary availability.Summary `json:"summary"`
}

type OverlapResponse struct {
	UserIDs []uuid.UUID          `json:"user_ids"`
	Slots   []bool               `json:"slots"`
	Summary availability.Summary `json:"summary"`
}
