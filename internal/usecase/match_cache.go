package usecase

import (
	"context"
	"time"
)

// MatchCache is the cache surface the availability and matching usecases
// need. The redis adapter implements it; a nil-safe no-op keeps the
// usecases testable without a cache.
type MatchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	InvalidateUser(ctx context.Context, userID string) error
	Generation(ctx context.Context) int64
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}
