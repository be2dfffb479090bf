package usecase

import (
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// OverlapCacheKey is stable under participant order: the same set of
// users always hits the same key.
func OverlapCacheKey(userIDs []uuid.UUID) string {
	ids := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		ids = append(ids, id.String())
	}
	sort.Strings(ids)
	return "overlap:" + strings.Join(ids, ",")
}

func AvailabilitySummaryCacheKey(userID uuid.UUID) string {
	return "availability:summary:" + userID.String()
}

// MatchCandidatesCacheKey carries the cache generation so a bump of the
// stamp orphans every previously cached feed, not just the ones owned by
// the user whose data changed.
func MatchCandidatesCacheKey(gen int64, userID uuid.UUID, limit int) string {
	return "matches:" + strconv.FormatInt(gen, 10) + ":" + userID.String() + ":" + strconv.Itoa(limit)
}

func SessionLockKey(cohortID uuid.UUID, day, hour int) string {
	return "session:lock:" + cohortID.String() + ":" + strconv.Itoa(day) + ":" + strconv.Itoa(hour)
}
