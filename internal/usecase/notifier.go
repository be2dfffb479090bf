package usecase

// Notifier delivers realtime events to connected users. The websocket
// hub implements it; usecases treat delivery as best effort and never
// fail an operation because a push did not land.
type Notifier interface {
	NotifyUser(userID string, event string, payload any)
	NotifyUsers(userIDs []string, event string, payload any)
}

const (
	EventMessageCreated   = "message_created"
	EventSessionScheduled = "session_scheduled"
	EventSessionUpdated   = "session_updated"
	EventCohortJoined     = "cohort_joined"
)
