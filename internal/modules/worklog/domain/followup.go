package domain

import "time"

// EntryResult is the backend's answer to a submitted entry. Leave entries
// are finalized immediately; others come back with a temp submission id.
type EntryResult struct {
	Message            string
	OnLeave            bool
	TempID             string
	RedirectToFollowup bool
	RecordID           string
	IsOverride         bool
}

type Session struct {
	ID        string
	Questions []string
}

type Completion struct {
	Message             string
	SessionID           string
	DailyRecordID       string
	WorkUpdateCompleted bool
}

// SessionSummary is one row of the follow-up session history.
type SessionSummary struct {
	ID            string
	InternID      string
	Status        string
	WorkUpdateID  string
	SessionDate   string
	QuestionCount int
	AnsweredCount int
	CreatedAt     time.Time
	CompletedAt   time.Time
}

type SessionDetail struct {
	SessionSummary
	Questions []string
	Answers   []string
}

type Health struct {
	Status   string
	Database string
	Detail   map[string]string
}

// Stats are the backend's maintenance counters from /stats.
type Stats struct {
	WorkUpdates         int
	CompletedFollowups  int
	IncompleteFollowups int
	TempUpdates         int
	PendingTempUpdates  int
	Sessions            int
	PendingSessions     int
	CompletedSessions   int
	TTLActive           bool
	CleanupTaskRunning  bool
}

// CleanupResult reports a manual purge of abandoned temp updates.
type CleanupResult struct {
	Message            string
	DeletedTempUpdates int
	DeletedSessions    int
	TTLStatus          string
}
