package dto

import "time"

type EntryInput struct {
	Status   string
	Stack    string
	Task     string
	Progress string
	Blockers string
}

type EntryOutput struct {
	Status             string
	Stack              string
	Task               string
	Progress           string
	Blockers           string
	Message            string
	OnLeave            bool
	TempID             string
	RedirectToFollowup bool
	RecordID           string
	IsOverride         bool
}

type SessionOutput struct {
	ID        string
	Questions []string
}

type CompleteInput struct {
	SessionID string
	Answers   []string
}

type CompletionOutput struct {
	Message             string
	SessionID           string
	DailyRecordID       string
	WorkUpdateCompleted bool
}

type ListSessionsInput struct {
	Limit int
	Skip  int
}

type SessionSummaryOutput struct {
	ID            string
	Status        string
	WorkUpdateID  string
	SessionDate   string
	QuestionCount int
	AnsweredCount int
	CreatedAt     time.Time
	CompletedAt   time.Time
}

type SessionDetailOutput struct {
	SessionSummaryOutput
	Questions []string
	Answers   []string
}

type HealthOutput struct {
	Status   string
	Database string
	Detail   map[string]string
}

type StatsOutput struct {
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

type CleanupOutput struct {
	Message            string
	DeletedTempUpdates int
	DeletedSessions    int
	TTLStatus          string
}
