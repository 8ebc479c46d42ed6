package out

import (
	"context"

	"logbook/internal/modules/worklog/domain"
)

// Backend is the LogBook follow-up service. Implementations report a 401 as
// an error matching apperrors.ErrUnauthorized.
type Backend interface {
	SubmitEntry(ctx context.Context, entry domain.ActivityEntry) (domain.EntryResult, error)
	StartFollowup(ctx context.Context, tempID string) (domain.Session, error)
	CompleteFollowup(ctx context.Context, sessionID string, answers []string) (domain.Completion, error)
	ListSessions(ctx context.Context, limit, skip int) ([]domain.SessionSummary, error)
	GetSession(ctx context.Context, id string) (domain.SessionDetail, error)
	Health(ctx context.Context) (domain.Health, error)
	Stats(ctx context.Context) (domain.Stats, error)
	Cleanup(ctx context.Context) (domain.CleanupResult, error)
}
