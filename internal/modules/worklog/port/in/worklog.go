package in

import (
	"context"

	"logbook/internal/modules/worklog/dto"
)

type Usecase interface {
	Stacks() []string
	SubmitEntry(ctx context.Context, input dto.EntryInput) (dto.EntryOutput, error)
	StartFollowup(ctx context.Context, tempID string) (dto.SessionOutput, error)
	CompleteFollowup(ctx context.Context, input dto.CompleteInput) (dto.CompletionOutput, error)
	ListSessions(ctx context.Context, input dto.ListSessionsInput) ([]dto.SessionSummaryOutput, error)
	GetSession(ctx context.Context, id string) (dto.SessionDetailOutput, error)
	Health(ctx context.Context) (dto.HealthOutput, error)
	Stats(ctx context.Context) (dto.StatsOutput, error)
	Cleanup(ctx context.Context) (dto.CleanupOutput, error)
}
