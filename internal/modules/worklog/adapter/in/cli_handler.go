package in

import (
	"context"

	"logbook/internal/modules/worklog/dto"
	worklogin "logbook/internal/modules/worklog/port/in"
)

type CLIHandler struct {
	usecase worklogin.Usecase
}

func NewCLIHandler(usecase worklogin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Stacks() []string {
	return h.usecase.Stacks()
}

func (h CLIHandler) ListSessions(ctx context.Context, limit, skip int) ([]dto.SessionSummaryOutput, error) {
	return h.usecase.ListSessions(ctx, dto.ListSessionsInput{Limit: limit, Skip: skip})
}

func (h CLIHandler) GetSession(ctx context.Context, id string) (dto.SessionDetailOutput, error) {
	return h.usecase.GetSession(ctx, id)
}

func (h CLIHandler) Health(ctx context.Context) (dto.HealthOutput, error) {
	return h.usecase.Health(ctx)
}

func (h CLIHandler) Stats(ctx context.Context) (dto.StatsOutput, error) {
	return h.usecase.Stats(ctx)
}

func (h CLIHandler) Cleanup(ctx context.Context) (dto.CleanupOutput, error) {
	return h.usecase.Cleanup(ctx)
}
