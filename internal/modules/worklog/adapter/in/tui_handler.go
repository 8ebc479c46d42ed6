package in

import (
	"context"

	"logbook/internal/modules/worklog/dto"
	worklogin "logbook/internal/modules/worklog/port/in"
)

type TUIHandler struct {
	usecase worklogin.Usecase
}

func NewTUIHandler(usecase worklogin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Stacks() []string {
	return h.usecase.Stacks()
}

func (h TUIHandler) SubmitEntry(ctx context.Context, input dto.EntryInput) (dto.EntryOutput, error) {
	return h.usecase.SubmitEntry(ctx, input)
}

func (h TUIHandler) StartFollowup(ctx context.Context, tempID string) (dto.SessionOutput, error) {
	return h.usecase.StartFollowup(ctx, tempID)
}

func (h TUIHandler) CompleteFollowup(ctx context.Context, sessionID string, answers []string) (dto.CompletionOutput, error) {
	return h.usecase.CompleteFollowup(ctx, dto.CompleteInput{SessionID: sessionID, Answers: answers})
}

func (h TUIHandler) ListSessions(ctx context.Context, limit, skip int) ([]dto.SessionSummaryOutput, error) {
	return h.usecase.ListSessions(ctx, dto.ListSessionsInput{Limit: limit, Skip: skip})
}

func (h TUIHandler) GetSession(ctx context.Context, id string) (dto.SessionDetailOutput, error) {
	return h.usecase.GetSession(ctx, id)
}

func (h TUIHandler) Health(ctx context.Context) (dto.HealthOutput, error) {
	return h.usecase.Health(ctx)
}
