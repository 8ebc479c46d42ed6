package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	authin "logbook/internal/modules/auth/port/in"
	"logbook/internal/modules/worklog/domain"
	"logbook/internal/modules/worklog/dto"
	worklogin "logbook/internal/modules/worklog/port/in"
	"logbook/internal/modules/worklog/service"
	apperrors "logbook/internal/platform/errors"
	"logbook/internal/platform/logging"
)

// Interactor exposes the backend calls. Entry submission is gated on the
// auth session, and any 401 sends the user to the login page.
type Interactor struct {
	svc    *service.WorklogService
	auth   authin.Usecase
	logger *zap.Logger
}

func NewInteractor(svc *service.WorklogService, auth authin.Usecase, logger *zap.Logger) worklogin.Usecase {
	return &Interactor{svc: svc, auth: auth, logger: logging.OrNop(logger)}
}

func (i *Interactor) Stacks() []string {
	return append([]string(nil), domain.Stacks...)
}

func (i *Interactor) SubmitEntry(ctx context.Context, input dto.EntryInput) (dto.EntryOutput, error) {
	entry, err := entryFromInput(input)
	if err != nil {
		return dto.EntryOutput{}, err
	}
	if err := entry.Validate(); err != nil {
		return dto.EntryOutput{}, err
	}
	if i.auth != nil && !i.auth.IsAuthenticated(ctx) {
		i.redirect(ctx)
		return dto.EntryOutput{}, apperrors.ErrReauthRequired
	}
	entry, result, err := i.svc.SubmitEntry(ctx, entry)
	if err != nil {
		return dto.EntryOutput{}, i.guard(ctx, err)
	}
	return dto.EntryOutput{
		Status:             string(entry.Status),
		Stack:              entry.Stack,
		Task:               entry.Task,
		Progress:           entry.Progress,
		Blockers:           entry.Blockers,
		Message:            result.Message,
		OnLeave:            result.OnLeave,
		TempID:             result.TempID,
		RedirectToFollowup: result.RedirectToFollowup,
		RecordID:           result.RecordID,
		IsOverride:         result.IsOverride,
	}, nil
}

func (i *Interactor) StartFollowup(ctx context.Context, tempID string) (dto.SessionOutput, error) {
	session, err := i.svc.StartFollowup(ctx, tempID)
	if err != nil {
		return dto.SessionOutput{}, i.guard(ctx, err)
	}
	return dto.SessionOutput{ID: session.ID, Questions: session.Questions}, nil
}

func (i *Interactor) CompleteFollowup(ctx context.Context, input dto.CompleteInput) (dto.CompletionOutput, error) {
	completion, err := i.svc.CompleteFollowup(ctx, input.SessionID, input.Answers)
	if err != nil {
		return dto.CompletionOutput{}, i.guard(ctx, err)
	}
	return dto.CompletionOutput{
		Message:             completion.Message,
		SessionID:           completion.SessionID,
		DailyRecordID:       completion.DailyRecordID,
		WorkUpdateCompleted: completion.WorkUpdateCompleted,
	}, nil
}

func (i *Interactor) ListSessions(ctx context.Context, input dto.ListSessionsInput) ([]dto.SessionSummaryOutput, error) {
	sessions, err := i.svc.ListSessions(ctx, input.Limit, input.Skip)
	if err != nil {
		return nil, i.guard(ctx, err)
	}
	out := make([]dto.SessionSummaryOutput, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, summaryOutput(s))
	}
	return out, nil
}

func (i *Interactor) GetSession(ctx context.Context, id string) (dto.SessionDetailOutput, error) {
	session, err := i.svc.GetSession(ctx, id)
	if err != nil {
		return dto.SessionDetailOutput{}, i.guard(ctx, err)
	}
	return dto.SessionDetailOutput{
		SessionSummaryOutput: summaryOutput(session.SessionSummary),
		Questions:            session.Questions,
		Answers:              session.Answers,
	}, nil
}

func (i *Interactor) Health(ctx context.Context) (dto.HealthOutput, error) {
	health, err := i.svc.Health(ctx)
	if err != nil {
		return dto.HealthOutput{}, err
	}
	return dto.HealthOutput{Status: health.Status, Database: health.Database, Detail: health.Detail}, nil
}

func (i *Interactor) Stats(ctx context.Context) (dto.StatsOutput, error) {
	s, err := i.svc.Stats(ctx)
	if err != nil {
		return dto.StatsOutput{}, i.guard(ctx, err)
	}
	return dto.StatsOutput(s), nil
}

func (i *Interactor) Cleanup(ctx context.Context) (dto.CleanupOutput, error) {
	r, err := i.svc.Cleanup(ctx)
	if err != nil {
		return dto.CleanupOutput{}, i.guard(ctx, err)
	}
	return dto.CleanupOutput(r), nil
}

func (i *Interactor) guard(ctx context.Context, err error) error {
	if errors.Is(err, apperrors.ErrUnauthorized) {
		i.redirect(ctx)
	}
	return err
}

func (i *Interactor) redirect(ctx context.Context) {
	if i.auth == nil {
		return
	}
	if err := i.auth.RedirectToLogin(ctx); err != nil {
		i.logger.Warn("login redirect failed", zap.Error(err))
	}
}

func entryFromInput(input dto.EntryInput) (domain.ActivityEntry, error) {
	status, err := domain.ParseStatus(input.Status)
	if err != nil {
		return domain.ActivityEntry{}, err
	}
	return domain.ActivityEntry{
		Stack:    input.Stack,
		Task:     input.Task,
		Progress: input.Progress,
		Blockers: input.Blockers,
		Status:   status,
	}, nil
}

func summaryOutput(s domain.SessionSummary) dto.SessionSummaryOutput {
	return dto.SessionSummaryOutput{
		ID:            s.ID,
		Status:        s.Status,
		WorkUpdateID:  s.WorkUpdateID,
		SessionDate:   s.SessionDate,
		QuestionCount: s.QuestionCount,
		AnsweredCount: s.AnsweredCount,
		CreatedAt:     s.CreatedAt,
		CompletedAt:   s.CompletedAt,
	}
}
