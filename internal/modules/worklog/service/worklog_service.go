package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"logbook/internal/modules/worklog/domain"
	worklogout "logbook/internal/modules/worklog/port/out"
	apperrors "logbook/internal/platform/errors"
	"logbook/internal/platform/logging"
)

const (
	DefaultSessionLimit = 20
	MaxSessionLimit     = 150
)

type WorklogService struct {
	backend worklogout.Backend
	logger  *zap.Logger
}

func NewWorklogService(backend worklogout.Backend, logger *zap.Logger) *WorklogService {
	return &WorklogService{backend: backend, logger: logging.OrNop(logger)}
}

// SubmitEntry validates and normalizes entry before posting it. Invalid
// entries never reach the backend.
func (s *WorklogService) SubmitEntry(ctx context.Context, entry domain.ActivityEntry) (domain.ActivityEntry, domain.EntryResult, error) {
	if err := entry.Validate(); err != nil {
		return domain.ActivityEntry{}, domain.EntryResult{}, err
	}
	entry = entry.Normalize()
	result, err := s.Post(ctx, entry)
	return entry, result, err
}

// Post sends an already validated entry.
func (s *WorklogService) Post(ctx context.Context, entry domain.ActivityEntry) (domain.EntryResult, error) {
	result, err := s.backend.SubmitEntry(ctx, entry)
	if err != nil {
		s.logger.Warn("work update submission failed", zap.String("status", string(entry.Status)), zap.Error(err))
		return domain.EntryResult{}, fmt.Errorf("submit work update: %w", err)
	}
	s.logger.Info("work update submitted",
		zap.String("status", string(entry.Status)),
		zap.String("stack", entry.Stack),
		zap.Bool("on_leave", result.OnLeave),
		zap.String("temp_id", result.TempID),
	)
	return result, nil
}

func (s *WorklogService) StartFollowup(ctx context.Context, tempID string) (domain.Session, error) {
	tempID = strings.TrimSpace(tempID)
	if tempID == "" {
		return domain.Session{}, apperrors.Invalid("temp_work_update_id", "temp work update id is required")
	}
	session, err := s.backend.StartFollowup(ctx, tempID)
	if err != nil {
		s.logger.Warn("follow-up start failed", zap.String("temp_id", tempID), zap.Error(err))
		return domain.Session{}, fmt.Errorf("start follow-up: %w", err)
	}
	s.logger.Info("follow-up started", zap.String("session_id", session.ID), zap.Int("questions", len(session.Questions)))
	return session, nil
}

func (s *WorklogService) CompleteFollowup(ctx context.Context, sessionID string, answers []string) (domain.Completion, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return domain.Completion{}, apperrors.Invalid("session_id", "session id is required")
	}
	if len(answers) == 0 {
		return domain.Completion{}, apperrors.Invalid("answers", "Please answer all questions before submitting.")
	}
	for _, a := range answers {
		if strings.TrimSpace(a) == "" {
			return domain.Completion{}, apperrors.Invalid("answers", "Please answer all questions before submitting.")
		}
	}
	completion, err := s.backend.CompleteFollowup(ctx, sessionID, answers)
	if err != nil {
		s.logger.Warn("follow-up completion failed", zap.String("session_id", sessionID), zap.Error(err))
		return domain.Completion{}, fmt.Errorf("complete follow-up: %w", err)
	}
	s.logger.Info("follow-up completed", zap.String("session_id", sessionID), zap.String("daily_record_id", completion.DailyRecordID))
	return completion, nil
}

func (s *WorklogService) ListSessions(ctx context.Context, limit, skip int) ([]domain.SessionSummary, error) {
	if limit <= 0 {
		limit = DefaultSessionLimit
	}
	if limit > MaxSessionLimit {
		limit = MaxSessionLimit
	}
	if skip < 0 {
		return nil, apperrors.Invalid("skip", "skip must not be negative")
	}
	sessions, err := s.backend.ListSessions(ctx, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("list follow-up sessions: %w", err)
	}
	return sessions, nil
}

func (s *WorklogService) GetSession(ctx context.Context, id string) (domain.SessionDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.SessionDetail{}, apperrors.Invalid("session_id", "session id is required")
	}
	session, err := s.backend.GetSession(ctx, id)
	if err != nil {
		return domain.SessionDetail{}, fmt.Errorf("get follow-up session %s: %w", id, err)
	}
	return session, nil
}

func (s *WorklogService) Health(ctx context.Context) (domain.Health, error) {
	health, err := s.backend.Health(ctx)
	if err != nil {
		return domain.Health{}, fmt.Errorf("backend health: %w", err)
	}
	return health, nil
}

func (s *WorklogService) Stats(ctx context.Context) (domain.Stats, error) {
	stats, err := s.backend.Stats(ctx)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("backend stats: %w", err)
	}
	return stats, nil
}

// Cleanup asks the backend to purge temp updates and sessions abandoned for
// more than a day.
func (s *WorklogService) Cleanup(ctx context.Context) (domain.CleanupResult, error) {
	result, err := s.backend.Cleanup(ctx)
	if err != nil {
		return domain.CleanupResult{}, fmt.Errorf("backend cleanup: %w", err)
	}
	s.logger.Info("backend cleanup finished",
		zap.Int("deleted_temp_updates", result.DeletedTempUpdates),
		zap.Int("deleted_sessions", result.DeletedSessions))
	return result, nil
}
