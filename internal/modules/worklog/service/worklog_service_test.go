package service_test

import (
	"context"
	"errors"
	"testing"

	"logbook/internal/modules/worklog/domain"
	"logbook/internal/modules/worklog/service"
	apperrors "logbook/internal/platform/errors"
)

type fakeBackend struct {
	entries   []domain.ActivityEntry
	completes [][]string
	limit     int
	skip      int
	err       error
}

func (f *fakeBackend) SubmitEntry(_ context.Context, entry domain.ActivityEntry) (domain.EntryResult, error) {
	f.entries = append(f.entries, entry)
	if f.err != nil {
		return domain.EntryResult{}, f.err
	}
	return domain.EntryResult{TempID: "t-1"}, nil
}

func (f *fakeBackend) StartFollowup(_ context.Context, tempID string) (domain.Session, error) {
	return domain.Session{ID: "s-" + tempID, Questions: []string{"q"}}, f.err
}

func (f *fakeBackend) CompleteFollowup(_ context.Context, _ string, answers []string) (domain.Completion, error) {
	f.completes = append(f.completes, answers)
	return domain.Completion{WorkUpdateCompleted: true}, f.err
}

func (f *fakeBackend) ListSessions(_ context.Context, limit, skip int) ([]domain.SessionSummary, error) {
	f.limit, f.skip = limit, skip
	return nil, f.err
}

func (f *fakeBackend) GetSession(_ context.Context, id string) (domain.SessionDetail, error) {
	return domain.SessionDetail{SessionSummary: domain.SessionSummary{ID: id}}, f.err
}

func (f *fakeBackend) Health(context.Context) (domain.Health, error) {
	return domain.Health{Status: "healthy"}, f.err
}

func (f *fakeBackend) Stats(context.Context) (domain.Stats, error) {
	return domain.Stats{Sessions: 2, PendingSessions: 1}, f.err
}

func (f *fakeBackend) Cleanup(context.Context) (domain.CleanupResult, error) {
	return domain.CleanupResult{DeletedSessions: 1}, f.err
}

func TestSubmitEntryNormalizesBeforePosting(t *testing.T) {
	t.Parallel()
	backend := &fakeBackend{}
	svc := service.NewWorklogService(backend, nil)

	entry, result, err := svc.SubmitEntry(context.Background(), domain.ActivityEntry{Stack: "Backend Development", Task: " api ", Status: domain.StatusWFH})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.TempID != "t-1" || entry.Blockers != domain.DefaultBlockers {
		t.Fatalf("unexpected result %+v entry %+v", result, entry)
	}
	if len(backend.entries) != 1 || backend.entries[0].Task != "api" {
		t.Fatalf("expected normalized entry to be posted, got %+v", backend.entries)
	}
}

func TestSubmitEntryInvalidNeverPosts(t *testing.T) {
	t.Parallel()
	backend := &fakeBackend{}
	svc := service.NewWorklogService(backend, nil)
	_, _, err := svc.SubmitEntry(context.Background(), domain.ActivityEntry{Status: domain.StatusWorking, Stack: "Backend Development"})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if len(backend.entries) != 0 {
		t.Fatalf("invalid entry reached the backend")
	}
}

func TestBackendErrorsKeepTheirKind(t *testing.T) {
	t.Parallel()
	backend := &fakeBackend{err: &apperrors.StatusError{Code: 401}}
	svc := service.NewWorklogService(backend, nil)
	_, _, err := svc.SubmitEntry(context.Background(), domain.ActivityEntry{Status: domain.StatusLeave, Stack: "Data Science"})
	if !errors.Is(err, apperrors.ErrUnauthorized) {
		t.Fatalf("expected unauthorized to survive wrapping, got %v", err)
	}
}

func TestCompleteFollowupRequiresEveryAnswer(t *testing.T) {
	t.Parallel()
	backend := &fakeBackend{}
	svc := service.NewWorklogService(backend, nil)
	for _, answers := range [][]string{nil, {"a", " "}, {""}} {
		if _, err := svc.CompleteFollowup(context.Background(), "s", answers); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("answers %q: expected invalid input, got %v", answers, err)
		}
	}
	if _, err := svc.CompleteFollowup(context.Background(), "", []string{"a"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for missing session id, got %v", err)
	}
	if len(backend.completes) != 0 {
		t.Fatalf("rejected answers reached the backend")
	}
	if _, err := svc.CompleteFollowup(context.Background(), "s", []string{"a"}); err != nil {
		t.Fatalf("complete: %v", err)
	}
}

func TestListSessionsClampsLimit(t *testing.T) {
	t.Parallel()
	cases := []struct {
		limit, want int
	}{
		{limit: 0, want: service.DefaultSessionLimit},
		{limit: -3, want: service.DefaultSessionLimit},
		{limit: 50, want: 50},
		{limit: 1000, want: service.MaxSessionLimit},
	}
	for _, tc := range cases {
		backend := &fakeBackend{}
		if _, err := service.NewWorklogService(backend, nil).ListSessions(context.Background(), tc.limit, 2); err != nil {
			t.Fatalf("list: %v", err)
		}
		if backend.limit != tc.want || backend.skip != 2 {
			t.Fatalf("limit %d: backend saw limit=%d skip=%d", tc.limit, backend.limit, backend.skip)
		}
	}
	if _, err := service.NewWorklogService(&fakeBackend{}, nil).ListSessions(context.Background(), 10, -1); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for negative skip, got %v", err)
	}
}

func TestStartFollowupRequiresTempID(t *testing.T) {
	t.Parallel()
	svc := service.NewWorklogService(&fakeBackend{}, nil)
	if _, err := svc.StartFollowup(context.Background(), "  "); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	session, err := svc.StartFollowup(context.Background(), "42")
	if err != nil || session.ID != "s-42" {
		t.Fatalf("unexpected session %+v err %v", session, err)
	}
}
