package out_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logbook/internal/modules/worklog/adapter/out"
	"logbook/internal/modules/worklog/domain"
	worklogout "logbook/internal/modules/worklog/port/out"
	apperrors "logbook/internal/platform/errors"
	"logbook/internal/platform/httpapi"
	"logbook/internal/testsupport/fakebackend"
)

func newBackend(t *testing.T, srv *fakebackend.Server, token string) worklogout.Backend {
	t.Helper()
	headers := func(context.Context) http.Header {
		h := http.Header{}
		if token != "" {
			h.Set("Authorization", "Bearer "+token)
		}
		return h
	}
	client, err := httpapi.New(srv.URL, 0, headers, nil, nil)
	require.NoError(t, err)
	return out.NewHTTPBackend(client)
}

func TestHTTPBackendFullFollowup(t *testing.T) {
	t.Parallel()
	srv := fakebackend.New(t, fakebackend.WithTempID("42"), fakebackend.WithQuestions("q1", "q2"), fakebackend.WithToken("secret"))
	backend := newBackend(t, srv, "secret")
	ctx := context.Background()

	entry := domain.ActivityEntry{Stack: "Backend Development", Task: "Fixed bug X", Progress: "p", Blockers: "b", Status: domain.StatusWorking}
	result, err := backend.SubmitEntry(ctx, entry)
	require.NoError(t, err)
	assert.Equal(t, "42", result.TempID)
	assert.True(t, result.RedirectToFollowup)
	assert.False(t, result.OnLeave)

	posted := srv.CallsTo(fakebackend.RouteWorkUpdates)
	require.Len(t, posted, 1)
	var body map[string]string
	require.NoError(t, json.Unmarshal(posted[0].Body, &body))
	assert.Equal(t, map[string]string{"stack": "Backend Development", "task": "Fixed bug X", "progress": "p", "blockers": "b", "status": "working"}, body)
	assert.Equal(t, "Bearer secret", posted[0].Header.Get("Authorization"))
	assert.NotEmpty(t, posted[0].Header.Get("X-Request-ID"))

	session, err := backend.StartFollowup(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, []string{"q1", "q2"}, session.Questions)
	starts := srv.CallsTo(fakebackend.RouteStart)
	require.Len(t, starts, 1)
	assert.Equal(t, "temp_work_update_id=42", starts[0].Query)

	completion, err := backend.CompleteFollowup(ctx, session.ID, []string{"a1", "a2"})
	require.NoError(t, err)
	assert.True(t, completion.WorkUpdateCompleted)
	assert.Equal(t, session.ID, completion.SessionID)
	assert.NotEmpty(t, completion.DailyRecordID)
	assert.Equal(t, []string{"a1", "a2"}, srv.Answers(session.ID))

	sessions, err := backend.ListSessions(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, session.ID, sessions[0].ID)
	assert.Equal(t, "42", sessions[0].WorkUpdateID)
	assert.Equal(t, 2, sessions[0].AnsweredCount)
	assert.False(t, sessions[0].CreatedAt.IsZero())
	assert.False(t, sessions[0].CompletedAt.IsZero())

	detail, err := backend.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a2"}, detail.Answers)
	assert.Equal(t, "completed", detail.Status)
}

func TestHTTPBackendLeave(t *testing.T) {
	t.Parallel()
	srv := fakebackend.New(t)
	backend := newBackend(t, srv, "")
	result, err := backend.SubmitEntry(context.Background(), domain.ActivityEntry{Stack: "UI/UX Design", Task: "On Leave", Progress: "On Leave", Blockers: "On Leave", Status: domain.StatusLeave})
	require.NoError(t, err)
	assert.True(t, result.OnLeave)
	assert.NotEmpty(t, result.RecordID)
	assert.Empty(t, result.TempID)
}

func TestHTTPBackendErrors(t *testing.T) {
	t.Parallel()
	srv := fakebackend.New(t, fakebackend.WithToken("secret"))
	backend := newBackend(t, srv, "wrong")
	_, err := backend.SubmitEntry(context.Background(), domain.ActivityEntry{Status: domain.StatusWorking})
	assert.True(t, errors.Is(err, apperrors.ErrUnauthorized), "expected unauthorized, got %v", err)

	backend = newBackend(t, srv, "secret")
	srv.Fail(fakebackend.RouteStart, http.StatusInternalServerError)
	_, err = backend.StartFollowup(context.Background(), "x")
	var status *apperrors.StatusError
	require.True(t, errors.As(err, &status))
	assert.Equal(t, http.StatusInternalServerError, status.Code)
	assert.True(t, errors.Is(err, apperrors.ErrNetwork))

	_, err = backend.GetSession(context.Background(), "missing")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestHTTPBackendHealth(t *testing.T) {
	t.Parallel()
	srv := fakebackend.New(t)
	health, err := newBackend(t, srv, "").Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "connected", health.Database)
	assert.Equal(t, "true", health.Detail["cleanup_task_running"])
}

func TestHTTPBackendStatsAndCleanup(t *testing.T) {
	t.Parallel()
	srv := fakebackend.New(t, fakebackend.WithTempID("42"))
	backend := newBackend(t, srv, "")
	ctx := context.Background()

	_, err := backend.SubmitEntry(ctx, domain.ActivityEntry{Stack: "Go", Task: "t", Progress: "p", Blockers: "b", Status: domain.StatusWorking})
	require.NoError(t, err)
	_, err = backend.StartFollowup(ctx, "42")
	require.NoError(t, err)

	stats, err := backend.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.PendingTempUpdates)
	assert.Equal(t, 1, stats.Sessions)
	assert.Equal(t, 1, stats.PendingSessions)
	assert.True(t, stats.TTLActive)

	result, err := backend.Cleanup(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.DeletedTempUpdates)
	assert.Equal(t, 1, result.DeletedSessions)
	assert.Equal(t, "active", result.TTLStatus)
	require.Len(t, srv.CallsTo(fakebackend.RouteCleanup), 1)
	assert.Equal(t, http.MethodDelete, srv.CallsTo(fakebackend.RouteCleanup)[0].Method)

	stats, err = backend.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Sessions)
	assert.Zero(t, stats.TempUpdates)
}

func TestHTTPBackendStatsNullBody(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("null"))
	}))
	t.Cleanup(srv.Close)
	client, err := httpapi.New(srv.URL, 0, nil, nil, nil)
	require.NoError(t, err)

	_, err = out.NewHTTPBackend(client).Stats(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no statistics")
}
