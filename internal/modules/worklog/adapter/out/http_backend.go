package out

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"logbook/internal/modules/worklog/domain"
	worklogout "logbook/internal/modules/worklog/port/out"
	"logbook/internal/platform/httpapi"
)

// HTTPBackend talks to the LogBook follow-up service over its REST API.
type HTTPBackend struct {
	client *httpapi.Client
}

func NewHTTPBackend(client *httpapi.Client) worklogout.Backend {
	return &HTTPBackend{client: client}
}

type workUpdateRequest struct {
	Stack    string `json:"stack"`
	Task     string `json:"task"`
	Progress string `json:"progress"`
	Blockers string `json:"blockers"`
	Status   string `json:"status"`
}

type workUpdateResponse struct {
	Message            string `json:"message"`
	TempWorkUpdateID   string `json:"tempWorkUpdateId"`
	RedirectToFollowup bool   `json:"redirectToFollowup"`
	IsOnLeave          bool   `json:"isOnLeave"`
	RecordID           string `json:"recordId"`
	IsOverride         bool   `json:"isOverride"`
}

type startResponse struct {
	Message   string   `json:"message"`
	SessionID string   `json:"sessionId"`
	Questions []string `json:"questions"`
}

type completeRequest struct {
	Answers []string `json:"answers"`
}

type completeResponse struct {
	Message             string `json:"message"`
	SessionID           string `json:"sessionId"`
	DailyRecordID       string `json:"dailyRecordId"`
	WorkUpdateCompleted bool   `json:"workUpdateCompleted"`
}

type sessionDocument struct {
	ID               string   `json:"id"`
	SessionID        string   `json:"sessionId"`
	InternID         string   `json:"internId"`
	TempWorkUpdateID string   `json:"tempWorkUpdateId"`
	WorkUpdateID     string   `json:"workUpdateId"`
	SessionDate      string   `json:"session_date"`
	Status           string   `json:"status"`
	Questions        []string `json:"questions"`
	Answers          []string `json:"answers"`
	CreatedAt        string   `json:"createdAt"`
	CompletedAt      string   `json:"completedAt"`
}

type sessionsResponse struct {
	Sessions []sessionDocument `json:"sessions"`
	Count    int               `json:"count"`
}

func (b *HTTPBackend) SubmitEntry(ctx context.Context, entry domain.ActivityEntry) (domain.EntryResult, error) {
	var resp workUpdateResponse
	err := b.client.Do(ctx, httpapi.Request{
		Method: http.MethodPost,
		Path:   "/api/work-updates",
		Body: workUpdateRequest{
			Stack:    entry.Stack,
			Task:     entry.Task,
			Progress: entry.Progress,
			Blockers: entry.Blockers,
			Status:   string(entry.Status),
		},
	}, &resp)
	if err != nil {
		return domain.EntryResult{}, err
	}
	return domain.EntryResult{
		Message:            resp.Message,
		OnLeave:            resp.IsOnLeave,
		TempID:             resp.TempWorkUpdateID,
		RedirectToFollowup: resp.RedirectToFollowup,
		RecordID:           resp.RecordID,
		IsOverride:         resp.IsOverride,
	}, nil
}

func (b *HTTPBackend) StartFollowup(ctx context.Context, tempID string) (domain.Session, error) {
	var resp startResponse
	err := b.client.Do(ctx, httpapi.Request{
		Method: http.MethodPost,
		Path:   "/api/followups/start",
		Query:  url.Values{"temp_work_update_id": []string{tempID}},
	}, &resp)
	if err != nil {
		return domain.Session{}, err
	}
	return domain.Session{ID: resp.SessionID, Questions: resp.Questions}, nil
}

func (b *HTTPBackend) CompleteFollowup(ctx context.Context, sessionID string, answers []string) (domain.Completion, error) {
	var resp completeResponse
	err := b.client.Do(ctx, httpapi.Request{
		Method: http.MethodPut,
		Path:   "/api/followup/" + url.PathEscape(sessionID) + "/complete",
		Body:   completeRequest{Answers: answers},
	}, &resp)
	if err != nil {
		return domain.Completion{}, err
	}
	return domain.Completion{
		Message:             resp.Message,
		SessionID:           resp.SessionID,
		DailyRecordID:       resp.DailyRecordID,
		WorkUpdateCompleted: resp.WorkUpdateCompleted,
	}, nil
}

func (b *HTTPBackend) ListSessions(ctx context.Context, limit, skip int) ([]domain.SessionSummary, error) {
	var resp sessionsResponse
	err := b.client.Do(ctx, httpapi.Request{
		Method: http.MethodGet,
		Path:   "/api/followup-sessions",
		Query:  url.Values{"limit": []string{strconv.Itoa(limit)}, "skip": []string{strconv.Itoa(skip)}},
	}, &resp)
	if err != nil {
		return nil, err
	}
	out := make([]domain.SessionSummary, 0, len(resp.Sessions))
	for _, doc := range resp.Sessions {
		out = append(out, doc.summary())
	}
	return out, nil
}

func (b *HTTPBackend) GetSession(ctx context.Context, id string) (domain.SessionDetail, error) {
	var doc sessionDocument
	err := b.client.Do(ctx, httpapi.Request{
		Method: http.MethodGet,
		Path:   "/api/followup/session/" + url.PathEscape(id),
	}, &doc)
	if err != nil {
		return domain.SessionDetail{}, err
	}
	return domain.SessionDetail{
		SessionSummary: doc.summary(),
		Questions:      doc.Questions,
		Answers:        doc.Answers,
	}, nil
}

func (b *HTTPBackend) Health(ctx context.Context) (domain.Health, error) {
	raw := map[string]any{}
	if err := b.client.Do(ctx, httpapi.Request{Method: http.MethodGet, Path: "/health"}, &raw); err != nil {
		return domain.Health{}, err
	}
	health := domain.Health{Detail: map[string]string{}}
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := fmt.Sprint(raw[k])
		switch k {
		case "status":
			health.Status = v
		case "database":
			health.Database = v
		default:
			health.Detail[k] = v
		}
	}
	return health, nil
}

type statsResponse struct {
	WorkUpdates struct {
		Total               int `json:"total"`
		CompletedFollowups  int `json:"completed_followups"`
		IncompleteFollowups int `json:"incomplete_followups"`
	} `json:"work_updates"`
	TempWorkUpdates struct {
		Total   int `json:"total"`
		Pending int `json:"pending"`
	} `json:"temp_work_updates"`
	FollowupSessions struct {
		Total     int `json:"total"`
		Pending   int `json:"pending"`
		Completed int `json:"completed"`
	} `json:"followup_sessions"`
	CleanupSystem struct {
		TTLIndexActive    bool `json:"ttl_index_active"`
		ManualTaskRunning bool `json:"manual_task_running"`
	} `json:"cleanup_system"`
}

// Stats reads /stats. The backend answers null when its database is down.
func (b *HTTPBackend) Stats(ctx context.Context) (domain.Stats, error) {
	var out *statsResponse
	if err := b.client.Do(ctx, httpapi.Request{Method: http.MethodGet, Path: "/stats"}, &out); err != nil {
		return domain.Stats{}, err
	}
	if out == nil {
		return domain.Stats{}, errors.New("backend returned no statistics")
	}
	return domain.Stats{
		WorkUpdates:         out.WorkUpdates.Total,
		CompletedFollowups:  out.WorkUpdates.CompletedFollowups,
		IncompleteFollowups: out.WorkUpdates.IncompleteFollowups,
		TempUpdates:         out.TempWorkUpdates.Total,
		PendingTempUpdates:  out.TempWorkUpdates.Pending,
		Sessions:            out.FollowupSessions.Total,
		PendingSessions:     out.FollowupSessions.Pending,
		CompletedSessions:   out.FollowupSessions.Completed,
		TTLActive:           out.CleanupSystem.TTLIndexActive,
		CleanupTaskRunning:  out.CleanupSystem.ManualTaskRunning,
	}, nil
}

type cleanupResponse struct {
	Message            string `json:"message"`
	DeletedTempUpdates int    `json:"deleted_temp_updates"`
	DeletedSessions    int    `json:"deleted_sessions"`
	TTLStatus          string `json:"ttl_status"`
}

func (b *HTTPBackend) Cleanup(ctx context.Context) (domain.CleanupResult, error) {
	var out cleanupResponse
	req := httpapi.Request{Method: http.MethodDelete, Path: "/api/temp-work-updates/cleanup"}
	if err := b.client.Do(ctx, req, &out); err != nil {
		return domain.CleanupResult{}, err
	}
	return domain.CleanupResult(out), nil
}

func (d sessionDocument) summary() domain.SessionSummary {
	id := d.SessionID
	if id == "" {
		id = d.ID
	}
	workUpdate := d.TempWorkUpdateID
	if workUpdate == "" {
		workUpdate = d.WorkUpdateID
	}
	answered := 0
	for _, a := range d.Answers {
		if strings.TrimSpace(a) != "" {
			answered++
		}
	}
	return domain.SessionSummary{
		ID:            id,
		InternID:      d.InternID,
		Status:        d.Status,
		WorkUpdateID:  workUpdate,
		SessionDate:   d.SessionDate,
		QuestionCount: len(d.Questions),
		AnsweredCount: answered,
		CreatedAt:     parseTimestamp(d.CreatedAt),
		CompletedAt:   parseTimestamp(d.CompletedAt),
	}
}

// parseTimestamp accepts RFC 3339 and the zone-less ISO form the backend
// emits. Zone-less values are read as UTC; unparseable ones become zero.
func parseTimestamp(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02 15:04:05.999999999"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
