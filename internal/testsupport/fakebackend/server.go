// Package fakebackend is an in-process LogBook follow-up service for tests.
// It records every call and can be told to fail individual routes.
package fakebackend

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type Route string

const (
	RouteWorkUpdates Route = "work-updates"
	RouteStart       Route = "followups-start"
	RouteComplete    Route = "followup-complete"
	RouteSessions    Route = "followup-sessions"
	RouteSession     Route = "followup-session"
	RouteHealth      Route = "health"
	RouteAuthConfig  Route = "auth-config"
	RouteStats       Route = "stats"
	RouteCleanup     Route = "cleanup"
)

type Call struct {
	Route  Route
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

type Option func(*Server)

// WithQuestions sets the questions every new follow-up session gets.
func WithQuestions(questions ...string) Option {
	return func(s *Server) { s.questions = append([]string(nil), questions...) }
}

// WithToken makes every route except /health answer 401 unless the request
// carries "Authorization: Bearer <token>".
func WithToken(token string) Option {
	return func(s *Server) { s.token = token }
}

// WithTempID fixes the temp work update id handed out for non-leave entries.
func WithTempID(id string) Option {
	return func(s *Server) { s.tempID = id }
}

type session struct {
	id        string
	tempID    string
	date      string
	status    string
	questions []string
	answers   []string
	createdAt time.Time
	completed time.Time
}

type Server struct {
	URL string

	mu        sync.Mutex
	calls     []Call
	failures  map[Route][]int
	questions []string
	token     string
	tempID    string
	temps     map[string]map[string]string
	sessions  map[string]*session
	order     []string
	srv       *httptest.Server
}

func New(t testing.TB, opts ...Option) *Server {
	t.Helper()
	s := &Server{
		failures:  map[Route][]int{},
		questions: []string{"What was the hardest part of today's work?", "What will you tackle next?"},
		temps:     map[string]map[string]string{},
		sessions:  map[string]*session{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.srv = httptest.NewServer(s.routes())
	s.URL = s.srv.URL
	t.Cleanup(s.srv.Close)
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/health", s.handle(RouteHealth, false, s.health))
	r.Get("/api/auth/config", s.handle(RouteAuthConfig, false, s.authConfig))
	r.Post("/api/work-updates", s.handle(RouteWorkUpdates, true, s.workUpdate))
	r.Post("/api/followups/start", s.handle(RouteStart, true, s.start))
	r.Put("/api/followup/{sessionID}/complete", s.handle(RouteComplete, true, s.complete))
	r.Get("/api/followup/session/{sessionID}", s.handle(RouteSession, true, s.getSession))
	r.Get("/api/followup-sessions", s.handle(RouteSessions, true, s.listSessions))
	r.Get("/stats", s.handle(RouteStats, false, s.stats))
	r.Delete("/api/temp-work-updates/cleanup", s.handle(RouteCleanup, false, s.cleanup))
	return r
}

// Fail queues status codes; the next calls to route answer with them in
// order before normal handling resumes.
func (s *Server) Fail(route Route, statuses ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = append(s.failures[route], statuses...)
}

func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

func (s *Server) CallsTo(route Route) []Call {
	var out []Call
	for _, c := range s.Calls() {
		if c.Route == route {
			out = append(out, c)
		}
	}
	return out
}

// Answers returns the answers stored for a completed session.
func (s *Server) Answers(sessionID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[sessionID]; ok {
		return append([]string(nil), sess.answers...)
	}
	return nil
}

type handlerFunc func(w http.ResponseWriter, r *http.Request, body []byte)

func (s *Server) handle(route Route, authed bool, next handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		s.mu.Lock()
		s.calls = append(s.calls, Call{
			Route:  route,
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Header: r.Header.Clone(),
			Body:   body,
		})
		var status int
		if queued := s.failures[route]; len(queued) > 0 {
			status, s.failures[route] = queued[0], queued[1:]
		}
		token := s.token
		s.mu.Unlock()

		if status != 0 {
			http.Error(w, fmt.Sprintf(`{"detail":"injected %d"}`, status), status)
			return
		}
		if authed && token != "" && r.Header.Get("Authorization") != "Bearer "+token {
			http.Error(w, `{"detail":"Could not validate credentials"}`, http.StatusUnauthorized)
			return
		}
		next(w, r, body)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request, _ []byte) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":               "healthy",
		"database":             "connected",
		"logbook_integration":  "ready",
		"cleanup_task_running": true,
	})
}

func (s *Server) authConfig(w http.ResponseWriter, _ *http.Request, _ []byte) {
	writeJSON(w, http.StatusOK, map[string]any{
		"auth_method":        "jwt",
		"token_location":     []string{"Authorization", "logbook_token"},
		"token_format":       "Bearer {token}",
		"login_url":          "/login",
		"logout_url":         "/logout",
		"jwt_configured":     true,
		"integration_status": "LogBook JWT",
	})
}

func (s *Server) workUpdate(w http.ResponseWriter, _ *http.Request, body []byte) {
	var entry map[string]string
	if err := json.Unmarshal(body, &entry); err != nil {
		http.Error(w, `{"detail":"invalid body"}`, http.StatusUnprocessableEntity)
		return
	}
	if entry["status"] == "leave" {
		writeJSON(w, http.StatusOK, map[string]any{
			"message":            "Leave status saved successfully to LogBook",
			"recordId":           uuid.NewString(),
			"isOverride":         false,
			"redirectToFollowup": false,
			"isOnLeave":          true,
		})
		return
	}
	s.mu.Lock()
	id := s.tempID
	if id == "" {
		id = uuid.NewString()
	}
	s.temps[id] = entry
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"message":            "Work update saved temporarily.",
		"tempWorkUpdateId":   id,
		"redirectToFollowup": true,
		"isOnLeave":          false,
	})
}

func (s *Server) start(w http.ResponseWriter, r *http.Request, _ []byte) {
	tempID := r.URL.Query().Get("temp_work_update_id")
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.temps[tempID]; !ok {
		http.Error(w, `{"detail":"Temporary work update not found"}`, http.StatusNotFound)
		return
	}
	sess := &session{
		id:        "intern_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		tempID:    tempID,
		date:      time.Now().UTC().Format("2006-01-02"),
		status:    "pending",
		questions: append([]string(nil), s.questions...),
		answers:   make([]string, len(s.questions)),
		createdAt: time.Now().UTC(),
	}
	s.sessions[sess.id] = sess
	s.order = append(s.order, sess.id)
	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "AI follow-up session started",
		"sessionId": sess.id,
		"questions": sess.questions,
	})
}

func (s *Server) complete(w http.ResponseWriter, r *http.Request, body []byte) {
	var req struct {
		Answers []string `json:"answers"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, `{"detail":"invalid body"}`, http.StatusUnprocessableEntity)
		return
	}
	id := chi.URLParam(r, "sessionID")
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		http.Error(w, `{"detail":"Session not found"}`, http.StatusNotFound)
		return
	}
	if len(req.Answers) != len(sess.questions) {
		http.Error(w, `{"detail":"answer count mismatch"}`, http.StatusBadRequest)
		return
	}
	sess.answers = req.Answers
	sess.status = "completed"
	sess.completed = time.Now().UTC()
	delete(s.temps, sess.tempID)
	writeJSON(w, http.StatusOK, map[string]any{
		"message":             "AI follow-up completed successfully. Work update saved to LogBook system.",
		"sessionId":           id,
		"dailyRecordId":       uuid.NewString(),
		"workUpdateCompleted": true,
	})
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request, _ []byte) {
	id := chi.URLParam(r, "sessionID")
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		http.Error(w, `{"detail":"Session not found or access denied"}`, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, sess.document())
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request, _ []byte) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	if limit <= 0 {
		limit = 150
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	docs := []map[string]any{}
	for i := len(s.order) - 1; i >= 0; i-- {
		docs = append(docs, s.sessions[s.order[i]].document())
	}
	if skip > len(docs) {
		skip = len(docs)
	}
	docs = docs[skip:]
	if limit < len(docs) {
		docs = docs[:limit]
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": docs, "count": len(docs)})
}

func (sess *session) document() map[string]any {
	doc := map[string]any{
		"sessionId":        sess.id,
		"internId":         "507f1f77bcf86cd799439011",
		"tempWorkUpdateId": sess.tempID,
		"session_date":     sess.date,
		"status":           sess.status,
		"questions":        sess.questions,
		"answers":          sess.answers,
		"createdAt":        sess.createdAt.Format("2006-01-02T15:04:05.000000"),
		"completedAt":      nil,
	}
	if !sess.completed.IsZero() {
		doc["completedAt"] = sess.completed.Format("2006-01-02T15:04:05.000000")
	}
	return doc
}

func (s *Server) stats(w http.ResponseWriter, _ *http.Request, _ []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	completed := 0
	for _, sess := range s.sessions {
		if sess.status == "completed" {
			completed++
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"work_updates": map[string]int{
			"total":                completed,
			"completed_followups":  completed,
			"incomplete_followups": 0,
		},
		"temp_work_updates": map[string]int{
			"total":   len(s.temps),
			"pending": len(s.temps),
		},
		"followup_sessions": map[string]int{
			"total":     len(s.sessions),
			"pending":   len(s.sessions) - completed,
			"completed": completed,
		},
		"cleanup_system": map[string]any{
			"ttl_index_active":    true,
			"manual_task_running": true,
			"cleanup_frequency":   "TTL: 60 seconds, Manual: 1 hour",
			"automatic_deletion":  "Documents deleted after 24 hours",
		},
	})
}

// cleanup drops every pending session and every temp update that has not
// been completed.
func (s *Server) cleanup(w http.ResponseWriter, _ *http.Request, _ []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deletedSessions := 0
	order := s.order[:0]
	for _, id := range s.order {
		if s.sessions[id].status != "completed" {
			delete(s.sessions, id)
			deletedSessions++
			continue
		}
		order = append(order, id)
	}
	s.order = order
	deletedTemps := len(s.temps)
	s.temps = map[string]map[string]string{}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":              "Cleanup completed successfully",
		"deleted_temp_updates": deletedTemps,
		"deleted_sessions":     deletedSessions,
		"ttl_status":           "active",
		"note":                 "TTL index also automatically deletes documents after 24 hours",
	})
}
