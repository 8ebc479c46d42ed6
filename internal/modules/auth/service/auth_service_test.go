package service_test

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"testing"
	"time"

	"logbook/internal/modules/auth/domain"
	authout "logbook/internal/modules/auth/port/out"
	"logbook/internal/modules/auth/service"
	"logbook/internal/platform/clock"
	apperrors "logbook/internal/platform/errors"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func token(exp time.Time) string {
	enc := base64.RawURLEncoding
	payload := fmt.Sprintf(`{"id":"intern-1","email":"intern@talenthub.com","exp":%d}`, exp.Unix())
	return enc.EncodeToString([]byte(`{"alg":"HS256"}`)) + "." + enc.EncodeToString([]byte(payload)) + ".sig"
}

type fakeStore struct {
	kind    domain.StoreKind
	values  map[string]string
	readErr error
	removed []string
}

func newFakeStore(kind domain.StoreKind, values map[string]string) *fakeStore {
	if values == nil {
		values = map[string]string{}
	}
	return &fakeStore{kind: kind, values: values}
}

func (f *fakeStore) Kind() domain.StoreKind { return f.kind }

func (f *fakeStore) Get(_ context.Context, key string) (string, bool, error) {
	if f.readErr != nil {
		return "", false, f.readErr
	}
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakeStore) Set(_ context.Context, key, value string) error {
	f.values[key] = value
	return nil
}

func (f *fakeStore) Remove(_ context.Context, key string) error {
	f.removed = append(f.removed, key)
	delete(f.values, key)
	return nil
}

type fakeNavigator struct {
	opened []string
}

func (f *fakeNavigator) Open(_ context.Context, target string) error {
	f.opened = append(f.opened, target)
	return nil
}

func newService(nav authout.Navigator, opts service.Options, stores ...authout.CredentialStore) *service.AuthService {
	return service.NewAuthService(clock.Fixed(now), stores, nav, nil, opts, nil)
}

func TestTokenLookupOrder(t *testing.T) {
	t.Parallel()
	local := newFakeStore(domain.StoreLocal, map[string]string{"token": "local-token"})
	session := newFakeStore(domain.StoreSession, map[string]string{"logbook_token": "session-token"})
	cookie := newFakeStore(domain.StoreCookie, map[string]string{"logbook_token": "cookie-token"})
	svc := newService(nil, service.Options{}, cookie, session, local)

	cred, ok := svc.Token(context.Background())
	if !ok {
		t.Fatalf("expected a credential")
	}
	if cred.Value != "local-token" || cred.Store != domain.StoreLocal || cred.Key != "token" {
		t.Fatalf("expected local token key to win, got %+v", cred)
	}

	local.values = map[string]string{"logbook_token": "local-primary", "token": "local-token"}
	cred, _ = svc.Token(context.Background())
	if cred.Value != "local-primary" {
		t.Fatalf("expected logbook_token to win over token, got %q", cred.Value)
	}
}

func TestTokenSkipsUnreadableStoreAndBlankValues(t *testing.T) {
	t.Parallel()
	local := newFakeStore(domain.StoreLocal, nil)
	local.readErr = errors.New("disk gone")
	session := newFakeStore(domain.StoreSession, map[string]string{"logbook_token": "   "})
	cookie := newFakeStore(domain.StoreCookie, map[string]string{"logbook_token": "cookie-token"})
	svc := newService(nil, service.Options{}, local, session, cookie)

	cred, ok := svc.Token(context.Background())
	if !ok || cred.Store != domain.StoreCookie {
		t.Fatalf("expected cookie credential, got %+v ok=%v", cred, ok)
	}
}

func TestIsAuthenticated(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name  string
		value string
		want  bool
	}{
		{name: "future expiry", value: token(now.Add(time.Hour)), want: true},
		{name: "expired", value: token(now.Add(-time.Second)), want: false},
		{name: "expires now", value: token(now), want: false},
		{name: "malformed", value: "not-a-jwt", want: false},
		{name: "no exp claim", value: base64.RawURLEncoding.EncodeToString([]byte(`{}`)) + "." + base64.RawURLEncoding.EncodeToString([]byte(`{"id":"x"}`)) + ".s", want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			store := newFakeStore(domain.StoreLocal, map[string]string{"logbook_token": tc.value})
			svc := newService(nil, service.Options{}, store)
			if got := svc.IsAuthenticated(context.Background()); got != tc.want {
				t.Fatalf("IsAuthenticated = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsAuthenticatedWithoutToken(t *testing.T) {
	t.Parallel()
	svc := newService(nil, service.Options{}, newFakeStore(domain.StoreLocal, nil))
	if svc.IsAuthenticated(context.Background()) {
		t.Fatalf("expected unauthenticated without a token")
	}
	if _, _, err := svc.Claims(context.Background()); !errors.Is(err, apperrors.ErrNoCredential) {
		t.Fatalf("expected ErrNoCredential, got %v", err)
	}
}

func TestDevBypassAuthenticatesEveryone(t *testing.T) {
	t.Parallel()
	svc := newService(nil, service.Options{DevBypass: true}, newFakeStore(domain.StoreLocal, nil))
	if !svc.IsAuthenticated(context.Background()) {
		t.Fatalf("bypass should authenticate")
	}
}

func TestHeaders(t *testing.T) {
	t.Parallel()
	store := newFakeStore(domain.StoreLocal, map[string]string{"logbook_token": "abc.def.ghi"})
	svc := newService(nil, service.Options{DevFallbackHeaders: true, FallbackInternID: "id", FallbackInternEmail: "e@x"}, store)

	h := svc.Headers(context.Background())
	if h.Get("Authorization") != "Bearer abc.def.ghi" {
		t.Fatalf("unexpected authorization header %q", h.Get("Authorization"))
	}
	if h.Get("X-Intern-ID") != "" {
		t.Fatalf("fallback headers must not be sent with a token")
	}
	if h.Get("Content-Type") != "application/json" {
		t.Fatalf("expected json content type")
	}

	delete(store.values, "logbook_token")
	h = svc.Headers(context.Background())
	if h.Get("Authorization") != "" {
		t.Fatalf("no authorization expected without a token")
	}
	if h.Get("X-Intern-ID") != "id" || h.Get("X-Intern-Email") != "e@x" {
		t.Fatalf("expected fallback identity headers, got %v", h)
	}
}

func TestHeadersWithoutFallback(t *testing.T) {
	t.Parallel()
	svc := newService(nil, service.Options{}, newFakeStore(domain.StoreLocal, nil))
	h := svc.Headers(context.Background())
	if h.Get("Authorization") != "" || h.Get("X-Intern-ID") != "" {
		t.Fatalf("expected no identity headers, got %v", h)
	}
}

func TestLogoutClearsEveryStoreThenNavigates(t *testing.T) {
	t.Parallel()
	local := newFakeStore(domain.StoreLocal, map[string]string{"logbook_token": "a", "token": "b"})
	session := newFakeStore(domain.StoreSession, map[string]string{"token": "c"})
	cookie := newFakeStore(domain.StoreCookie, map[string]string{"logbook_token": "d"})
	nav := &fakeNavigator{}
	svc := newService(nav, service.Options{LogoutURL: "https://logbook.example/login"}, local, session, cookie)

	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	for _, s := range []*fakeStore{local, session, cookie} {
		if len(s.values) != 0 {
			t.Fatalf("store %s not cleared: %v", s.kind, s.values)
		}
		if len(s.removed) != len(domain.KnownKeys) {
			t.Fatalf("store %s expected %d removals, got %v", s.kind, len(domain.KnownKeys), s.removed)
		}
	}
	if len(nav.opened) != 1 || nav.opened[0] != "https://logbook.example/login" {
		t.Fatalf("expected navigation to logout url, got %v", nav.opened)
	}
	if _, ok := svc.Token(context.Background()); ok {
		t.Fatalf("token should be gone after logout")
	}
}

func TestRedirectToLogin(t *testing.T) {
	t.Parallel()
	nav := &fakeNavigator{}
	svc := newService(nav, service.Options{LoginURL: "http://localhost:3000/login"})
	if err := svc.RedirectToLogin(context.Background()); err != nil {
		t.Fatalf("redirect: %v", err)
	}
	if len(nav.opened) != 1 || nav.opened[0] != "http://localhost:3000/login" {
		t.Fatalf("unexpected navigation %v", nav.opened)
	}
}

func TestSaveValidatesToken(t *testing.T) {
	t.Parallel()
	local := newFakeStore(domain.StoreLocal, nil)
	svc := newService(nil, service.Options{}, local)

	if _, err := svc.Save(context.Background(), domain.StoreLocal, "garbage"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for malformed token, got %v", err)
	}
	if _, err := svc.Save(context.Background(), domain.StoreKind("indexeddb"), token(now.Add(time.Hour))); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input for unknown store, got %v", err)
	}
	if _, err := svc.Save(context.Background(), domain.StoreSession, token(now.Add(time.Hour))); err == nil {
		t.Fatalf("expected error for unconfigured store")
	}

	claims, err := svc.Save(context.Background(), domain.StoreLocal, token(now.Add(time.Hour)))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if claims.Email != "intern@talenthub.com" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if !svc.IsAuthenticated(context.Background()) {
		t.Fatalf("saved token should authenticate")
	}
}
