package out_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"logbook/internal/modules/auth/adapter/out"
	"logbook/internal/platform/httpapi"
)

func TestHTTPRemoteConfig(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/config" || r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"auth_method":"jwt","token_location":["localStorage","cookie"],"token_format":"Bearer","login_url":"https://logbook.example/login","jwt_configured":true,"integration_status":"active"}`))
	}))
	defer srv.Close()

	client, err := httpapi.New(srv.URL, 0, nil, nil, nil)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	cfg, err := out.NewHTTPRemoteConfig(client).Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if cfg.AuthMethod != "jwt" || cfg.LoginURL != "https://logbook.example/login" || !cfg.JWTConfigured {
		t.Fatalf("unexpected remote config %+v", cfg)
	}
	if len(cfg.TokenLocations) != 2 {
		t.Fatalf("expected two token locations, got %v", cfg.TokenLocations)
	}
}

func TestOSNavigatorPrintsTarget(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	nav := out.NewOSNavigator(&buf, false)
	if err := nav.Open(context.Background(), "http://localhost:3000/login"); err != nil {
		t.Fatalf("open: %v", err)
	}
	if !strings.Contains(buf.String(), "http://localhost:3000/login") {
		t.Fatalf("expected target in output, got %q", buf.String())
	}
	if err := nav.Open(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty target")
	}
}
