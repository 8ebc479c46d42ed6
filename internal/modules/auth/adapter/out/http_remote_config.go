package out

import (
	"context"
	"net/http"

	"logbook/internal/modules/auth/domain"
	authout "logbook/internal/modules/auth/port/out"
	"logbook/internal/platform/httpapi"
)

type HTTPRemoteConfig struct {
	client *httpapi.Client
}

func NewHTTPRemoteConfig(client *httpapi.Client) authout.RemoteConfigSource {
	return &HTTPRemoteConfig{client: client}
}

type authConfigResponse struct {
	AuthMethod        string   `json:"auth_method"`
	TokenLocation     []string `json:"token_location"`
	TokenFormat       string   `json:"token_format"`
	LoginURL          string   `json:"login_url"`
	LogoutURL         string   `json:"logout_url"`
	JWTConfigured     bool     `json:"jwt_configured"`
	IntegrationStatus string   `json:"integration_status"`
}

func (r *HTTPRemoteConfig) Fetch(ctx context.Context) (domain.RemoteConfig, error) {
	var resp authConfigResponse
	if err := r.client.Do(ctx, httpapi.Request{Method: http.MethodGet, Path: "/api/auth/config"}, &resp); err != nil {
		return domain.RemoteConfig{}, err
	}
	return domain.RemoteConfig{
		AuthMethod:        resp.AuthMethod,
		TokenLocations:    resp.TokenLocation,
		TokenFormat:       resp.TokenFormat,
		LoginURL:          resp.LoginURL,
		LogoutURL:         resp.LogoutURL,
		JWTConfigured:     resp.JWTConfigured,
		IntegrationStatus: resp.IntegrationStatus,
	}, nil
}
