package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"logbook/internal/modules/auth/domain"
	authout "logbook/internal/modules/auth/port/out"
	"logbook/internal/platform/clock"
	apperrors "logbook/internal/platform/errors"
	"logbook/internal/platform/logging"
)

type Options struct {
	LoginURL            string
	LogoutURL           string
	DevBypass           bool
	DevFallbackHeaders  bool
	FallbackInternID    string
	FallbackInternEmail string
}

type AuthService struct {
	clock     clock.Clock
	stores    map[domain.StoreKind]authout.CredentialStore
	navigator authout.Navigator
	remote    authout.RemoteConfigSource
	opts      Options
	logger    *zap.Logger
}

func NewAuthService(clk clock.Clock, stores []authout.CredentialStore, navigator authout.Navigator, remote authout.RemoteConfigSource, opts Options, logger *zap.Logger) *AuthService {
	byKind := make(map[domain.StoreKind]authout.CredentialStore, len(stores))
	for _, s := range stores {
		if s != nil {
			byKind[s.Kind()] = s
		}
	}
	return &AuthService{
		clock:     clk,
		stores:    byKind,
		navigator: navigator,
		remote:    remote,
		opts:      opts,
		logger:    logging.OrNop(logger),
	}
}

// Token walks domain.LookupOrder and returns the first non-empty credential.
// Unreadable stores are logged and skipped.
func (s *AuthService) Token(ctx context.Context) (domain.Credential, bool) {
	for _, l := range domain.LookupOrder {
		store, ok := s.stores[l.Store]
		if !ok {
			continue
		}
		value, found, err := store.Get(ctx, l.Key)
		if err != nil {
			s.logger.Warn("credential store read failed", zap.String("store", string(l.Store)), zap.String("key", l.Key), zap.Error(err))
			continue
		}
		if found && strings.TrimSpace(value) != "" {
			return domain.Credential{Value: strings.TrimSpace(value), Store: l.Store, Key: l.Key}, true
		}
	}
	return domain.Credential{}, false
}

// Claims decodes the current credential. It fails closed: a missing token
// returns ErrNoCredential and a malformed one is logged and returned.
func (s *AuthService) Claims(ctx context.Context) (domain.Credential, domain.Claims, error) {
	cred, ok := s.Token(ctx)
	if !ok {
		return domain.Credential{}, domain.Claims{}, apperrors.ErrNoCredential
	}
	claims, err := domain.DecodeClaims(cred.Value)
	if err != nil {
		s.logger.Error("invalid token format", zap.String("store", string(cred.Store)), zap.Error(err))
		return cred, domain.Claims{}, err
	}
	return cred, claims, nil
}

func (s *AuthService) IsAuthenticated(ctx context.Context) bool {
	if s.opts.DevBypass {
		s.logger.Warn("authentication bypass is enabled; treating session as authenticated")
		return true
	}
	_, claims, err := s.Claims(ctx)
	if err != nil {
		return false
	}
	return claims.Valid(s.clock.Now())
}

func (s *AuthService) Headers(ctx context.Context) http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
	if cred, ok := s.Token(ctx); ok {
		h.Set("Authorization", "Bearer "+cred.Value)
		return h
	}
	s.logger.Warn("no authentication token found")
	if s.opts.DevFallbackHeaders {
		h.Set("X-Intern-ID", s.opts.FallbackInternID)
		h.Set("X-Intern-Email", s.opts.FallbackInternEmail)
	}
	return h
}

func (s *AuthService) RedirectToLogin(ctx context.Context) error {
	s.logger.Info("redirecting to login", zap.String("url", s.opts.LoginURL))
	if s.navigator == nil {
		return fmt.Errorf("login navigator is not configured")
	}
	return s.navigator.Open(ctx, s.opts.LoginURL)
}

// Logout clears every known key from every store, then navigates to the
// logout URL. Clearing continues past individual store failures.
func (s *AuthService) Logout(ctx context.Context) error {
	var errs []error
	for _, store := range s.stores {
		for _, key := range domain.KnownKeys {
			if err := store.Remove(ctx, key); err != nil {
				errs = append(errs, fmt.Errorf("clear %s/%s: %w", store.Kind(), key, err))
			}
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	s.logger.Info("logged out", zap.String("url", s.opts.LogoutURL))
	if s.navigator == nil {
		return nil
	}
	return s.navigator.Open(ctx, s.opts.LogoutURL)
}

func (s *AuthService) Save(ctx context.Context, kind domain.StoreKind, token string) (domain.Claims, error) {
	if err := kind.Validate(); err != nil {
		return domain.Claims{}, apperrors.Invalid("store", err.Error())
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Claims{}, apperrors.Invalid("token", "token is required")
	}
	claims, err := domain.DecodeClaims(token)
	if err != nil {
		return domain.Claims{}, apperrors.Invalid("token", err.Error())
	}
	store, ok := s.stores[kind]
	if !ok {
		return domain.Claims{}, fmt.Errorf("credential store %s is not configured", kind)
	}
	if err := store.Set(ctx, domain.KeyLogbookToken, token); err != nil {
		return domain.Claims{}, err
	}
	return claims, nil
}

func (s *AuthService) DevBypass() bool { return s.opts.DevBypass }

func (s *AuthService) RemoteConfig(ctx context.Context) (domain.RemoteConfig, error) {
	if s.remote == nil {
		return domain.RemoteConfig{}, fmt.Errorf("remote auth config is not configured")
	}
	return s.remote.Fetch(ctx)
}
