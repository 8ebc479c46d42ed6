package usecase

import (
	"context"
	"net/http"

	"logbook/internal/modules/auth/domain"
	"logbook/internal/modules/auth/dto"
	authin "logbook/internal/modules/auth/port/in"
	"logbook/internal/modules/auth/service"
)

type Interactor struct {
	svc *service.AuthService
}

func NewInteractor(svc *service.AuthService) authin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) GetToken(ctx context.Context) (dto.TokenOutput, bool) {
	cred, ok := i.svc.Token(ctx)
	if !ok {
		return dto.TokenOutput{}, false
	}
	return dto.TokenOutput{Value: cred.Value, Store: string(cred.Store), Key: cred.Key}, true
}

func (i *Interactor) IsAuthenticated(ctx context.Context) bool {
	return i.svc.IsAuthenticated(ctx)
}

func (i *Interactor) AuthHeaders(ctx context.Context) http.Header {
	return i.svc.Headers(ctx)
}

func (i *Interactor) RedirectToLogin(ctx context.Context) error {
	return i.svc.RedirectToLogin(ctx)
}

func (i *Interactor) Logout(ctx context.Context) error {
	return i.svc.Logout(ctx)
}

func (i *Interactor) SaveToken(ctx context.Context, input dto.SaveTokenInput) (dto.StatusOutput, error) {
	kind := domain.StoreKind(input.Store)
	if kind == "" {
		kind = domain.StoreLocal
	}
	if _, err := i.svc.Save(ctx, kind, input.Token); err != nil {
		return dto.StatusOutput{}, err
	}
	return i.Status(ctx), nil
}

// Status describes the credential the next request would use. A credential
// saved into a lower-priority store can be shadowed by a higher one.
func (i *Interactor) Status(ctx context.Context) dto.StatusOutput {
	out := dto.StatusOutput{Bypass: i.svc.DevBypass()}
	cred, claims, err := i.svc.Claims(ctx)
	if cred.Value != "" {
		out.HasToken = true
		out.Store = string(cred.Store)
		out.Key = cred.Key
	}
	if err != nil {
		if out.HasToken {
			out.DecodeError = err.Error()
		}
	} else {
		out.Subject = claims.Subject
		out.Email = claims.Email
		out.ExpiresAt = claims.ExpiresAt
	}
	out.Authenticated = i.svc.IsAuthenticated(ctx)
	return out
}

func (i *Interactor) RemoteConfig(ctx context.Context) (dto.RemoteConfigOutput, error) {
	cfg, err := i.svc.RemoteConfig(ctx)
	if err != nil {
		return dto.RemoteConfigOutput{}, err
	}
	return dto.RemoteConfigOutput{
		AuthMethod:        cfg.AuthMethod,
		TokenLocations:    cfg.TokenLocations,
		TokenFormat:       cfg.TokenFormat,
		LoginURL:          cfg.LoginURL,
		LogoutURL:         cfg.LogoutURL,
		JWTConfigured:     cfg.JWTConfigured,
		IntegrationStatus: cfg.IntegrationStatus,
	}, nil
}
