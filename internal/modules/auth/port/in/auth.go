package in

import (
	"context"
	"net/http"

	"logbook/internal/modules/auth/dto"
)

type Usecase interface {
	GetToken(ctx context.Context) (dto.TokenOutput, bool)
	IsAuthenticated(ctx context.Context) bool
	AuthHeaders(ctx context.Context) http.Header
	RedirectToLogin(ctx context.Context) error
	Logout(ctx context.Context) error
	SaveToken(ctx context.Context, input dto.SaveTokenInput) (dto.StatusOutput, error)
	Status(ctx context.Context) dto.StatusOutput
	RemoteConfig(ctx context.Context) (dto.RemoteConfigOutput, error)
}
