package in

import (
	"context"

	"logbook/internal/modules/auth/dto"
	authin "logbook/internal/modules/auth/port/in"
)

type CLIHandler struct {
	usecase authin.Usecase
}

func NewCLIHandler(usecase authin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Status(ctx context.Context) dto.StatusOutput {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Login(ctx context.Context, token, store string) (dto.StatusOutput, error) {
	if token == "" {
		return h.usecase.Status(ctx), h.usecase.RedirectToLogin(ctx)
	}
	return h.usecase.SaveToken(ctx, dto.SaveTokenInput{Token: token, Store: store})
}

func (h CLIHandler) Logout(ctx context.Context) error {
	return h.usecase.Logout(ctx)
}

func (h CLIHandler) RemoteConfig(ctx context.Context) (dto.RemoteConfigOutput, error) {
	return h.usecase.RemoteConfig(ctx)
}
