package in

import (
	"context"

	"logbook/internal/modules/auth/dto"
	authin "logbook/internal/modules/auth/port/in"
)

type TUIHandler struct {
	usecase authin.Usecase
}

func NewTUIHandler(usecase authin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Status(ctx context.Context) dto.StatusOutput {
	return h.usecase.Status(ctx)
}

func (h TUIHandler) RedirectToLogin(ctx context.Context) error {
	return h.usecase.RedirectToLogin(ctx)
}

func (h TUIHandler) Logout(ctx context.Context) error {
	return h.usecase.Logout(ctx)
}

// SaveToken stores a pasted token in the local store.
func (h TUIHandler) SaveToken(ctx context.Context, token string) (dto.StatusOutput, error) {
	return h.usecase.SaveToken(ctx, dto.SaveTokenInput{Token: token})
}
