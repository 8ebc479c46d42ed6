package out

import (
	"context"

	"logbook/internal/modules/auth/domain"
)

// CredentialStore is one storage-like location a token may live in.
type CredentialStore interface {
	Kind() domain.StoreKind
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Navigator sends the user to an external surface such as the login page.
type Navigator interface {
	Open(ctx context.Context, target string) error
}

type RemoteConfigSource interface {
	Fetch(ctx context.Context) (domain.RemoteConfig, error)
}
