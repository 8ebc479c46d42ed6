package out

import (
	"context"
	"sync"

	"logbook/internal/modules/auth/domain"
)

// MemorySessionStore lives only as long as the process, like browser
// sessionStorage. It is seeded from LOGBOOK_TOKEN and TOKEN.
type MemorySessionStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemorySessionStore(seed map[string]string) *MemorySessionStore {
	values := make(map[string]string, len(seed))
	for k, v := range seed {
		if v != "" {
			values[k] = v
		}
	}
	return &MemorySessionStore{values: values}
}

// NewEnvSessionStore seeds the store through lookup, normally os.LookupEnv.
func NewEnvSessionStore(lookup func(string) (string, bool)) *MemorySessionStore {
	seed := map[string]string{}
	if v, ok := lookup("LOGBOOK_TOKEN"); ok {
		seed[domain.KeyLogbookToken] = v
	}
	if v, ok := lookup("TOKEN"); ok {
		seed[domain.KeyToken] = v
	}
	return NewMemorySessionStore(seed)
}

func (s *MemorySessionStore) Kind() domain.StoreKind { return domain.StoreSession }

func (s *MemorySessionStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemorySessionStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemorySessionStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
