package out

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"logbook/internal/modules/auth/domain"
	"logbook/internal/platform/logging"
)

// CookieFileStore reads cookies from a text file holding one "name=value"
// pair (or a full Cookie header) per line. Lines starting with # are ignored
// and malformed lines are skipped with a warning.
type CookieFileStore struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger
}

func NewCookieFileStore(path string, logger *zap.Logger) *CookieFileStore {
	return &CookieFileStore{path: path, logger: logging.OrNop(logger)}
}

func (s *CookieFileStore) Kind() domain.StoreKind { return domain.StoreCookie }

func (s *CookieFileStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cookies, err := s.load()
	if err != nil {
		return "", false, err
	}
	for _, c := range cookies {
		if c.Name == key {
			return c.Value, true, nil
		}
	}
	return "", false, nil
}

func (s *CookieFileStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cookies, err := s.load()
	if err != nil {
		return err
	}
	replaced := false
	for _, c := range cookies {
		if c.Name == key {
			c.Value = value
			replaced = true
		}
	}
	if !replaced {
		cookies = append(cookies, &http.Cookie{Name: key, Value: value})
	}
	return s.save(cookies)
}

func (s *CookieFileStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cookies, err := s.load()
	if err != nil {
		return err
	}
	kept := cookies[:0]
	for _, c := range cookies {
		if c.Name != key {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(cookies) {
		return nil
	}
	return s.save(kept)
}

func (s *CookieFileStore) load() ([]*http.Cookie, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cookie file: %w", err)
	}
	var cookies []*http.Cookie
	sc := bufio.NewScanner(bytes.NewReader(raw))
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "Cookie:"))
		parsed, err := http.ParseCookie(line)
		if err != nil {
			s.logger.Warn("skipping malformed cookie line", zap.String("path", s.path), zap.Int("line", n), zap.Error(err))
			continue
		}
		cookies = append(cookies, parsed...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan cookie file: %w", err)
	}
	return cookies, nil
}

func (s *CookieFileStore) save(cookies []*http.Cookie) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create cookie dir: %w", err)
	}
	var buf bytes.Buffer
	for _, c := range cookies {
		buf.WriteString(c.Name + "=" + c.Value + "\n")
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write cookie file: %w", err)
	}
	return nil
}
