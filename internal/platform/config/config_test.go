package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"LOGBOOK_API_URL", "LOGBOOK_DATA_DIR", "LOGBOOK_LOGIN_URL", "LOGBOOK_LOG_LEVEL", "LOGBOOK_DEV_BYPASS"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, time.Minute, cfg.Auth.RecheckInterval)
	assert.Equal(t, 3*time.Second, cfg.UI.CompleteDelay)
	assert.False(t, cfg.Auth.DevBypass)
	assert.False(t, cfg.Auth.DevFallbackHeaders)
}

func TestLoadYAMLThenEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
data_dir: ` + dir + `
api:
  base_url: http://api.internal:9000
  timeout: 5s
auth:
  recheck_interval: 30s
  dev_fallback_headers: true
ui:
  complete_delay: 1500ms
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("LOGBOOK_LOGIN_URL", "https://logbook.example/login")
	t.Setenv("LOGBOOK_DEV_BYPASS", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://api.internal:9000", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, 30*time.Second, cfg.Auth.RecheckInterval)
	assert.Equal(t, 1500*time.Millisecond, cfg.UI.CompleteDelay)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Auth.DevFallbackHeaders)
	assert.True(t, cfg.Auth.DevBypass)
	assert.Equal(t, "https://logbook.example/login", cfg.Auth.LoginURL)
	assert.Equal(t, filepath.Join(dir, "storage.db"), cfg.StoragePath())
	assert.Equal(t, filepath.Join(dir, "cookies.txt"), cfg.CookiePath())
}

func TestLoadReadsDotEnv(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides variables that already exist, even empty ones.
	require.NoError(t, os.Unsetenv("LOGBOOK_API_URL"))
	wd := t.TempDir()
	t.Chdir(wd)
	require.NoError(t, os.WriteFile(filepath.Join(wd, ".env"), []byte("LOGBOOK_API_URL=http://from-dotenv:8000\n"), 0o644))

	cfg, err := Load(filepath.Join(wd, "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "http://from-dotenv:8000", cfg.API.BaseURL)
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Parallel()
	bad := Default()
	bad.API.BaseURL = "not a url"
	assert.Error(t, bad.Validate())

	bad = Default()
	bad.Auth.RecheckInterval = 0
	assert.Error(t, bad.Validate())

	bad = Default()
	bad.UI.CompleteDelay = -time.Second
	assert.Error(t, bad.Validate())

	bad = Default()
	bad.DataDir = " "
	assert.Error(t, bad.Validate())
}

func TestInvalidBypassEnv(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv("LOGBOOK_DEV_BYPASS", "maybe")
	_, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}
