package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DataDir string     `yaml:"data_dir"`
	API     APIConfig  `yaml:"api"`
	Auth    AuthConfig `yaml:"auth"`
	UI      UIConfig   `yaml:"ui"`
	Log     LogConfig  `yaml:"log"`
}

type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type AuthConfig struct {
	LoginURL        string        `yaml:"login_url"`
	LogoutURL       string        `yaml:"logout_url"`
	RecheckInterval time.Duration `yaml:"recheck_interval"`
	CookieFile      string        `yaml:"cookie_file"`
	// DevBypass treats every user as authenticated. Development only.
	DevBypass bool `yaml:"dev_bypass"`
	// DevFallbackHeaders sends placeholder identity headers when no token exists.
	DevFallbackHeaders  bool   `yaml:"dev_fallback_headers"`
	FallbackInternID    string `yaml:"fallback_intern_id"`
	FallbackInternEmail string `yaml:"fallback_intern_email"`
}

type UIConfig struct {
	CompleteDelay time.Duration `yaml:"complete_delay"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

func Default() Config {
	return Config{
		DataDir: defaultDataDir(),
		API: APIConfig{
			BaseURL: "http://localhost:8000",
			Timeout: 30 * time.Second,
		},
		Auth: AuthConfig{
			LoginURL:            "http://localhost:3000/login",
			LogoutURL:           "http://localhost:3000/login",
			RecheckInterval:     time.Minute,
			FallbackInternID:    "507f1f77bcf86cd799439011",
			FallbackInternEmail: "intern@talenthub.com",
		},
		UI:  UIConfig{CompleteDelay: 3 * time.Second},
		Log: LogConfig{Level: "info"},
	}
}

// Load layers defaults, .env, the YAML file at path and LOGBOOK_* env vars.
// Missing .env or config files are not errors.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("LOGBOOK_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("LOGBOOK_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("LOGBOOK_LOGIN_URL"); v != "" {
		c.Auth.LoginURL = v
	}
	if v := os.Getenv("LOGBOOK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOGBOOK_DEV_BYPASS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("LOGBOOK_DEV_BYPASS: %w", err)
		}
		c.Auth.DevBypass = b
	}
	return nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data dir is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api base url %q is invalid", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api timeout must be positive")
	}
	if c.Auth.RecheckInterval <= 0 {
		return fmt.Errorf("auth recheck interval must be positive")
	}
	if c.UI.CompleteDelay <= 0 {
		return fmt.Errorf("ui complete delay must be positive")
	}
	return nil
}

func (c Config) StoragePath() string {
	return filepath.Join(c.DataDir, "storage.db")
}

func (c Config) CookiePath() string {
	if c.Auth.CookieFile != "" {
		return c.Auth.CookieFile
	}
	return filepath.Join(c.DataDir, "cookies.txt")
}

func (c Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.DataDir, "logbook.log")
}

func DefaultPath() string {
	return filepath.Join(configHome(), "logbook", "config.yaml")
}

func defaultDataDir() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return filepath.Join(v, "logbook")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "logbook")
	}
	return ".logbook"
}

func configHome() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	return "."
}
