// Package config loads smartquiz settings from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends for the history log.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config holds every tunable setting.
type Config struct {
	Quiz struct {
		// TimeLimit is the per-question countdown in seconds.
		TimeLimit int `yaml:"time_limit"`

		// QuickBonusPercent is the share of the time limit that must remain
		// for an answer to earn the quick bonus.
		QuickBonusPercent int `yaml:"quick_bonus_percent"`

		DefaultCount    int    `yaml:"default_count"`
		DefaultCategory string `yaml:"default_category"`

		// BankFile replaces the built-in questions when set.
		BankFile string `yaml:"bank_file"`
	} `yaml:"quiz"`

	History struct {
		Backend string `yaml:"backend"`
		DBPath  string `yaml:"db_path"`
		Redis   struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Timeout  string `yaml:"timeout"`
		} `yaml:"redis"`
	} `yaml:"history"`

	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
}

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid config")

// Default returns the built-in settings.
func Default() Config {
	var cfg Config
	cfg.Quiz.TimeLimit = 20
	cfg.Quiz.QuickBonusPercent = 60
	cfg.Quiz.DefaultCount = 5
	cfg.Quiz.DefaultCategory = "all"
	cfg.History.Backend = BackendSQLite
	cfg.History.Redis.Addr = "127.0.0.1:6379"
	cfg.History.Redis.Timeout = "2s"
	cfg.Server.Addr = "127.0.0.1:8080"
	cfg.Log.Level = "info"
	return cfg
}

// Load reads YAML config from path on top of the defaults, then applies
// environment overrides. An empty path falls back to SMARTQUIZ_CONFIG and
// then to the per-user config file; a missing default file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv("SMARTQUIZ_CONFIG")
		explicit = path != ""
	}
	if !explicit {
		path = DefaultPath()
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// DefaultPath returns $XDG_CONFIG_HOME/smartquiz/config.yaml, or "" when no
// config directory can be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "smartquiz", "config.yaml")
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("SMARTQUIZ_DB"); v != "" {
		cfg.History.DBPath = v
	}
	if v := os.Getenv("SMARTQUIZ_HISTORY_BACKEND"); v != "" {
		cfg.History.Backend = v
	}
	if v := os.Getenv("SMARTQUIZ_REDIS_ADDR"); v != "" {
		cfg.History.Redis.Addr = v
	}
	if v := os.Getenv("SMARTQUIZ_BANK_FILE"); v != "" {
		cfg.Quiz.BankFile = v
	}
	if v := os.Getenv("SMARTQUIZ_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SMARTQUIZ_TIME_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SMARTQUIZ_TIME_LIMIT: %w", err)
		}
		cfg.Quiz.TimeLimit = n
	}
	return nil
}

// Validate reports the first setting that is out of range.
func (c Config) Validate() error {
	switch {
	case c.Quiz.TimeLimit < 1:
		return fmt.Errorf("%w: quiz.time_limit must be at least 1, got %d", ErrInvalid, c.Quiz.TimeLimit)
	case c.Quiz.QuickBonusPercent < 1 || c.Quiz.QuickBonusPercent > 100:
		return fmt.Errorf("%w: quiz.quick_bonus_percent must be within 1-100, got %d", ErrInvalid, c.Quiz.QuickBonusPercent)
	case c.Quiz.DefaultCount < 1:
		return fmt.Errorf("%w: quiz.default_count must be at least 1, got %d", ErrInvalid, c.Quiz.DefaultCount)
	}
	switch c.History.Backend {
	case BackendSQLite, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("%w: unknown history.backend %q", ErrInvalid, c.History.Backend)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// RedisTimeout returns the configured Redis timeout or the fallback if unset
// or malformed.
func (c Config) RedisTimeout(fallback time.Duration) time.Duration {
	raw := c.History.Redis.Timeout
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: unknown log.level %q", ErrInvalid, s)
	}
}
