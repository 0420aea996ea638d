package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every lookup at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	for _, k := range []string{
		"SMARTQUIZ_CONFIG", "SMARTQUIZ_DB", "SMARTQUIZ_HISTORY_BACKEND",
		"SMARTQUIZ_REDIS_ADDR", "SMARTQUIZ_BANK_FILE", "SMARTQUIZ_LOG_LEVEL",
		"SMARTQUIZ_TIME_LIMIT",
	} {
		t.Setenv(k, "")
	}
	return dir
}

func writeFile(t *testing.T, dir, body string) string {
	t.Helper()
	p := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 20, cfg.Quiz.TimeLimit)
	assert.Equal(t, 60, cfg.Quiz.QuickBonusPercent)
	assert.Equal(t, BackendSQLite, cfg.History.Backend)
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, `
quiz:
  time_limit: 30
  default_category: science
history:
  backend: redis
  redis:
    addr: redis.local:6379
    db: 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Quiz.TimeLimit)
	assert.Equal(t, 60, cfg.Quiz.QuickBonusPercent, "unset keys keep defaults")
	assert.Equal(t, "science", cfg.Quiz.DefaultCategory)
	assert.Equal(t, BackendRedis, cfg.History.Backend)
	assert.Equal(t, "redis.local:6379", cfg.History.Redis.Addr)
	assert.Equal(t, 2, cfg.History.Redis.DB)
}

func TestLoadFromEnvPath(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "quiz:\n  default_count: 3\n")
	t.Setenv("SMARTQUIZ_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Quiz.DefaultCount)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := isolate(t)
	_, err := Load(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadBadYAML(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "quiz: [")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("SMARTQUIZ_DB", "/tmp/q.db")
	t.Setenv("SMARTQUIZ_HISTORY_BACKEND", "memory")
	t.Setenv("SMARTQUIZ_REDIS_ADDR", "r:1")
	t.Setenv("SMARTQUIZ_BANK_FILE", "/tmp/bank.yaml")
	t.Setenv("SMARTQUIZ_LOG_LEVEL", "debug")
	t.Setenv("SMARTQUIZ_TIME_LIMIT", "15")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/q.db", cfg.History.DBPath)
	assert.Equal(t, BackendMemory, cfg.History.Backend)
	assert.Equal(t, "r:1", cfg.History.Redis.Addr)
	assert.Equal(t, "/tmp/bank.yaml", cfg.Quiz.BankFile)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 15, cfg.Quiz.TimeLimit)

	t.Setenv("SMARTQUIZ_TIME_LIMIT", "soon")
	_, err = Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero time limit", func(c *Config) { c.Quiz.TimeLimit = 0 }, true},
		{"percent over 100", func(c *Config) { c.Quiz.QuickBonusPercent = 101 }, true},
		{"negative percent", func(c *Config) { c.Quiz.QuickBonusPercent = -1 }, true},
		{"zero percent", func(c *Config) { c.Quiz.QuickBonusPercent = 0 }, true},
		{"zero count", func(c *Config) { c.Quiz.DefaultCount = 0 }, true},
		{"unknown backend", func(c *Config) { c.History.Backend = "s3" }, true},
		{"unknown level", func(c *Config) { c.Log.Level = "loud" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalid)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRedisTimeout(t *testing.T) {
	c := Default()
	assert.Equal(t, 2*time.Second, c.RedisTimeout(time.Second))
	c.History.Redis.Timeout = "bogus"
	assert.Equal(t, time.Second, c.RedisTimeout(time.Second))
	c.History.Redis.Timeout = ""
	assert.Equal(t, time.Second, c.RedisTimeout(time.Second))
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)
}
