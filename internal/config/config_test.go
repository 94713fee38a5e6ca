package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 2*time.Second, cfg.Lookup.Timeout)
	assert.Equal(t, 256, cfg.Usage.Queue)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 4096, cfg.Input.MaxSize)
	assert.Equal(t, "triage:", cfg.Knowledge.Redis.Prefix)
	assert.Empty(t, cfg.Knowledge.Files)
	assert.True(t, cfg.Knowledge.Builtin)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeFile(t, "triage.yaml", `
log:
  level: debug
  format: json
lookup:
  timeout: 500ms
knowledge:
  files: [a.yaml, b.json]
  sqlite: ./data/triage.db
usage:
  sqlite: true
http:
  port: 9090
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 500*time.Millisecond, cfg.Lookup.Timeout)
	assert.Equal(t, []string{"a.yaml", "b.json"}, cfg.Knowledge.Files)
	assert.True(t, cfg.Usage.SQLite)
	assert.Equal(t, 9090, cfg.HTTP.Port)
}

func TestLoad_TOMLFile(t *testing.T) {
	path := writeFile(t, "triage.toml", `
[knowledge.redis]
addr = "localhost:6379"
prefix = "qa:"

[usage]
redis = true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", cfg.Knowledge.Redis.Addr)
	assert.Equal(t, "qa:", cfg.Knowledge.Redis.Prefix)
	assert.True(t, cfg.Usage.Redis)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TRIAGE_LOG_LEVEL", "warn")
	t.Setenv("TRIAGE_KNOWLEDGE_FILES", "one.yaml, two.toml")
	t.Setenv("TRIAGE_MAX_INPUT_SIZE", "1024")
	t.Setenv("TRIAGE_KNOWLEDGE_BUILTIN", "false")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.False(t, cfg.Knowledge.Builtin)
	assert.Equal(t, []string{"one.yaml", "two.toml"}, cfg.Knowledge.Files)
	assert.Equal(t, 1024, cfg.Input.MaxSize)
}

func TestLoad_Invalid(t *testing.T) {
	path := writeFile(t, "triage.yaml", "usage:\n  redis: true\n")
	_, err := Load(path)
	assert.ErrorContains(t, err, "usage.redis requires knowledge.redis.addr")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Log:    LogConfig{Level: "info", Format: "text"},
			Lookup: LookupConfig{Timeout: time.Second},
			Usage:  UsageConfig{Queue: 1},
			HTTP:   HTTPConfig{Port: 80},
			Input:  InputConfig{MaxSize: 1},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
		{"zero timeout", func(c *Config) { c.Lookup.Timeout = 0 }},
		{"zero queue", func(c *Config) { c.Usage.Queue = 0 }},
		{"bad port", func(c *Config) { c.HTTP.Port = 70000 }},
		{"zero input", func(c *Config) { c.Input.MaxSize = 0 }},
		{"sqlite sink without db", func(c *Config) { c.Usage.SQLite = true }},
	}

	ok := base()
	require.NoError(t, ok.Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
