// Package config loads runtime configuration from a .env file, environment
// variables (TRIAGE_ prefix) and an optional triage.yaml|toml|json file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/aretw0/triage/internal/logging"
)

const (
	envPrefix  = "TRIAGE"
	configName = "triage"
)

// Config holds all runtime configuration.
type Config struct {
	Log       LogConfig
	Lookup    LookupConfig
	Knowledge KnowledgeConfig
	Routing   RoutingConfig
	Usage     UsageConfig
	HTTP      HTTPConfig
	Input     InputConfig
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string
	Format string
}

// LookupConfig bounds knowledge store calls.
type LookupConfig struct {
	Timeout time.Duration
}

// KnowledgeConfig lists the curated knowledge sources. All configured sources
// are queried together, ahead of the built-in entries.
type KnowledgeConfig struct {
	Builtin bool
	Files   []string
	Dir     string
	SQLite  string
	Redis   RedisConfig
}

// RedisConfig addresses a Redis knowledge store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// RoutingConfig points at an optional routing table file.
type RoutingConfig struct {
	Table string
}

// UsageConfig selects usage sinks.
type UsageConfig struct {
	Queue  int
	Log    bool
	Redis  bool
	SQLite bool
}

// HTTPConfig configures the REST server.
type HTTPConfig struct {
	Port int
}

// InputConfig bounds question size.
type InputConfig struct {
	MaxSize int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("lookup.timeout", 2*time.Second)
	v.SetDefault("knowledge.builtin", true)
	v.SetDefault("knowledge.files", []string{})
	v.SetDefault("knowledge.dir", "")
	v.SetDefault("knowledge.sqlite", "")
	v.SetDefault("knowledge.redis.addr", "")
	v.SetDefault("knowledge.redis.password", "")
	v.SetDefault("knowledge.redis.db", 0)
	v.SetDefault("knowledge.redis.prefix", "triage:")
	v.SetDefault("routing.table", "")
	v.SetDefault("usage.queue", 256)
	v.SetDefault("usage.log", false)
	v.SetDefault("usage.redis", false)
	v.SetDefault("usage.sqlite", false)
	v.SetDefault("http.port", 8080)
	v.SetDefault("input.max_size", 4096)
}

// Load reads configuration. An empty path searches the working directory for
// triage.{yaml,toml,json}; a missing file is not an error in that case.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("input.max_size", "TRIAGE_INPUT_MAX_SIZE", "TRIAGE_MAX_INPUT_SIZE"); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	cfg := &Config{
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Lookup: LookupConfig{
			Timeout: v.GetDuration("lookup.timeout"),
		},
		Knowledge: KnowledgeConfig{
			Builtin: v.GetBool("knowledge.builtin"),
			Files:   splitList(v.GetStringSlice("knowledge.files")),
			Dir:     v.GetString("knowledge.dir"),
			SQLite:  v.GetString("knowledge.sqlite"),
			Redis: RedisConfig{
				Addr:     v.GetString("knowledge.redis.addr"),
				Password: v.GetString("knowledge.redis.password"),
				DB:       v.GetInt("knowledge.redis.db"),
				Prefix:   v.GetString("knowledge.redis.prefix"),
			},
		},
		Routing: RoutingConfig{
			Table: v.GetString("routing.table"),
		},
		Usage: UsageConfig{
			Queue:  v.GetInt("usage.queue"),
			Log:    v.GetBool("usage.log"),
			Redis:  v.GetBool("usage.redis"),
			SQLite: v.GetBool("usage.sqlite"),
		},
		HTTP: HTTPConfig{
			Port: v.GetInt("http.port"),
		},
		Input: InputConfig{
			MaxSize: v.GetInt("input.max_size"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// splitList accepts both list values and comma separated env strings.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate checks field ranges and cross-field requirements.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Lookup.Timeout <= 0 {
		return errors.New("lookup.timeout must be > 0")
	}
	if c.Usage.Queue <= 0 {
		return errors.New("usage.queue must be > 0")
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port out of range: %d", c.HTTP.Port)
	}
	if c.Input.MaxSize <= 0 {
		return errors.New("input.max_size must be > 0")
	}
	if c.Usage.Redis && c.Knowledge.Redis.Addr == "" {
		return errors.New("usage.redis requires knowledge.redis.addr")
	}
	if c.Usage.SQLite && c.Knowledge.SQLite == "" {
		return errors.New("usage.sqlite requires knowledge.sqlite")
	}
	return nil
}
