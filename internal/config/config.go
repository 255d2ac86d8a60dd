package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given. Its absence is not an error.
const DefaultPath = "leveledit.yaml"

// Store backends.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	Version int          `mapstructure:"version"`
	Log     LogConfig    `mapstructure:"log"`
	Store   StoreConfig  `mapstructure:"store"`
	Server  ServerConfig `mapstructure:"server"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type StoreConfig struct {
	Backend  string         `mapstructure:"backend"`
	Dir      string         `mapstructure:"dir"`
	Format   string         `mapstructure:"format"`
	LockTTL  time.Duration  `mapstructure:"lock_ttl"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type PostgresConfig struct {
	// DSN falls back to the PG* environment variables when empty.
	DSN   string `mapstructure:"dsn"`
	Table string `mapstructure:"table"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Version: 1,
		Log:     LogConfig{Level: "info", Format: "text"},
		Store: StoreConfig{
			Backend: BackendFile,
			Dir:     ".leveledit/levels",
			Format:  ".scene",
			LockTTL: 30 * time.Second,
			Redis:   RedisConfig{Addr: "127.0.0.1:6379", Prefix: "leveledit:"},
			Postgres: PostgresConfig{
				Table: "scenes",
			},
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// envKeys maps environment variables onto config keys.
var envKeys = map[string][]string{
	"LEVELEDIT_LOG_LEVEL":      {"log", "level"},
	"LEVELEDIT_LOG_FORMAT":     {"log", "format"},
	"LEVELEDIT_STORE_BACKEND":  {"store", "backend"},
	"LEVELEDIT_STORE_DIR":      {"store", "dir"},
	"LEVELEDIT_STORE_FORMAT":   {"store", "format"},
	"LEVELEDIT_LOCK_TTL":       {"store", "lock_ttl"},
	"LEVELEDIT_REDIS_ADDR":     {"store", "redis", "addr"},
	"LEVELEDIT_REDIS_PASSWORD": {"store", "redis", "password"},
	"LEVELEDIT_REDIS_DB":       {"store", "redis", "db"},
	"LEVELEDIT_REDIS_TTL":      {"store", "redis", "ttl"},
	"LEVELEDIT_REDIS_PREFIX":   {"store", "redis", "prefix"},
	"LEVELEDIT_POSTGRES_DSN":   {"store", "postgres", "dsn"},
	"LEVELEDIT_POSTGRES_TABLE": {"store", "postgres", "table"},
	"LEVELEDIT_SERVER_ADDR":    {"server", "addr"},
}

// Load reads the YAML file at path, overlays LEVELEDIT_* environment variables and
// decodes the result over Default(). A missing file at DefaultPath yields the defaults.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	raw := map[string]any{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if raw == nil {
			raw = map[string]any{}
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	for env, keys := range envKeys {
		if v, ok := os.LookupEnv(env); ok {
			setPath(raw, keys, v)
		}
	}

	cfg := Default()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks version and backend selection.
func (c *Config) Validate() error {
	if c.Version != 1 {
		return fmt.Errorf("unsupported leveledit.yaml version: %d", c.Version)
	}
	switch c.Store.Backend {
	case BackendFile, BackendMemory, BackendRedis, BackendPostgres:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if !strings.HasPrefix(c.Store.Format, ".") {
		c.Store.Format = "." + c.Store.Format
	}
	return nil
}

func setPath(m map[string]any, keys []string, value string) {
	for _, k := range keys[:len(keys)-1] {
		next, ok := m[k].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[k] = next
		}
		m = next
	}
	m[keys[len(keys)-1]] = value
}
