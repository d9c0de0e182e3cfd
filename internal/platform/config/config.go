package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Session backends accepted in PORTAL_SESSION_BACKEND.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config captures shell level configuration. The core itself takes its
// collaborators as constructor arguments and never reads the environment.
type Config struct {
	// Home holds the file and sqlite backends. Defaults to ~/.portal.
	Home string `env:"PORTAL_HOME"`

	SessionBackend string `env:"PORTAL_SESSION_BACKEND" envDefault:"file"`
	// SessionKey overrides the session record key; empty keeps the store's
	// default.
	SessionKey string `env:"PORTAL_SESSION_KEY"`
	// SQLitePath defaults to <Home>/portal.db.
	SQLitePath string `env:"PORTAL_SQLITE_PATH"`

	// DirectoryFile points at a TOML account list. Empty uses the built-in
	// demo accounts.
	DirectoryFile string `env:"PORTAL_DIRECTORY_FILE"`

	// AuthLatency simulates the round trip to a real directory service.
	AuthLatency time.Duration `env:"PORTAL_AUTH_LATENCY" envDefault:"1s"`

	LogLevel  string `env:"PORTAL_LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"PORTAL_LOG_FORMAT" envDefault:"text"`

	// MetricsTextfile, when set, receives a Prometheus text dump after each
	// command (node_exporter textfile collector format).
	MetricsTextfile string `env:"PORTAL_METRICS_TEXTFILE"`

	Redis RedisConfig `envPrefix:"PORTAL_REDIS_"`
}

// RedisConfig configures the shared session backend.
type RedisConfig struct {
	URL          string        `env:"URL"`
	PoolSize     int           `env:"POOL_SIZE" envDefault:"4"`
	MinIdleConns int           `env:"MIN_IDLE_CONNS" envDefault:"0"`
	DialTimeout  time.Duration `env:"DIAL_TIMEOUT" envDefault:"2s"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"1s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"1s"`
	// SessionTTL expires the shared record; zero keeps it until logout.
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"0s"`
	// KeyPrefix namespaces portal keys when the instance is shared.
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"portal:"`
}

// Load parses the environment, fills derived defaults, and validates.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Home == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home dir: %w", err)
		}
		cfg.Home = filepath.Join(dir, ".portal")
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = filepath.Join(cfg.Home, "portal.db")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the shell cannot act on.
func (c Config) Validate() error {
	switch c.SessionBackend {
	case BackendFile, BackendSQLite, BackendMemory:
	case BackendRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("PORTAL_REDIS_URL is required for the redis session backend")
		}
	default:
		return fmt.Errorf("unknown session backend %q", c.SessionBackend)
	}
	if c.AuthLatency < 0 {
		return fmt.Errorf("auth latency cannot be negative")
	}
	return nil
}
