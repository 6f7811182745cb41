package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	DatastorePostgres = "postgres"
	DatastoreMemory   = "memory"
)

var validate = validator.New()

type Config struct {
	Port           string        `validate:"required,numeric"`
	Datastore      string        `validate:"oneof=postgres memory"`
	DatabaseURL    string        `validate:"required"`
	DBMaxConns     int32         `validate:"gte=1,lte=1000"`
	MigrationsPath string        `validate:"required"`
	RemoteBaseURL  string        `validate:"required,url"`
	RemoteTimeout  time.Duration `validate:"gt=0"`
	AuthMode       string        `validate:"oneof=cache remote"`
	SyncInterval   time.Duration `validate:"gte=0"`
	DefaultLocale  string        `validate:"oneof=en nl"`
	LogLevel       string        `validate:"oneof=debug info warn error"`
}

// Load reads the configuration from the environment and validates it.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	// .env is optional when variables come from the environment (Docker, CI, etc.).
	_ = godotenv.Load()

	remoteTimeout, err := duration("REMOTE_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	syncInterval, err := duration("SYNC_INTERVAL", 0)
	if err != nil {
		return nil, err
	}
	maxConns, err := integer("DB_MAX_CONNS", 10)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:           get("PORT", "8080"),
		Datastore:      strings.ToLower(get("DATASTORE", DatastorePostgres)),
		DatabaseURL:    get("DATABASE_URL", "postgres://localhost:5432/sojas?sslmode=disable"),
		DBMaxConns:     int32(maxConns),
		MigrationsPath: get("MIGRATIONS_PATH", "migrations"),
		RemoteBaseURL:  get("REMOTE_BASE_URL", get("PINKPOLITIEK_URL", "")),
		RemoteTimeout:  remoteTimeout,
		AuthMode:       strings.ToLower(get("AUTH_MODE", "cache")),
		SyncInterval:   syncInterval,
		DefaultLocale:  strings.ToLower(get("DEFAULT_LOCALE", "en")),
		LogLevel:       strings.ToLower(get("LOG_LEVEL", "info")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// SlogLevel converts LogLevel for slog.HandlerOptions.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if c.Datastore == DatastorePostgres {
		parsed, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return fmt.Errorf("config: invalid DATABASE_URL (%q): %w", c.DatabaseURL, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: invalid DATABASE_URL (%q): missing scheme or host", c.DatabaseURL)
		}
	}

	return nil
}

func get(name, fallback string) string {
	if value, ok := os.LookupEnv(name); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func duration(name string, fallback time.Duration) (time.Duration, error) {
	raw := get(name, "")
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s (%q): %w", name, raw, err)
	}
	return d, nil
}

func integer(name string, fallback int) (int, error) {
	raw := get(name, "")
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("config: invalid %s (%q): %w", name, raw, err)
	}
	return int(n), nil
}
