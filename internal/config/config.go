package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BackendFile     = "file"
	BackendSupabase = "supabase"
	BackendPostgres = "postgres"

	defaultConfigFile = "config/telefly.env"
)

var (
	ErrMissingToken   = errors.New("TELEGRAM_TOKEN is not set")
	ErrUnknownBackend = errors.New("unknown session backend")
)

type Config struct {
	TelegramToken     string
	PersistencePath   string
	PersistencePrefix string
	SessionBackend    string
	SupabaseURL       string
	SupabaseKey       string
	DatabaseURL       string
	LogLevel          string
}

// LoadConfig читает файл конфигурации (путь можно переопределить через TELEFLY_CONFIG,
// старое имя TELEFLY_III_CONFIG тоже принимается) и переменные окружения.
// Переменные окружения имеют приоритет над файлом.
func LoadConfig() (*Config, error) {
	path := getenv("TELEFLY_CONFIG", getenv("TELEFLY_III_CONFIG", defaultConfigFile))

	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg := &Config{
		TelegramToken:     os.Getenv("TELEGRAM_TOKEN"),
		PersistencePath:   getenv("PERSISTENCE_PATH", "config"),
		PersistencePrefix: getenv("PERSISTENCE_PREFIX", "telefly"),
		SessionBackend:    strings.ToLower(getenv("SESSION_BACKEND", BackendFile)),
		SupabaseURL:       os.Getenv("SUPABASE_URL"),
		SupabaseKey:       os.Getenv("SUPABASE_KEY"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		LogLevel:          getenv("LOG_LEVEL", "info"),
	}

	cfg.PersistencePath = expandHome(cfg.PersistencePath)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.TelegramToken == "" {
		return ErrMissingToken
	}

	switch c.SessionBackend {
	case BackendFile:
	case BackendSupabase:
		if c.SupabaseURL == "" || c.SupabaseKey == "" {
			return errors.New("SUPABASE_URL and SUPABASE_KEY are required for the supabase backend")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.SessionBackend)
	}
	return nil
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); len(value) != 0 {
		return value
	}
	return fallback
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
