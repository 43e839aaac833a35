package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds every setting the service reads from the environment.
type Config struct {
	DatabaseDriver   string
	DatabaseURL      string
	ServerAddr       string
	MaxOpenConns     int
	MaxIdleConns     int
	ConnMaxLifetime  time.Duration
	GinMode          string
	BorrowWindowDays int
}

// Load reads a .env file when one exists and then fills Config from the
// process environment. Variables already set in the environment win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("[INFO] config: no .env file found, reading process environment")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		DatabaseDriver: strings.ToLower(withDefault(getenv("DATABASE_DRIVER"), DriverPostgres)),
		DatabaseURL:    strings.TrimSpace(getenv("DATABASE_URL")),
		ServerAddr:     withDefault(getenv("SERVER_ADDR"), ":8080"),
		GinMode:        strings.TrimSpace(getenv("GIN_MODE")),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	switch cfg.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}

	var err error
	if cfg.MaxOpenConns, err = intVar(getenv, "DB_MAX_OPEN_CONNS", 20); err != nil {
		return nil, err
	}
	if cfg.MaxIdleConns, err = intVar(getenv, "DB_MAX_IDLE_CONNS", 10); err != nil {
		return nil, err
	}
	if cfg.BorrowWindowDays, err = intVar(getenv, "BORROW_WINDOW_DAYS", 30); err != nil {
		return nil, err
	}

	lifetime := withDefault(getenv("DB_CONN_MAX_LIFETIME"), "1h")
	if cfg.ConnMaxLifetime, err = time.ParseDuration(lifetime); err != nil {
		return nil, fmt.Errorf("DB_CONN_MAX_LIFETIME: %w", err)
	}

	return cfg, nil
}

func intVar(getenv func(string) string, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return n, nil
}

func withDefault(value string, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return strings.TrimSpace(value)
}
