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
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds the settings shared by the server and dbtool binaries.
type Config struct {
	DBDriver     string
	DBPath       string
	DatabaseURL  string
	SeedPath     string
	Port         string
	RedisAddr    string
	CacheTTL     time.Duration
	MaxBodyBytes int64
}

// LoadDotEnv loads .env into the process environment when present.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg, err := Read()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Read parses the environment without validating, for callers that
// apply overrides before calling Validate.
func Read() (*Config, error) {
	var errs []string

	ttl, err := time.ParseDuration(Get("CACHE_TTL", "10m"))
	if err != nil {
		errs = append(errs, fmt.Sprintf("CACHE_TTL: %v", err))
	}

	maxBody, err := strconv.ParseInt(Get("MAX_BODY_BYTES", "8388608"), 10, 64)
	if err != nil {
		errs = append(errs, fmt.Sprintf("MAX_BODY_BYTES: %v", err))
	}

	cfg := &Config{
		DBDriver:     strings.ToLower(Get("DB_DRIVER", DriverSQLite)),
		DBPath:       Get("DB_PATH", "data/app.db"),
		DatabaseURL:  Get("DATABASE_URL", ""),
		SeedPath:     Get("SEED_PATH", "data/seeds/point_sets.json"),
		Port:         Get("PORT", "8080"),
		RedisAddr:    Get("REDIS_ADDR", ""),
		CacheTTL:     ttl,
		MaxBodyBytes: maxBody,
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("config load failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return cfg, nil
}

// Validate checks that required settings are present and sane.
func (c *Config) Validate() error {
	var errs []string

	switch c.DBDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			errs = append(errs, "DB_PATH is required for sqlite")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, "DATABASE_URL is required for postgres")
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Sprintf("DB_DRIVER must be %q, %q or %q, got %q", DriverSQLite, DriverPostgres, DriverMemory, c.DBDriver))
	}

	if port, err := strconv.Atoi(c.Port); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, fmt.Sprintf("PORT must be 1-65535, got %q", c.Port))
	}
	if c.CacheTTL <= 0 {
		errs = append(errs, "CACHE_TTL must be positive")
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, "MAX_BODY_BYTES must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
