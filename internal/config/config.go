package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultBatchSize = 5000
	maxBatchSize     = 50000

	defaultWQPBaseURL = "https://www.waterqualitydata.us"
)

// OrphanPolicy controls what happens to a result whose StationId resolves to
// no known station. The destination schema declares no foreign key, so both
// behaviors are schema-legal.
type OrphanPolicy string

const (
	// OrphanLenient stages the result anyway and counts it as an orphan.
	OrphanLenient OrphanPolicy = "lenient"
	// OrphanStrict rejects the result with a validation error.
	OrphanStrict OrphanPolicy = "strict"
)

// Config holds all seeder settings, populated from environment variables.
type Config struct {
	// Exactly one of DatabaseURL (Postgres) and SQLitePath is set.
	DatabaseURL string
	SQLitePath  string

	BatchSize    int
	OrphanPolicy OrphanPolicy

	LogLevel  string
	LogFormat string

	// HTTPAddr serves /healthz, /readyz and /metrics during a run.
	// Empty disables the server.
	HTTPAddr string

	WQPBaseURL      string
	WQPTimeout      time.Duration
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  os.Getenv("SQLITE_PATH"),
		LogLevel:    envOrDefault("LOG_LEVEL", "info"),
		LogFormat:   envOrDefault("LOG_FORMAT", "text"),
		HTTPAddr:    os.Getenv("HTTP_ADDR"),
		WQPBaseURL:  envOrDefault("WQP_URL", defaultWQPBaseURL),
	}

	if cfg.DatabaseURL == "" && cfg.SQLitePath == "" {
		return nil, errors.New("either DATABASE_URL or SQLITE_PATH is required")
	}
	if cfg.DatabaseURL != "" && cfg.SQLitePath != "" {
		return nil, errors.New("DATABASE_URL and SQLITE_PATH are mutually exclusive")
	}

	batchSize, err := parseBatchSize()
	if err != nil {
		return nil, err
	}
	cfg.BatchSize = batchSize

	policy := OrphanPolicy(envOrDefault("ORPHAN_POLICY", string(OrphanLenient)))
	if policy != OrphanLenient && policy != OrphanStrict {
		return nil, fmt.Errorf("invalid ORPHAN_POLICY %q: want lenient or strict", policy)
	}
	cfg.OrphanPolicy = policy

	cfg.WQPTimeout, err = parseDuration("WQP_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}

	cfg.ShutdownTimeout, err = parseDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBatchSize() (int, error) {
	s := os.Getenv("BATCH_SIZE")
	if s == "" {
		return defaultBatchSize, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > maxBatchSize {
		return 0, fmt.Errorf("invalid BATCH_SIZE %q: want 1..%d", s, maxBatchSize)
	}
	return n, nil
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: want a positive duration", key, s)
	}
	return d, nil
}
