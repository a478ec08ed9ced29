package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"football-betting-engine/internal/confidence"
)

// Defaults for configuration values.
const (
	DefaultDBDriver           = "sqlite3"
	DefaultDBPath             = "/data/predictions.db"
	DefaultPort               = "8080"
	DefaultRedisStream        = "predictions.generated"
	DefaultPublishRatePerSec  = 20
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "json"
	DefaultWorkers            = 4
	DefaultAlertMinConfidence = 8.0
	DefaultAlertCooldown      = 5 * time.Minute
	DefaultCleanupInterval    = 10 * time.Minute
	DefaultShutdownTimeout    = 10 * time.Second
	DefaultBestOfDay          = 10
	DefaultCORSOrigins        = "*"
)

// Config holds all application configuration.
type Config struct {
	DBDriver string
	DBPath   string
	Port     string

	// Publishing is disabled when RedisAddr is empty.
	RedisAddr         string
	RedisStream       string
	PublishRatePerSec float64

	TablesPath  string
	LogLevel    string
	LogFormat   string
	Workers     int
	CORSOrigins []string

	ConfidenceMode     confidence.Mode
	AlertMinConfidence float64
	AlertCooldown      time.Duration
}

// Load reads configuration from environment variables (and .env file if present).
func Load() Config {
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	cfg := Config{
		DBDriver:           DefaultDBDriver,
		DBPath:             DefaultDBPath,
		Port:               DefaultPort,
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisStream:        DefaultRedisStream,
		PublishRatePerSec:  DefaultPublishRatePerSec,
		TablesPath:         os.Getenv("TABLES_PATH"),
		LogLevel:           DefaultLogLevel,
		LogFormat:          DefaultLogFormat,
		Workers:            DefaultWorkers,
		CORSOrigins:        splitList(DefaultCORSOrigins),
		ConfidenceMode:     confidence.ModeStandard,
		AlertMinConfidence: DefaultAlertMinConfidence,
		AlertCooldown:      DefaultAlertCooldown,
	}

	if v := os.Getenv("DB_DRIVER"); v != "" {
		cfg.DBDriver = v
	}

	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}

	if v := os.Getenv("REDIS_STREAM"); v != "" {
		cfg.RedisStream = v
	}

	if v := os.Getenv("PUBLISH_RATE_PER_SEC"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.PublishRatePerSec = f
		}
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = strings.ToLower(v)
	}

	if v := os.Getenv("WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Workers = n
		}
	}

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}

	// An unknown mode is kept as-is so Validate can report it.
	if v := os.Getenv("CONFIDENCE_MODE"); v != "" {
		cfg.ConfidenceMode = confidence.Mode(strings.ToLower(v))
	}

	if v := os.Getenv("ALERT_MIN_CONFIDENCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.AlertMinConfidence = f
		}
	}

	if v := os.Getenv("ALERT_COOLDOWN"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.AlertCooldown = d
		}
	}

	return cfg
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks that configuration values are within acceptable ranges.
func Validate(cfg Config) error {
	switch cfg.DBDriver {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("DB_DRIVER must be sqlite3 or postgres, got %q", cfg.DBDriver)
	}
	if cfg.DBPath == "" {
		return fmt.Errorf("DB_PATH must not be empty")
	}
	if cfg.PublishRatePerSec <= 0 {
		return fmt.Errorf("PUBLISH_RATE_PER_SEC must be positive, got %f", cfg.PublishRatePerSec)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return fmt.Errorf("LOG_FORMAT must be json or text, got %q", cfg.LogFormat)
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("WORKERS must be at least 1, got %d", cfg.Workers)
	}
	if _, err := confidence.ParseMode(string(cfg.ConfidenceMode)); err != nil {
		return fmt.Errorf("CONFIDENCE_MODE: %w", err)
	}
	if cfg.AlertMinConfidence < confidence.Min || cfg.AlertMinConfidence > confidence.Max {
		return fmt.Errorf("ALERT_MIN_CONFIDENCE must be between 1 and 10, got %f", cfg.AlertMinConfidence)
	}
	if cfg.AlertCooldown < 0 {
		return fmt.Errorf("ALERT_COOLDOWN must be non-negative, got %v", cfg.AlertCooldown)
	}
	return nil
}

// FormatPublishing returns a human-readable string for the publishing setting.
func FormatPublishing(cfg Config) string {
	if cfg.RedisAddr == "" {
		return "disabled"
	}
	return fmt.Sprintf("%s -> %s (%.0f/s)", cfg.RedisAddr, cfg.RedisStream, cfg.PublishRatePerSec)
}
