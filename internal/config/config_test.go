package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"football-betting-engine/internal/bet"
	"football-betting-engine/internal/confidence"
	"football-betting-engine/internal/markets"
	"football-betting-engine/internal/scenario"
)

func TestLoadDefaults(t *testing.T) {
	// Clear env vars that could affect defaults
	for _, key := range []string{
		"DB_DRIVER", "DB_PATH", "PORT", "REDIS_ADDR", "REDIS_STREAM",
		"PUBLISH_RATE_PER_SEC", "TABLES_PATH", "LOG_LEVEL", "LOG_FORMAT",
		"WORKERS", "CONFIDENCE_MODE", "ALERT_MIN_CONFIDENCE", "ALERT_COOLDOWN",
		"CORS_ORIGINS",
	} {
		os.Unsetenv(key)
	}

	cfg := Load()

	if cfg.DBDriver != DefaultDBDriver {
		t.Errorf("DBDriver = %q, want %q", cfg.DBDriver, DefaultDBDriver)
	}
	if cfg.DBPath != DefaultDBPath {
		t.Errorf("DBPath = %q, want %q", cfg.DBPath, DefaultDBPath)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Port = %q, want %q", cfg.Port, DefaultPort)
	}
	if cfg.RedisAddr != "" {
		t.Errorf("RedisAddr = %q, want empty", cfg.RedisAddr)
	}
	if cfg.RedisStream != DefaultRedisStream {
		t.Errorf("RedisStream = %q, want %q", cfg.RedisStream, DefaultRedisStream)
	}
	if cfg.Workers != DefaultWorkers {
		t.Errorf("Workers = %d, want %d", cfg.Workers, DefaultWorkers)
	}
	if cfg.ConfidenceMode != confidence.ModeStandard {
		t.Errorf("ConfidenceMode = %q, want standard", cfg.ConfidenceMode)
	}
	if cfg.AlertMinConfidence != DefaultAlertMinConfidence {
		t.Errorf("AlertMinConfidence = %f, want %f", cfg.AlertMinConfidence, DefaultAlertMinConfidence)
	}
	if cfg.AlertCooldown != DefaultAlertCooldown {
		t.Errorf("AlertCooldown = %v, want %v", cfg.AlertCooldown, DefaultAlertCooldown)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v, want [*]", cfg.CORSOrigins)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("PUBLISH_RATE_PER_SEC", "5")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("WORKERS", "8")
	t.Setenv("CONFIDENCE_MODE", "Extended")
	t.Setenv("ALERT_MIN_CONFIDENCE", "7.5")
	t.Setenv("ALERT_COOLDOWN", "90s")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")

	cfg := Load()

	if cfg.DBDriver != "postgres" {
		t.Errorf("DBDriver = %q, want postgres", cfg.DBDriver)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr = %q, want localhost:6379", cfg.RedisAddr)
	}
	if cfg.PublishRatePerSec != 5 {
		t.Errorf("PublishRatePerSec = %f, want 5", cfg.PublishRatePerSec)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Workers)
	}
	if cfg.ConfidenceMode != confidence.ModeExtended {
		t.Errorf("ConfidenceMode = %q, want extended", cfg.ConfidenceMode)
	}
	if cfg.AlertMinConfidence != 7.5 {
		t.Errorf("AlertMinConfidence = %f, want 7.5", cfg.AlertMinConfidence)
	}
	if cfg.AlertCooldown != 90*time.Second {
		t.Errorf("AlertCooldown = %v, want 90s", cfg.AlertCooldown)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v, want two origins", cfg.CORSOrigins)
	}
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("WORKERS", "many")
	t.Setenv("ALERT_COOLDOWN", "soon")

	cfg := Load()

	if cfg.Workers != DefaultWorkers {
		t.Errorf("Workers = %d, want default %d", cfg.Workers, DefaultWorkers)
	}
	if cfg.AlertCooldown != DefaultAlertCooldown {
		t.Errorf("AlertCooldown = %v, want default", cfg.AlertCooldown)
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		DBDriver:           "sqlite3",
		DBPath:             ":memory:",
		PublishRatePerSec:  20,
		LogLevel:           "info",
		LogFormat:          "json",
		Workers:            4,
		ConfidenceMode:     confidence.ModeStandard,
		AlertMinConfidence: 8,
		AlertCooldown:      time.Minute,
	}

	if err := Validate(valid); err != nil {
		t.Errorf("valid config should pass: %v", err)
	}

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }},
		{"empty db path", func(c *Config) { c.DBPath = "" }},
		{"zero publish rate", func(c *Config) { c.PublishRatePerSec = 0 }},
		{"unknown log level", func(c *Config) { c.LogLevel = "trace" }},
		{"unknown log format", func(c *Config) { c.LogFormat = "xml" }},
		{"no workers", func(c *Config) { c.Workers = 0 }},
		{"unknown mode", func(c *Config) { c.ConfidenceMode = "aggressive" }},
		{"alert threshold too low", func(c *Config) { c.AlertMinConfidence = 0.5 }},
		{"alert threshold too high", func(c *Config) { c.AlertMinConfidence = 11 }},
		{"negative cooldown", func(c *Config) { c.AlertCooldown = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.modify(&c)
			if err := Validate(c); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestFormatPublishing(t *testing.T) {
	if got := FormatPublishing(Config{}); got != "disabled" {
		t.Errorf("FormatPublishing(empty) = %q, want %q", got, "disabled")
	}
	cfg := Config{RedisAddr: "redis:6379", RedisStream: "predictions.generated", PublishRatePerSec: 20}
	if got := FormatPublishing(cfg); got != "redis:6379 -> predictions.generated (20/s)" {
		t.Errorf("FormatPublishing = %q", got)
	}
}

func TestDefaultTablesValidate(t *testing.T) {
	require.NoError(t, ValidateTables(DefaultTables()))
}

func TestLoadTablesEmptyPath(t *testing.T) {
	tables, err := LoadTables("")
	require.NoError(t, err)
	assert.Equal(t, markets.DefaultMinOdd, tables.Markets.MinOdd)
	assert.Equal(t, confidence.DefaultOddsPenaltyBelow, tables.OddsPenaltyBelow)
}

func TestLoadTablesOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	yamlDoc := `
markets:
  thresholds:
    goals_over: 6.5
  min_odd: 1.35
odds_penalty_below: 1.5
reputations:
  9999: 70
league_weights:
  39: 0.9
vetoes:
  CAGEY_TACTICAL_AFFAIR:
    bets: ["goals:over:2.5"]
    reason: custom
`
	require.NoError(t, os.WriteFile(path, []byte(yamlDoc), 0o600))

	tables, err := LoadTables(path)
	require.NoError(t, err)

	assert.Equal(t, 6.5, tables.Markets.Thresholds.GoalsOver)
	// Untouched thresholds keep their defaults.
	assert.Equal(t, markets.DefaultThresholds().BTTSNo, tables.Markets.Thresholds.BTTSNo)
	assert.Equal(t, 1.35, tables.Markets.MinOdd)
	assert.Equal(t, 1.5, tables.OddsPenaltyBelow)

	assert.Equal(t, 70, tables.Reputations.Of(9999))
	assert.Equal(t, 95, tables.Reputations.Of(33), "built-in reputations are merged, not replaced")
	assert.Equal(t, 0.9, tables.LeagueWeights.Of(39))

	over25 := bet.Bet{Market: bet.MarketGoals, Direction: bet.Over, Line: 2.5}
	assert.True(t, tables.Vetoes.Vetoed(scenario.CageyTactical, over25))
	assert.Equal(t, "custom", tables.Vetoes[scenario.CageyTactical].Reason)

	calc := tables.Calculator(confidence.ModeExtended)
	assert.Equal(t, 1.5, calc.OddsPenaltyBelow)
	assert.Equal(t, confidence.ModeExtended, calc.Mode)
}

func TestLoadTablesErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadTables(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("markets: [unclosed"), 0o600))
	_, err = LoadTables(bad)
	assert.Error(t, err)

	outOfRange := filepath.Join(dir, "range.yaml")
	require.NoError(t, os.WriteFile(outOfRange, []byte("league_weights:\n  39: 2.0\n"), 0o600))
	_, err = LoadTables(outOfRange)
	assert.ErrorContains(t, err, "league 39")
}

func TestValidateTables(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Tables)
	}{
		{"threshold above 10", func(tb *Tables) { tb.Markets.Thresholds.Cards = 11 }},
		{"threshold below 1", func(tb *Tables) { tb.Markets.Thresholds.Shots = 0.5 }},
		{"min odd below 1", func(tb *Tables) { tb.Markets.MinOdd = 0.9 }},
		{"odds penalty below 1", func(tb *Tables) { tb.OddsPenaltyBelow = 0 }},
		{"reputation above 100", func(tb *Tables) { tb.Reputations[1] = 120 }},
		{"zero league weight", func(tb *Tables) { tb.LeagueWeights[1] = 0 }},
		{"negative penalty", func(tb *Tables) { tb.Coherence.Penalty = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb := DefaultTables()
			tt.modify(&tb)
			assert.Error(t, ValidateTables(tb))
		})
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer

	Logger(Config{LogLevel: "warn", LogFormat: "json"}, &buf).Info("hidden")
	assert.Empty(t, buf.String(), "info is below warn")

	Logger(Config{LogLevel: "debug", LogFormat: "text"}, &buf).Debug("shown", "k", 1)
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "k=1")

	buf.Reset()
	Logger(Config{LogLevel: "info", LogFormat: "json"}, &buf).Info("structured")
	assert.Contains(t, buf.String(), `"msg":"structured"`)
}
