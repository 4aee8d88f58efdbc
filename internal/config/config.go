package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends for live game sessions.
const (
	StoreRedis  = "redis"
	StoreMemory = "memory"
)

// Config holds the server settings read from the environment.
type Config struct {
	HTTPAddr          string
	Store             string
	RedisAddr         string
	SQLitePath        string
	JWTSecret         string
	OtelCollectorAddr string
	TelemetryEnabled  bool
	BotThinkDelay     time.Duration
	SessionTTL        time.Duration
	LogLevel          slog.Level
}

// Default returns the settings used when no variable is set.
func Default() Config {
	return Config{
		HTTPAddr:          ":8080",
		Store:             StoreRedis,
		RedisAddr:         "localhost:6379",
		SQLitePath:        "./master.db",
		JWTSecret:         "my_super_secret_key",
		OtelCollectorAddr: "otel-collector:4317",
		TelemetryEnabled:  true,
		BotThinkDelay:     200 * time.Millisecond,
		SessionTTL:        time.Hour,
		LogLevel:          slog.LevelDebug,
	}
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Default()

	setString(getenv, "HTTP_ADDR", &cfg.HTTPAddr)
	setString(getenv, "REDIS_CONNSTRING", &cfg.RedisAddr)
	setString(getenv, "SQLITE_PATH", &cfg.SQLitePath)
	setString(getenv, "JWT_SECRET", &cfg.JWTSecret)
	setString(getenv, "OTEL_COLLECTOR_ADDR", &cfg.OtelCollectorAddr)

	if v := getenv("STORE"); v != "" {
		switch v = strings.ToLower(v); v {
		case StoreRedis, StoreMemory:
			cfg.Store = v
		default:
			return cfg, fmt.Errorf("invalid STORE %q: want %q or %q", v, StoreRedis, StoreMemory)
		}
	}
	if v := getenv("TELEMETRY_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid TELEMETRY_ENABLED: %w", err)
		}
		cfg.TelemetryEnabled = enabled
	}
	if err := setDuration(getenv, "BOT_THINK_DELAY", &cfg.BotThinkDelay); err != nil {
		return cfg, err
	}
	if err := setDuration(getenv, "SESSION_TTL", &cfg.SessionTTL); err != nil {
		return cfg, err
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return cfg, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
	}
	return cfg, nil
}

func setString(getenv func(string) string, key string, dst *string) {
	if v := getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(getenv func(string) string, key string, dst *time.Duration) error {
	v := getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return fmt.Errorf("invalid %s: must not be negative", key)
	}
	*dst = d
	return nil
}
