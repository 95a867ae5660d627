package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort     = "8080"
	defaultTimezone = "Local"
)

// Config holds the engine binary's settings.
type Config struct {
	Port     string
	LogLevel slog.Level
	Location *time.Location
	Redis    *RedisConfig
	Store    *StoreConfig
	Poller   *PollerConfig
	Cache    *CacheConfig
	Session  *SessionConfig
}

func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	location, err := loadLocation()
	if err != nil {
		return nil, err
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:     envString("PORT", defaultPort),
		LogLevel: parseLogLevel(os.Getenv("LOG_LEVEL")),
		Location: location,
		Redis:    redisConfig,
		Store:    LoadStoreConfig(),
		Poller:   LoadPollerConfig(),
		Cache:    LoadCacheConfig(),
		Session:  LoadSessionConfig(),
	}, nil
}

func loadLocation() (*time.Location, error) {
	name := envString("TIMEZONE", defaultTimezone)
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, name)
	}
	return loc, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envPositiveInt ignores unparsable and non-positive values.
func envPositiveInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return fallback
}
