package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	databaseURLEnv           = "DATABASE_URL"
	jwtSecretEnv             = "JWT_SECRET"
	accessTokenTTLMinutesEnv = "ACCESS_TOKEN_TTL_MINUTES"
	allowRegistrationEnv     = "ALLOW_REGISTRATION"

	defaultAccessTokenTTLMinutes = 60
	minJWTSecretLength           = 32
)

// ReminderStoreConfig holds the remote store server's settings.
type ReminderStoreConfig struct {
	Port              string
	LogLevel          slog.Level
	Location          *time.Location
	DatabaseURL       string
	JWTSecret         string
	AccessTokenTTL    time.Duration
	AllowRegistration bool
}

func LoadReminderStore() (*ReminderStoreConfig, error) {
	_ = godotenv.Load()

	location, err := loadLocation()
	if err != nil {
		return nil, err
	}

	return &ReminderStoreConfig{
		Port:              envString("PORT", defaultPort),
		LogLevel:          parseLogLevel(os.Getenv("LOG_LEVEL")),
		Location:          location,
		DatabaseURL:       os.Getenv(databaseURLEnv),
		JWTSecret:         os.Getenv(jwtSecretEnv),
		AccessTokenTTL:    time.Duration(envPositiveInt(accessTokenTTLMinutesEnv, defaultAccessTokenTTLMinutes)) * time.Minute,
		AllowRegistration: envBool(allowRegistrationEnv, false),
	}, nil
}
