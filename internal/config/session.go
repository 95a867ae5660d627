package config

import (
	"fmt"
	"os"

	"github.com/robfig/cron/v3"
)

const (
	refreshScheduleEnv    = "CREDENTIAL_REFRESH_SCHEDULE"
	engineUserIDEnv       = "ENGINE_USER_ID"
	engineRefreshTokenEnv = "ENGINE_REFRESH_TOKEN"

	defaultRefreshSchedule = "@every 50m"
)

// SessionConfig configures the foreground credential bridge. UserID and
// RefreshToken are optional; when present the session starts at boot.
type SessionConfig struct {
	RefreshSchedule string
	UserID          string
	RefreshToken    string
}

func LoadSessionConfig() *SessionConfig {
	return &SessionConfig{
		RefreshSchedule: envString(refreshScheduleEnv, defaultRefreshSchedule),
		UserID:          os.Getenv(engineUserIDEnv),
		RefreshToken:    os.Getenv(engineRefreshTokenEnv),
	}
}

func (c *SessionConfig) AutoStart() bool {
	return c.UserID != "" && c.RefreshToken != ""
}

func (c *SessionConfig) Validate() error {
	if c.RefreshSchedule == "" {
		return ErrInvalidRefreshSpec
	}
	if _, err := cron.ParseStandard(c.RefreshSchedule); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidRefreshSpec, c.RefreshSchedule, err)
	}
	if c.UserID == "" && c.RefreshToken != "" {
		return ErrSessionUserMissing
	}
	if c.UserID != "" && c.RefreshToken == "" {
		return ErrSessionTokenMissing
	}
	return nil
}
