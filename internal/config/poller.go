package config

import "time"

const (
	pollIntervalSecondsEnv   = "POLL_INTERVAL_SECONDS"
	windowPastMinutesEnv     = "WINDOW_PAST_MINUTES"
	windowFutureMinutesEnv   = "WINDOW_FUTURE_MINUTES"
	cooldownSecondsEnv       = "COOLDOWN_SECONDS"
	credentialWaitSecondsEnv = "CREDENTIAL_WAIT_SECONDS"
	cycleTimeoutSecondsEnv   = "CYCLE_TIMEOUT_SECONDS"

	defaultPollIntervalSeconds   = 30
	defaultWindowPastMinutes     = 30
	defaultWindowFutureMinutes   = 30
	defaultCooldownSeconds       = 60
	defaultCredentialWaitSeconds = 30
	defaultCycleTimeoutSeconds   = 120
)

type PollerConfig struct {
	Interval       time.Duration
	WindowPast     time.Duration
	WindowFuture   time.Duration
	Cooldown       time.Duration
	CredentialWait time.Duration
	CycleTimeout   time.Duration
}

func LoadPollerConfig() *PollerConfig {
	return &PollerConfig{
		Interval:       time.Duration(envPositiveInt(pollIntervalSecondsEnv, defaultPollIntervalSeconds)) * time.Second,
		WindowPast:     time.Duration(envPositiveInt(windowPastMinutesEnv, defaultWindowPastMinutes)) * time.Minute,
		WindowFuture:   time.Duration(envPositiveInt(windowFutureMinutesEnv, defaultWindowFutureMinutes)) * time.Minute,
		Cooldown:       time.Duration(envPositiveInt(cooldownSecondsEnv, defaultCooldownSeconds)) * time.Second,
		CredentialWait: time.Duration(envPositiveInt(credentialWaitSecondsEnv, defaultCredentialWaitSeconds)) * time.Second,
		CycleTimeout:   time.Duration(envPositiveInt(cycleTimeoutSecondsEnv, defaultCycleTimeoutSeconds)) * time.Second,
	}
}

func (c *PollerConfig) Validate() error {
	if c.WindowPast <= 0 || c.WindowFuture <= 0 || c.Interval <= 0 {
		return ErrInvalidWindow
	}
	return nil
}
