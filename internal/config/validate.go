package config

import (
	"errors"
	"fmt"
)

// ValidateForRun reports every problem that would stop the engine from running.
func ValidateForRun(cfg *Config) error {
	var errs []error

	if err := cfg.Store.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := cfg.Redis.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := cfg.Poller.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := cfg.Cache.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := cfg.Session.Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("engine configuration errors: %w", errors.Join(errs...))
	}
	return nil
}

func ValidateReminderStore(cfg *ReminderStoreConfig) error {
	var errs []error

	if cfg.DatabaseURL == "" {
		errs = append(errs, ErrDatabaseURLMissing)
	}
	switch {
	case cfg.JWTSecret == "":
		errs = append(errs, ErrJWTSecretMissing)
	case len(cfg.JWTSecret) < minJWTSecretLength:
		errs = append(errs, ErrJWTSecretTooShort)
	}

	if len(errs) > 0 {
		return fmt.Errorf("reminder store configuration errors: %w", errors.Join(errs...))
	}
	return nil
}
