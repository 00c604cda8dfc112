package config

import (
	"fmt"
	"strings"
	"time"

	derrors "git.home.luguber.info/inful/craftbook/internal/errors"
)

// Validate checks a normalized, defaulted configuration.
func Validate(cfg *Config) error {
	for _, check := range []func(*Config) error{
		validateData,
		validateSessions,
		validateNotify,
	} {
		if err := check(cfg); err != nil {
			return err
		}
	}
	return nil
}

func invalid(field, reason string) error {
	return derrors.New(derrors.CategoryConfig, derrors.SeverityFatal,
		fmt.Sprintf("invalid %s: %s", field, reason)).WithContext("field", field)
}

func validateData(cfg *Config) error {
	if cfg.Data.Recipes == "" {
		return invalid("data.recipes", "a recipe document is required")
	}
	if err := positiveDuration("data.debounce", cfg.Data.Debounce); err != nil {
		return err
	}
	if err := positiveDuration("data.retry_initial_delay", cfg.Data.RetryInitialDelay); err != nil {
		return err
	}
	return positiveDuration("data.retry_max_delay", cfg.Data.RetryMaxDelay)
}

func validateSessions(cfg *Config) error {
	if err := positiveDuration("sessions.idle_timeout", cfg.Sessions.IdleTimeout); err != nil {
		return err
	}
	return positiveDuration("sessions.sweep_interval", cfg.Sessions.SweepInterval)
}

func validateNotify(cfg *Config) error {
	if cfg.Notify.NATSURL != "" && strings.TrimSpace(cfg.Notify.Subject) == "" {
		return invalid("notify.subject", "required when notify.nats_url is set")
	}
	return nil
}

func positiveDuration(field, raw string) error {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return invalid(field, fmt.Sprintf("%q is not a duration", raw))
	}
	if d <= 0 {
		return invalid(field, "must be positive")
	}
	return nil
}
