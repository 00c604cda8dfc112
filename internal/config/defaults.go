package config

// DefaultNotifySubject is the NATS subject reload events are published on.
const DefaultNotifySubject = "craftbook.registry.reloaded"

// ApplyDefaults fills every unset field.
func ApplyDefaults(cfg *Config) {
	d := &cfg.Data
	if d.Dir == "" {
		d.Dir = "."
	}
	if d.Recipes == "" {
		d.Recipes = "recipes.json"
	}
	if d.Debounce == "" {
		d.Debounce = "500ms"
	}
	if d.RetryBackoff == "" {
		d.RetryBackoff = RetryBackoffLinear
	}
	if d.RetryInitialDelay == "" {
		d.RetryInitialDelay = "250ms"
	}
	if d.RetryMaxDelay == "" {
		d.RetryMaxDelay = "5s"
	}

	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}

	s := &cfg.Sessions
	if s.IdleTimeout == "" {
		s.IdleTimeout = "15m"
	}
	if s.SweepInterval == "" {
		s.SweepInterval = "1m"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	if cfg.Journal.Path == "" {
		cfg.Journal.Path = ":memory:"
	}

	if cfg.Notify.Subject == "" {
		cfg.Notify.Subject = DefaultNotifySubject
	}
}
