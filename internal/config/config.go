package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	derrors "git.home.luguber.info/inful/craftbook/internal/errors"
)

// DefaultPath is the configuration file used when none is given.
const DefaultPath = "craftbook.yaml"

// Config represents the application configuration.
type Config struct {
	Data     DataConfig     `yaml:"data"`
	HTTP     HTTPConfig     `yaml:"http"`
	Sessions SessionsConfig `yaml:"sessions"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Journal  JournalConfig  `yaml:"journal"`
	Notify   NotifyConfig   `yaml:"notify"`
}

// DataConfig locates the source documents.
type DataConfig struct {
	Dir      string `yaml:"dir"`      // Base directory for relative document paths
	Recipes  string `yaml:"recipes"`  // Recipe document (.json, .yaml)
	Tags     string `yaml:"tags"`     // Optional tag document
	Features string `yaml:"features"` // Optional feature flag document
	Watch    bool   `yaml:"watch"`    // Reload the registry when documents change
	Debounce string `yaml:"debounce"` // Quiet period before a reload, e.g. "500ms"

	// Watcher-triggered reloads that fail are retried; a document caught
	// mid-write usually parses on the next attempt.
	ReloadRetries     int              `yaml:"reload_retries"`
	RetryBackoff      RetryBackoffMode `yaml:"retry_backoff"` // fixed|linear|exponential
	RetryInitialDelay string           `yaml:"retry_initial_delay"`
	RetryMaxDelay     string           `yaml:"retry_max_delay"`
}

// RetryBackoffMode selects how the delay between reload attempts grows.
type RetryBackoffMode string

const (
	RetryBackoffFixed       RetryBackoffMode = "fixed"
	RetryBackoffLinear      RetryBackoffMode = "linear"
	RetryBackoffExponential RetryBackoffMode = "exponential"
)

var retryBackoffModes = map[string]RetryBackoffMode{
	"fixed":       RetryBackoffFixed,
	"constant":    RetryBackoffFixed,
	"linear":      RetryBackoffLinear,
	"exponential": RetryBackoffExponential,
	"exp":         RetryBackoffExponential,
}

// NormalizeRetryBackoff case-folds raw and maps aliases. Unknown input yields "".
func NormalizeRetryBackoff(raw string) RetryBackoffMode {
	return retryBackoffModes[strings.ToLower(strings.TrimSpace(raw))]
}

// HTTPConfig represents HTTP server configuration.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// SessionsConfig bounds browsing sessions held by the server.
type SessionsConfig struct {
	IdleTimeout   string `yaml:"idle_timeout"`   // Sessions idle longer than this are evicted
	SweepInterval string `yaml:"sweep_interval"` // How often the eviction sweep runs
	Max           int    `yaml:"max"`            // Upper bound on live sessions; 0 means unlimited
}

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig represents metrics configuration.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// JournalConfig controls the navigation journal.
type JournalConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"` // SQLite file, or ":memory:"
}

// NotifyConfig controls reload notifications. Empty NATSURL disables them.
type NotifyConfig struct {
	NATSURL string `yaml:"nats_url"`
	Subject string `yaml:"subject"`
}

// DebounceDuration parses Debounce. Call after Validate.
func (d DataConfig) DebounceDuration() time.Duration { return mustDuration(d.Debounce) }

// RetryInitialDuration parses RetryInitialDelay. Call after Validate.
func (d DataConfig) RetryInitialDuration() time.Duration { return mustDuration(d.RetryInitialDelay) }

// RetryMaxDuration parses RetryMaxDelay. Call after Validate.
func (d DataConfig) RetryMaxDuration() time.Duration { return mustDuration(d.RetryMaxDelay) }

// IdleTimeoutDuration parses IdleTimeout. Call after Validate.
func (s SessionsConfig) IdleTimeoutDuration() time.Duration { return mustDuration(s.IdleTimeout) }

// SweepIntervalDuration parses SweepInterval. Call after Validate.
func (s SessionsConfig) SweepIntervalDuration() time.Duration { return mustDuration(s.SweepInterval) }

func mustDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return d
}

// Load loads a configuration file.
func Load(configPath string) (*Config, error) {
	loadEnvFile()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, derrors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, derrors.Wrap(err, derrors.CategoryFileSystem, derrors.SeverityFatal, "failed to read config file").
			WithContext("path", configPath)
	}

	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	dec := yaml.NewDecoder(strings.NewReader(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, derrors.Wrap(err, derrors.CategoryConfig, derrors.SeverityFatal, "failed to unmarshal config").
			WithContext("path", configPath)
	}

	if err := finalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	if err := finalize(cfg); err != nil {
		panic(fmt.Sprintf("default configuration is invalid: %v", err))
	}
	return cfg
}

// finalize runs normalization, defaults and validation in that order.
func finalize(cfg *Config) error {
	res := Normalize(cfg)
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "config normalization: %s\n", w)
	}
	ApplyDefaults(cfg)
	return Validate(cfg)
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return derrors.New(derrors.CategoryConfig, derrors.SeverityFatal,
			fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath))
	}

	example := Config{
		Data: DataConfig{
			Dir:      "./data",
			Recipes:  "recipes.json",
			Tags:     "tags.json",
			Features: "features.yaml",
			Watch:    true,
			Debounce: "500ms",

			ReloadRetries:     2,
			RetryBackoff:      RetryBackoffLinear,
			RetryInitialDelay: "250ms",
			RetryMaxDelay:     "5s",
		},
		HTTP:     HTTPConfig{Addr: ":8080"},
		Sessions: SessionsConfig{IdleTimeout: "15m", SweepInterval: "1m", Max: 10000},
		Logging:  LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
		Metrics:  MetricsConfig{Enabled: true, Path: "/metrics"},
		Journal:  JournalConfig{Enabled: false, Path: "craftbook-journal.db"},
		Notify:   NotifyConfig{NATSURL: "${NATS_URL}", Subject: DefaultNotifySubject},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return derrors.Wrap(err, derrors.CategoryFileSystem, derrors.SeverityFatal, "failed to write config file").
			WithContext("path", configPath)
	}
	return nil
}
