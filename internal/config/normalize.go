package config

import (
	"fmt"
	"strings"
)

// NormalizationResult captures adjustments & warnings from normalization pass.
type NormalizationResult struct{ Warnings []string }

// Normalize performs canonicalization on enumerated and bounded fields prior
// to default application. It mutates cfg in place.
func Normalize(cfg *Config) *NormalizationResult {
	res := &NormalizationResult{}
	normalizeLogging(&cfg.Logging, res)

	cfg.Data.Dir = strings.TrimSpace(cfg.Data.Dir)
	cfg.Data.Recipes = strings.TrimSpace(cfg.Data.Recipes)
	cfg.Data.Tags = strings.TrimSpace(cfg.Data.Tags)
	cfg.Data.Features = strings.TrimSpace(cfg.Data.Features)
	cfg.Notify.NATSURL = strings.TrimSpace(cfg.Notify.NATSURL)
	normalizeRetry(&cfg.Data, res)

	if cfg.Sessions.Max < 0 {
		res.Warnings = append(res.Warnings, warnChanged("sessions.max", cfg.Sessions.Max, 0))
		cfg.Sessions.Max = 0
	}
	if p := cfg.Metrics.Path; p != "" && !strings.HasPrefix(p, "/") {
		res.Warnings = append(res.Warnings, warnChanged("metrics.path", p, "/"+p))
		cfg.Metrics.Path = "/" + p
	}
	return res
}

func normalizeLogging(l *LoggingConfig, res *NormalizationResult) {
	if lvl := NormalizeLogLevel(string(l.Level)); lvl != "" {
		if l.Level != lvl {
			res.Warnings = append(res.Warnings, warnChanged("logging.level", l.Level, lvl))
			l.Level = lvl
		}
	} else if strings.TrimSpace(string(l.Level)) != "" {
		res.Warnings = append(res.Warnings, warnUnknown("logging.level", string(l.Level), string(LogLevelInfo)))
		l.Level = LogLevelInfo
	}

	if f := NormalizeLogFormat(string(l.Format)); f != "" {
		if l.Format != f {
			res.Warnings = append(res.Warnings, warnChanged("logging.format", l.Format, f))
			l.Format = f
		}
	} else if strings.TrimSpace(string(l.Format)) != "" {
		res.Warnings = append(res.Warnings, warnUnknown("logging.format", string(l.Format), string(LogFormatText)))
		l.Format = LogFormatText
	}
}

func normalizeRetry(d *DataConfig, res *NormalizationResult) {
	if rb := NormalizeRetryBackoff(string(d.RetryBackoff)); rb != "" {
		if d.RetryBackoff != rb {
			res.Warnings = append(res.Warnings, warnChanged("data.retry_backoff", d.RetryBackoff, rb))
			d.RetryBackoff = rb
		}
	} else if strings.TrimSpace(string(d.RetryBackoff)) != "" {
		res.Warnings = append(res.Warnings, warnUnknown("data.retry_backoff", string(d.RetryBackoff), string(RetryBackoffLinear)))
		d.RetryBackoff = RetryBackoffLinear
	}
	if d.ReloadRetries < 0 {
		res.Warnings = append(res.Warnings, warnChanged("data.reload_retries", d.ReloadRetries, 0))
		d.ReloadRetries = 0
	}
}

func warnChanged(field string, from, to any) string {
	return fmt.Sprintf("normalized %s from '%v' to '%v'", field, from, to)
}

func warnUnknown(field, value, def string) string {
	return fmt.Sprintf("unknown %s '%s', defaulting to %s", field, value, def)
}
