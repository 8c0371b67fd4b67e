package worker

import (
	"fmt"
	"log/slog"
	"time"

	"ai-rss-hub/internal/pkg/config"
)

// WorkerConfig holds the configuration for the ingestion worker.
// It controls the cron schedule, timezone, cycle timeout, and the health
// check port. All fields have defaults and validation rules so the worker
// can operate safely even with invalid or missing configuration.
type WorkerConfig struct {
	// CronSchedule is the cron expression for the ingestion job.
	// Format: "minute hour day month weekday". Default: hourly.
	CronSchedule string

	// Timezone is the IANA timezone name for cron scheduling.
	Timezone string

	// CycleTimeout is the maximum duration for a single ingestion cycle.
	// The cycle context is cancelled after this timeout.
	CycleTimeout time.Duration

	// HealthPort is the port for the health check HTTP server.
	// Range: 1024-65535.
	HealthPort int
}

// DefaultConfig returns a WorkerConfig with sensible default values:
// an hourly ingestion cycle in UTC, a 30-minute timeout to prevent stuck
// jobs, and the common exporter port for health checks.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule: "0 * * * *",
		Timezone:     "UTC",
		CycleTimeout: 30 * time.Minute,
		HealthPort:   9091,
	}
}

// Validate checks if the configuration values are valid.
// If multiple fields are invalid, all errors are collected and returned
// together.
func (c *WorkerConfig) Validate() error {
	var errors []error

	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errors = append(errors, fmt.Errorf("cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errors = append(errors, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidatePositiveDuration(c.CycleTimeout); err != nil {
		errors = append(errors, fmt.Errorf("cycle timeout: %w", err))
	}
	if err := config.ValidateIntRange(c.HealthPort, 1024, 65535); err != nil {
		errors = append(errors, fmt.Errorf("health port: %w", err))
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation failed: %v", errors)
	}
	return nil
}

// LoadConfigFromEnv loads worker configuration from environment variables
// with validation and automatic fallback to default values on failure.
//
// It implements a fail-open strategy: each field is loaded and validated
// independently, invalid values fall back to the default with a warning
// and a metrics increment, and a valid configuration is always returned.
//
// Environment variables:
//   - FETCH_CRON: cron expression (default: "0 * * * *")
//   - WORKER_TIMEZONE: IANA timezone name (default: "UTC")
//   - CYCLE_TIMEOUT: duration string, e.g. "30m" (default: 30 minutes)
//   - WORKER_HEALTH_PORT: integer 1024-65535 (default: 9091)
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) (*WorkerConfig, error) {
	cfg := DefaultConfig()
	fallbackApplied := false

	result := config.LoadEnvWithFallback("FETCH_CRON", cfg.CronSchedule, config.ValidateCronSchedule)
	cfg.CronSchedule = result.Value.(string)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("fetch_cron")
		metrics.RecordFallback("fetch_cron")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "CronSchedule"),
				slog.String("warning", warning))
		}
	}

	result = config.LoadEnvWithFallback("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = result.Value.(string)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("timezone")
		metrics.RecordFallback("timezone")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "Timezone"),
				slog.String("warning", warning))
		}
	}

	// 1m-4h range keeps a misconfigured timeout from disabling the job
	result = config.LoadEnvDuration("CYCLE_TIMEOUT", cfg.CycleTimeout, func(d time.Duration) error {
		return config.ValidateDuration(d, 1*time.Minute, 4*time.Hour)
	})
	cfg.CycleTimeout = result.Value.(time.Duration)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("cycle_timeout")
		metrics.RecordFallback("cycle_timeout")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "CycleTimeout"),
				slog.String("warning", warning))
		}
	}

	result = config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
		return config.ValidateIntRange(v, 1024, 65535)
	})
	cfg.HealthPort = result.Value.(int)
	if result.FallbackApplied {
		fallbackApplied = true
		metrics.RecordValidationError("health_port")
		metrics.RecordFallback("health_port")
		for _, warning := range result.Warnings {
			logger.Warn("Configuration fallback applied",
				slog.String("field", "HealthPort"),
				slog.String("warning", warning))
		}
	}

	metrics.SetFallbackActive(fallbackApplied)
	metrics.RecordLoadTimestamp()

	return &cfg, nil
}
