// Package worker holds the configuration, metrics and health endpoints of the
// scheduled harvest worker.
package worker

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"fiji-news/pkg/config"
)

const (
	minHarvestTimeout = time.Minute
	maxHarvestTimeout = 4 * time.Hour
	minHealthPort     = 1024
	maxHealthPort     = 65535
)

// WorkerConfig controls when the pipeline runs and how long a run may take.
type WorkerConfig struct {
	// CronSchedule is a five-field cron expression, e.g. "0 */6 * * *".
	CronSchedule string

	// Timezone is the IANA zone the schedule is evaluated in.
	Timezone string

	// HarvestTimeout bounds one full pipeline run (1m-4h).
	HarvestTimeout time.Duration

	// HealthPort serves /health, /health/ready and /metrics (1024-65535).
	HealthPort int
}

// DefaultConfig runs every six hours, Fiji time.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule:   "0 */6 * * *",
		Timezone:       "Pacific/Fiji",
		HarvestTimeout: 30 * time.Minute,
		HealthPort:     9091,
	}
}

// Validate reports every invalid field.
func (c *WorkerConfig) Validate() error {
	var errs []error
	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidateRange(c.HarvestTimeout, minHarvestTimeout, maxHarvestTimeout); err != nil {
		errs = append(errs, fmt.Errorf("harvest timeout: %w", err))
	}
	if err := config.ValidateRange(c.HealthPort, minHealthPort, maxHealthPort); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}
	return errors.Join(errs...)
}

// LoadConfigFromEnv reads CRON_SCHEDULE, WORKER_TIMEZONE, HARVEST_TIMEOUT and
// WORKER_HEALTH_PORT. Invalid values fall back to their defaults with a
// warning and a fallback metric; the returned config is always usable.
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) *WorkerConfig {
	cfg := DefaultConfig()
	anyFallback := false

	observe := func(field string, fallback bool, warning string) {
		metrics.Config.Observe(field, fallback)
		if !fallback {
			return
		}
		anyFallback = true
		logger.Warn("Configuration fallback applied",
			slog.String("field", field),
			slog.String("warning", warning))
	}

	schedule := config.LoadString("CRON_SCHEDULE", cfg.CronSchedule, config.ValidateCronSchedule)
	cfg.CronSchedule = schedule.Value
	observe("cron_schedule", schedule.FallbackApplied, schedule.Warning)

	zone := config.LoadString("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = zone.Value
	observe("timezone", zone.FallbackApplied, zone.Warning)

	timeout := config.LoadDuration("HARVEST_TIMEOUT", cfg.HarvestTimeout, func(d time.Duration) error {
		return config.ValidateRange(d, minHarvestTimeout, maxHarvestTimeout)
	})
	cfg.HarvestTimeout = timeout.Value
	observe("harvest_timeout", timeout.FallbackApplied, timeout.Warning)

	port := config.LoadInt("WORKER_HEALTH_PORT", cfg.HealthPort, func(v int) error {
		return config.ValidateRange(v, minHealthPort, maxHealthPort)
	})
	cfg.HealthPort = port.Value
	observe("health_port", port.FallbackApplied, port.Warning)

	metrics.Config.Loaded(anyFallback)
	return &cfg
}
