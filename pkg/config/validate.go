package config

import (
	"cmp"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// cronParser accepts the five-field form the worker schedules with.
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule checks a five-field cron expression such as "0 */6 * * *".
func ValidateCronSchedule(schedule string) error {
	if schedule == "" {
		return errors.New("cron schedule is empty")
	}
	if _, err := cronParser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
	}
	return nil
}

// ValidateTimezone checks that an IANA zone name can be loaded.
// Containers without tzdata fail here even for valid names.
func ValidateTimezone(name string) error {
	if name == "" {
		return errors.New("timezone is empty")
	}
	if _, err := time.LoadLocation(name); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return nil
}

// ValidateRange reports whether lo <= v <= hi.
func ValidateRange[T cmp.Ordered](v, lo, hi T) error {
	if lo > hi {
		return fmt.Errorf("invalid range: min %v exceeds max %v", lo, hi)
	}
	if v < lo || v > hi {
		return fmt.Errorf("value %v outside [%v, %v]", v, lo, hi)
	}
	return nil
}

// ValidateNonNegativeDuration rejects negative durations; zero is allowed.
func ValidateNonNegativeDuration(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("duration %v is negative", d)
	}
	return nil
}
