package config

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// ValidateCronSchedule checks that schedule is a parseable five-field
// cron expression (minute hour day month weekday).
func ValidateCronSchedule(schedule string) error {
	if schedule == "" {
		return fmt.Errorf("cron schedule is empty")
	}
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(schedule); err != nil {
		return fmt.Errorf("cron schedule %q: %w", schedule, err)
	}
	return nil
}

// ValidateTimezone checks that timezone names a loadable IANA zone,
// e.g. "UTC" or "Asia/Shanghai". Loading fails for typos but also when
// the runtime image ships without tzdata, so the error keeps the
// underlying cause.
func ValidateTimezone(timezone string) error {
	if timezone == "" {
		return fmt.Errorf("timezone is empty")
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return fmt.Errorf("timezone %q: %w", timezone, err)
	}
	return nil
}

// ValidateDuration checks that d falls within [min, max].
func ValidateDuration(d, min, max time.Duration) error {
	if min > max {
		return fmt.Errorf("bad range: min %v > max %v", min, max)
	}
	if d < min {
		return fmt.Errorf("duration %v below minimum %v", d, min)
	}
	if d > max {
		return fmt.Errorf("duration %v above maximum %v", d, max)
	}
	return nil
}

// ValidateIntRange checks that v falls within [min, max].
func ValidateIntRange(v, min, max int) error {
	if min > max {
		return fmt.Errorf("bad range: min %d > max %d", min, max)
	}
	if v < min {
		return fmt.Errorf("value %d below minimum %d", v, min)
	}
	if v > max {
		return fmt.Errorf("value %d above maximum %d", v, max)
	}
	return nil
}

// ValidatePositiveDuration checks that d is strictly greater than zero.
func ValidatePositiveDuration(d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("duration must be positive, got %v", d)
	}
	return nil
}
