// Package config provides fail-open environment configuration loading
// shared by the API server and the ingestion worker. A value that fails
// to parse or validate never aborts startup; the default is substituted
// and the substitution is surfaced through warnings and Prometheus
// counters so the drift stays visible.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// LoadResult is the outcome of loading one configuration value. Value
// holds the effective value, which is the default whenever the
// environment value was rejected. FallbackApplied reports that
// substitution, and Warnings says why it happened.
type LoadResult struct {
	Value           interface{}
	Warnings        []string
	FallbackApplied bool
}

func accepted(v interface{}) LoadResult {
	return LoadResult{Value: v}
}

func rejected(envKey, raw string, cause error, def interface{}) LoadResult {
	warning := fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%v'",
		envKey, raw, cause, def)
	return LoadResult{Value: def, Warnings: []string{warning}, FallbackApplied: true}
}

// LoadEnvWithFallback reads envKey as a string and runs it through
// validator, which may be nil. An unset or empty variable yields the
// default silently; a value the validator rejects yields the default
// with a warning.
func LoadEnvWithFallback(envKey, defaultValue string, validator func(string) error) LoadResult {
	raw := os.Getenv(envKey)
	if raw == "" {
		return accepted(defaultValue)
	}
	if validator != nil {
		if err := validator(raw); err != nil {
			return rejected(envKey, raw, err, defaultValue)
		}
	}
	return accepted(raw)
}

// LoadEnvDuration reads envKey as a Go duration string such as "30m" or
// "1h30m". Both parse failures and validator rejections fall back to the
// default.
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) LoadResult {
	raw := os.Getenv(envKey)
	if raw == "" {
		return accepted(defaultValue)
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return rejected(envKey, raw, err, defaultValue)
	}
	if validator != nil {
		if err := validator(d); err != nil {
			return rejected(envKey, raw, err, defaultValue)
		}
	}
	return accepted(d)
}

// LoadEnvInt reads envKey as a base-10 integer. Both parse failures and
// validator rejections fall back to the default.
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) LoadResult {
	raw := os.Getenv(envKey)
	if raw == "" {
		return accepted(defaultValue)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return rejected(envKey, raw, fmt.Errorf("not a base-10 integer"), defaultValue)
	}
	if validator != nil {
		if err := validator(n); err != nil {
			return rejected(envKey, raw, err, defaultValue)
		}
	}
	return accepted(n)
}
