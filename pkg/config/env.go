// Package config reads typed values from the environment with defaults.
// Unlike the fail-open loaders in internal/pkg/config, these helpers carry
// no validation hooks or metrics; they suit one-off settings read at
// startup where a warning log is enough.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// GetEnvString returns the value of key, or defaultValue when unset or
// empty.
func GetEnvString(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// GetEnvInt returns key parsed as a base-10 integer. Unparseable values
// log a warning and yield the default.
func GetEnvInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		warnInvalid(key, raw, defaultValue)
		return defaultValue
	}
	return v
}

// GetEnvBool returns key parsed with strconv.ParseBool, so "1", "t",
// "true" and their upper-case forms count as true. Unparseable values log
// a warning and yield the default.
func GetEnvBool(key string, defaultValue bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		warnInvalid(key, raw, defaultValue)
		return defaultValue
	}
	return v
}

// GetEnvDuration returns key parsed as a Go duration string such as "30s"
// or "1h30m". Unparseable values log a warning and yield the default.
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		warnInvalid(key, raw, defaultValue)
		return defaultValue
	}
	return v
}

func warnInvalid(key, raw string, def interface{}) {
	slog.Warn("invalid environment value, using default",
		slog.String("key", key),
		slog.String("value", raw),
		slog.Any("default", def))
}
