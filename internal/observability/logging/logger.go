// Package logging builds the process-wide structured logger. All three
// binaries log to stdout through slog; LOG_LEVEL and LOG_FORMAT adjust
// verbosity and output format without a code change.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger builds a logger from the environment.
//
//	LOG_LEVEL:  debug, info, warn, or error (default: info)
//	LOG_FORMAT: json or text (default: json)
//
// Text output is meant for local development; deployments keep JSON so
// log pipelines can parse entries. Source locations are attached only at
// debug level, where the extra cost is acceptable.
func NewLogger() *slog.Logger {
	return slog.New(newHandler(os.Stdout))
}

func newHandler(w io.Writer) slog.Handler {
	level := parseLevel(os.Getenv("LOG_LEVEL"))
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}
	if os.Getenv("LOG_FORMAT") == "text" {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
