// Package respond writes JSON responses and keeps secrets and internal
// details out of error bodies.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

// JSON encodes v as the response body with the given status code.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already sent, logging is all that is left.
		slog.Default().Error("failed to encode JSON response",
			slog.Int("status_code", code),
			slog.Any("error", err))
	}
}

// clientSafeFragments marks validation-style messages that may be echoed
// back to the caller verbatim.
var clientSafeFragments = []string{
	"required",
	"invalid",
	"not found",
	"already exists",
	"must be",
	"cannot be",
	"too long",
	"too short",
	"too large",
	"rate limit",
}

// SafeError writes an error response without leaking internals. Validation
// errors pass through as-is; anything else, and every 5xx, is logged with
// secrets masked and replaced by a generic message.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	msg := err.Error()
	if code < 500 && isClientSafe(msg) {
		JSON(w, code, map[string]string{"error": msg})
		return
	}

	slog.Default().Error("request failed",
		slog.Int("code", code),
		slog.String("status", http.StatusText(code)),
		slog.String("error", SanitizeError(err)))
	JSON(w, code, map[string]string{"error": "internal server error"})
}

func isClientSafe(msg string) bool {
	lower := strings.ToLower(msg)
	for _, fragment := range clientSafeFragments {
		if strings.Contains(lower, fragment) {
			return true
		}
	}
	return false
}
