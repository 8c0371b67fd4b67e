package http

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"ai-rss-hub/internal/handler/http/respond"
)

// TokenAuth guards mutating endpoints with a static bearer token.
// The comparison is constant-time. An empty configured token rejects
// every request rather than disabling the check.
type TokenAuth struct {
	Token string
}

// Protect wraps a handler with the bearer token check.
func (a TokenAuth) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.Token == "" {
			respond.SafeError(w, http.StatusUnauthorized, fmt.Errorf("invalid or missing token"))
			return
		}

		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			respond.SafeError(w, http.StatusUnauthorized, fmt.Errorf("invalid or missing token"))
			return
		}

		if subtle.ConstantTimeCompare([]byte(token), []byte(a.Token)) != 1 {
			respond.SafeError(w, http.StatusUnauthorized, fmt.Errorf("invalid or missing token"))
			return
		}

		next.ServeHTTP(w, r)
	})
}
