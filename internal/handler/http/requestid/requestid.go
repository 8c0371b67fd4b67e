// Package requestid assigns each HTTP request an ID that travels through
// the context and comes back in the X-Request-ID response header, so one
// request can be followed across log lines.
package requestid

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// contextKey keeps the context value private to this package.
type contextKey struct{}

// Header is the request and response header carrying the ID.
const Header = "X-Request-ID"

// maxInboundLength caps client-supplied IDs; anything longer is replaced
// so a hostile header cannot bloat every log line.
const maxInboundLength = 128

// FromContext returns the request ID, or "" when none was set.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(contextKey{}).(string); ok {
		return id
	}
	return ""
}

// WithRequestID stores id in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// Middleware propagates an inbound X-Request-ID or generates a UUID when
// the header is missing or oversized. The ID is set on the response header
// and the request context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if id == "" || len(id) > maxInboundLength {
			id = uuid.New().String()
		}

		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), id)))
	})
}
