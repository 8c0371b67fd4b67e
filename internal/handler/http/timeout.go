package http

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Timeout bounds each request to the given duration. When the deadline
// passes before the handler finishes, the client gets 504 and the handler's
// later writes are swallowed. A shared mutex serializes the handler
// goroutine and the timeout path so only one of them touches the
// ResponseWriter.
func Timeout(duration time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), duration)
			defer cancel()
			r = r.WithContext(ctx)

			done := make(chan struct{})
			guard := &writeGuard{ResponseWriter: w, mu: &sync.Mutex{}}

			go func() {
				next.ServeHTTP(guard, r)
				close(done)
			}()

			select {
			case <-done:
			case <-ctx.Done():
				guard.mu.Lock()
				guard.expired = true
				if !guard.wrote {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusGatewayTimeout)
					_, _ = w.Write([]byte(`{"error":"request timeout"}`))
				}
				guard.mu.Unlock()
			}
		})
	}
}

// writeGuard drops handler writes that race with, or arrive after, the
// timeout response.
type writeGuard struct {
	http.ResponseWriter
	mu      *sync.Mutex
	expired bool
	wrote   bool
}

func (g *writeGuard) WriteHeader(statusCode int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.expired || g.wrote {
		return
	}
	g.wrote = true
	g.ResponseWriter.WriteHeader(statusCode)
}

func (g *writeGuard) Write(data []byte) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.expired {
		return 0, http.ErrHandlerTimeout
	}
	if !g.wrote {
		g.wrote = true
		g.ResponseWriter.WriteHeader(http.StatusOK)
	}
	return g.ResponseWriter.Write(data)
}
