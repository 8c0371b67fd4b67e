package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ai-rss-hub/internal/handler/http/responsewriter"
	"ai-rss-hub/internal/observability/metrics"
)

// MetricsMiddleware records request count and duration for every request.
// Paths are normalized to keep Prometheus label cardinality bounded.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wrapped := responsewriter.Wrap(w)

		start := time.Now()
		next.ServeHTTP(wrapped, r)
		duration := time.Since(start)

		metrics.RecordHTTPRequest(
			r.Method,
			normalizePath(r.URL.Path),
			strconv.Itoa(wrapped.StatusCode()),
			duration,
		)
	})
}

// normalizePath collapses variable path segments into placeholders.
// Example: /rss/category/golang -> /rss/category/:category
func normalizePath(path string) string {
	if strings.HasPrefix(path, "/rss/category/") {
		return "/rss/category/:category"
	}
	return path
}

// MetricsHandler returns an HTTP handler for the Prometheus metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
