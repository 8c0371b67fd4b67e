package postgres

import (
	"time"

	"ai-rss-hub/internal/observability/metrics"
)

// observe records one repository query duration under the given operation
// label. Use as `defer observe("feeds_get", time.Now())`.
func observe(operation string, start time.Time) {
	metrics.RecordDBQuery(operation, time.Since(start))
}
