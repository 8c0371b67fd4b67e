// Package metrics provides the Prometheus metrics registry and recording
// utilities. It centralizes HTTP request metrics, ingestion pipeline metrics
// (feeds, articles, summaries), and database query metrics. All metrics are
// registered with the Prometheus default registry and exposed via /metrics.
//
// Example usage:
//
//	import "ai-rss-hub/internal/observability/metrics"
//
//	start := time.Now()
//	// ... process a feed ...
//	metrics.RecordFeedCrawl(feedID, time.Since(start), found, inserted, duplicated)
package metrics
