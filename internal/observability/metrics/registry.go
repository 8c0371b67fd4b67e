// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Business metrics track the ingestion pipeline
var (
	// ArticlesTotal tracks total number of articles in the database
	ArticlesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "articles_total",
			Help: "Total number of articles in the database",
		},
	)

	// FeedsTotal tracks total number of registered feeds
	FeedsTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "feeds_total",
			Help: "Total number of registered feeds",
		},
	)

	// ArticlesIngestedTotal counts new articles stored per feed
	ArticlesIngestedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "articles_ingested_total",
			Help: "Total number of new articles stored",
		},
		[]string{"feed_id"},
	)

	// FeedEntriesSeenTotal counts entries observed per feed, duplicates included
	FeedEntriesSeenTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_entries_seen_total",
			Help: "Total number of feed entries observed, duplicates included",
		},
		[]string{"feed_id"},
	)

	// ArticlesDuplicatedTotal counts entries skipped as already stored
	ArticlesDuplicatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "articles_duplicated_total",
			Help: "Total number of feed entries skipped as duplicates",
		},
		[]string{"feed_id"},
	)

	// ArticlesSummarizedTotal counts summarization results by status
	ArticlesSummarizedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "articles_summarized_total",
			Help: "Total number of article summarization attempts",
		},
		[]string{"status"},
	)

	// SummarizationDuration measures time to summarize an article
	SummarizationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "summarization_duration_seconds",
			Help:    "Time taken to summarize an article",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)

	// FeedCrawlDuration measures time to process one feed
	FeedCrawlDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_crawl_duration_seconds",
			Help:    "Time taken to process one feed",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
		[]string{"feed_id"},
	)

	// FeedCrawlErrors counts errors during feed processing
	FeedCrawlErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_crawl_errors_total",
			Help: "Total number of feed processing errors",
		},
		[]string{"feed_id", "error_type"},
	)

	// IngestionCycleDuration measures full cycle duration
	IngestionCycleDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ingestion_cycle_duration_seconds",
			Help:    "Time taken by one full ingestion cycle",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
	)

	// IngestionCycleArticles counts new articles per cycle
	IngestionCycleArticles = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ingestion_cycle_new_articles",
			Help:    "New articles stored per ingestion cycle",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
		},
	)

	// IngestionCycleFeeds reflects feeds processed by the latest cycle
	IngestionCycleFeeds = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ingestion_cycle_feeds_processed",
			Help: "Feeds processed by the most recent ingestion cycle",
		},
	)
)

// Database metrics track database performance
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// DBConnectionsActive tracks active database connections
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}
