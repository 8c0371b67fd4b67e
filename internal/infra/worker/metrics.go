package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"ai-rss-hub/internal/pkg/config"
)

// WorkerMetrics provides Prometheus metrics for the ingestion worker.
// It embeds the standard ConfigMetrics for configuration monitoring and
// adds job-level metrics for cron execution tracking.
type WorkerMetrics struct {
	*config.ConfigMetrics

	// CronJobRunsTotal counts cron job runs by status (success/failure).
	CronJobRunsTotal *prometheus.CounterVec

	// CronJobDurationSeconds measures the duration of each ingestion cycle.
	CronJobDurationSeconds prometheus.Histogram

	// CronJobFeedsProcessedTotal counts feeds processed across all runs.
	CronJobFeedsProcessedTotal prometheus.Counter

	// CronJobArticlesIngestedTotal counts new articles stored across all runs.
	CronJobArticlesIngestedTotal prometheus.Counter

	// CronJobLastSuccessTimestamp records the Unix time of the last
	// successful run.
	CronJobLastSuccessTimestamp prometheus.Gauge
}

// NewWorkerMetrics creates a WorkerMetrics instance with all metrics
// initialized and registered via promauto.
func NewWorkerMetrics() *WorkerMetrics {
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics("worker"),

		CronJobRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_cron_job_runs_total",
			Help: "Total number of cron job runs by status (success/failure)",
		}, []string{"status"}),

		CronJobDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_cron_job_duration_seconds",
			Help:    "Duration of cron job execution in seconds",
			Buckets: []float64{1, 5, 30, 60, 300, 900, 1800},
		}),

		CronJobFeedsProcessedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_cron_job_feeds_processed_total",
			Help: "Total number of feeds processed across all cron job runs",
		}),

		CronJobArticlesIngestedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_cron_job_articles_ingested_total",
			Help: "Total number of new articles stored across all cron job runs",
		}),

		CronJobLastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_cron_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful cron job run",
		}),
	}
}

// MustRegister is a no-op kept for API symmetry; metrics are registered
// via promauto at construction.
func (m *WorkerMetrics) MustRegister() {}

// RecordJobRun increments the job run counter for the given status,
// either "success" or "failure".
func (m *WorkerMetrics) RecordJobRun(status string) {
	m.CronJobRunsTotal.WithLabelValues(status).Inc()
}

// RecordJobDuration observes the duration of one cycle in seconds.
func (m *WorkerMetrics) RecordJobDuration(seconds float64) {
	m.CronJobDurationSeconds.Observe(seconds)
}

// RecordFeedsProcessed adds the number of feeds processed in one run.
func (m *WorkerMetrics) RecordFeedsProcessed(count int) {
	m.CronJobFeedsProcessedTotal.Add(float64(count))
}

// RecordArticlesIngested adds the number of new articles stored in one run.
func (m *WorkerMetrics) RecordArticlesIngested(count int64) {
	m.CronJobArticlesIngestedTotal.Add(float64(count))
}

// RecordLastSuccess records the current time as the last successful run.
func (m *WorkerMetrics) RecordLastSuccess() {
	m.CronJobLastSuccessTimestamp.SetToCurrentTime()
}
