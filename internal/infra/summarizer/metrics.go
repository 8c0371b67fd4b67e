package summarizer

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SummaryMetricsRecorder abstracts metrics recording so backends share one
// implementation and tests can inject a mock.
type SummaryMetricsRecorder interface {
	// RecordLength records the length of a generated primary summary in runes.
	RecordLength(length int)

	// RecordLimitExceeded increments the counter when a summary exceeds the
	// configured character limit.
	RecordLimitExceeded()

	// RecordCompliance records whether a summary is within the character limit.
	RecordCompliance(withinLimit bool)

	// RecordDuration records the time taken by one completion API call.
	RecordDuration(duration time.Duration)

	// RecordOutcome counts results by kind (ok, degraded, failed, ...).
	RecordOutcome(kind string)
}

// PrometheusSummaryMetrics implements SummaryMetricsRecorder using Prometheus.
type PrometheusSummaryMetrics struct {
	lengthHistogram   prometheus.Histogram
	exceededCounter   prometheus.Counter
	complianceGauge   prometheus.Gauge
	durationHistogram prometheus.Histogram
	outcomeCounter    *prometheus.CounterVec
}

var (
	prometheusMetricsInstance *PrometheusSummaryMetrics
	prometheusMetricsOnce     sync.Once
)

// NewPrometheusSummaryMetrics creates the Prometheus-backed metrics recorder.
// A process-wide singleton avoids duplicate metric registration when several
// summarizer clients exist.
func NewPrometheusSummaryMetrics() *PrometheusSummaryMetrics {
	prometheusMetricsOnce.Do(func() {
		prometheusMetricsInstance = &PrometheusSummaryMetrics{
			lengthHistogram: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "article_summary_length_characters",
				Help:    "Distribution of primary summary lengths in characters (Unicode runes)",
				Buckets: []float64{25, 50, 75, 100, 150, 200, 300, 500},
			}),
			exceededCounter: promauto.NewCounter(prometheus.CounterOpts{
				Name: "article_summary_limit_exceeded_total",
				Help: "Total number of summaries exceeding the configured character limit",
			}),
			complianceGauge: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "article_summary_limit_compliance_ratio",
				Help: "Ratio of summaries within the character limit (0.0-1.0)",
			}),
			durationHistogram: promauto.NewHistogram(prometheus.HistogramOpts{
				Name:    "article_summarization_duration_seconds",
				Help:    "Time taken by one summarization API call",
				Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
			}),
			outcomeCounter: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "article_summarization_results_total",
				Help: "Summarization results by kind",
			}, []string{"kind"}),
		}
	})
	return prometheusMetricsInstance
}

// RecordLength implements SummaryMetricsRecorder.
func (p *PrometheusSummaryMetrics) RecordLength(length int) {
	p.lengthHistogram.Observe(float64(length))
}

// RecordLimitExceeded implements SummaryMetricsRecorder.
func (p *PrometheusSummaryMetrics) RecordLimitExceeded() {
	p.exceededCounter.Inc()
}

// RecordCompliance implements SummaryMetricsRecorder.
func (p *PrometheusSummaryMetrics) RecordCompliance(withinLimit bool) {
	if withinLimit {
		p.complianceGauge.Set(1.0)
	} else {
		p.complianceGauge.Set(0.0)
	}
}

// RecordDuration implements SummaryMetricsRecorder.
func (p *PrometheusSummaryMetrics) RecordDuration(duration time.Duration) {
	p.durationHistogram.Observe(duration.Seconds())
}

// RecordOutcome implements SummaryMetricsRecorder.
func (p *PrometheusSummaryMetrics) RecordOutcome(kind string) {
	p.outcomeCounter.WithLabelValues(kind).Inc()
}
