package config

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ConfigMetrics tracks configuration health for one component:
//
//	{component}_config_load_timestamp          gauge, last successful load
//	{component}_config_validation_errors_total counter by field
//	{component}_config_fallbacks_total         counter by field
//	{component}_config_fallback_active         gauge, 1 while any fallback holds
//
// An alert on fallback_active catches deployments that silently run on
// defaults instead of their intended configuration.
type ConfigMetrics struct {
	loadTimestamp    prometheus.Gauge
	validationErrors *prometheus.CounterVec
	fallbacks        *prometheus.CounterVec
	fallbackActive   prometheus.Gauge
}

// NewConfigMetrics registers the metric set for component on the default
// registry. Component names must be unique per process; promauto panics
// on a duplicate registration.
func NewConfigMetrics(component string) *ConfigMetrics {
	return &ConfigMetrics{
		loadTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: fmt.Sprintf("%s_config_load_timestamp", component),
			Help: fmt.Sprintf("Unix timestamp of the last %s configuration load", component),
		}),
		validationErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_config_validation_errors_total", component),
			Help: fmt.Sprintf("Total %s configuration validation errors", component),
		}, []string{"field"}),
		fallbacks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_config_fallbacks_total", component),
			Help: fmt.Sprintf("Total %s configuration fallbacks to defaults", component),
		}, []string{"field"}),
		fallbackActive: promauto.NewGauge(prometheus.GaugeOpts{
			Name: fmt.Sprintf("%s_config_fallback_active", component),
			Help: fmt.Sprintf("1 if any %s configuration fallback is active, 0 otherwise", component),
		}),
	}
}

// RecordLoadTimestamp marks now as the latest configuration load.
func (m *ConfigMetrics) RecordLoadTimestamp() {
	m.loadTimestamp.SetToCurrentTime()
}

// RecordValidationError counts a rejected value for field.
func (m *ConfigMetrics) RecordValidationError(field string) {
	m.validationErrors.WithLabelValues(field).Inc()
}

// RecordFallback counts a default substitution for field.
func (m *ConfigMetrics) RecordFallback(field string) {
	m.fallbacks.WithLabelValues(field).Inc()
}

// SetFallbackActive reflects whether the running configuration contains
// any substituted defaults.
func (m *ConfigMetrics) SetFallbackActive(active bool) {
	if active {
		m.fallbackActive.Set(1)
		return
	}
	m.fallbackActive.Set(0)
}
