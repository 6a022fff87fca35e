package providers

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"tcncore/internal/structures"
)

type metricsTestBatch struct{ size int }

func (m *metricsTestBatch) Len() int { return m.size }

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	m := NewMetricsProvider(conf, &metricsTestBatch{})
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	// Ensure no-op methods don't panic
	m.IncRequestsTotal("/tcn", 200)
	m.ObserveRequestDuration("/tcn", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncObservations()
	m.ObserveFlushDuration(time.Millisecond)
	m.IncFlushErrors()
	m.AddReportsFetched(3)
	m.IncMatchedReports()
	m.AddAlerts(2)
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	defer func() {
		prometheus.DefaultRegisterer = prometheus.NewRegistry()
		prometheus.DefaultGatherer = prometheus.DefaultRegisterer.(prometheus.Gatherer)
	}()

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf, &metricsTestBatch{})
	_, ok := m.(*MetricsProvider)
	assert.True(t, ok, "should return MetricsProvider when enabled")
}

func TestMetricsProvider_IncrementCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	defer func() {
		prometheus.DefaultRegisterer = prometheus.NewRegistry()
		prometheus.DefaultGatherer = prometheus.DefaultRegisterer.(prometheus.Gatherer)
	}()

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf, &metricsTestBatch{size: 7})

	// These should not panic
	m.IncRequestsTotal("/tcn", 200)
	m.IncRequestsTotal("/tcn", 404)
	m.ObserveRequestDuration("/tcn", 5*time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.IncObservations()
	m.ObserveFlushDuration(100 * time.Millisecond)
	m.IncFlushErrors()
	m.AddReportsFetched(5)
	m.IncMatchedReports()
	m.AddAlerts(1)
}

func TestHttpStatusBucket(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{400, "4xx"},
		{404, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, httpStatusBucket(tt.code))
	}
}
