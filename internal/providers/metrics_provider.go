package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"tcncore/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncObservations()
	ObserveFlushDuration(duration time.Duration)
	IncFlushErrors()
	AddReportsFetched(count int)
	IncMatchedReports()
	AddAlerts(count int)
}

// BatchSizer exposes the number of pending records in the observation
// write buffer, for gauge sampling.
type BatchSizer interface {
	Len() int
}

type MetricsProvider struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	observations    prometheus.Counter
	flushDuration   prometheus.Histogram
	flushErrors     prometheus.Counter
	reportsFetched  prometheus.Counter
	matchedReports  prometheus.Counter
	alerts          prometheus.Counter
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) IncObservations() {
	m.observations.Inc()
}

func (m *MetricsProvider) ObserveFlushDuration(duration time.Duration) {
	m.flushDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncFlushErrors() {
	m.flushErrors.Inc()
}

func (m *MetricsProvider) AddReportsFetched(count int) {
	m.reportsFetched.Add(float64(count))
}

func (m *MetricsProvider) IncMatchedReports() {
	m.matchedReports.Inc()
}

func (m *MetricsProvider) AddAlerts(count int) {
	m.alerts.Add(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, batch BatchSizer) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tcncore_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tcncore_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tcncore_cache_hits_total",
			Help: "Total number of report payload cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tcncore_cache_misses_total",
			Help: "Total number of report payload cache misses",
		}),

		observations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tcncore_observations_total",
			Help: "Total number of recorded TCN observations",
		}),

		flushDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "tcncore_flush_duration_seconds",
			Help:    "Duration of batch flushes in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		flushErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tcncore_flush_errors_total",
			Help: "Total number of failed batch flushes",
		}),

		reportsFetched: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tcncore_reports_fetched_total",
			Help: "Total number of signed reports fetched from the remote source",
		}),

		matchedReports: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tcncore_matched_reports_total",
			Help: "Total number of reports matching locally observed TCNs",
		}),

		alerts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tcncore_alerts_total",
			Help: "Total number of exposure alerts generated",
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "tcncore_batch_pending",
		Help: "Current number of unflushed observation records",
	}, func() float64 {
		return float64(batch.Len())
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncObservations()                                 {}
func (n *noopMetrics) ObserveFlushDuration(_ time.Duration)             {}
func (n *noopMetrics) IncFlushErrors()                                  {}
func (n *noopMetrics) AddReportsFetched(_ int)                          {}
func (n *noopMetrics) IncMatchedReports()                               {}
func (n *noopMetrics) AddAlerts(_ int)                                  {}
