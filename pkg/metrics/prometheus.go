// Package metrics provides Prometheus metrics for the roster service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the roster service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Session Metrics
	loginAttempts  *prometheus.CounterVec
	logouts        prometheus.Counter
	activeSessions prometheus.Gauge

	// Roster Metrics
	rosterSize        prometheus.Gauge
	rosterLoadLatency prometheus.Histogram

	// View Metrics - chart and map aggregation
	aggregationLatency *prometheus.HistogramVec
	clustersResolved   prometheus.Histogram
	employeesUnmapped  prometheus.Counter

	// Photo Metrics
	photosCaptured prometheus.Counter
	photoBytes     prometheus.Histogram

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewMetricsManager(WithPrometheusRegistry(customRegistry))
}

// NewMetricsManager creates a new metrics manager and registers its collectors.
func NewMetricsManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "roster",
		subsystem:        "directory",
		histogramBuckets: prometheus.DefBuckets,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) name(n string) string {
	if m.metricPrefix == "" {
		return n
	}
	return m.metricPrefix + "_" + n
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        m.name(name),
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.customLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.loginAttempts = auto.NewCounterVec(
		m.counterOpts("login_attempts_total", "Login attempts by result (success, invalid, rate_limited)"),
		[]string{"result"},
	)
	m.logouts = auto.NewCounter(m.counterOpts("logouts_total", "Sessions ended by logout"))
	m.activeSessions = auto.NewGauge(m.gaugeOpts("active_sessions", "Sessions currently live"))

	m.rosterSize = auto.NewGauge(m.gaugeOpts("roster_employees", "Employees in the loaded roster"))
	m.rosterLoadLatency = auto.NewHistogram(
		m.histogramOpts("roster_load_latency_milliseconds", "Time to decode the roster", m.histogramBuckets))

	m.aggregationLatency = auto.NewHistogramVec(
		m.histogramOpts("aggregation_latency_milliseconds", "Time to build a derived view",
			[]float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50, 100}),
		[]string{"view"},
	)
	m.clustersResolved = auto.NewHistogram(
		m.histogramOpts("map_clusters", "City clusters per map view", []float64{0, 1, 2, 5, 10, 20, 30, 50}))
	m.employeesUnmapped = auto.NewCounter(
		m.counterOpts("map_unmapped_employees_total", "Employees left off a map view because their city has no coordinates"))

	m.photosCaptured = auto.NewCounter(m.counterOpts("photos_captured_total", "Photos captured"))
	m.photoBytes = auto.NewHistogram(
		m.histogramOpts("photo_size_bytes", "Size of captured photos",
			prometheus.ExponentialBuckets(16*1024, 2, 10)))

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Errors by component and type"),
		[]string{"component", "error_type"},
	)
	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Errors by type and severity"),
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Errors by HTTP endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)
	m.errorLatency = auto.NewHistogramVec(
		m.histogramOpts("error_latency_milliseconds", "Latency of operations that ended in an error", m.histogramBuckets),
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "Heap bytes allocated"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(
		m.histogramOpts("system_gc_pause_time_milliseconds", "Average GC pause time",
			[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}))
}

// RecordLoginAttempt counts a login attempt by result.
func RecordLoginAttempt(result string) {
	globalManager.loginAttempts.WithLabelValues(result).Inc()
}

// RecordLogout counts a logout.
func RecordLogout() {
	globalManager.logouts.Inc()
}

// UpdateActiveSessions sets the live session gauge.
func UpdateActiveSessions(count int) {
	globalManager.activeSessions.Set(float64(count))
}

// UpdateRosterSize sets the number of employees in the roster.
func UpdateRosterSize(count int) {
	globalManager.rosterSize.Set(float64(count))
}

// RecordRosterLoadLatency records how long a roster took to decode.
func RecordRosterLoadLatency(latencyMs float64) {
	globalManager.rosterLoadLatency.Observe(latencyMs)
}

// RecordAggregationLatency records the time to build a view ("salary" or "map").
func RecordAggregationLatency(view string, latencyMs float64) {
	globalManager.aggregationLatency.WithLabelValues(view).Observe(latencyMs)
}

// RecordClustersResolved records the number of clusters on a map view.
func RecordClustersResolved(count int) {
	globalManager.clustersResolved.Observe(float64(count))
}

// RecordUnmappedEmployees adds employees excluded from a map view.
func RecordUnmappedEmployees(count int) {
	if count > 0 {
		globalManager.employeesUnmapped.Add(float64(count))
	}
}

// RecordPhotoCaptured counts a captured photo and its size.
func RecordPhotoCaptured(sizeBytes int) {
	globalManager.photosCaptured.Inc()
	globalManager.photoBytes.Observe(float64(sizeBytes))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
