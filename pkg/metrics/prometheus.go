// Package metrics provides Prometheus metrics for the squadrate service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager owns every collector exposed by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Row store pulls
	pagesFetched  *prometheus.CounterVec
	rowsFetched   *prometheus.CounterVec
	fetchLatency  *prometheus.HistogramVec
	fetchFailures *prometheus.CounterVec
	rowsInserted  *prometheus.CounterVec

	// Aggregation
	summariesServed    *prometheus.CounterVec
	aggregationLatency *prometheus.HistogramVec
	playersAggregated  *prometheus.GaugeVec
	rowsSkipped        *prometheus.CounterVec
	duplicatesDropped  *prometheus.CounterVec
	commentsFiltered   prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "squadrate",
		subsystem:        "ratings",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}, labels)
}

func (m *Manager) histogramVec(name, help string, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     m.histogramBuckets,
		ConstLabels: m.customLabels,
	}, labels)
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.pagesFetched = m.counterVec("rowstore_pages_fetched_total",
		"Total number of row store pages fetched", "table")
	m.rowsFetched = m.counterVec("rowstore_rows_fetched_total",
		"Total number of raw rows fetched from the row store", "table")
	m.fetchLatency = m.histogramVec("rowstore_fetch_duration_milliseconds",
		"Duration of a complete paginated pull in milliseconds", "table")
	m.fetchFailures = m.counterVec("rowstore_fetch_failures_total",
		"Total number of aborted paginated pulls", "table")
	m.rowsInserted = m.counterVec("rowstore_rows_inserted_total",
		"Total number of rows written by the submission pathway", "table")

	m.summariesServed = m.counterVec("summaries_served_total",
		"Total number of computed summaries by view", "view")
	m.aggregationLatency = m.histogramVec("aggregation_duration_milliseconds",
		"Fetch-and-reduce duration of a summary in milliseconds", "view")
	m.playersAggregated = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "players_aggregated",
		Help:        "Number of players in the most recent summary by view",
		ConstLabels: m.customLabels,
	}, []string{"view"})
	m.rowsSkipped = m.counterVec("rows_skipped_total",
		"Rows skipped because a required key field was missing", "table")
	m.duplicatesDropped = m.counterVec("duplicates_dropped_total",
		"Submission-level duplicates dropped by first-seen reconciliation", "kind")
	m.commentsFiltered = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "comments_filtered_total",
		Help:        "Notes excluded as empty or dismissive",
		ConstLabels: m.customLabels,
	})

	m.httpRequests = m.counterVec("http_requests_total",
		"Total number of HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_milliseconds",
		"HTTP request duration in milliseconds", "endpoint", "method", "status_code")

	m.errorRateByComponent = m.counterVec("errors_by_component_total",
		"Total number of errors by component", "component", "error_type")
	m.errorRateByType = m.counterVec("errors_by_type_total",
		"Total number of errors by type and severity", "error_type", "severity")
	m.errorRateByEndpoint = m.counterVec("errors_by_endpoint_total",
		"Total number of errors by endpoint", "endpoint", "method", "error_type")
	m.errorLatency = m.histogramVec("error_latency_milliseconds",
		"Latency of operations that ended in an error", "component", "error_type")

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_memory_usage_bytes",
		Help:        "System memory usage in bytes",
		ConstLabels: m.customLabels,
	})
	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_goroutine_count",
		Help:        "Number of goroutines",
		ConstLabels: m.customLabels,
	})
	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_gc_pause_time_milliseconds",
		Help:        "GC pause time in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: m.customLabels,
	})
}

// Enabled reports whether recording is active.
func (m *Manager) Enabled() bool { return m.enabled }

// RefreshInterval is how often background gauges should be refreshed.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

// Row store.

// RecordPageFetched counts one fetched page and its rows.
func RecordPageFetched(table string, rows int) {
	if !globalManager.enabled {
		return
	}
	globalManager.pagesFetched.WithLabelValues(table).Inc()
	globalManager.rowsFetched.WithLabelValues(table).Add(float64(rows))
}

// RecordFetchDuration records how long a complete pull of table took.
func RecordFetchDuration(table string, durationMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.fetchLatency.WithLabelValues(table).Observe(durationMs)
}

// RecordFetchFailure counts an aborted pull.
func RecordFetchFailure(table string) {
	if !globalManager.enabled {
		return
	}
	globalManager.fetchFailures.WithLabelValues(table).Inc()
}

// RecordRowsInserted counts rows written to table.
func RecordRowsInserted(table string, n int) {
	if !globalManager.enabled {
		return
	}
	globalManager.rowsInserted.WithLabelValues(table).Add(float64(n))
}

// Aggregation.

// RecordSummary records a served summary of view with its player count.
func RecordSummary(view string, players int, durationMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.summariesServed.WithLabelValues(view).Inc()
	globalManager.aggregationLatency.WithLabelValues(view).Observe(durationMs)
	globalManager.playersAggregated.WithLabelValues(view).Set(float64(players))
}

// RecordRowsSkipped counts rows dropped for a missing key field.
func RecordRowsSkipped(table string, n int) {
	if !globalManager.enabled || n <= 0 {
		return
	}
	globalManager.rowsSkipped.WithLabelValues(table).Add(float64(n))
}

// RecordDuplicatesDropped counts reconciled duplicates of kind.
func RecordDuplicatesDropped(kind string, n int) {
	if !globalManager.enabled || n <= 0 {
		return
	}
	globalManager.duplicatesDropped.WithLabelValues(kind).Add(float64(n))
}

// RecordCommentsFiltered counts notes excluded by the curator.
func RecordCommentsFiltered(n int) {
	if !globalManager.enabled || n <= 0 {
		return
	}
	globalManager.commentsFiltered.Add(float64(n))
}

// HTTP.

// RecordHTTPRequest increments the HTTP requests counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Errors.

// RecordErrorByComponent increments the error counter for a component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType increments the error counter for a type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint increments the error counter for an endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// System.

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
