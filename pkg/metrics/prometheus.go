// Package metrics provides Prometheus metrics for the intake service.
package metrics

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Form activity
	formEvents          *prometheus.CounterVec
	eventLatency        prometheus.Histogram
	validationFailures  *prometheus.CounterVec
	submissionsAccepted prometheus.Counter
	submitsRejected     prometheus.Counter
	historySize         prometheus.Gauge

	// Skill tags
	skillsAdded     prometheus.Counter
	skillsDuplicate prometheus.Counter
	skillsRemoved   prometheus.Counter

	// Queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueueTotal  prometheus.Counter
	queueDequeueTotal  prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorsByComponent *prometheus.CounterVec
	errorsByType      *prometheus.CounterVec
	errorsByEndpoint  *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton used by the Record helpers

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // registry served on /healthz

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "intake",
		subsystem:        "form",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gauge(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.formEvents = auto.NewCounterVec(
		m.counter("events_total", "Form input events handled, by kind"),
		[]string{"kind"},
	)
	m.eventLatency = auto.NewHistogram(
		m.histogram("event_latency_milliseconds", "Time from enqueue to event completion", m.histogramBuckets),
	)
	m.validationFailures = auto.NewCounterVec(
		m.counter("validation_failures_total", "Field validations that produced an error message"),
		[]string{"field"},
	)
	m.submissionsAccepted = auto.NewCounter(
		m.counter("submissions_accepted_total", "Submit attempts that produced a snapshot"),
	)
	m.submitsRejected = auto.NewCounter(
		m.counter("submits_rejected_total", "Submit attempts ignored because the form was not ready"),
	)
	m.historySize = auto.NewGauge(
		m.gauge("history_size", "Number of accepted submissions held in memory"),
	)

	m.skillsAdded = auto.NewCounter(m.counter("skills_added_total", "Skill tags added"))
	m.skillsDuplicate = auto.NewCounter(m.counter("skills_duplicate_total", "Skill tag commits ignored as duplicates"))
	m.skillsRemoved = auto.NewCounter(m.counter("skills_removed_total", "Skill tags removed"))

	m.queueSize = auto.NewGauge(m.gauge("queue_size", "Current number of queued events"))
	m.queueCapacity = auto.NewGauge(m.gauge("queue_capacity", "Maximum queue capacity"))
	m.queueUtilization = auto.NewGauge(m.gauge("queue_utilization_ratio", "Queue size divided by capacity"))
	m.queueEnqueueTotal = auto.NewCounter(m.counter("queue_enqueue_total", "Events enqueued"))
	m.queueDequeueTotal = auto.NewCounter(m.counter("queue_dequeue_total", "Events dequeued"))
	m.queueEnqueueErrors = auto.NewCounter(m.counter("queue_enqueue_errors_total", "Events rejected at enqueue"))

	m.httpRequests = auto.NewCounterVec(
		m.counter("http_requests_total", "HTTP requests by endpoint, method and status"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogram("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorsByComponent = auto.NewCounterVec(
		m.counter("errors_by_component_total", "Errors by component"),
		[]string{"component", "error_type"},
	)
	m.errorsByType = auto.NewCounterVec(
		m.counter("errors_by_type_total", "Errors by type and severity"),
		[]string{"error_type", "severity"},
	)
	m.errorsByEndpoint = auto.NewCounterVec(
		m.counter("errors_by_endpoint_total", "Errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gauge("system_memory_usage_bytes", "Heap bytes in use"))
	m.systemGoroutineCount = auto.NewGauge(m.gauge("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogram(
		"system_gc_pause_time_milliseconds", "Most recent GC pause in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	))
}

// RecordFormEvent counts one handled form event of the given kind.
func RecordFormEvent(kind string) {
	globalManager.formEvents.WithLabelValues(kind).Inc()
}

// RecordEventLatency records how long an event took from enqueue to reply.
func RecordEventLatency(latencyMs float64) {
	globalManager.eventLatency.Observe(latencyMs)
}

// RecordValidationFailure counts a field that ended up with an error message.
func RecordValidationFailure(field string) {
	globalManager.validationFailures.WithLabelValues(field).Inc()
}

// RecordSubmissionAccepted counts an accepted submission.
func RecordSubmissionAccepted() {
	globalManager.submissionsAccepted.Inc()
}

// RecordSubmitRejected counts a submit attempt made while the form was not ready.
func RecordSubmitRejected() {
	globalManager.submitsRejected.Inc()
}

// UpdateHistorySize sets the number of stored submissions.
func UpdateHistorySize(n int) {
	globalManager.historySize.Set(float64(n))
}

// RecordSkillAdded counts a new skill tag.
func RecordSkillAdded() {
	globalManager.skillsAdded.Inc()
}

// RecordSkillDuplicate counts a skill commit ignored as a duplicate.
func RecordSkillDuplicate() {
	globalManager.skillsDuplicate.Inc()
}

// RecordSkillRemoved counts a removed skill tag.
func RecordSkillRemoved() {
	globalManager.skillsRemoved.Inc()
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueUtilization sets the queue utilization ratio.
func UpdateQueueUtilization(utilization float64) {
	globalManager.queueUtilization.Set(utilization)
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueueTotal.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeueTotal.Inc()
}

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() {
	globalManager.queueEnqueueErrors.Inc()
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
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorsByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// CollectSystem samples runtime memory, goroutine and GC figures.
func CollectSystem() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	globalManager.systemMemoryUsage.Set(float64(ms.HeapAlloc))
	globalManager.systemGoroutineCount.Set(float64(runtime.NumGoroutine()))
	if ms.NumGC > 0 {
		last := ms.PauseNs[(ms.NumGC+255)%256]
		globalManager.systemGCPauseTime.Observe(float64(last) / 1e6)
	}
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
