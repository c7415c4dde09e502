package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "herdsafe",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "herdsafe",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "herdsafe",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Compliance run metrics
	complianceRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "herdsafe",
			Subsystem: "compliance",
			Name:      "runs_total",
			Help:      "Total number of compliance runs",
		},
		[]string{"status"},
	)

	complianceRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "herdsafe",
			Subsystem: "compliance",
			Name:      "run_duration_seconds",
			Help:      "Duration of a compliance run in seconds",
			Buckets:   []float64{.1, .5, 1, 5, 10, 30, 60, 120, 300},
		},
	)

	recordsEvaluatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "herdsafe",
			Subsystem: "compliance",
			Name:      "records_evaluated_total",
			Help:      "Total number of treatment records evaluated",
		},
	)

	recordsSkippedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "herdsafe",
			Subsystem: "compliance",
			Name:      "records_skipped_total",
			Help:      "Total number of treatment records skipped due to evaluation errors",
		},
	)

	alertsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "herdsafe",
			Subsystem: "alert",
			Name:      "created_total",
			Help:      "Total number of compliance alerts created",
		},
		[]string{"type", "severity"},
	)

	openAlerts = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "herdsafe",
			Subsystem: "alert",
			Name:      "open_count",
			Help:      "Number of open (unresolved) compliance alerts",
		},
		[]string{"severity"},
	)
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns a middleware that records Prometheus metrics
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()

		routePattern := chi.RouteContext(r.Context()).RoutePattern()
		if routePattern == "" {
			routePattern = "unknown"
		}

		status := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, routePattern, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, routePattern, status).Observe(duration)
	})
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordComplianceRun records a compliance run and its duration
func RecordComplianceRun(status string, duration time.Duration) {
	complianceRunsTotal.WithLabelValues(status).Inc()
	complianceRunDuration.Observe(duration.Seconds())
}

// AddRecordsEvaluated increments the evaluated-records counter
func AddRecordsEvaluated(n int) {
	recordsEvaluatedTotal.Add(float64(n))
}

// AddRecordsSkipped increments the skipped-records counter
func AddRecordsSkipped(n int) {
	recordsSkippedTotal.Add(float64(n))
}

// RecordAlertCreated records an alert creation event
func RecordAlertCreated(alertType, severity string) {
	alertsCreatedTotal.WithLabelValues(alertType, severity).Inc()
}

// SetOpenAlerts sets the gauge for open alerts by severity
func SetOpenAlerts(severity string, count float64) {
	openAlerts.WithLabelValues(severity).Set(count)
}
