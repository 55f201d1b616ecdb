package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request counter
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTP request duration histogram
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Queue transition counter by from/to status
	QueueTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queue_transitions_total",
			Help: "Total number of queue entry status transitions",
		},
		[]string{"from", "to"},
	)

	// Poll resolver outcome counter
	PollResultsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queue_poll_results_total",
			Help: "Total number of poll resolutions by overall status",
		},
		[]string{"result"},
	)
)

// RecordHTTPRequest records counter and duration metrics for one request.
func RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	status := strconv.Itoa(statusCode)
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordTransition records a queue entry status transition.
func RecordTransition(from, to string) {
	QueueTransitionsTotal.WithLabelValues(from, to).Inc()
}

// RecordPollResult records the outcome of one poll resolution.
func RecordPollResult(result string) {
	PollResultsTotal.WithLabelValues(result).Inc()
}
