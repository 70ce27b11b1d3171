package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	operations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_operations_total",
			Help: "Total number of domain operations by outcome",
		},
		[]string{"operation", "status"},
	)

	eventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_events_published_total",
			Help: "Order events handed to the broker",
		},
		[]string{"type", "status"},
	)
)

func outcome(success bool) string {
	if success {
		return "success"
	}
	return "error"
}

// RecordOperation counts one domain operation such as "order_create" or "cart_merge".
func RecordOperation(operation string, success bool) {
	operations.WithLabelValues(operation, outcome(success)).Inc()
}

func RecordEvent(eventType string, success bool) {
	eventsPublished.WithLabelValues(eventType, outcome(success)).Inc()
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
