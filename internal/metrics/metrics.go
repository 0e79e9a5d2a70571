package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Editor activity
	ContentWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsroom_content_writes_total",
			Help: "Total number of editor writes by record kind and action",
		},
		[]string{"kind", "action", "status"},
	)

	LoginAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsroom_login_attempts_total",
			Help: "Total number of editor sign-in attempts",
		},
		[]string{"status"},
	)

	// RabbitMQ metrics
	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsroom_events_published_total",
			Help: "Total number of content events published",
		},
		[]string{"kind", "status"},
	)

	ApplicationInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "application_info",
			Help: "Application information",
		},
		[]string{"service", "backend"},
	)
)

func Init(serviceName, backend string) {
	ApplicationInfo.WithLabelValues(serviceName, backend).Set(1)
}

// Status maps an error to the status label value.
func Status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
