package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stellartoml",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "stellartoml",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
	resolveTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "stellartoml",
			Name:      "resolve_total",
			Help:      "Document resolutions by outcome.",
		},
		[]string{"outcome"},
	)
	resolveDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "stellartoml",
			Name:      "resolve_duration_seconds",
			Help:      "Document resolution duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, resolveTotal, resolveDuration)
	})
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}

// RecordResolve matches resolve.Observer.
func RecordResolve(outcome string, duration time.Duration) {
	RegisterMetrics()
	resolveTotal.WithLabelValues(outcome).Inc()
	resolveDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}
