package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chaintrace7000",
		Subsystem: "http_server",
		Name:      "requests_total",
		Help:      "Count of HTTP requests served.",
	}, []string{"method", "route", "code"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chaintrace7000",
		Subsystem: "http_server",
		Name:      "request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "code"})
)

// ObserveHTTPRequest records one served request against its matched route.
// Routes are templates, never raw paths, to keep cardinality bounded.
func ObserveHTTPRequest(method, route string, code int, started time.Time) {
	if route == "" {
		route = "unmatched"
	}
	status := strconv.Itoa(code)

	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route, status).Observe(time.Since(started).Seconds())
}
