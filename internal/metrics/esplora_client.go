package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	esploraRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chaintrace7000",
		Subsystem: "esplora_client",
		Name:      "operations_total",
		Help:      "Count of Esplora API operations.",
	}, []string{"operation", "network", "status"})
	esploraRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chaintrace7000",
		Subsystem: "esplora_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of Esplora API operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "network", "status"})
)

// EsploraClient tracks metrics for calls against an Esplora instance.
type EsploraClient struct {
	network string
}

// NewEsploraClient constructs a metrics collector for Esplora calls.
func NewEsploraClient(network string) *EsploraClient {
	if network == "" {
		network = "unknown"
	}
	return &EsploraClient{network: network}
}

// Observe records a single API call outcome and duration.
func (m EsploraClient) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	esploraRequestsTotal.WithLabelValues(operation, m.network, status).Inc()
	esploraRequestDuration.WithLabelValues(operation, m.network, status).Observe(time.Since(started).Seconds())
}
