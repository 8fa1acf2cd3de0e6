package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	analyzerRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chaintrace7000",
		Subsystem: "analyzer",
		Name:      "runs_total",
		Help:      "Count of analysis runs.",
	}, []string{"kind", "status"})

	analyzerRunDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chaintrace7000",
		Subsystem: "analyzer",
		Name:      "run_duration_seconds",
		Help:      "Duration of analysis runs.",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12), // 50ms..102s
	}, []string{"kind", "status"})

	analyzerRunTransactions = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chaintrace7000",
		Subsystem: "analyzer",
		Name:      "run_transactions",
		Help:      "Number of transactions processed per run.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1..2048
	}, []string{"kind"})
)

// ObserveRun records one analysis run outcome with its transaction count.
func ObserveRun(kind string, txs int, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	analyzerRunsTotal.WithLabelValues(kind, status).Inc()
	analyzerRunDuration.WithLabelValues(kind, status).Observe(time.Since(started).Seconds())
	analyzerRunTransactions.WithLabelValues(kind).Observe(float64(txs))
}
