package llmrouter

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Query outcome labels.
const (
	outcomeSuccess    = "success"
	outcomeFailure    = "failure"
	outcomeUnroutable = "unroutable"
)

var (
	queriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llmcouncil_provider_queries_total",
			Help: "Provider queries by provider and outcome.",
		},
		[]string{"provider", "outcome"},
	)

	queryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llmcouncil_provider_query_seconds",
			Help:    "Provider query latency in seconds.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"provider"},
	)
)

// observeQuery records one query outcome. Unroutable queries carry no
// latency sample since no backend was contacted.
func observeQuery(provider, outcome string, elapsed time.Duration) {
	queriesTotal.WithLabelValues(provider, outcome).Inc()
	if elapsed > 0 {
		queryDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
	}
}
