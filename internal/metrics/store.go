package metrics

import "github.com/prometheus/client_golang/prometheus"

// Store query Prometheus metrics.
var (
	StoreQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docstats",
			Name:      "store_queries_total",
			Help:      "Total number of document store queries",
		},
		[]string{"query", "status"},
	)

	StoreQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docstats",
			Name:      "store_query_duration_seconds",
			Help:      "Document store query duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"query"},
	)

	StoreQueryHits = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docstats",
			Name:      "store_query_hits",
			Help:      "Number of documents matched per query",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		},
		[]string{"query"},
	)
)

var storeMetricsRegistered bool

// RegisterStoreMetrics registers Prometheus store metrics. Must be called once from main.
func RegisterStoreMetrics() {
	if storeMetricsRegistered {
		return
	}
	prometheus.MustRegister(StoreQueriesTotal)
	prometheus.MustRegister(StoreQueryDuration)
	prometheus.MustRegister(StoreQueryHits)
	storeMetricsRegistered = true
}
