package search

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_requests_total",
			Help: "Count of engine queries by path (search, related, recommend, similar, trending).",
		},
		[]string{"path"},
	)

	SearchFallbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_fallback_total",
			Help: "Count of fallback-stage activations by path and stage.",
		},
		[]string{"path", "stage"},
	)
)

func init() {
	prometheus.MustRegister(SearchRequestsTotal, SearchFallbackTotal)
}
