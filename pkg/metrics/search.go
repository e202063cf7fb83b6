package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the search HTTP handlers
	SearchHandlerLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "search_handler_latency_seconds",
		Help:    "Latency of search engine HTTP handlers",
		Buckets: prometheus.DefBuckets,
	}, []string{"path"})

	// Total number of search API requests served
	SearchHandlerRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "search_handler_requests_total",
		Help: "Total number of search engine HTTP requests",
	}, []string{"path", "status"})
)

func Init() {
	prometheus.MustRegister(
		SearchHandlerLatency,
		SearchHandlerRequests,
	)
}
