// Package metrics holds the Prometheus collectors of the storefront API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts handled requests by method, route pattern and status code.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// CartMutations counts successful cart changes by operation
	// (add, update, remove, clear).
	CartMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cart_mutations_total",
			Help: "Total number of successful cart mutations",
		},
		[]string{"operation"},
	)

	// StorageFaults counts unexpected storage errors surfaced as 500s.
	StorageFaults = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_storage_faults_total",
			Help: "Total number of unexpected storage faults",
		},
	)
)
