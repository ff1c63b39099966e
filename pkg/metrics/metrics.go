package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	UpstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "dashboard", Name: "upstream_requests_total", Help: "Number of requests issued to the upstream content API by method and status class."},
		[]string{"method", "status"},
	)
	StorageUploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "dashboard", Name: "storage_uploads_total", Help: "Number of storage upload attempts by outcome."},
		[]string{"outcome"},
	)
	StorageDeletes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "dashboard", Name: "storage_deletes_total", Help: "Number of storage delete attempts by outcome."},
		[]string{"outcome"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "dashboard", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "dashboard", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(UpstreamRequests)
	reg.MustRegister(StorageUploads)
	reg.MustRegister(StorageDeletes)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
