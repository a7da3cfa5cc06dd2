package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	GatewayRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "cryptoview", Name: "gateway_requests_total", Help: "Number of executed gateway operations by operation and status code."},
		[]string{"operation", "status"},
	)
	UpstreamFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "cryptoview", Name: "upstream_fetches_total", Help: "Number of upstream proxy fetches by provider and result."},
		[]string{"provider", "result"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "cryptoview", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "cryptoview", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(GatewayRequests)
	reg.MustRegister(UpstreamFetches)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
