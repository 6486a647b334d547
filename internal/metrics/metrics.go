package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled HTTP requests by method, path and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pfp_http_requests_total",
			Help: "Handled HTTP requests by method, path and status",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration tracks request latency by method and path
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pfp_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// OwnershipChecksTotal counts ownership verifications by standard and outcome.
	// Outcome is one of: owned, not_owned, error.
	OwnershipChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pfp_ownership_checks_total",
			Help: "Token ownership verifications by standard and outcome",
		},
		[]string{"standard", "outcome"},
	)

	// StaleProfiles reports how many stored references failed their last
	// sweep re-verification
	StaleProfiles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pfp_stale_profiles",
			Help: "Profile entries whose stored reference no longer verifies",
		},
	)
)
