package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path"},
	)

	APIRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_requests_in_flight",
			Help: "Number of API requests currently being processed",
		},
	)

	APIRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	AuthTokensIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_tokens_issued_total",
			Help: "Total number of authentication tokens issued",
		},
	)

	AuthTokensCleared = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_tokens_cleared_total",
			Help: "Total number of authentication tokens cleared on logout",
		},
	)

	AuthFailedLogins = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_failed_logins_total",
			Help: "Total number of failed login attempts",
		},
	)
)
