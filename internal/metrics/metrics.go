package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// NotificationsSent tracks per-recipient send attempts by outcome.
	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "permit_notify_sent_total",
			Help: "Total number of per-recipient send attempts",
		},
		[]string{"kind", "status"},
	)

	// DispatchDuration tracks full fan-out duration per notification kind.
	DispatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "permit_notify_dispatch_duration_seconds",
			Help:    "Notification dispatch duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	// ValidationFailures tracks requests rejected before any send attempt.
	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "permit_notify_validation_failures_total",
			Help: "Total number of notification requests rejected by validation",
		},
		[]string{"kind"},
	)

	// RateLimitExceeded tracks requests rejected by the rate limiter.
	RateLimitExceeded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "permit_notify_rate_limit_exceeded_total",
			Help: "Total number of rate limit exceeded events",
		},
	)
)
