// Package metrics defines the custom Prometheus metrics for the identity
// API. It is the single source of truth for metric names, labels, and help
// strings; HTTP-level request metrics come from the echoprometheus
// middleware and are not declared here.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "identity"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts by outcome.
// Label:
//   - result: "success", "duplicate_email", "rejected", or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginThrottledTotal counts login requests rejected by the rate limiter
// before credentials were even checked.
var LoginThrottledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_throttled_total",
		Help:      "Total number of login requests rejected by the rate limiter.",
	},
)

// LoginDuration measures the full login flow, dominated by the bcrypt
// comparison.
var LoginDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "login_duration_seconds",
		Help:      "Duration of login handling from request decode to token issuance.",
		Buckets:   prometheus.DefBuckets,
	},
)
