// Package metrics defines the Prometheus collectors exposed on /metrics.
//
// Collectors are registered with the default registry at package init through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "datarijksnoord"

// HTTPRequestsTotal counts handled HTTP requests.
// Labels:
//   - method: HTTP verb
//   - route: chi route pattern (e.g. "/pins/{id}"), "unmatched" for unknown paths
//   - status: response status code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration measures request latency per route.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// MutationsTotal counts successful writes to the store.
// Labels:
//   - resource: "functie", "pin" or "user"
//   - action: "create", "update" or "delete"
var MutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutations_total",
		Help:      "Total number of successful create/update/delete operations.",
	},
	[]string{"resource", "action"},
)

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "unknown_user", "wrong_password" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts by result.",
	},
	[]string{"result"},
)
