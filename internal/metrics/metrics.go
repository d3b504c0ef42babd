// Package metrics defines and registers all custom Prometheus metrics for the
// real-estate portal client. It is the single source of truth for metric
// names, labels, and help strings.
//
// Collectors are registered with the default registry through promauto at
// package init; the host exposes them on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Remote API metrics ───────────────────────────────────────────────────────

// APIRequestsTotal counts calls issued to the remote real-estate API.
// Labels:
//   - method: HTTP method
//   - endpoint: path template (e.g. "/properties/{id}")
//   - status: HTTP status code, or "network_error"
var APIRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Total number of requests sent to the remote API.",
	},
	[]string{"method", "endpoint", "status"},
)

// APIRequestDuration measures round-trip time of remote API calls.
var APIRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Duration of remote API calls, including body decoding.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "endpoint"},
)

// DegradedResultsTotal counts listing reads that fell back instead of failing.
// Label:
//   - operation: "list_properties" or "list_favorites"
var DegradedResultsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "degraded_results_total",
		Help:      "Total number of reads answered with a fallback result.",
	},
	[]string{"operation"},
)

// ── Session metrics ──────────────────────────────────────────────────────────

// SessionTeardownsTotal counts session clears.
// Label:
//   - reason: "logout" (user initiated) or "unauthorized" (server 401)
var SessionTeardownsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_teardowns_total",
		Help:      "Total number of session teardowns, by reason.",
	},
	[]string{"reason"},
)

// RouteDecisionsTotal counts route guard outcomes.
// Label:
//   - decision: "allow", "redirect_to_login" or "redirect_to_home"
var RouteDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "route_decisions_total",
		Help:      "Total number of route guard evaluations, by decision.",
	},
	[]string{"decision"},
)
