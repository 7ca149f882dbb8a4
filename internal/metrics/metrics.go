// Package metrics defines the Prometheus collectors of the dashboard. It is
// the single source of truth for metric names, labels and help strings.
//
// Collectors register with the default registry on import; /metrics serves them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dashboard"

// ── API client metrics ───────────────────────────────────────────────────────

// APIRequestsTotal counts outbound REST calls.
// Labels:
//   - method: HTTP method
//   - status: response status code, or "network_error" when no response arrived
var APIRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Total number of REST API calls, by method and status.",
	},
	[]string{"method", "status"},
)

// APIRequestDuration measures round-trip time of outbound REST calls.
var APIRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "api_request_duration_seconds",
		Help:      "Duration of REST API calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// SessionTerminationsTotal counts forced and voluntary logouts.
// Label:
//   - reason: "logout", "unauthorized" or "validation_failed"
var SessionTerminationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_terminations_total",
		Help:      "Total number of ended sessions, by reason.",
	},
	[]string{"reason"},
)

// ── Query cache metrics ──────────────────────────────────────────────────────

// QueryCacheTotal counts cache lookups.
// Label:
//   - result: "hit" (fresh entry), "stale" (entry refetched) or "miss"
var QueryCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "query_cache_total",
		Help:      "Total number of query cache lookups, by result.",
	},
	[]string{"result"},
)

// QueryRetriesTotal counts retried reads.
var QueryRetriesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "query_retries_total",
		Help:      "Total number of retried query attempts.",
	},
)

// QueryInvalidationsTotal counts cache entries dropped or marked stale by mutations.
var QueryInvalidationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "query_invalidations_total",
		Help:      "Total number of query cache entries invalidated.",
	},
)

// ── Page metrics ─────────────────────────────────────────────────────────────

// PageRendersTotal counts rendered dashboard pages.
// Labels:
//   - page: template name
//   - status: HTTP status sent
var PageRendersTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "page_renders_total",
		Help:      "Total number of rendered pages, by template and status.",
	},
	[]string{"page", "status"},
)

// RecoveredPanicsTotal counts panics caught by the error boundary.
var RecoveredPanicsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recovered_panics_total",
		Help:      "Total number of panics recovered while rendering a page.",
	},
)
