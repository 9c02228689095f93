// Package metrics defines and registers all custom Prometheus metrics for
// the platform security service. It is the single source of truth for
// metric names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at package load;
// the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "navyk_security"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokenRefreshesTotal counts successful session token refreshes,
// including the proactive refresh of a near-expiry stored token.
var TokenRefreshesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total number of session tokens refreshed.",
	},
)

// ActiveSessions tracks the number of live client sessions.
var ActiveSessions = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Current number of live client sessions.",
	},
)

// RateLimitedTotal counts SecureFetch calls rejected by the request
// counter before any network I/O.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_requests_total",
		Help:      "Total number of outbound requests rejected by the rate limiter.",
	},
)

// ── Incident metrics ──────────────────────────────────────────────────────────

// IncidentsReportedTotal counts incidents appended to session logs.
// Label:
//   - type: incident type (login_attempt, csrf_attempt, xss_attempt,
//     unusual_activity, multiple_requests)
var IncidentsReportedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "incidents_reported_total",
		Help:      "Total number of security incidents reported, by type.",
	},
	[]string{"type"},
)

// IncidentsAuditedTotal counts incidents persisted to the audit trail.
// Label:
//   - type: incident type
var IncidentsAuditedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "incidents_audited_total",
		Help:      "Total number of security incidents persisted to the audit trail.",
	},
	[]string{"type"},
)

// IncidentsErrorsTotal counts incidents that failed audit processing.
// Label:
//   - reason: short description of the failure (e.g. "insert_failed")
var IncidentsErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "incidents_errors_total",
		Help:      "Total number of security incidents that failed audit processing.",
	},
	[]string{"reason"},
)

// IncidentsDedupTotal counts audit deduplication decisions.
// Label:
//   - result: "hit" (replay, skipped) or "miss" (new incident, persisted)
var IncidentsDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "incidents_dedup_total",
		Help:      "Total number of audit deduplication checks, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// AuditQueueDepth tracks the current number of records waiting in each
// audit worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of incident records pending in each audit worker channel.",
	},
	[]string{"worker_id"},
)

// ThreatLevel exposes each session's derived threat level as a numeric
// gauge: 0 low, 1 medium, 2 high.
// Label:
//   - client_id: owning client session
var ThreatLevel = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "threat_level",
		Help:      "Derived threat level per client session (0 low, 1 medium, 2 high).",
	},
	[]string{"client_id"},
)
