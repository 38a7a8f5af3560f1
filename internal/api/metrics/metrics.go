// Package metrics defines the custom Prometheus metrics for the notes API.
// It is the single source of truth for metric names, labels, and help strings.
//
// HTTP request metrics come from echoprometheus; the counters here track
// business outcomes the request metrics cannot tell apart.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "notes"

// Result label values.
const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts signup, login and logout attempts.
// Labels:
//   - op: "signup", "login" or "logout"
//   - result: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by operation and result.",
	},
	[]string{"op", "result"},
)

// TokensRevokedTotal counts tokens revoked through logout.
var TokensRevokedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_revoked_total",
		Help:      "Total number of access tokens revoked by logout.",
	},
)

// ── Note metrics ──────────────────────────────────────────────────────────────

// OperationsTotal counts note operations.
// Labels:
//   - op: "list", "create", "read", "update" or "delete"
//   - result: "success", "not_found" or "error"
var OperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "operations_total",
		Help:      "Total number of note operations, by operation and result.",
	},
	[]string{"op", "result"},
)
