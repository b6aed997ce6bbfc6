// Package metrics defines and registers all custom Prometheus metrics for
// the campus calendar API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics register with the default Prometheus registry via promauto at
// package load; the /metrics endpoint is mounted by the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "calendar"

// ── Authorization metrics ─────────────────────────────────────────────────────

// GateDecisionsTotal counts decisions made by the route authorization gate.
// Label:
//   - decision: "allow", "redirect_home", "unauthenticated", "forbidden"
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of route authorization gate decisions, by outcome.",
	},
	[]string{"decision"},
)

// SignInsTotal counts sign-in attempts.
// Label:
//   - result: "success" or "failure" (failures are never broken down further,
//     matching the generic invalid-credentials surface)
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of sign-in attempts, by result.",
	},
	[]string{"result"},
)

// SessionRevocationsTotal counts sign-out revocations written to the
// revocation store.
var SessionRevocationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_revocations_total",
		Help:      "Total number of session tokens revoked via sign-out.",
	},
)

// ── Domain metrics ────────────────────────────────────────────────────────────

// EventMutationsTotal counts calendar event writes.
// Label:
//   - op: "create", "update", or "delete"
var EventMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "event_mutations_total",
		Help:      "Total number of calendar event mutations, by operation.",
	},
	[]string{"op"},
)

// AccountMutationsTotal counts user-management writes.
// Label:
//   - op: "create", "role_update", "delete", "password_change"
var AccountMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "account_mutations_total",
		Help:      "Total number of account mutations, by operation.",
	},
	[]string{"op"},
)
