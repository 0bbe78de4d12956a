// Package metrics defines all custom Prometheus metrics for the directory
// system. It is the single source of truth for metric names, labels, and help
// strings; metrics register with the default registry via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "directory"

// ── Simulated backend metrics ─────────────────────────────────────────────────

// SimulatedOpsTotal counts backend operations that ran their artificial delay.
// Label:
//   - op: "list", "get", "create", "update", "delete", "roles"
var SimulatedOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "simulated_ops_total",
		Help:      "Total number of simulated backend operations started, by operation.",
	},
	[]string{"op"},
)

// FaultsInjectedTotal counts operations aborted by the randomized fault roll.
var FaultsInjectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "faults_injected_total",
		Help:      "Total number of transient failures injected, by operation.",
	},
	[]string{"op"},
)

// SimulatedOpDuration measures the injected artificial delay per operation.
var SimulatedOpDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "simulated_op_duration_seconds",
		Help:      "Artificial latency applied to simulated backend operations.",
		Buckets:   []float64{.1, .2, .3, .4, .5, .6, .7, .8, 1},
	},
	[]string{"op"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "not_found", "invalid_credentials", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Confirmation metrics ──────────────────────────────────────────────────────

// ConfirmationsTotal counts confirmation-gate resolutions.
// Label:
//   - outcome: "confirmed", "cancelled", "replaced"
var ConfirmationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "confirmations_total",
		Help:      "Total number of confirmation requests resolved, by outcome.",
	},
	[]string{"outcome"},
)
