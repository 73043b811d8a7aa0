// Package metrics defines the custom Prometheus collectors of the listings
// API. HTTP request metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "realestate"

// ── Auth ──────────────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label result: "success", "invalid_credentials", "invalid_request" or "error".
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts self-registrations.
// Label result: "created", "email_taken", "invalid_request" or "error".
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

var LogoutsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logouts_total",
		Help:      "Total number of completed logouts.",
	},
)

// GateDecisionsTotal counts role-gate outcomes on protected routes.
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Access gate decisions on protected routes, by outcome.",
	},
	[]string{"outcome"},
)

// ── Properties ────────────────────────────────────────────────────────────────

var PropertyViewsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "property_views_total",
		Help:      "Total number of property detail views recorded.",
	},
)

// PropertyChangesTotal counts admin mutations.
// Label action: "create", "update" or "delete".
var PropertyChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "property_changes_total",
		Help:      "Total number of property mutations, by action.",
	},
	[]string{"action"},
)

// PropertyLikesTotal counts favourite toggles.
// Label action: "like" or "unlike".
var PropertyLikesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "property_likes_total",
		Help:      "Total number of like and unlike operations.",
	},
	[]string{"action"},
)
