// Package metrics defines and registers the business metrics of the
// inventory-sharing API. HTTP request metrics come from the echoprometheus
// middleware wired in the router; the counters here describe what happened
// inside the auth and item workflows.
//
// All metrics register with the default Prometheus registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bagibarang"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// OrganizationsRegisteredTotal counts successful registrations.
var OrganizationsRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "organizations_registered_total",
		Help:      "Total number of organizations registered.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "account_not_found", "wrong_password", "invalid" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Item metrics ──────────────────────────────────────────────────────────────

// ItemMutationsTotal counts successful item writes.
// Labels:
//   - operation: "create", "replay", "update" or "delete"
//   - disposition: "Donation", "Loan", "Sale" (empty for delete)
var ItemMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "item_mutations_total",
		Help:      "Total number of item writes, by operation and disposition.",
	},
	[]string{"operation", "disposition"},
)

// UploadsTotal counts photo uploads.
// Label:
//   - result: "stored", "rejected" or "failed"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of photo uploads, by result.",
	},
	[]string{"result"},
)
