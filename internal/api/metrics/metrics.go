// Package metrics defines and registers the custom Prometheus metrics for the
// Trendwyse dashboard API. Collectors register with the default registry on
// package init through promauto; HTTP request metrics come from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "trendwyse"

// ── Analysis metrics ──────────────────────────────────────────────────────────

// AnalysesCreatedTotal counts analyses accepted for scoring.
// Label:
//   - module: module code (e.g. "M001")
var AnalysesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analyses_created_total",
		Help:      "Total number of analyses created, by module.",
	},
	[]string{"module"},
)

// AnalysisStartsTotal counts start requests by outcome.
// Label:
//   - outcome: "completed", "provider_failure", "not_found", "invalid_state", "in_progress" or "error"
var AnalysisStartsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "analysis_starts_total",
		Help:      "Total number of analysis start requests, by outcome.",
	},
	[]string{"outcome"},
)

// AnalysisStartDuration measures a start request end to end, which is
// dominated by the scoring provider round trip.
var AnalysisStartDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "analysis_start_duration_seconds",
		Help:      "Duration of analysis start requests including the scoring call.",
		Buckets:   []float64{.25, .5, 1, 2.5, 5, 10, 20, 30, 60},
	},
	[]string{"outcome"},
)

// AnalysisScore records the distribution of successful scores.
var AnalysisScore = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "analysis_score",
		Help:      "Scores assigned by the scoring provider.",
		Buckets:   prometheus.LinearBuckets(10, 10, 10),
	},
)

// ── Alert and assistant metrics ───────────────────────────────────────────────

// AlertsBroadcastTotal counts manually published alerts.
var AlertsBroadcastTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "alerts_broadcast_total",
		Help:      "Total number of alerts published by staff, by type.",
	},
	[]string{"type"},
)

// ChatRequestsTotal counts assistant messages.
// Label:
//   - outcome: "ok", "invalid" or "provider_failure"
var ChatRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_requests_total",
		Help:      "Total number of AI assistant chat requests, by outcome.",
	},
	[]string{"outcome"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - outcome: "ok", "invalid_credentials" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)
