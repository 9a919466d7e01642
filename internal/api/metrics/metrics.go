// Package metrics defines the Prometheus metrics of the taskboard service. It
// is the single source of truth for metric names, labels and help strings.
//
// All metrics register with the default registry on import and are served
// at GET /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskboard"

// ── Store metrics ─────────────────────────────────────────────────────────────

// StoreActionsTotal counts actions applied by the store.
// Label:
//   - action: the action kind (e.g. "add_task", "set_current_user")
var StoreActionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_actions_total",
		Help:      "Total number of actions applied to the store, by kind.",
	},
	[]string{"action"},
)

// LoadDuration measures the initial load.
// Label:
//   - outcome: "ok", "error" or "abandoned"
var LoadDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "load_duration_seconds",
		Help:      "Duration of the initial data load, including the simulated delay.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"outcome"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "not_found", "invalid_credentials", "invalid_role" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionRestoresTotal counts startup restores of the persisted session.
// Label:
//   - outcome: "restored", "absent", "corrupt" or "error"
var SessionRestoresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_restores_total",
		Help:      "Total number of persisted session restores, by outcome.",
	},
	[]string{"outcome"},
)

// ── HTTP metrics ──────────────────────────────────────────────────────────────

// HTTPRequestsTotal counts served requests.
// Labels:
//   - method, route (the registered path, e.g. "/v1/tasks/:id"), code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests, by method, route and status code.",
	},
	[]string{"method", "route", "code"},
)

// HTTPRequestDuration measures request latency.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests, by method and route.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// ObserveRequest records one served request.
func ObserveRequest(method, route string, code int, elapsed time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveLoad records the end of the initial load.
func ObserveLoad(outcome string, elapsed time.Duration) {
	LoadDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}
