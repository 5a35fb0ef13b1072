package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Dispatch metrics
	EventsDispatched = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hutch_events_dispatched_total",
			Help: "Total number of events dispatched, by claim outcome",
		},
		[]string{"outcome"},
	)

	GateFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hutch_gate_failures_total",
			Help: "Total number of gate failures converted to error events",
		},
		[]string{"gate"},
	)

	PendingEvents = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "hutch_pending_events",
			Help: "Number of unclaimed events waiting in the pending set",
		},
	)

	// Batch metrics
	BatchesApplied = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hutch_batches_applied_total",
			Help: "Total number of mutation batches applied",
		},
	)

	BatchesRejected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hutch_batches_rejected_total",
			Help: "Total number of mutation batches rejected by validation or failed during application",
		},
	)

	BatchOpsApplied = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hutch_batch_ops_applied_total",
			Help: "Total number of batch operations applied, by kind",
		},
		[]string{"op"},
	)

	// API metrics
	APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hutch_api_requests_total",
			Help: "Total number of API requests by method, route, and status",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hutch_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

func init() {
	// Register all metrics with the default registry
	prometheus.MustRegister(EventsDispatched)
	prometheus.MustRegister(GateFailures)
	prometheus.MustRegister(PendingEvents)
	prometheus.MustRegister(BatchesApplied)
	prometheus.MustRegister(BatchesRejected)
	prometheus.MustRegister(BatchOpsApplied)
	prometheus.MustRegister(APIRequestsTotal)
	prometheus.MustRegister(APIRequestDuration)
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
