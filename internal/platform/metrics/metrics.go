package metrics

import (
	"time"

	"github.com/SscSPs/recharge_backend/internal/apperrors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recharge_operations_total",
		Help: "Coordinator operations, labeled by operation and outcome kind",
	}, []string{"operation", "outcome"})

	operationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "recharge_operation_duration_seconds",
		Help:    "Latency of coordinator operations including lock waits",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"operation"})

	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recharge_http_requests_total",
		Help: "Total HTTP requests processed, labeled by status code",
	}, []string{"method", "endpoint", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "recharge_http_request_duration_seconds",
		Help:    "Latency distribution of HTTP requests",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"method", "endpoint"})

	reconciliationDrift = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recharge_reconciliation_mismatches_total",
		Help: "Reconciliations whose ledger replay did not match the stored balance",
	})
)

// ObserveOperation records the outcome and latency of one coordinator call.
func ObserveOperation(operation string, started time.Time, err error) {
	operationsTotal.WithLabelValues(operation, apperrors.Kind(err)).Inc()
	operationDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

// ObserveHTTP records one served request. endpoint must be the route
// template, not the raw path.
func ObserveHTTP(method, endpoint, status string, elapsed time.Duration) {
	httpRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint).Observe(elapsed.Seconds())
}

// ReconciliationMismatch counts a failed reconciliation.
func ReconciliationMismatch() {
	reconciliationDrift.Inc()
}
