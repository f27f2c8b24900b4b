package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Session metrics
	SessionsOpenedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entitystore_sessions_opened_total",
			Help: "Total number of engine sessions opened",
		},
		[]string{"store"},
	)

	// Transaction metrics
	TransactionOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entitystore_transaction_operations_total",
			Help: "Total number of unit-of-work operations",
		},
		[]string{"operation", "status"},
	)

	TransactionsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "entitystore_transactions_in_flight",
			Help: "Number of units-of-work begun but not yet finalized",
		},
	)

	TransactionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "entitystore_transaction_duration_seconds",
			Help:    "Unit-of-work lifetimes from begin to commit or rollback",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Metadata binding metrics
	EntitiesBoundTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "entitystore_entities_bound_total",
			Help: "Total number of entity types bound into dictionaries",
		},
	)
)

// RecordTransactionOp increments the operation counter with a success/error status
func RecordTransactionOp(operation string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	TransactionOperationsTotal.WithLabelValues(operation, status).Inc()
}
