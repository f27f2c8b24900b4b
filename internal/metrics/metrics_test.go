package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestMetricsRegistration(t *testing.T) {
	// Create new instances to avoid conflicts with the global registry
	registry := prometheus.NewRegistry()

	sessions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "test_sessions_opened_total",
			Help: "Test sessions opened",
		},
		[]string{"store"},
	)

	txOps := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "test_transaction_operations_total",
			Help: "Test transaction operations",
		},
		[]string{"operation", "status"},
	)

	inFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "test_transactions_in_flight",
			Help: "Test in-flight transactions",
		},
	)

	if err := registry.Register(sessions); err != nil {
		t.Fatalf("Failed to register sessions metric: %v", err)
	}
	if err := registry.Register(txOps); err != nil {
		t.Fatalf("Failed to register transaction operations metric: %v", err)
	}
	if err := registry.Register(inFlight); err != nil {
		t.Fatalf("Failed to register in-flight metric: %v", err)
	}

	sessions.WithLabelValues("factory").Inc()
	txOps.WithLabelValues("commit", "success").Inc()
	inFlight.Set(3)

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}
	if len(metricFamilies) != 3 {
		t.Errorf("Expected 3 metric families, got %d", len(metricFamilies))
	}
}

func TestRecordTransactionOp(t *testing.T) {
	// Should not panic for either status path
	RecordTransactionOp("begin", nil)
	RecordTransactionOp("commit", errors.New("boom"))
}
