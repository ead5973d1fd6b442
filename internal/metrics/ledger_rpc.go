package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ledgerRPCRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tcc_settler",
		Subsystem: "ledger_rpc",
		Name:      "operations_total",
		Help:      "Count of ledger RPC operations.",
	}, []string{"operation", "network", "status"})
	ledgerRPCRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tcc_settler",
		Subsystem: "ledger_rpc",
		Name:      "operation_duration_seconds",
		Help:      "Duration of ledger RPC operations, including inclusion waits for settlements.",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120},
	}, []string{"operation", "network", "status"})
)

// LedgerRPC tracks metrics for calls to the ledger node.
type LedgerRPC struct {
	network string
}

// NewLedgerRPC constructs a metrics collector for ledger RPC calls.
func NewLedgerRPC(network string) *LedgerRPC {
	return &LedgerRPC{network: orUnknown(network)}
}

// Observe records a single RPC call outcome and duration.
func (m LedgerRPC) Observe(operation string, err error, started time.Time) {
	status := statusLabel(err)
	ledgerRPCRequestsTotal.WithLabelValues(operation, m.network, status).Inc()
	ledgerRPCRequestDuration.WithLabelValues(operation, m.network, status).Observe(time.Since(started).Seconds())
}
