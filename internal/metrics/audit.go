package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	clickhouseRepositoryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tcc_settler",
		Subsystem: "clickhouse_repository",
		Name:      "operations_total",
		Help:      "Count of repository operations.",
	}, []string{"operation", "status"})
	clickhouseRepositoryRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tcc_settler",
		Subsystem: "clickhouse_repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of repository operations.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30},
	}, []string{"operation", "status"})

	auditDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tcc_settler",
		Subsystem: "audit",
		Name:      "dropped_records_total",
		Help:      "Count of settlement audit records that could not be queued or flushed.",
	})

	taskFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tcc_settler",
		Subsystem: "audit",
		Name:      "task_failures_total",
		Help:      "Count of coordinator task failures routed to the supervisory reporter.",
	}, []string{"reason"})

	tasksSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tcc_settler",
		Subsystem: "audit",
		Name:      "tasks_skipped_total",
		Help:      "Count of coordinator tasks skipped because the ledger already settled the transaction.",
	})
)

// ClickhouseRepository tracks metrics for ClickHouse repository operations.
type ClickhouseRepository struct{}

// NewClickhouseRepository creates a ClickhouseRepository metrics collector.
func NewClickhouseRepository() *ClickhouseRepository {
	return &ClickhouseRepository{}
}

// Observe records duration and status of a repository operation.
func (m ClickhouseRepository) Observe(operation string, err error, started time.Time) {
	status := statusLabel(err)
	clickhouseRepositoryRequestsTotal.WithLabelValues(operation, status).Inc()
	clickhouseRepositoryRequestDuration.WithLabelValues(operation, status).Observe(time.Since(started).Seconds())
}

// Audit tracks the settlement audit pipeline and supervisory failure reports.
type Audit struct{}

// NewAudit creates an Audit metrics collector.
func NewAudit() *Audit {
	return &Audit{}
}

// ObserveDropped records audit rows that never reached storage.
func (Audit) ObserveDropped(records int) {
	auditDroppedTotal.Add(float64(records))
}

// ObserveTaskFailure records a task failure by structured reason.
func (Audit) ObserveTaskFailure(reason string) {
	taskFailuresTotal.WithLabelValues(orNone(reason)).Inc()
}

// ObserveTaskSkipped records a task skipped for an already settled transaction.
func (Audit) ObserveTaskSkipped() {
	tasksSkippedTotal.Inc()
}
