package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	executionTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tcc_settler",
		Subsystem: "coordinator",
		Name:      "executions_total",
		Help:      "Count of service executor invocations by result.",
	}, []string{"network", "result"})

	executionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tcc_settler",
		Subsystem: "coordinator",
		Name:      "execution_duration_seconds",
		Help:      "Duration of service executor invocations.",
		Buckets:   []float64{.1, .5, 1, 2.5, 5, 10, 20, 30, 60, 120, 300},
	}, []string{"network", "result"})

	settlementTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tcc_settler",
		Subsystem: "coordinator",
		Name:      "settlements_total",
		Help:      "Count of finished coordinator tasks by outcome and failure reason.",
	}, []string{"network", "outcome", "reason"})

	settlementDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tcc_settler",
		Subsystem: "coordinator",
		Name:      "task_duration_seconds",
		Help:      "Duration of a coordinator task from dispatch to settlement decision.",
		Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600, 1800, 3600},
	}, []string{"network", "outcome"})

	cancelWaitSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tcc_settler",
		Subsystem: "coordinator",
		Name:      "cancel_wait_seconds",
		Help:      "Time spent waiting for the ledger timeout before cancelling.",
		Buckets:   []float64{0, 1, 5, 10, 30, 60, 120, 300, 600, 1800, 3600},
	}, []string{"network"})

	tasksInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "tcc_settler",
		Subsystem: "coordinator",
		Name:      "tasks_in_flight",
		Help:      "Number of dispatched transactions whose settlement is not finished.",
	}, []string{"network"})
)

// Coordinator tracks metrics for per-transaction processing.
type Coordinator struct {
	network string
}

// NewCoordinator constructs a Coordinator metrics collector.
func NewCoordinator(network string) *Coordinator {
	return &Coordinator{network: orUnknown(network)}
}

// ObserveExecution records one executor invocation.
func (m Coordinator) ObserveExecution(success bool, err error, started time.Time) {
	result := "success"
	switch {
	case err != nil:
		result = "error"
	case !success:
		result = "failure"
	}
	executionTotal.WithLabelValues(m.network, result).Inc()
	executionDuration.WithLabelValues(m.network, result).Observe(time.Since(started).Seconds())
}

// ObserveSettlement records how a task ended.
func (m Coordinator) ObserveSettlement(outcome, reason string, started time.Time) {
	settlementTotal.WithLabelValues(m.network, outcome, orNone(reason)).Inc()
	settlementDuration.WithLabelValues(m.network, outcome).Observe(time.Since(started).Seconds())
}

// ObserveCancelWait records the ledger-timeout wait before a cancel.
func (m Coordinator) ObserveCancelWait(waited time.Duration) {
	cancelWaitSeconds.WithLabelValues(m.network).Observe(waited.Seconds())
}

// TaskStarted increments the in-flight gauge.
func (m Coordinator) TaskStarted() {
	tasksInFlight.WithLabelValues(m.network).Inc()
}

// TaskFinished decrements the in-flight gauge.
func (m Coordinator) TaskFinished() {
	tasksInFlight.WithLabelValues(m.network).Dec()
}

func orNone(v string) string {
	if v == "" {
		return "none"
	}
	return v
}
