package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pollTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tcc_settler",
		Subsystem: "event_poller",
		Name:      "polls_total",
		Help:      "Count of poll cycles.",
	}, []string{"network", "status"})

	pollDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tcc_settler",
		Subsystem: "event_poller",
		Name:      "poll_duration_seconds",
		Help:      "Duration of a poll cycle.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"network", "status"})

	pollScannedBlocks = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tcc_settler",
		Subsystem: "event_poller",
		Name:      "scanned_blocks",
		Help:      "Number of blocks scanned per poll cycle.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
	}, []string{"network"})

	pollEventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tcc_settler",
		Subsystem: "event_poller",
		Name:      "events_total",
		Help:      "Count of FundsLocked events by handling decision.",
	}, []string{"network", "decision"})

	pollCursor = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "tcc_settler",
		Subsystem: "event_poller",
		Name:      "cursor_height",
		Help:      "Last fully scanned block height.",
	}, []string{"network"})
)

// Event handling decisions reported by the poller.
const (
	DecisionDispatched      = "dispatched"
	DecisionDuplicate       = "duplicate"
	DecisionForeignProvider = "foreign_provider"
)

// EventPoller tracks metrics for the FundsLocked polling loop.
type EventPoller struct {
	network string
}

// NewEventPoller constructs an EventPoller metrics collector.
func NewEventPoller(network string) *EventPoller {
	return &EventPoller{network: orUnknown(network)}
}

// ObservePoll records a poll cycle outcome, its duration and how many blocks it covered.
func (m EventPoller) ObservePoll(err error, blocks uint64, started time.Time) {
	status := statusLabel(err)
	pollTotal.WithLabelValues(m.network, status).Inc()
	pollDuration.WithLabelValues(m.network, status).Observe(time.Since(started).Seconds())
	if err == nil && blocks > 0 {
		pollScannedBlocks.WithLabelValues(m.network).Observe(float64(blocks))
	}
}

// ObserveEvent records how a discovered event was handled.
func (m EventPoller) ObserveEvent(decision string) {
	pollEventsTotal.WithLabelValues(m.network, decision).Inc()
}

// SetCursor publishes the current poll cursor.
func (m EventPoller) SetCursor(height uint64) {
	pollCursor.WithLabelValues(m.network).Set(float64(height))
}
