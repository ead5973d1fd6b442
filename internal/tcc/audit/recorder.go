// Package audit persists settlement outcomes and reports task failures.
package audit

import (
	"context"
	"errors"
	"time"

	"github.com/goodnatureofminers/tcc-settler/internal/tcc/model"
	"github.com/goodnatureofminers/tcc-settler/pkg/batcher"
	"go.uber.org/zap"
)

const (
	flushSize     = 100
	flushInterval = 5 * time.Second
	flushRPS      = 10
)

// Recorder buffers settlement records and writes them in batches.
type Recorder struct {
	logger  *zap.Logger
	metrics Metrics
	batcher *batcher.Batcher[model.Settlement]
}

// NewRecorder builds a Recorder over repo.
func NewRecorder(repo SettlementWriter, metrics Metrics, logger *zap.Logger) (*Recorder, error) {
	if repo == nil {
		return nil, errors.New("settlement writer is required")
	}
	if metrics == nil {
		return nil, errors.New("audit metrics is required")
	}
	logger = logger.Named("audit")
	b := batcher.New(logger.Named("batcher"), repo.InsertSettlements, flushSize, flushInterval, flushRPS)
	b.OnFlushError(func(_ error, items int) {
		metrics.ObserveDropped(items)
	})
	return &Recorder{logger: logger, metrics: metrics, batcher: b}, nil
}

// Start begins background flushing.
func (r *Recorder) Start(ctx context.Context) {
	r.batcher.Start(ctx)
}

// Stop flushes buffered records and stops the background loop.
func (r *Recorder) Stop() {
	r.batcher.Stop()
}

// Record queues s. Records that cannot be queued are logged and counted as dropped.
func (r *Recorder) Record(ctx context.Context, s model.Settlement) {
	if s.SettledAt.IsZero() {
		s.SettledAt = time.Now().UTC()
	}
	if err := r.batcher.Add(ctx, s); err != nil {
		r.logger.Warn("settlement record dropped",
			zap.Error(err),
			zap.String("tx_id", s.TxID.Hex()),
			zap.String("outcome", string(s.Outcome)),
		)
		r.metrics.ObserveDropped(1)
	}
}

// NopRecorder discards records. Used when no audit store is configured.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, model.Settlement) {}
