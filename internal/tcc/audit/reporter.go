package audit

import (
	"context"
	"errors"

	"github.com/goodnatureofminers/tcc-settler/internal/tcc/coordinator"
	"github.com/goodnatureofminers/tcc-settler/internal/tcc/model"
	"go.uber.org/zap"
)

// LogReporter is the sink for coordinator task failures.
type LogReporter struct {
	logger  *zap.Logger
	metrics Metrics
}

func NewLogReporter(metrics Metrics, logger *zap.Logger) (*LogReporter, error) {
	if metrics == nil {
		return nil, errors.New("audit metrics is required")
	}
	return &LogReporter{logger: logger.Named("task_failures"), metrics: metrics}, nil
}

// ReportFailure logs err with its structured reason and counts it. Transactions
// skipped because the ledger already settled them are counted apart from failures.
func (r *LogReporter) ReportFailure(_ context.Context, tx model.LockedTransaction, err error) {
	reason := coordinator.Classify(err)
	fields := []zap.Field{
		zap.String("tx_id", tx.TxID.Hex()),
		zap.String("user", tx.User.Hex()),
		zap.String("amount", model.FormatAmount(tx.Amount)),
		zap.String("reason", string(reason)),
		zap.Error(err),
	}
	if errors.Is(err, coordinator.ErrAlreadySettled) {
		r.logger.Info("transaction skipped", fields...)
		r.metrics.ObserveTaskSkipped()
		return
	}
	r.logger.Error("transaction task failed", fields...)
	r.metrics.ObserveTaskFailure(string(reason))
}
