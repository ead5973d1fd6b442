package coordinator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/tcc-settler/internal/tcc/ledger"
	"github.com/goodnatureofminers/tcc-settler/internal/tcc/model"
	"go.uber.org/zap"
)

const unknownFailure = "generation failed"

// TransactionCoordinator drives a locked transaction through execution and settlement.
type TransactionCoordinator struct {
	logger   *zap.Logger
	executor Executor
	settler  Settler
	state    StateReader
	recorder Recorder
	metrics  CoordinatorMetrics
	prompt   string
	tracker  *stateTracker
}

// NewTransactionCoordinator builds a TransactionCoordinator. state may be nil,
// in which case the terminal-state check against the ledger is skipped.
func NewTransactionCoordinator(
	executor Executor,
	settler Settler,
	state StateReader,
	recorder Recorder,
	metrics CoordinatorMetrics,
	logger *zap.Logger,
) (*TransactionCoordinator, error) {
	if executor == nil {
		return nil, errors.New("executor is required")
	}
	if settler == nil {
		return nil, errors.New("settler is required")
	}
	if recorder == nil {
		return nil, errors.New("recorder is required")
	}
	if metrics == nil {
		return nil, errors.New("coordinator metrics is required")
	}
	return &TransactionCoordinator{
		logger:   logger.Named("coordinator"),
		executor: executor,
		settler:  settler,
		state:    state,
		recorder: recorder,
		metrics:  metrics,
		prompt:   model.DefaultPrompt,
		tracker:  newStateTracker(),
	}, nil
}

// Process runs the executor for tx and confirms on success or cancels otherwise.
// A confirm that failed before reaching the ledger also cancels. A confirm that
// failed after submission is returned without cancelling, since it may still be
// mined. A failed cancel is logged and not returned: the ledger's own timeout is
// the recovery path for such transactions.
func (c *TransactionCoordinator) Process(ctx context.Context, tx model.LockedTransaction) error {
	started := time.Now()
	logger := c.logger.With(
		zap.String("tx_id", tx.TxID.Hex()),
		zap.String("user", tx.User.Hex()),
		zap.String("amount", model.FormatAmount(tx.Amount)),
	)
	c.tracker.set(tx.TxID, model.TaskLocked)

	if state, err := c.checkSettleable(ctx, tx.TxID, logger); err != nil {
		c.tracker.set(tx.TxID, settledTaskState(state))
		c.finish(ctx, model.Settlement{
			TxID:      tx.TxID,
			Outcome:   model.OutcomeSkipped,
			Reason:    Classify(err),
			Message:   err.Error(),
			SettledAt: time.Now(),
		}, started)
		return err
	}

	c.tracker.set(tx.TxID, model.TaskExecuting)
	req := model.NewTaskRequest(tx, c.prompt)
	logger.Info("executing task", zap.String("request_id", req.RequestID.String()))

	execStarted := time.Now()
	res, err := c.executor.Execute(ctx, req)
	c.metrics.ObserveExecution(res.Success, err, execStarted)

	var (
		cancelReason string
		failure      model.FailureReason
	)
	switch {
	case err != nil:
		cancelReason = err.Error()
		failure = model.ReasonExecutorError
		logger.Warn("executor error, cancelling", zap.Error(err))
	case !res.Success || res.ResultRef == "":
		cancelReason = res.Error
		if cancelReason == "" {
			cancelReason = unknownFailure
		}
		failure = model.ReasonExecutorFailed
		logger.Info("executor failed, cancelling", zap.String("reason", cancelReason))
	default:
		settlement, err := c.settler.Confirm(ctx, tx.TxID, res.ResultRef)
		c.finish(ctx, settlement, started)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ledger.ErrNotSubmitted) {
			logger.Error("confirm failed after submission, leaving transaction to ledger timeout", zap.Error(err))
			return err
		}
		cancelReason = settlement.Message
		if cancelReason == "" {
			cancelReason = err.Error()
		}
		failure = model.ReasonConfirmFailed
		logger.Warn("confirm rejected before submission, cancelling", zap.Error(err))
	}

	settlement, err := c.settler.Cancel(ctx, tx, cancelReason)
	if err != nil {
		logger.Error("cancel failed, leaving transaction to ledger timeout",
			zap.Error(err),
			zap.String("failure_reason", string(settlement.Reason)),
		)
		c.finish(ctx, settlement, started)
		return nil
	}
	settlement.Reason = failure
	c.finish(ctx, settlement, started)
	return nil
}

// StateCounts reports how many transactions are in each coordinator state.
func (c *TransactionCoordinator) StateCounts() map[model.TaskState]int {
	return c.tracker.counts()
}

// State returns the coordinator's view of id.
func (c *TransactionCoordinator) State(id model.TxID) (model.TaskState, bool) {
	return c.tracker.get(id)
}

func (c *TransactionCoordinator) checkSettleable(ctx context.Context, id model.TxID, logger *zap.Logger) (model.LedgerState, error) {
	if c.state == nil {
		return model.StateLocked, nil
	}
	current, err := c.state.GetTransaction(ctx, id)
	if err != nil {
		logger.Warn("ledger state unavailable, continuing", zap.Error(err))
		return model.StateLocked, nil
	}
	if current.State.Terminal() {
		logger.Info("transaction already settled on ledger", zap.Stringer("state", current.State))
		return current.State, fmt.Errorf("%w: %s", ErrAlreadySettled, current.State)
	}
	return current.State, nil
}

func settledTaskState(s model.LedgerState) model.TaskState {
	if s == model.StateConfirmed {
		return model.TaskConfirmed
	}
	return model.TaskCancelled
}

func (c *TransactionCoordinator) finish(ctx context.Context, s model.Settlement, started time.Time) {
	switch s.Outcome {
	case model.OutcomeConfirmed:
		c.tracker.set(s.TxID, model.TaskConfirmed)
	case model.OutcomeCancelled:
		c.tracker.set(s.TxID, model.TaskCancelled)
	case model.OutcomeSkipped:
	default:
		c.tracker.set(s.TxID, model.TaskFailed)
	}
	c.metrics.ObserveSettlement(string(s.Outcome), string(s.Reason), started)
	c.recorder.Record(ctx, s)
}
