package coordinator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/goodnatureofminers/tcc-settler/internal/clock"
	"github.com/goodnatureofminers/tcc-settler/internal/tcc/ledger"
	"github.com/goodnatureofminers/tcc-settler/internal/tcc/model"
	"github.com/goodnatureofminers/tcc-settler/pkg/safe"
	"go.uber.org/zap"
)

const maxWaitSeconds = int64(math.MaxInt64 / int64(time.Second))

// ResultHash encodes a result reference into the bytes32 proof stored on the ledger.
func ResultHash(ref string) common.Hash {
	return crypto.Keccak256Hash([]byte(ref))
}

// SettlementSubmitter performs confirm and cancel calls against the ledger.
type SettlementSubmitter struct {
	logger         *zap.Logger
	ledger         SettlementLedger
	metrics        CoordinatorMetrics
	buffer         time.Duration
	tokenURIPrefix string
	sleep          clock.SleepFunc
	now            func() time.Time
}

// SubmitterOption customizes a SettlementSubmitter.
type SubmitterOption func(*SettlementSubmitter)

// WithCancelBuffer sets the extra wait added after the remaining timeout.
func WithCancelBuffer(d time.Duration) SubmitterOption {
	return func(s *SettlementSubmitter) { s.buffer = d }
}

// WithTokenURIPrefix makes Confirm pass prefix+ref as the token URI, which
// selects the minting confirm overload.
func WithTokenURIPrefix(prefix string) SubmitterOption {
	return func(s *SettlementSubmitter) { s.tokenURIPrefix = prefix }
}

// NewSettlementSubmitter builds a SettlementSubmitter.
func NewSettlementSubmitter(l SettlementLedger, metrics CoordinatorMetrics, logger *zap.Logger, opts ...SubmitterOption) (*SettlementSubmitter, error) {
	if l == nil {
		return nil, errors.New("settlement ledger is required")
	}
	if metrics == nil {
		return nil, errors.New("coordinator metrics is required")
	}
	s := &SettlementSubmitter{
		logger:  logger.Named("settlement"),
		ledger:  l,
		metrics: metrics,
		buffer:  DefaultCancelBuffer,
		sleep:   clock.SleepDetached,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Confirm submits the confirm call for id with the hash of resultRef and waits for inclusion.
// Failures are returned as is; the call is never retried here.
func (s *SettlementSubmitter) Confirm(ctx context.Context, id model.TxID, resultRef string) (model.Settlement, error) {
	hash := ResultHash(resultRef)
	var tokenURI string
	if s.tokenURIPrefix != "" {
		tokenURI = s.tokenURIPrefix + resultRef
	}

	logger := s.logger.With(zap.String("tx_id", id.Hex()), zap.String("result_ref", resultRef))
	logger.Info("submitting confirm", zap.String("result_hash", hash.Hex()), zap.String("token_uri", tokenURI))

	settlement := model.Settlement{
		TxID:       id,
		ResultRef:  resultRef,
		ResultHash: hash,
	}
	receipt, err := s.ledger.Confirm(ctx, id, hash, tokenURI)
	settlement.SettledAt = s.now()
	if err != nil {
		settlement.Outcome = model.OutcomeFailed
		settlement.Reason = Classify(err)
		settlement.Message = err.Error()
		return settlement, fmt.Errorf("confirm %s: %w", id.Hex(), err)
	}

	settlement.Outcome = model.OutcomeConfirmed
	settlement.TxHash = receipt.TxHash
	settlement.BlockNumber = receipt.BlockNumber
	logger.Info("confirmed", zap.String("tx_hash", receipt.TxHash.Hex()), zap.Uint64("block", receipt.BlockNumber))
	return settlement, nil
}

// Cancel refunds tx with reason. When the ledger timeout has not elapsed yet it
// first waits for the remaining ledger time plus the buffer. Once started, the
// wait and the submission both run to completion even if ctx is cancelled; ctx
// values are kept.
func (s *SettlementSubmitter) Cancel(ctx context.Context, tx model.LockedTransaction, reason string) (model.Settlement, error) {
	ctx = context.WithoutCancel(ctx)
	logger := s.logger.With(zap.String("tx_id", tx.TxID.Hex()), zap.String("reason", reason))
	settlement := model.Settlement{TxID: tx.TxID, Message: reason}
	fail := func(err error) (model.Settlement, error) {
		settlement.Outcome = model.OutcomeFailed
		settlement.Reason = Classify(err)
		settlement.Message = err.Error()
		settlement.SettledAt = s.now()
		return settlement, fmt.Errorf("cancel %s: %w", tx.TxID.Hex(), err)
	}

	now, err := s.ledger.LatestBlockTime(ctx)
	if err != nil {
		return fail(fmt.Errorf("ledger time: %w", err))
	}

	wait, err := s.cancelWait(tx, now)
	if err != nil {
		return fail(err)
	}
	if wait > 0 {
		logger.Info("waiting for ledger timeout before cancel",
			zap.Uint64("ledger_time", now),
			zap.Uint64("deadline", tx.Deadline()),
			zap.Duration("wait", wait),
		)
		if err := s.sleep(ctx, wait); err != nil {
			return fail(fmt.Errorf("timeout wait: %w", err))
		}
		s.metrics.ObserveCancelWait(wait)
	}

	logger.Info("submitting cancel")
	receipt, err := s.ledger.Cancel(ctx, tx.TxID, reason)
	if err != nil {
		if errors.Is(err, ledger.ErrNotTimedOut) {
			logger.Warn("cancel rejected: ledger timeout not reached, counterparty may cancel after expiry", zap.Error(err))
		}
		return fail(err)
	}

	settlement.Outcome = model.OutcomeCancelled
	settlement.TxHash = receipt.TxHash
	settlement.BlockNumber = receipt.BlockNumber
	settlement.SettledAt = s.now()
	logger.Info("cancelled", zap.String("tx_hash", receipt.TxHash.Hex()), zap.Uint64("block", receipt.BlockNumber))
	return settlement, nil
}

// cancelWait returns how long to wait so that the ledger time at submission is
// past the transaction deadline. Zero means the timeout already elapsed.
func (s *SettlementSubmitter) cancelWait(tx model.LockedTransaction, ledgerNow uint64) (time.Duration, error) {
	deadline := tx.Deadline()
	if deadline < tx.LockTime {
		return 0, fmt.Errorf("deadline overflows: lock time %d, timeout %d", tx.LockTime, tx.Timeout)
	}
	if ledgerNow >= deadline {
		return 0, nil
	}
	remaining, err := safe.Int64(deadline - ledgerNow)
	if err != nil || remaining > maxWaitSeconds {
		return 0, fmt.Errorf("remaining timeout %d out of range", deadline-ledgerNow)
	}
	return time.Duration(remaining)*time.Second + s.buffer, nil
}
