package coordinator

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/tcc-settler/internal/tcc/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	EventSource interface {
		LatestHeight(ctx context.Context) (uint64, error)
		BlockTime(ctx context.Context, number uint64) (uint64, error)
		FundsLockedEvents(ctx context.Context, from, to uint64) ([]model.LockEvent, error)
	}
	SettlementLedger interface {
		LatestBlockTime(ctx context.Context) (uint64, error)
		Confirm(ctx context.Context, id model.TxID, resultHash common.Hash, tokenURI string) (model.Receipt, error)
		Cancel(ctx context.Context, id model.TxID, reason string) (model.Receipt, error)
	}
	StateReader interface {
		GetTransaction(ctx context.Context, id model.TxID) (model.LedgerTransaction, error)
	}
	Executor interface {
		Execute(ctx context.Context, req model.TaskRequest) (model.TaskResult, error)
	}
	Settler interface {
		Confirm(ctx context.Context, id model.TxID, resultRef string) (model.Settlement, error)
		Cancel(ctx context.Context, tx model.LockedTransaction, reason string) (model.Settlement, error)
	}
	Processor interface {
		Process(ctx context.Context, tx model.LockedTransaction) error
	}
	Recorder interface {
		Record(ctx context.Context, s model.Settlement)
	}
	Reporter interface {
		ReportFailure(ctx context.Context, tx model.LockedTransaction, err error)
	}

	PollerMetrics interface {
		ObservePoll(err error, blocks uint64, started time.Time)
		ObserveEvent(decision string)
		SetCursor(height uint64)
	}
	CoordinatorMetrics interface {
		ObserveExecution(success bool, err error, started time.Time)
		ObserveSettlement(outcome, reason string, started time.Time)
		ObserveCancelWait(waited time.Duration)
		TaskStarted()
		TaskFinished()
	}
)
