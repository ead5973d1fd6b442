package coordinator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/tcc-settler/internal/metrics"
	"github.com/goodnatureofminers/tcc-settler/internal/tcc/model"
	"github.com/goodnatureofminers/tcc-settler/pkg/workerpool"
	"go.uber.org/zap"
)

// Scan summarizes one poll cycle. Ready lists the transactions that passed
// deduplication and the provider filter, in ledger order.
type Scan struct {
	From, To   uint64
	Head       uint64
	Events     int
	Duplicates int
	Foreign    int
	Ready      []model.LockedTransaction
}

// Blocks returns the number of blocks covered by the scan.
func (s Scan) Blocks() uint64 {
	if s.From == 0 || s.To < s.From {
		return 0
	}
	return s.To - s.From + 1
}

// EventPoller discovers FundsLocked events addressed to the provider.
type EventPoller struct {
	logger    *zap.Logger
	source    EventSource
	provider  common.Address
	maxRange  uint64
	cursor    *Cursor
	processed *ProcessedSet
	metrics   PollerMetrics
	workers   int
}

// NewEventPoller builds an EventPoller over shared cursor and dedup state.
func NewEventPoller(
	source EventSource,
	provider common.Address,
	maxRange uint64,
	cursor *Cursor,
	processed *ProcessedSet,
	metrics PollerMetrics,
	logger *zap.Logger,
) (*EventPoller, error) {
	if source == nil {
		return nil, errors.New("event source is required")
	}
	if metrics == nil {
		return nil, errors.New("poller metrics is required")
	}
	if cursor == nil || processed == nil {
		return nil, errors.New("cursor and processed set are required")
	}
	if maxRange == 0 {
		maxRange = DefaultMaxBlockRange
	}
	return &EventPoller{
		logger:    logger.Named("poller"),
		source:    source,
		provider:  provider,
		maxRange:  maxRange,
		cursor:    cursor,
		processed: processed,
		metrics:   metrics,
		workers:   blockTimeWorkerCount,
	}, nil
}

// Poll scans the next block range. On error the cursor is left unchanged and
// no event is marked as processed.
func (p *EventPoller) Poll(ctx context.Context) (Scan, error) {
	started := time.Now()
	scan, err := p.poll(ctx)
	p.metrics.ObservePoll(err, scan.Blocks(), started)
	return scan, err
}

func (p *EventPoller) poll(ctx context.Context) (Scan, error) {
	head, err := p.source.LatestHeight(ctx)
	if err != nil {
		return Scan{}, fmt.Errorf("latest height: %w", err)
	}

	cursor, seeded := p.cursor.Load()
	if !seeded {
		p.logger.Info("cursor not seeded, starting from head", zap.Uint64("head", head))
		p.metrics.SetCursor(p.cursor.Advance(head))
		return Scan{Head: head, From: head + 1, To: head}, nil
	}
	if head <= cursor {
		return Scan{Head: head, From: cursor + 1, To: cursor}, nil
	}

	scan := Scan{Head: head, From: cursor + 1, To: head}
	if scan.To-scan.From > p.maxRange {
		scan.To = scan.From + p.maxRange
	}

	events, err := p.source.FundsLockedEvents(ctx, scan.From, scan.To)
	if err != nil {
		return scan, fmt.Errorf("funds locked events [%d, %d]: %w", scan.From, scan.To, err)
	}
	scan.Events = len(events)

	times, err := p.blockTimes(ctx, p.candidates(events))
	if err != nil {
		return scan, err
	}

	for _, ev := range events {
		if !p.processed.MarkIfNew(ev.TxID) {
			scan.Duplicates++
			p.metrics.ObserveEvent(metrics.DecisionDuplicate)
			continue
		}
		if !model.SameAddress(ev.Service.Hex(), p.provider.Hex()) {
			scan.Foreign++
			p.metrics.ObserveEvent(metrics.DecisionForeignProvider)
			p.logger.Debug("event for another provider",
				zap.String("tx_id", ev.TxID.Hex()),
				zap.String("service", ev.Service.Hex()),
			)
			continue
		}

		p.logger.Info("funds locked",
			zap.String("tx_id", ev.TxID.Hex()),
			zap.String("user", ev.User.Hex()),
			zap.String("amount", model.FormatAmount(ev.Amount)),
			zap.Uint64("timeout", ev.Timeout),
			zap.Uint64("block", ev.BlockNumber),
		)
		scan.Ready = append(scan.Ready, model.LockedTransaction{
			TxID:     ev.TxID,
			User:     ev.User,
			Service:  ev.Service,
			Amount:   ev.Amount,
			Timeout:  ev.Timeout,
			LockTime: times[ev.BlockNumber],
		})
		p.metrics.ObserveEvent(metrics.DecisionDispatched)
	}

	p.metrics.SetCursor(p.cursor.Advance(scan.To))
	return scan, nil
}

// candidates returns the distinct block numbers of events that will be dispatched.
func (p *EventPoller) candidates(events []model.LockEvent) []uint64 {
	seen := make(map[uint64]struct{})
	var blocks []uint64
	for _, ev := range events {
		if p.processed.Contains(ev.TxID) || !model.SameAddress(ev.Service.Hex(), p.provider.Hex()) {
			continue
		}
		if _, ok := seen[ev.BlockNumber]; ok {
			continue
		}
		seen[ev.BlockNumber] = struct{}{}
		blocks = append(blocks, ev.BlockNumber)
	}
	return blocks
}

func (p *EventPoller) blockTimes(ctx context.Context, blocks []uint64) (map[uint64]uint64, error) {
	stamps, err := workerpool.Map(ctx, p.workers, blocks, p.source.BlockTime)
	if err != nil {
		return nil, fmt.Errorf("block time: %w", err)
	}
	times := make(map[uint64]uint64, len(blocks))
	for i, number := range blocks {
		times[number] = stamps[i]
	}
	return times, nil
}
