package coordinator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/tcc-settler/internal/tcc/model"
	"go.uber.org/zap"
)

// Config holds the polling parameters of a Service.
type Config struct {
	Provider      common.Address
	PollInterval  time.Duration
	MaxBlockRange uint64
}

// Status is a point-in-time view of a Service.
type Status struct {
	Listening    bool
	Provider     string
	Cursor       uint64
	CursorSeeded bool
	Processed    int
	InFlight     int64
	States       map[model.TaskState]int
}

type stateCounter interface {
	StateCounts() map[model.TaskState]int
}

// Service owns the poll loop and the tasks it dispatches. It replaces any
// process-wide listener state: everything lives on the struct and is released by Stop.
type Service struct {
	logger    *zap.Logger
	cfg       Config
	source    EventSource
	poller    *EventPoller
	processor Processor
	reporter  Reporter
	metrics   CoordinatorMetrics
	cursor    *Cursor
	processed *ProcessedSet

	mu        sync.Mutex
	listening bool
	cancel    context.CancelFunc
	done      chan struct{}

	tasks    sync.WaitGroup
	inFlight atomic.Int64
}

// NewService wires a poller over fresh cursor and dedup state.
func NewService(
	cfg Config,
	source EventSource,
	processor Processor,
	reporter Reporter,
	pollerMetrics PollerMetrics,
	metrics CoordinatorMetrics,
	logger *zap.Logger,
) (*Service, error) {
	if processor == nil {
		return nil, errors.New("processor is required")
	}
	if reporter == nil {
		return nil, errors.New("reporter is required")
	}
	if metrics == nil {
		return nil, errors.New("coordinator metrics is required")
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}

	logger = logger.With(zap.String("provider", cfg.Provider.Hex()))
	cursor := NewCursor()
	processed := NewProcessedSet()
	poller, err := NewEventPoller(source, cfg.Provider, cfg.MaxBlockRange, cursor, processed, pollerMetrics, logger)
	if err != nil {
		return nil, err
	}

	return &Service{
		logger:    logger.Named("service"),
		cfg:       cfg,
		source:    source,
		poller:    poller,
		processor: processor,
		reporter:  reporter,
		metrics:   metrics,
		cursor:    cursor,
		processed: processed,
	}, nil
}

// Start seeds the cursor at the current head, polls once immediately and then
// on every interval until Stop. Tasks run detached from ctx cancellation so
// that a started settlement is not abandoned halfway.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listening {
		return ErrAlreadyStarted
	}

	head, err := s.source.LatestHeight(ctx)
	if err != nil {
		return fmt.Errorf("seed cursor: %w", err)
	}
	s.cursor.Seed(head)
	s.logger.Info("listening for locked funds",
		zap.Uint64("from_block", head),
		zap.Duration("interval", s.cfg.PollInterval),
	)

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.listening = true

	go s.loop(runCtx, context.WithoutCancel(ctx), s.done)
	return nil
}

// Stop halts polling and clears dedup state and the cursor. In-flight tasks keep
// running; use Wait to drain them.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.listening {
		return
	}
	s.cancel()
	<-s.done
	s.processed.Reset()
	s.cursor.Reset()
	s.listening = false
	s.logger.Info("stopped listening", zap.Int64("in_flight", s.inFlight.Load()))
}

// Wait blocks until every dispatched task has finished or ctx is done.
func (s *Service) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.tasks.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns the current status.
func (s *Service) Snapshot() Status {
	s.mu.Lock()
	listening := s.listening
	s.mu.Unlock()

	cursor, seeded := s.cursor.Load()
	status := Status{
		Listening:    listening,
		Provider:     s.cfg.Provider.Hex(),
		Cursor:       cursor,
		CursorSeeded: seeded,
		Processed:    s.processed.Len(),
		InFlight:     s.inFlight.Load(),
	}
	if sc, ok := s.processor.(stateCounter); ok {
		status.States = sc.StateCounts()
	}
	return status
}

func (s *Service) loop(ctx, taskCtx context.Context, done chan<- struct{}) {
	defer close(done)

	s.pollOnce(ctx, taskCtx)

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.pollOnce(ctx, taskCtx)
		}
	}
}

func (s *Service) pollOnce(ctx, taskCtx context.Context) {
	scan, err := s.poller.Poll(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Warn("poll failed, retrying next tick", zap.Error(err))
		return
	}
	if scan.Events > 0 {
		s.logger.Debug("scanned blocks",
			zap.Uint64("from", scan.From),
			zap.Uint64("to", scan.To),
			zap.Uint64("head", scan.Head),
			zap.Int("events", scan.Events),
			zap.Int("ready", len(scan.Ready)),
		)
	}
	for _, tx := range scan.Ready {
		s.dispatch(taskCtx, tx)
	}
}

func (s *Service) dispatch(ctx context.Context, tx model.LockedTransaction) {
	s.tasks.Add(1)
	s.inFlight.Add(1)
	s.metrics.TaskStarted()

	go func() {
		defer s.tasks.Done()
		defer s.inFlight.Add(-1)
		defer s.metrics.TaskFinished()
		defer func() {
			if r := recover(); r != nil {
				s.reporter.ReportFailure(ctx, tx, fmt.Errorf("%w: %v", ErrTaskPanicked, r))
			}
		}()

		if err := s.processor.Process(ctx, tx); err != nil {
			s.reporter.ReportFailure(ctx, tx, err)
		}
	}()
}
