package executor

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/goodnatureofminers/tcc-settler/internal/clock"
	"github.com/goodnatureofminers/tcc-settler/internal/tcc/model"
	"go.uber.org/zap"
)

const (
	DefaultDelay       = 10 * time.Second
	DefaultSuccessRate = 0.7

	refLength = 44
	// base58 without 0, O, I and l, as used by CIDv0 references.
	refAlphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
)

// Failure reasons reported by the simulated generator.
var FailureReasons = []string{
	"GPU resources exhausted",
	"generation timed out",
	"model load failed",
	"out of memory",
}

// Random is the subset of *rand.Rand used by the generator.
type Random interface {
	Float64() float64
	IntN(n int) int
}

// ImageGenerator simulates a paid image generation service. After a fixed delay
// it succeeds with probability successRate and returns an IPFS-style reference.
type ImageGenerator struct {
	logger      *zap.Logger
	delay       time.Duration
	successRate float64
	sleep       clock.SleepFunc

	mu  sync.Mutex
	rnd Random
}

// Option customizes an ImageGenerator.
type Option func(*ImageGenerator)

// WithRandom replaces the random source.
func WithRandom(r Random) Option {
	return func(g *ImageGenerator) { g.rnd = r }
}

// WithSleep replaces the delay implementation.
func WithSleep(sleep clock.SleepFunc) Option {
	return func(g *ImageGenerator) { g.sleep = sleep }
}

// NewImageGenerator constructs an ImageGenerator.
func NewImageGenerator(logger *zap.Logger, delay time.Duration, successRate float64, opts ...Option) (*ImageGenerator, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if delay < 0 {
		return nil, fmt.Errorf("delay must not be negative")
	}
	if successRate < 0 || successRate > 1 {
		return nil, fmt.Errorf("success rate must be within [0, 1], got %v", successRate)
	}

	g := &ImageGenerator{
		logger:      logger.Named("image_generator"),
		delay:       delay,
		successRate: successRate,
		sleep:       clock.SleepWithContext,
		rnd:         rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Execute performs the simulated work. Cancellation of ctx during the delay is
// returned as an error; a failed generation is a result with Success=false.
func (g *ImageGenerator) Execute(ctx context.Context, req model.TaskRequest) (model.TaskResult, error) {
	logger := g.logger.With(
		zap.String("request_id", req.RequestID.String()),
		zap.String("tx_id", req.TxID.Hex()),
		zap.String("prompt", req.Prompt),
	)
	logger.Info("generation started", zap.Duration("expected", g.delay))

	if g.delay > 0 {
		if err := g.sleep(ctx, g.delay); err != nil {
			return model.TaskResult{}, fmt.Errorf("generation interrupted: %w", err)
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.rnd.Float64() < g.successRate {
		ref := g.reference()
		logger.Info("generation succeeded", zap.String("result_ref", ref))
		return model.TaskResult{Success: true, ResultRef: ref}, nil
	}

	reason := FailureReasons[g.rnd.IntN(len(FailureReasons))]
	logger.Warn("generation failed", zap.String("reason", reason))
	return model.TaskResult{Success: false, Error: reason}, nil
}

func (g *ImageGenerator) reference() string {
	var b strings.Builder
	b.Grow(2 + refLength)
	b.WriteString("Qm")
	for range refLength {
		b.WriteByte(refAlphabet[g.rnd.IntN(len(refAlphabet))])
	}
	return b.String()
}
