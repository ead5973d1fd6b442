// Package clock provides helpers for time-related operations.
package clock

import (
	"context"
	"time"
)

// SleepFunc is the signature shared by the sleeps in this package so callers can swap them in tests.
type SleepFunc func(context.Context, time.Duration) error

// SleepWithContext waits for the duration or returns early if the context is canceled.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// SleepDetached waits for the full duration regardless of ctx cancellation.
// Used for waits whose length is dictated by an external deadline that a local
// shutdown must not shorten.
func SleepDetached(ctx context.Context, d time.Duration) error {
	return SleepWithContext(context.WithoutCancel(ctx), d)
}
