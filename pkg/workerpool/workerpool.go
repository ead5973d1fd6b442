// Package workerpool provides bounded concurrent fan-out over a slice of work items.
package workerpool

import (
	"context"
	"sync"
)

// Map applies fn to every item using at most workerCount goroutines and returns
// the results in input order. The first error cancels the remaining work and is returned.
func Map[T, R any](
	ctx context.Context,
	workerCount int,
	items []T,
	fn func(context.Context, T) (R, error),
) ([]R, error) {
	if len(items) == 0 {
		return nil, ctx.Err()
	}
	if workerCount <= 0 {
		workerCount = 1
	}
	if workerCount > len(items) {
		workerCount = len(items)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]R, len(items))
	indexes := make(chan int)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range indexes {
				res, err := fn(ctx, items[idx])
				if err != nil {
					fail(err)
					continue
				}
				results[idx] = res
			}
		}()
	}

feed:
	for idx := range items {
		select {
		case <-ctx.Done():
			break feed
		case indexes <- idx:
		}
	}
	close(indexes)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
