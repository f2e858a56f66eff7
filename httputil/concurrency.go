package httputil

import (
	"context"
	"sync"
	"sync/atomic"
)

// MapWithConcurrency runs worker over items with at most concurrency
// goroutines, keeping results[i] aligned with items[i] regardless of
// completion order. The first worker error cancels the remaining work
// and is returned; partial results are discarded by the caller.
func MapWithConcurrency[T, U any](ctx context.Context, items []T, concurrency int, worker func(ctx context.Context, idx int, item T) (U, error)) ([]U, error) {
	results := make([]U, len(items))
	if len(items) == 0 {
		return results, nil
	}
	if concurrency > len(items) {
		concurrency = len(items)
	}
	if concurrency < 1 {
		concurrency = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		next     atomic.Int64
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	next.Store(-1)

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				idx := int(next.Add(1))
				if idx >= len(items) || ctx.Err() != nil {
					return
				}
				res, err := worker(ctx, idx, items[idx])
				if err != nil {
					errOnce.Do(func() { firstErr = err })
					cancel()
					return
				}
				results[idx] = res
			}
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}
