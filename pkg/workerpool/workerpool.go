// Package workerpool provides simple concurrent processing utilities.
package workerpool

import (
	"context"
	"sync"
)

// Map runs a bounded worker pool over items and collects one result per item,
// preserving order. If process returns an error the pool cancels the context,
// stops handing out further work and returns the error; results produced so
// far are discarded. Per-item "soft" failures belong inside process (return a
// zero result), so a batch degrades instead of aborting.
func Map[T, R any](
	ctx context.Context,
	workerCount int,
	items []T,
	process func(context.Context, T) (R, error),
	onCancel func(),
) ([]R, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if workerCount < 1 {
		workerCount = 1
	}

	results := make([]R, len(items))
	indexes := make(chan int, workerCount)
	errs := make(chan error, workerCount)

	wg := sync.WaitGroup{}
	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case idx, ok := <-indexes:
					if !ok {
						return
					}
					res, err := process(ctx, items[idx])
					if err != nil {
						select {
						case errs <- err:
						default:
						}
						if onCancel != nil {
							onCancel()
						}
						cancel()
						return
					}
					results[idx] = res
				}
			}
		}()
	}

	go func() {
		for idx := range items {
			select {
			case <-ctx.Done():
				close(indexes)
				return
			case indexes <- idx:
			}
		}
		close(indexes)
	}()

	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
