// Package batcher provides a generic buffered batch processor with rate limiting.
package batcher

import (
	"context"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// Config bounds a Batcher. RPS limits how often batches flush; FlushInterval
// drains partial batches that never reach FlushSize.
type Config struct {
	FlushSize     int
	FlushInterval time.Duration
	RPS           int
}

// Batcher buffers items and flushes them either by size or interval. Flushes
// pass through a token-bucket limiter so bursts of small batches stay polite.
type Batcher[T any] struct {
	cfg    Config
	flush  func(context.Context, []T) error
	items  chan T
	rl     ratelimit.Limiter
	logger *zap.Logger

	wg   sync.WaitGroup
	stop chan struct{}
}

// New constructs a Batcher invoking flush for every full or drained batch.
func New[T any](cfg Config, logger *zap.Logger, flush func(context.Context, []T) error) *Batcher[T] {
	if cfg.FlushSize < 1 {
		cfg.FlushSize = 1
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}
	if cfg.RPS < 1 {
		cfg.RPS = 1
	}
	return &Batcher[T]{
		cfg:    cfg,
		flush:  flush,
		items:  make(chan T, cfg.FlushSize*2),
		rl:     ratelimit.New(cfg.RPS),
		logger: logger,
		stop:   make(chan struct{}),
	}
}

// Start begins the background flushing loop.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.run(ctx)
}

// Stop drains buffered items through one final flush and waits for the loop
// to exit. After Stop returns every accepted item has been handed to flush.
func (b *Batcher[T]) Stop() {
	close(b.stop)
	b.wg.Wait()
}

// Add queues an item for batching, respecting context cancellation.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	select {
	case <-b.stop:
		return context.Canceled
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case b.items <- item:
		return nil
	}
}

func (b *Batcher[T]) run(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.cfg.FlushInterval)
	defer ticker.Stop()

	buf := make([]T, 0, b.cfg.FlushSize)

	doFlush := func() {
		if len(buf) == 0 {
			return
		}

		b.rl.Take()
		if err := b.flush(ctx, buf); err != nil {
			b.logger.Error("batch not flushed", zap.Error(err))
		} else {
			b.logger.Debug("batch flushed", zap.Int("size", len(buf)))
		}
		buf = buf[:0]
	}

	drain := func() {
		for {
			select {
			case item := <-b.items:
				buf = append(buf, item)
				if len(buf) >= b.cfg.FlushSize {
					doFlush()
				}
			default:
				doFlush()
				return
			}
		}
	}

	for {
		select {
		case <-ctx.Done():
			drain()
			return

		case <-b.stop:
			drain()
			return

		case item := <-b.items:
			buf = append(buf, item)
			if len(buf) >= b.cfg.FlushSize {
				doFlush()
			}

		case <-ticker.C:
			doFlush()
		}
	}
}
