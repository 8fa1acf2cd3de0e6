// Package clock provides cancellation-aware waits for paced API access.
package clock

import (
	"context"
	"time"
)

// SleepWithContext pauses for d or until the context ends, whichever comes
// first. A non-positive d returns immediately.
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
