// Package latency simulates the fixed response delays of the advisory views.
package latency

import (
	"context"
	"time"
)

// Wait blocks for d or until ctx is done. A non-positive d returns immediately.
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
