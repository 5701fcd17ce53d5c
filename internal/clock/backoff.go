// Package clock provides context-aware waiting helpers.
package clock

import (
	"context"
	"time"
)

// Sleep waits for the duration or returns early when ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Backoff waits for a linearly growing delay before the given retry
// attempt (1-based). A zero base returns immediately.
func Backoff(ctx context.Context, attempt int, base time.Duration) error {
	if base <= 0 || attempt <= 0 {
		return ctx.Err()
	}
	return Sleep(ctx, time.Duration(attempt)*base)
}
