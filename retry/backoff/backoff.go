package backoff

import (
	"context"
	"math"
	"time"
)

// maxDurationFloat is a backstop against float64 -> int64 overflow when
// converting a scaled delay back to a time.Duration.
const maxDurationFloat = float64(math.MaxInt64) - 1

// Delay returns the wait performed before attempt+1 in a retry run, which is
// initial * factor^(attempt-1) for attempt >= 1. The result is clamped to
// math.MaxInt64 on overflow. Non-positive initial delays, attempts below 1,
// and negative factors all yield 0.
func Delay(initial time.Duration, factor float64, attempt int) time.Duration {
	if initial <= 0 || attempt < 1 || factor < 0 {
		return 0
	}

	return clamp(float64(initial) * math.Pow(factor, float64(attempt-1)))
}

// Next applies one multiplicative backoff step to the current delay.
// The result is clamped to math.MaxInt64 on overflow. Non-positive current
// delays or factors yield 0.
func Next(current time.Duration, factor float64) time.Duration {
	if current <= 0 || factor <= 0 {
		return 0
	}

	return clamp(float64(current) * factor)
}

func clamp(scaled float64) time.Duration {
	if scaled >= maxDurationFloat {
		return time.Duration(math.MaxInt64)
	}

	if scaled <= 0 {
		return 0
	}

	return time.Duration(scaled)
}

// SleepWithContext sleeps for the specified duration but respects context
// cancellation. Returns nil if the sleep completes, or the context's
// cancellation cause if the context is cancelled first.
// Returns immediately (nil) for zero or negative durations.
func SleepWithContext(ctx context.Context, duration time.Duration) error {
	if duration <= 0 {
		return nil
	}

	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		if cause := context.Cause(ctx); cause != nil {
			return cause
		}

		return ctx.Err()
	}
}
