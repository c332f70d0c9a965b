package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/LerianStudio/lib-retry/retry/backoff"
	"github.com/LerianStudio/lib-retry/retry/log"
)

// Func is a direct unit of work: invoking it yields its result immediately.
type Func[T any] func(ctx context.Context) (T, error)

// Retrier re-invokes units of work according to its policy. Construct one
// with New; the zero value is not usable.
//
// A Retrier holds no mutable state: concurrent calls through the same
// Retrier are fully independent, each owning its own attempt counter and
// delay.
type Retrier struct {
	policy Policy

	// sleep performs the inter-attempt wait. Tests swap it to assert the
	// delay sequence without waiting.
	sleep func(ctx context.Context, d time.Duration) error
}

// New validates the policy, fills unset fields with defaults, and returns a
// Retrier bound to it. The policy is frozen at this point.
func New(policy Policy) (*Retrier, error) {
	normalized, err := policy.normalized()
	if err != nil {
		return nil, err
	}

	return &Retrier{
		policy: normalized,
		sleep:  backoff.SleepWithContext,
	}, nil
}

// Do runs an error-only unit of work under the retry policy.
func (r *Retrier) Do(ctx context.Context, op func(ctx context.Context) error) error {
	_, err := run(ctx, r, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})

	return err
}

// Wrap returns a callable with the same signature as op that drives the
// retry loop on every invocation.
func (r *Retrier) Wrap(op func(ctx context.Context) error) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return r.Do(ctx, op)
	}
}

// DoValue runs a value-returning unit of work under the retrier's policy,
// returning the first successful result or the final failure.
func DoValue[T any](ctx context.Context, r *Retrier, op Func[T]) (T, error) {
	return run(ctx, r, op)
}

// WrapValue returns a callable with the same signature as op that drives the
// retry loop on every invocation.
func WrapValue[T any](r *Retrier, op Func[T]) Func[T] {
	return func(ctx context.Context) (T, error) {
		return run(ctx, r, op)
	}
}

// run is the single retry loop behind the direct and deferred entry points.
// Attempt indexes are 1-based; the delay starts at InitialDelay and is
// multiplied by BackoffFactor after each failed, retryable attempt.
func run[T any](ctx context.Context, r *Retrier, op Func[T]) (T, error) {
	var zero T

	policy := r.policy
	logger := policy.Logger

	// One correlation id per outer call so the warning and exhaustion
	// records of a single run can be tied together.
	logger = logger.With(log.String("retry_id", uuid.NewString()))

	delay := policy.InitialDelay

	for attempt := 1; ; attempt++ {
		out, err := op(ctx)
		if err == nil {
			return out, nil
		}

		// Cancellation is not a failure of the work: propagate it
		// immediately, before the retryable filter sees it.
		if ctxErr := ctx.Err(); ctxErr != nil {
			if cause := context.Cause(ctx); cause != nil {
				return zero, cause
			}

			return zero, ctxErr
		}

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return zero, err
		}

		if !policy.Retryable(err) {
			return zero, err
		}

		if attempt >= policy.MaxAttempts {
			logger.Log(ctx, log.LevelError,
				fmt.Sprintf("All %d attempts failed. Last error: %v", policy.MaxAttempts, err),
				log.Int("max_attempts", policy.MaxAttempts),
				log.Err(err),
			)

			// The last failure propagates unchanged: same value, same chain.
			return zero, err
		}

		logger.Log(ctx, log.LevelWarn,
			fmt.Sprintf("Attempt %d/%d failed: %v. Retrying in %.2fs...",
				attempt, policy.MaxAttempts, err, delay.Seconds()),
			log.Int("attempt", attempt),
			log.Int("max_attempts", policy.MaxAttempts),
			log.Err(err),
			log.Duration("delay", delay),
		)

		if sleepErr := r.sleep(ctx, delay); sleepErr != nil {
			return zero, sleepErr
		}

		delay = backoff.Next(delay, policy.BackoffFactor)
	}
}
