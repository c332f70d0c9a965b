// Package retry re-invokes failing units of work according to a configurable
// policy: attempt count, initial delay, multiplicative backoff, and a
// failure filter.
//
// A Retrier wraps a callable into a callable with the identical signature.
// At call time it drives a bounded loop: invoke, return on success, wait and
// retry on a matching failure, and propagate the last failure unchanged once
// attempts are exhausted. Failures the filter rejects propagate immediately,
// with no delay and no logging.
//
// Direct work (Do, DoValue, Wrap, WrapValue) blocks the caller end to end;
// the inter-attempt wait still honors context cancellation. Deferred work
// (Go, WrapDeferred) returns a Future immediately and drives the same loop
// off the calling goroutine, with cooperative waits throughout.
//
//	r, err := retry.New(retry.Policy{
//		MaxAttempts:   3,
//		InitialDelay:  100 * time.Millisecond,
//		BackoffFactor: 2.0,
//		Retryable:     retry.MatchErrors(ErrConnection),
//		Logger:        logger,
//	})
//	if err != nil {
//		return err
//	}
//
//	fetch := retry.WrapValue(r, client.Fetch)
//	body, err := fetch(ctx)
//
// Each failed, retryable attempt with attempts remaining emits one
// warning-level record; exhaustion emits one error-level record before the
// last failure is returned. The retrier never synthesizes failures of its
// own on the retry path.
package retry
