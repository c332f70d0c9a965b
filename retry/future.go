package retry

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrPanicRecovered is returned by a Future whose producing goroutine
// panicked, so waiters see an error instead of blocking forever.
var ErrPanicRecovered = errors.New("retry: panic recovered")

// Future is a deferred result handle: a value or failure that becomes
// available after the invocation that produced it has returned. A Future is
// resolved exactly once.
type Future[T any] struct {
	done chan struct{}
	once sync.Once
	val  T
	err  error
}

// DeferredFunc is a deferred unit of work: invoking it returns immediately
// with a handle that resolves to the result or failure later.
type DeferredFunc[T any] func(ctx context.Context) *Future[T]

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

func (f *Future[T]) resolve(val T, err error) {
	f.once.Do(func() {
		f.val = val
		f.err = err
		close(f.done)
	})
}

// Done returns a channel that is closed once the future is resolved.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait suspends cooperatively until the future resolves or ctx is done,
// whichever comes first. On cancellation it returns the context's
// cancellation cause; the future itself stays valid and may still resolve.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T

		if cause := context.Cause(ctx); cause != nil {
			return zero, cause
		}

		return zero, ctx.Err()
	}
}

// Go lifts a direct unit of work into a deferred one: op runs in its own
// goroutine and the returned Future resolves with its result. A panic in op
// resolves the future with an error wrapping ErrPanicRecovered.
func Go[T any](ctx context.Context, op Func[T]) *Future[T] {
	f := newFuture[T]()

	go func() {
		defer func() {
			if recovered := recover(); recovered != nil {
				var zero T

				f.resolve(zero, fmt.Errorf("%w: %v", ErrPanicRecovered, recovered))
			}
		}()

		val, err := op(ctx)
		f.resolve(val, err)
	}()

	return f
}

// WrapDeferred returns a deferred callable with the same signature as op.
// Invoking it returns immediately; a goroutine drives the retry loop,
// obtaining and awaiting one inner future per attempt, with inter-attempt
// waits performed cooperatively so concurrent work keeps progressing. The
// loop bookkeeping is shared with the direct mode, so both modes produce
// identical attempt counts, results, and log records for equivalent work.
//
// A panic in op resolves the outer future with an error wrapping
// ErrPanicRecovered, so waiters are never stranded and the process survives.
func WrapDeferred[T any](r *Retrier, op DeferredFunc[T]) DeferredFunc[T] {
	return func(ctx context.Context) *Future[T] {
		outer := newFuture[T]()

		go func() {
			defer func() {
				if recovered := recover(); recovered != nil {
					var zero T

					outer.resolve(zero, fmt.Errorf("%w: %v", ErrPanicRecovered, recovered))
				}
			}()

			val, err := run(ctx, r, func(ctx context.Context) (T, error) {
				return op(ctx).Wait(ctx)
			})
			outer.resolve(val, err)
		}()

		return outer
	}
}
