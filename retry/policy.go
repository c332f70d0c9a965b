package retry

import (
	"errors"
	"fmt"
	"time"

	"github.com/LerianStudio/lib-retry/retry/log"
)

// Default policy values applied by New for unset fields.
const (
	DefaultMaxAttempts   = 5
	DefaultInitialDelay  = 0 * time.Second
	DefaultBackoffFactor = 1.0
)

// ErrInvalidPolicy is the sentinel error wrapped by New when a policy field
// is out of range.
var ErrInvalidPolicy = errors.New("invalid retry policy")

// Policy is the immutable retry configuration consumed by New. It is read
// once at construction and never mutated afterwards; per-call attempt state
// lives entirely inside each invocation.
type Policy struct {
	// MaxAttempts is the total number of attempts before the last failure
	// propagates. Zero means DefaultMaxAttempts; negative values are
	// rejected.
	MaxAttempts int

	// InitialDelay is the wait before the first retry. Negative values are
	// rejected.
	InitialDelay time.Duration

	// BackoffFactor multiplies the delay after each failed attempt. Zero
	// means DefaultBackoffFactor (no growth); negative values are rejected.
	BackoffFactor float64

	// Retryable decides which failures trigger another attempt. Failures it
	// rejects propagate immediately, unlogged. Nil means MatchAll.
	Retryable Matcher

	// Logger receives the per-attempt warning and exhaustion error records.
	// Nil means a no-op logger.
	Logger log.Logger
}

// DefaultPolicy returns the stock policy: five attempts, no delay, flat
// backoff, every failure retryable, silent logger.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:   DefaultMaxAttempts,
		InitialDelay:  DefaultInitialDelay,
		BackoffFactor: DefaultBackoffFactor,
		Retryable:     MatchAll(),
		Logger:        log.NewNop(),
	}
}

// normalized validates the policy and fills unset fields with defaults.
func (p Policy) normalized() (Policy, error) {
	if p.MaxAttempts < 0 {
		return Policy{}, fmt.Errorf("%w: MaxAttempts must be at least 1, got %d", ErrInvalidPolicy, p.MaxAttempts)
	}

	if p.InitialDelay < 0 {
		return Policy{}, fmt.Errorf("%w: InitialDelay must not be negative, got %s", ErrInvalidPolicy, p.InitialDelay)
	}

	if p.BackoffFactor < 0 {
		return Policy{}, fmt.Errorf("%w: BackoffFactor must not be negative, got %g", ErrInvalidPolicy, p.BackoffFactor)
	}

	if p.MaxAttempts == 0 {
		p.MaxAttempts = DefaultMaxAttempts
	}

	if p.BackoffFactor == 0 {
		p.BackoffFactor = DefaultBackoffFactor
	}

	if p.Retryable == nil {
		p.Retryable = MatchAll()
	}

	if p.Logger == nil {
		p.Logger = log.NewNop()
	}

	return p, nil
}
