package retry

import "errors"

// Matcher reports whether a failure is eligible for another attempt.
// Failures it rejects propagate to the caller on first occurrence.
type Matcher func(error) bool

// MatchAll retries every failure. It is the default filter.
func MatchAll() Matcher {
	return func(error) bool { return true }
}

// MatchErrors retries failures whose chain matches any of the given targets,
// in the sense of errors.Is. Wrapped errors therefore match their wrappers'
// targets, which is the Go rendering of "kind or subtype of any listed kind".
func MatchErrors(targets ...error) Matcher {
	return func(err error) bool {
		for _, target := range targets {
			if errors.Is(err, target) {
				return true
			}
		}

		return false
	}
}

// MatchOf retries failures whose chain contains an error of type T, in the
// sense of errors.As.
func MatchOf[T error]() Matcher {
	return func(err error) bool {
		var target T

		return errors.As(err, &target)
	}
}

// MatchAny combines matchers; a failure retries if any matcher accepts it.
func MatchAny(matchers ...Matcher) Matcher {
	return func(err error) bool {
		for _, matcher := range matchers {
			if matcher != nil && matcher(err) {
				return true
			}
		}

		return false
	}
}
