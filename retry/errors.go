package retry

import (
	"errors"
	"fmt"
)

// ExhaustedError is returned when every attempt in the budget failed.
// It wraps the last failure; Unwrap exposes it so errors.Is and
// errors.As reach the underlying cause.
type ExhaustedError struct {
	// Attempts holds every failure in order, index 0 = first attempt.
	Attempts []error

	// Err is the last observed failure.
	Err error
}

// Error implements the error interface.
func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("retry budget exhausted after %d attempts: %v", len(e.Attempts), e.Err)
}

// Unwrap returns the last observed failure.
func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// AbortedError is returned when the retry sequence stopped before the
// budget was spent, either because the retry predicate declined the
// failure or because the context was canceled between attempts. It wraps
// the last failure (or the context error).
type AbortedError struct {
	// Attempts holds every failure in order, index 0 = first attempt.
	Attempts []error

	// Err is the failure that stopped the sequence.
	Err error
}

// Error implements the error interface.
func (e *AbortedError) Error() string {
	return fmt.Sprintf("retry aborted after %d attempts: %v", len(e.Attempts), e.Err)
}

// Unwrap returns the failure that stopped the sequence.
func (e *AbortedError) Unwrap() error {
	return e.Err
}

// AttemptLog returns the ordered failure history attached to a terminal
// retry error, or nil when err does not carry one. The returned slice is
// a copy.
func AttemptLog(err error) []error {
	var attempts []error

	var exhausted *ExhaustedError
	var aborted *AbortedError
	switch {
	case errors.As(err, &exhausted):
		attempts = exhausted.Attempts
	case errors.As(err, &aborted):
		attempts = aborted.Attempts
	default:
		return nil
	}

	out := make([]error, len(attempts))
	copy(out, attempts)
	return out
}
