package retry

import (
	"context"
	"errors"

	"github.com/sony/gobreaker"
)

// WithBreaker wraps op so every attempt runs through the given circuit
// breaker. While the circuit is open, attempts fail fast with
// gobreaker.ErrOpenState without invoking op; combine with
// SkipOpenCircuit so the executor stops retrying against an open
// circuit.
func WithBreaker[T any](cb *gobreaker.CircuitBreaker, op Operation[T]) Operation[T] {
	return func(ctx context.Context) (T, error) {
		result, err := cb.Execute(func() (any, error) {
			return op(ctx)
		})
		if err != nil {
			var zero T
			return zero, err
		}
		value, ok := result.(T)
		if !ok {
			var zero T
			return zero, err
		}
		return value, nil
	}
}

// SkipOpenCircuit wraps next so failures caused by an open or saturated
// circuit breaker are never retried.
func SkipOpenCircuit(next Condition) Condition {
	return func(err error) bool {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return false
		}
		if next == nil {
			return err != nil
		}
		return next(err)
	}
}
