package retry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Operation is a fallible operation producing a value of type T.
type Operation[T any] func(ctx context.Context) (T, error)

// Do executes fn under the given policy. A nil policy uses defaults.
func Do(ctx context.Context, p *Policy, fn func(ctx context.Context) error) error {
	_, err := Execute(ctx, p, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// Execute runs op under the given policy until it succeeds, the retry
// predicate declines a failure, the attempt budget is spent, or the
// context is canceled. A nil policy uses defaults.
//
// On terminal failure the last observed error is returned wrapped in
// *ExhaustedError or *AbortedError, carrying the ordered log of every
// failed attempt. A canceled context before the first attempt returns
// ctx.Err() with no attempt log. Panics from op, the predicate, or the
// OnRetry callback are not recovered and abort the sequence.
func Execute[T any](ctx context.Context, p *Policy, op Operation[T]) (T, error) {
	var zero T

	pol := p.normalized()
	operation := pol.operation()
	span := trace.SpanFromContext(ctx)
	start := time.Now()

	attempts := make([]error, 0, pol.MaxRetries+1)

	for n := 0; ; n++ {
		// Check context before each attempt.
		select {
		case <-ctx.Done():
			if len(attempts) == 0 {
				return zero, ctx.Err()
			}
			RecordFailure(operation)
			return zero, &AbortedError{Attempts: attempts, Err: ctx.Err()}
		default:
		}

		value, err := op(ctx)
		if err == nil {
			if n > 0 {
				RecordSuccessAfterRetry(operation)
			}
			RecordDuration(operation, true, time.Since(start).Seconds())
			return value, nil
		}

		attempts = append(attempts, err)
		RecordAttempt(operation, n+1)
		span.AddEvent("retry attempt failed", trace.WithAttributes(
			attribute.String("operation", operation),
			attribute.Int("attempt", n+1),
			attribute.String("error", err.Error()),
		))

		if n == pol.MaxRetries {
			RecordFailure(operation)
			RecordDuration(operation, false, time.Since(start).Seconds())
			span.RecordError(err)
			return zero, &ExhaustedError{Attempts: attempts, Err: err}
		}

		if pol.RetryIf != nil && !pol.RetryIf(err) {
			RecordRejection(operation)
			RecordDuration(operation, false, time.Since(start).Seconds())
			span.RecordError(err)
			return zero, &AbortedError{Attempts: attempts, Err: err}
		}

		// The callback runs to completion before the wait begins; a
		// panic inside it propagates to the caller.
		if pol.OnRetry != nil {
			pol.OnRetry(err, n+1)
		}

		delay := Delay(n+1, &pol)
		RecordBackoff(operation, n+1, delay.Seconds())

		if pol.Logger != nil {
			pol.Logger.Debug("retrying operation",
				zap.String("operation", operation),
				zap.Int("attempt", n+1),
				zap.Int("max_retries", pol.MaxRetries),
				zap.Duration("wait", delay),
				zap.Error(err),
			)
		}

		select {
		case <-ctx.Done():
			RecordFailure(operation)
			RecordDuration(operation, false, time.Since(start).Seconds())
			return zero, &AbortedError{Attempts: attempts, Err: ctx.Err()}
		case <-time.After(delay):
		}
	}
}
