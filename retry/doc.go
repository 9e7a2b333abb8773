// Package retry provides policy-driven retry with configurable backoff
// strategies for transient-failure recovery.
//
// This package implements a retry executor that repeatedly invokes a
// fallible operation under a backoff/jitter/predicate policy and keeps an
// ordered log of every failed attempt. The terminal failure carries that
// log so callers can inspect the full failure history.
//
// # Features
//
//   - Configurable maximum retry attempts
//   - Exponential, linear, and fixed backoff with a delay cap
//   - Symmetric jitter to prevent thundering herd
//   - Context-aware cancellation between attempts
//   - Customizable retry predicates and per-retry callbacks
//   - Prometheus metrics and OpenTelemetry span events
//
// # Usage
//
// Execute an operation with retry:
//
//	policy := retry.NewPolicy().WithMaxRetries(5)
//	result, err := retry.Execute(ctx, policy, func(ctx context.Context) (string, error) {
//	    return callExternalService(ctx)
//	})
//
// Inspect the attempt history on terminal failure:
//
//	if attempts := retry.AttemptLog(err); attempts != nil {
//	    for i, attemptErr := range attempts {
//	        log.Printf("attempt %d: %v", i+1, attemptErr)
//	    }
//	}
package retry
