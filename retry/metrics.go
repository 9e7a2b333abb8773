package retry

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// attemptsTotal counts failed attempts per operation.
	attemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retry_attempts_total",
			Help: "Total number of failed attempts observed by the retry executor",
		},
		[]string{"operation", "attempt"},
	)

	// successAfterRetryTotal counts operations that succeeded after at
	// least one retry.
	successAfterRetryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retry_success_total",
			Help: "Total number of operations that succeeded after retrying",
		},
		[]string{"operation"},
	)

	// failureTotal counts operations that failed after the budget was
	// spent or the context was canceled.
	failureTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retry_failure_total",
			Help: "Total number of operations that failed after all retry attempts",
		},
		[]string{"operation"},
	)

	// rejectionTotal counts operations stopped early by the retry
	// predicate.
	rejectionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retry_rejection_total",
			Help: "Total number of operations stopped early by the retry predicate",
		},
		[]string{"operation"},
	)

	// duration measures the total duration of retry sequences.
	duration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "retry_duration_seconds",
			Help:    "Total duration of retry sequences in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "result"},
	)

	// backoffDuration measures computed backoff waits.
	backoffDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "retry_backoff_duration_seconds",
			Help:    "Duration of backoff waits in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation", "attempt"},
	)
)

// RecordAttempt records a failed attempt.
func RecordAttempt(operation string, attempt int) {
	attemptsTotal.WithLabelValues(operation, strconv.Itoa(attempt)).Inc()
}

// RecordSuccessAfterRetry records an operation that succeeded after
// retrying.
func RecordSuccessAfterRetry(operation string) {
	successAfterRetryTotal.WithLabelValues(operation).Inc()
}

// RecordFailure records an operation that failed terminally.
func RecordFailure(operation string) {
	failureTotal.WithLabelValues(operation).Inc()
}

// RecordRejection records an operation stopped early by the predicate.
func RecordRejection(operation string) {
	rejectionTotal.WithLabelValues(operation).Inc()
}

// RecordDuration records the total duration of a retry sequence.
func RecordDuration(operation string, success bool, seconds float64) {
	result := "success"
	if !success {
		result = "failure"
	}
	duration.WithLabelValues(operation, result).Observe(seconds)
}

// RecordBackoff records a computed backoff wait.
func RecordBackoff(operation string, attempt int, seconds float64) {
	backoffDuration.WithLabelValues(operation, strconv.Itoa(attempt)).Observe(seconds)
}
