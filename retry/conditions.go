package retry

import (
	"errors"
	"io"
	"net"
	"net/url"
	"syscall"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/faultkit/faultkit/apperror"
)

// Stock retry predicates. Each returns a Condition that slots directly
// into Policy.RetryIf; combine them with Any and All.

// OnStatusCodes retries failures whose classified status is one of the
// given HTTP status codes. Errors without a classification map to 500.
func OnStatusCodes(statusCodes ...int) Condition {
	codeSet := make(map[int]bool, len(statusCodes))
	for _, code := range statusCodes {
		codeSet[code] = true
	}
	return func(err error) bool {
		if err == nil {
			return false
		}
		return codeSet[apperror.HTTPStatus(err)]
	}
}

// On5xx retries failures classified with a 5xx status.
func On5xx() Condition {
	return func(err error) bool {
		if err == nil {
			return false
		}
		code := apperror.HTTPStatus(err)
		return code >= 500 && code < 600
	}
}

// RetryableStatuses retries the commonly transient HTTP statuses.
func RetryableStatuses() Condition {
	return OnStatusCodes(
		408, // Request Timeout
		429, // Too Many Requests
		500, // Internal Server Error
		502, // Bad Gateway
		503, // Service Unavailable
		504, // Gateway Timeout
	)
}

// OnErrors retries failures matching any of the given errors per
// errors.Is.
func OnErrors(errs ...error) Condition {
	return func(err error) bool {
		if err == nil {
			return false
		}
		for _, target := range errs {
			if errors.Is(err, target) {
				return true
			}
		}
		return false
	}
}

// OnOperational retries only failures classified as operational. Unknown
// errors and programmer bugs are not retried.
func OnOperational() Condition {
	return func(err error) bool {
		return apperror.IsOperational(err)
	}
}

// OnNetworkErrors retries common transient network failures.
func OnNetworkErrors() Condition {
	return func(err error) bool {
		if err == nil {
			return false
		}

		// net.OpError and syscall errors also satisfy net.Error, so the
		// timeout check must not short-circuit the checks below.
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return true
		}

		var opErr *net.OpError
		if errors.As(err, &opErr) {
			return true
		}

		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return true
		}

		if errors.Is(err, syscall.ECONNRESET) {
			return true
		}
		if errors.Is(err, syscall.ECONNREFUSED) {
			return true
		}
		if errors.Is(err, io.EOF) {
			return true
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return true
		}

		return false
	}
}

// OnTimeout retries timeout failures.
func OnTimeout() Condition {
	return func(err error) bool {
		if err == nil {
			return false
		}

		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return true
		}

		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return true
		}

		st, ok := status.FromError(err)
		return ok && st.Code() == codes.DeadlineExceeded
	}
}

// OnGRPCCodes retries failures carrying one of the given gRPC status
// codes.
func OnGRPCCodes(grpcCodes ...codes.Code) Condition {
	codeSet := make(map[codes.Code]bool, len(grpcCodes))
	for _, code := range grpcCodes {
		codeSet[code] = true
	}
	return func(err error) bool {
		if err == nil {
			return false
		}
		st, ok := status.FromError(err)
		if !ok {
			return false
		}
		return codeSet[st.Code()]
	}
}

// RetryableGRPCCodes retries the commonly transient gRPC status codes.
func RetryableGRPCCodes() Condition {
	return OnGRPCCodes(
		codes.Unavailable,
		codes.ResourceExhausted,
		codes.Aborted,
		codes.DeadlineExceeded,
	)
}

// Any combines conditions with OR logic.
func Any(conditions ...Condition) Condition {
	return func(err error) bool {
		for _, cond := range conditions {
			if cond(err) {
				return true
			}
		}
		return false
	}
}

// All combines conditions with AND logic. With no conditions it never
// retries.
func All(conditions ...Condition) Condition {
	return func(err error) bool {
		if len(conditions) == 0 {
			return false
		}
		for _, cond := range conditions {
			if !cond(err) {
				return false
			}
		}
		return true
	}
}

// Never declines every failure.
func Never() Condition {
	return func(error) bool {
		return false
	}
}

// Always retries every failure, up to the budget.
func Always() Condition {
	return func(err error) bool {
		return err != nil
	}
}
