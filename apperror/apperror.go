package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
)

// maxStackDepth is the maximum number of frames captured at construction.
const maxStackDepth = 32

// AppError is a classified, operational error. It carries an HTTP-style
// status code, a machine-readable code, free-form diagnostic context, and
// an optional wrapped cause.
//
// Values are immutable after construction; treat all fields as read-only.
type AppError struct {
	// Message is the human-readable description.
	Message string

	// StatusCode is the HTTP-style classification code. A zero value is
	// treated as unset and maps to 500 at formatting boundaries.
	StatusCode int

	// Code is an optional machine-readable discriminator.
	Code string

	// Context holds optional diagnostic key-value pairs. The map is
	// copied at construction and never mutated afterwards.
	Context map[string]any

	// Cause is the error this one wraps, if any.
	Cause error

	// Operational is true for every error built through this package.
	// It distinguishes expected, handleable failures from programmer
	// bugs, which are never constructed through this model.
	Operational bool

	pcs []uintptr
}

// Option configures an AppError at construction.
type Option func(*AppError)

// WithStatus sets the HTTP-style status code.
func WithStatus(status int) Option {
	return func(e *AppError) {
		e.StatusCode = status
	}
}

// WithCode sets the machine-readable code.
func WithCode(code string) Option {
	return func(e *AppError) {
		e.Code = code
	}
}

// WithContext merges the given key-value pairs into the error context.
func WithContext(ctx map[string]any) Option {
	return func(e *AppError) {
		if len(ctx) == 0 {
			return
		}
		if e.Context == nil {
			e.Context = make(map[string]any, len(ctx))
		}
		for k, v := range ctx {
			e.Context[k] = v
		}
	}
}

// WithField adds a single key-value pair to the error context.
func WithField(key string, value any) Option {
	return func(e *AppError) {
		if e.Context == nil {
			e.Context = make(map[string]any, 1)
		}
		e.Context[key] = value
	}
}

// New creates a new operational error. Construction never fails.
func New(message string, opts ...Option) *AppError {
	e := &AppError{
		Message:     message,
		Operational: true,
		pcs:         capture(3),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Newf creates a new operational error with a formatted message.
func Newf(format string, args ...any) *AppError {
	e := &AppError{
		Message:     fmt.Sprintf(format, args...),
		Operational: true,
		pcs:         capture(3),
	}
	return e
}

// Wrap creates a new operational error that wraps cause. A nil cause is
// allowed and behaves like New.
func Wrap(cause error, message string, opts ...Option) *AppError {
	e := &AppError{
		Message:     message,
		Cause:       cause,
		Operational: true,
		pcs:         capture(3),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Wrapf creates a new operational error with a formatted message that
// wraps cause.
func Wrapf(cause error, format string, args ...any) *AppError {
	e := &AppError{
		Message:     fmt.Sprintf(format, args...),
		Cause:       cause,
		Operational: true,
		pcs:         capture(3),
	}
	return e
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the wrapped cause.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. Two AppErrors match when
// their codes are equal (if the target carries one) or their status codes
// are equal (if the target carries one instead).
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	if t.Code != "" {
		return e.Code == t.Code
	}
	if t.StatusCode != 0 {
		return e.StatusCode == t.StatusCode
	}
	return true
}

// Stack renders the stack captured at construction, one frame per line.
// Returns the empty string when no stack was captured.
func (e *AppError) Stack() string {
	if len(e.pcs) == 0 {
		return ""
	}

	var b strings.Builder
	frames := runtime.CallersFrames(e.pcs)
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&b, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// HTTPStatus returns the transport status for err. Unset or zero status
// codes and errors not built through this package map to 500.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.StatusCode != 0 {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// IsOperational reports whether err (or any error in its chain) is an
// operational AppError.
func IsOperational(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Operational
}

// capture records the program counters of the calling goroutine, skipping
// the given number of frames.
func capture(skip int) []uintptr {
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip, pcs)
	return pcs[:n]
}
