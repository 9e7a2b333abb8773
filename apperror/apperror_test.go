package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	err := New("something failed")

	assert.Equal(t, "something failed", err.Message)
	assert.Equal(t, 0, err.StatusCode)
	assert.Empty(t, err.Code)
	assert.Nil(t, err.Cause)
	assert.True(t, err.Operational)
}

func TestNew_Options(t *testing.T) {
	t.Parallel()

	err := New("lookup failed",
		WithStatus(http.StatusNotFound),
		WithCode("USER_NOT_FOUND"),
		WithField("user_id", 42),
		WithContext(map[string]any{"realm": "test"}),
	)

	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.Equal(t, "USER_NOT_FOUND", err.Code)
	assert.Equal(t, 42, err.Context["user_id"])
	assert.Equal(t, "test", err.Context["realm"])
}

func TestNewf(t *testing.T) {
	t.Parallel()

	err := Newf("failed after %d tries", 3)
	assert.Equal(t, "failed after 3 tries", err.Message)
	assert.True(t, err.Operational)
}

func TestWrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := Wrap(cause, "backend unreachable", WithStatus(http.StatusBadGateway))

	assert.Equal(t, "backend unreachable", err.Message)
	assert.Equal(t, http.StatusBadGateway, err.StatusCode)
	assert.Same(t, cause, err.Cause)
	assert.Equal(t, "backend unreachable: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestWrap_NilCause(t *testing.T) {
	t.Parallel()

	err := Wrap(nil, "standalone")
	assert.Nil(t, err.Cause)
	assert.Equal(t, "standalone", err.Error())
}

func TestWrapf(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := Wrapf(cause, "attempt %d failed", 2)
	assert.Equal(t, "attempt 2 failed", err.Message)
	assert.ErrorIs(t, err, cause)
}

func TestAppError_Unwrap(t *testing.T) {
	t.Parallel()

	root := errors.New("root")
	mid := Wrap(root, "mid")
	top := Wrap(mid, "top")

	assert.Same(t, error(mid), errors.Unwrap(top))

	var appErr *AppError
	require.True(t, errors.As(top, &appErr))
	assert.Equal(t, "top", appErr.Message)
}

func TestAppError_Is(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     *AppError
		target  *AppError
		matches bool
	}{
		{
			name:    "matching codes",
			err:     New("a", WithCode("NOT_FOUND")),
			target:  &AppError{Code: "NOT_FOUND"},
			matches: true,
		},
		{
			name:    "mismatched codes",
			err:     New("a", WithCode("NOT_FOUND")),
			target:  &AppError{Code: "CONFLICT"},
			matches: false,
		},
		{
			name:    "matching status without code",
			err:     New("a", WithStatus(404)),
			target:  &AppError{StatusCode: 404},
			matches: true,
		},
		{
			name:    "bare target matches any app error",
			err:     New("a"),
			target:  &AppError{},
			matches: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.matches, errors.Is(tt.err, tt.target))
		})
	}
}

func TestAppError_Stack(t *testing.T) {
	t.Parallel()

	err := New("with stack")
	stack := err.Stack()

	assert.NotEmpty(t, stack)
	assert.Contains(t, stack, "apperror_test.go")
}

func TestHTTPStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"classified", New("x", WithStatus(http.StatusConflict)), http.StatusConflict},
		{"zero status defaults to 500", New("x"), http.StatusInternalServerError},
		{"generic error", errors.New("plain"), http.StatusInternalServerError},
		{"nil error", nil, http.StatusInternalServerError},
		{"wrapped classification", fmt.Errorf("outer: %w", NotFound("gone")), http.StatusNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestIsOperational(t *testing.T) {
	t.Parallel()

	assert.True(t, IsOperational(New("expected")))
	assert.True(t, IsOperational(fmt.Errorf("outer: %w", New("inner"))))
	assert.False(t, IsOperational(errors.New("bug")))
	assert.False(t, IsOperational(nil))
}

func TestWithContext_DefensiveCopy(t *testing.T) {
	t.Parallel()

	src := map[string]any{"k": "v"}
	err := New("x", WithContext(src))

	src["k"] = "mutated"
	assert.Equal(t, "v", err.Context["k"])
}
