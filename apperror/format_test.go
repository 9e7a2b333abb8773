package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_Basic(t *testing.T) {
	t.Parallel()

	err := New("lookup failed", WithStatus(http.StatusNotFound), WithCode("NOT_FOUND"))
	snap := Format(err)

	assert.Equal(t, "lookup failed", snap.Message)
	assert.Equal(t, "NOT_FOUND", snap.Code)
	assert.Equal(t, http.StatusNotFound, snap.StatusCode)
	assert.Empty(t, snap.Stack)
	assert.Nil(t, snap.Cause)
	assert.Nil(t, snap.Context)

	ts, parseErr := time.Parse(time.RFC3339Nano, snap.Timestamp)
	require.NoError(t, parseErr)
	assert.WithinDuration(t, time.Now().UTC(), ts, time.Minute)
}

func TestFormat_StatusDefaultsTo500(t *testing.T) {
	t.Parallel()

	snap := Format(New("no status"))
	assert.Equal(t, http.StatusInternalServerError, snap.StatusCode)
}

func TestFormat_ContextMergePrecedence(t *testing.T) {
	t.Parallel()

	err := New("collision",
		WithContext(map[string]any{"a": 1, "b": "own"}))
	snap := Format(err,
		WithFormatContext(map[string]any{"b": "option", "c": 3}))

	assert.Equal(t, 1, snap.Context["a"])
	assert.Equal(t, "option", snap.Context["b"])
	assert.Equal(t, 3, snap.Context["c"])
}

func TestFormat_EmptyContextOmitted(t *testing.T) {
	t.Parallel()

	snap := Format(New("bare"))
	assert.Nil(t, snap.Context)
}

func TestFormat_TimestampOnlyAtTop(t *testing.T) {
	t.Parallel()

	root := New("root")
	top := Wrap(root, "top")

	withTS := Format(top)
	assert.NotEmpty(t, withTS.Timestamp)
	require.NotNil(t, withTS.Cause)
	assert.Empty(t, withTS.Cause.Timestamp)

	withoutTS := Format(top, WithoutTimestamp())
	assert.Empty(t, withoutTS.Timestamp)
	require.NotNil(t, withoutTS.Cause)
	assert.Empty(t, withoutTS.Cause.Timestamp)
}

func TestFormat_RecursiveChainDepth(t *testing.T) {
	t.Parallel()

	root := New("root failure")
	mid := Wrap(root, "mid failure")
	top := Wrap(mid, "top failure")

	snap := Format(top)

	require.NotNil(t, snap.Cause)
	require.NotNil(t, snap.Cause.Cause)
	assert.Equal(t, "top failure", snap.Message)
	assert.Equal(t, "mid failure", snap.Cause.Message)
	assert.Equal(t, "root failure", snap.Cause.Cause.Message)
}

func TestFormat_CauseContextIsIntrinsicOnly(t *testing.T) {
	t.Parallel()

	root := New("root", WithField("layer", "root"))
	top := Wrap(root, "top")

	snap := Format(top, WithFormatField("request_id", "r-1"))

	assert.Equal(t, "r-1", snap.Context["request_id"])
	require.NotNil(t, snap.Cause)
	assert.Equal(t, "root", snap.Cause.Context["layer"])
	assert.NotContains(t, snap.Cause.Context, "request_id")
}

func TestFormat_IncludeStack(t *testing.T) {
	t.Parallel()

	root := New("root")
	top := Wrap(root, "top")

	snap := Format(top, IncludeStack())
	assert.NotEmpty(t, snap.Stack)
	require.NotNil(t, snap.Cause)
	assert.NotEmpty(t, snap.Cause.Stack)
}

func TestFormat_GenericError(t *testing.T) {
	t.Parallel()

	err := errors.New("plain failure")
	snap := Format(err)

	assert.Equal(t, "plain failure", snap.Message)
	assert.Zero(t, snap.StatusCode)
	assert.Empty(t, snap.Code)
	assert.Empty(t, snap.Stack)
}

func TestFormat_GenericErrorWrappingAppError(t *testing.T) {
	t.Parallel()

	inner := NotFound("user missing")
	outer := fmt.Errorf("handler: %w", inner)

	snap := Format(outer)
	assert.Equal(t, "handler: user missing", snap.Message)
	require.NotNil(t, snap.Cause)
	assert.Equal(t, "user missing", snap.Cause.Message)
	assert.Equal(t, http.StatusNotFound, snap.Cause.StatusCode)
}

func TestFormat_NilError(t *testing.T) {
	t.Parallel()

	snap := Format(nil)
	require.NotNil(t, snap)
	assert.Equal(t, "unknown error", snap.Message)
}

func TestFormat_CyclicChainTruncated(t *testing.T) {
	t.Parallel()

	a := New("a")
	b := Wrap(a, "b")
	a.Cause = b // manufacture a cycle

	snap := Format(b)

	depth := 0
	for cur := snap; cur != nil; cur = cur.Cause {
		depth++
		require.Less(t, depth, maxCauseDepth+2)
	}
	// Walk to the tail and check the sentinel.
	tail := snap
	for tail.Cause != nil {
		tail = tail.Cause
	}
	assert.Equal(t, truncatedMessage, tail.Message)
}

func TestFormat_DeepChainTruncated(t *testing.T) {
	t.Parallel()

	err := New("depth 0")
	for i := 1; i < maxCauseDepth+10; i++ {
		err = Wrap(err, fmt.Sprintf("depth %d", i))
	}

	snap := Format(err)

	depth := 0
	tail := snap
	for tail.Cause != nil {
		tail = tail.Cause
		depth++
	}
	assert.Equal(t, truncatedMessage, tail.Message)
	assert.LessOrEqual(t, depth, maxCauseDepth)
}

func TestHandle_SinkInvokedOnce(t *testing.T) {
	t.Parallel()

	var calls int
	var seen *Snapshot
	snap := Handle(New("handled"), WithSink(func(s *Snapshot) {
		calls++
		seen = s
	}))

	assert.Equal(t, 1, calls)
	assert.Same(t, snap, seen)
}

func TestHandle_NoSink(t *testing.T) {
	t.Parallel()

	snap := Handle(New("no sink"))
	require.NotNil(t, snap)
	assert.Equal(t, "no sink", snap.Message)
}

func TestHandle_SinkPanicPropagates(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		Handle(New("boom"), WithSink(func(*Snapshot) {
			panic("sink failed")
		}))
	})
}

func TestZapSink_NilLogger(t *testing.T) {
	t.Parallel()

	sink := ZapSink(nil)
	assert.NotPanics(t, func() {
		sink(Format(Wrap(New("root"), "top"), IncludeStack(), WithFormatField("k", "v")))
	})
}
