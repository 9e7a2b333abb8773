package apperror

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// maxCauseDepth caps the recursive cause walk. Chains deeper than this
// (or cyclic chains) are truncated with a sentinel snapshot.
const maxCauseDepth = 32

// truncatedMessage is the sentinel message attached where a cause chain
// was cut off.
const truncatedMessage = "cause chain truncated"

// Snapshot is the serializable projection of an error and its cause
// chain. Formatting the same error with the same options is deterministic
// except for Timestamp.
type Snapshot struct {
	Message    string         `json:"message"`
	Code       string         `json:"code,omitempty"`
	StatusCode int            `json:"statusCode,omitempty"`
	Stack      string         `json:"stack,omitempty"`
	Timestamp  string         `json:"timestamp,omitempty"`
	Context    map[string]any `json:"context,omitempty"`
	Cause      *Snapshot      `json:"cause,omitempty"`
}

// FormatOption configures Format and Handle.
type FormatOption func(*formatOptions)

type formatOptions struct {
	includeStack     bool
	includeTimestamp bool
	context          map[string]any
	sink             func(*Snapshot)
}

// IncludeStack includes the captured stack trace in the snapshot.
func IncludeStack() FormatOption {
	return func(o *formatOptions) {
		o.includeStack = true
	}
}

// WithoutTimestamp omits the top-level timestamp from the snapshot.
func WithoutTimestamp() FormatOption {
	return func(o *formatOptions) {
		o.includeTimestamp = false
	}
}

// WithFormatContext merges the given key-value pairs into the top-level
// snapshot context. On key collision these win over the error's own
// context.
func WithFormatContext(ctx map[string]any) FormatOption {
	return func(o *formatOptions) {
		if len(ctx) == 0 {
			return
		}
		if o.context == nil {
			o.context = make(map[string]any, len(ctx))
		}
		for k, v := range ctx {
			o.context[k] = v
		}
	}
}

// WithFormatField adds a single key-value pair to the top-level snapshot
// context.
func WithFormatField(key string, value any) FormatOption {
	return func(o *formatOptions) {
		if o.context == nil {
			o.context = make(map[string]any, 1)
		}
		o.context[key] = value
	}
}

// WithSink sets the sink Handle invokes with the finished snapshot. The
// sink is called exactly once; a panic inside it is not recovered.
func WithSink(sink func(*Snapshot)) FormatOption {
	return func(o *formatOptions) {
		o.sink = sink
	}
}

// Format flattens err and its cause chain into a Snapshot. It never
// returns nil and never panics on malformed input; optional fields are
// simply omitted. Only the top-level snapshot carries a timestamp.
func Format(err error, opts ...FormatOption) *Snapshot {
	o := formatOptions{includeTimestamp: true}
	for _, opt := range opts {
		opt(&o)
	}

	visited := make(map[*AppError]bool)
	snap := build(err, &o, true, visited, 0)
	return snap
}

// Handle formats err and, if a sink was configured, invokes it exactly
// once with the snapshot. The snapshot is returned either way.
func Handle(err error, opts ...FormatOption) *Snapshot {
	o := formatOptions{includeTimestamp: true}
	for _, opt := range opts {
		opt(&o)
	}

	visited := make(map[*AppError]bool)
	snap := build(err, &o, true, visited, 0)
	if o.sink != nil {
		o.sink(snap)
	}
	return snap
}

// build renders one link of the cause chain. Context from the format
// options is only merged at the top level; nested snapshots carry their
// intrinsic context alone.
func build(err error, o *formatOptions, top bool, visited map[*AppError]bool, depth int) *Snapshot {
	if depth >= maxCauseDepth {
		return &Snapshot{Message: truncatedMessage}
	}

	snap := &Snapshot{}

	if top && o.includeTimestamp {
		snap.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	}

	if err == nil {
		snap.Message = "unknown error"
		return snap
	}

	if appErr, ok := err.(*AppError); ok {
		if visited[appErr] {
			return &Snapshot{Message: truncatedMessage}
		}
		visited[appErr] = true

		snap.Message = appErr.Message
		snap.Code = appErr.Code
		snap.StatusCode = appErr.StatusCode
		if snap.StatusCode == 0 {
			snap.StatusCode = http.StatusInternalServerError
		}
		snap.Context = mergeContext(appErr.Context, top, o)
		if o.includeStack {
			snap.Stack = appErr.Stack()
		}
	} else {
		snap.Message = err.Error()
		if top {
			snap.Context = mergeContext(nil, true, o)
		}
	}

	if cause := errors.Unwrap(err); cause != nil {
		snap.Cause = build(cause, o, false, visited, depth+1)
	}

	return snap
}

// mergeContext shallow-merges the error's own context with the format
// options' context. Option values win on key collision. Returns nil when
// the merge is empty so the field is omitted from serialized output.
func mergeContext(own map[string]any, top bool, o *formatOptions) map[string]any {
	extra := o.context
	if !top {
		extra = nil
	}
	if len(own) == 0 && len(extra) == 0 {
		return nil
	}

	merged := make(map[string]any, len(own)+len(extra))
	for k, v := range own {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}

// ZapSink returns a sink that logs snapshots through the given zap
// logger at error level.
func ZapSink(logger *zap.Logger) func(*Snapshot) {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(snap *Snapshot) {
		fields := []zap.Field{
			zap.Int("statusCode", snap.StatusCode),
		}
		if snap.Code != "" {
			fields = append(fields, zap.String("code", snap.Code))
		}
		if snap.Timestamp != "" {
			fields = append(fields, zap.String("timestamp", snap.Timestamp))
		}
		if len(snap.Context) > 0 {
			fields = append(fields, zap.Any("context", snap.Context))
		}
		if snap.Cause != nil {
			fields = append(fields, zap.Any("cause", snap.Cause))
		}
		if snap.Stack != "" {
			fields = append(fields, zap.String("stack", snap.Stack))
		}
		logger.Error(snap.Message, fields...)
	}
}
