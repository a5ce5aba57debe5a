package logger

import "context"

type contextKey string

const TraceIDKey contextKey = "trace_id"

// WithTraceID tags a request context so log lines across the dispatch path
// can be correlated.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, TraceIDKey, id)
}

func GetTraceID(ctx context.Context) string {
	if id, ok := ctx.Value(TraceIDKey).(string); ok {
		return id
	}
	return ""
}
