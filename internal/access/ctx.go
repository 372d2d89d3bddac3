package access

import (
	"context"
)

type contextKey string

const callerKey contextKey = "caller"

// WithCaller attaches the caller identity to the request context.
func WithCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey, c)
}

// CallerFrom extracts the caller from the context. A missing caller is
// returned as the anonymous zero value.
func CallerFrom(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(callerKey).(Caller)
	return c, ok
}
