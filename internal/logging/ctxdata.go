package logging

import (
	"context"
)

type ctxKey int

const correlationIDKey ctxKey = iota

// SetCorrelationID returns a child context tagged with the request correlation
// id. The HTTP context middleware calls this once per request.
func SetCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

func GetCorrelationID(ctx context.Context) string {
	if v, ok := ctx.Value(correlationIDKey).(string); ok {
		return v
	}
	return ""
}
