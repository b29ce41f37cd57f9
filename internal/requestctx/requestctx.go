package requestctx

import "context"

type ctxKey string

const (
	requestIDKey   ctxKey = "request_id"
	bearerTokenKey ctxKey = "bearer_token"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	if value, ok := ctx.Value(requestIDKey).(string); ok {
		return value
	}
	return ""
}

// WithBearerToken stores the caller's raw bearer token so the upstream
// client can forward it on outbound calls.
func WithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerTokenKey, token)
}

func GetBearerToken(ctx context.Context) string {
	if value, ok := ctx.Value(bearerTokenKey).(string); ok {
		return value
	}
	return ""
}
