package domain

import "context"

type CtxKey string

const (
	KeyRequestID CtxKey = "RequestID"
	KeyClientIP  CtxKey = "ClientIP"
	KeyUserAgent CtxKey = "UserAgent"
)

// StringFromContext reads a string value stored under key, or "".
func StringFromContext(ctx context.Context, key CtxKey) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(key).(string)
	return v
}
