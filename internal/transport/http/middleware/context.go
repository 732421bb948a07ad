package middleware

import (
	"context"

	"timepay/internal/domain/auth"
)

type ctxKey string

const (
	ctxKeyRequestID ctxKey = "request_id"
	ctxKeyUser      ctxKey = "user"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, requestID)
}

func GetRequestID(ctx context.Context) string {
	if value, ok := ctx.Value(ctxKeyRequestID).(string); ok {
		return value
	}
	return ""
}

func WithUser(ctx context.Context, claims auth.Claims) context.Context {
	return context.WithValue(ctx, ctxKeyUser, claims)
}

func GetUser(ctx context.Context) (auth.Claims, bool) {
	claims, ok := ctx.Value(ctxKeyUser).(auth.Claims)
	return claims, ok
}
