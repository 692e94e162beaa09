package httpx

import (
	"context"
	"net/http"
)

type contextKey string

const (
	userIDKey    contextKey = "userID"
	tokenKey     contextKey = "token"
	requestIDKey contextKey = "requestID"
)

// UserIDFrom retrieves the authenticated user ID from the request context.
func UserIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(userIDKey).(string); ok {
		return v
	}
	return ""
}

// TokenFrom retrieves the bearer token the request was authenticated with.
func TokenFrom(r *http.Request) string {
	if v, ok := r.Context().Value(tokenKey).(string); ok {
		return v
	}
	return ""
}

// ContextWithUser returns a new context carrying the caller's user ID and bearer token.
func ContextWithUser(ctx context.Context, userID, token string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, tokenKey, token)
}

func RequestIDFrom(r *http.Request) string {
	if v, ok := r.Context().Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}
