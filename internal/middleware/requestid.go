package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

// requestIDHeader is the response header carrying the request ID.
const requestIDHeader = "X-Request-Id"

// WithRequestID assigns a fresh UUID to every request, exposing it to
// handlers through the request context and to callers through the
// X-Request-Id response header.
func WithRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestIDFromContext extracts the request ID from the request
// context. Returns an empty string if not found.
func GetRequestIDFromContext(ctx context.Context) string {
	val := ctx.Value(requestIDKey)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}
