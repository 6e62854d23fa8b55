package middleware

import (
	"context"
	"net/http"
	"strings"

	nuts "github.com/vaudience/go-nuts"
)

// RequestIDHeader carries the request id on both requests and responses
const RequestIDHeader = "X-Request-ID"

type contextKey string

const requestIDKey contextKey = "request_id"

// RequestID reuses a client supplied X-Request-ID or mints a new one,
// echoes it on the response and stores it in the request context
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" || len(id) > 64 {
			id = nuts.NID("req", 12)
		}

		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID returns the id stored by RequestID, or a fresh one outside the middleware
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return nuts.NID("req", 12)
}
