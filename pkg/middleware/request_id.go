// Package middleware provides the HTTP middleware stack: request IDs,
// request logging, panic recovery, and rate limiting.
package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
)

// RequestIDHeader propagates the request ID to and from proxies.
const RequestIDHeader = "X-Request-ID"

type ridKey struct{}

func newRequestID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// RequestIDFromCtx extracts the request ID, or "" when the middleware
// has not run.
func RequestIDFromCtx(ctx context.Context) string {
	if id, ok := ctx.Value(ridKey{}).(string); ok {
		return id
	}
	return ""
}

// RequestID injects a unique ID into every request context and echoes it
// in the response header. An upstream X-Request-ID is honoured so traces
// survive proxies.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = newRequestID()
		}

		w.Header().Set(RequestIDHeader, id)

		ctx := context.WithValue(r.Context(), ridKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
