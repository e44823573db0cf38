package middleware

import (
	"net/http"
	"time"

	"github.com/shashiranjanraj/ordercrm/pkg/logger"
)

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

// Logger logs each request with method, path, status, duration, and IP,
// tagged with the request ID injected by RequestID.
//
// Wire RequestID BEFORE this middleware:
//
//	r.Use(middleware.RequestID)
//	r.Use(middleware.Logger)
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Per-request logger, pre-tagged so downstream handlers correlate.
		reqLog := logger.L.With("request_id", RequestIDFromCtx(r.Context()))
		r = r.WithContext(logger.Inject(r.Context(), reqLog))

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		reqLog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start).String(),
			"ip", r.RemoteAddr,
		)
	})
}
