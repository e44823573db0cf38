package middleware

import (
	"net/http"
	"sync"
	"time"
)

// window tracks a fixed-window request count for one client IP.
type window struct {
	mu      sync.Mutex
	count   int
	resetAt time.Time
}

func (wd *window) allow(max int, span time.Duration) bool {
	wd.mu.Lock()
	defer wd.mu.Unlock()

	now := time.Now()
	if now.After(wd.resetAt) {
		wd.count = 0
		wd.resetAt = now.Add(span)
	}

	wd.count++
	return wd.count <= max
}

type limiter struct {
	mu      sync.Mutex
	clients map[string]*window
}

func newLimiter() *limiter {
	l := &limiter{clients: map[string]*window{}}

	// Evict expired windows once a minute so memory stays bounded.
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			l.mu.Lock()
			for ip, wd := range l.clients {
				wd.mu.Lock()
				expired := now.After(wd.resetAt)
				wd.mu.Unlock()
				if expired {
					delete(l.clients, ip)
				}
			}
			l.mu.Unlock()
		}
	}()

	return l
}

func (l *limiter) client(ip string, span time.Duration) *window {
	l.mu.Lock()
	defer l.mu.Unlock()

	if wd, ok := l.clients[ip]; ok {
		return wd
	}

	wd := &window{resetAt: time.Now().Add(span)}
	l.clients[ip] = wd
	return wd
}

// RateLimit limits each client IP to max requests per span.
// Example: middleware.RateLimit(200, time.Minute)
func RateLimit(max int, span time.Duration) func(http.Handler) http.Handler {
	l := newLimiter()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.RemoteAddr
			if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
				ip = fwd
			}

			if !l.client(ip, span).allow(max, span) {
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
