// Package session provides Redis-backed cookie sessions.
//
// Usage (middleware):
//
//	r.Use(session.Middleware(session.DefaultOptions()))
//
// Usage (handler):
//
//	sess := session.FromCtx(r)
//	sess.Set("user_id", 42)
//	sess.AddFlash("Account successfully created alice")
//	sess.Save(w)
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shashiranjanraj/ordercrm/pkg/cache"
)

// Options configures session behaviour.
type Options struct {
	CookieName string
	TTL        time.Duration
	HTTPOnly   bool
	Secure     bool
	SameSite   http.SameSite
	Path       string
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		CookieName: "ordercrm_session",
		TTL:        2 * time.Hour,
		HTTPOnly:   true,
		Secure:     false, // set true behind TLS
		SameSite:   http.SameSiteLaxMode,
		Path:       "/",
	}
}

type ctxKey struct{}

// Session is an in-request session handle.
type Session struct {
	id      string
	data    map[string]interface{}
	opts    Options
	changed bool
}

// newID generates a cryptographically random 32-byte hex session ID.
func newID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func storeKey(id string) string { return "ordercrm:session:" + id }

func load(id string) map[string]interface{} {
	var data map[string]interface{}
	if cache.Get(storeKey(id), &data) {
		return data
	}
	return map[string]interface{}{}
}

// Set stores a value under key in the session.
func (s *Session) Set(key string, value interface{}) {
	s.data[key] = value
	s.changed = true
}

// Get retrieves a value from the session.
func (s *Session) Get(key string) (interface{}, bool) {
	v, ok := s.data[key]
	return v, ok
}

// GetString is a typed convenience getter.
func (s *Session) GetString(key string) (string, bool) {
	v, ok := s.data[key]
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// GetUint is a typed convenience getter for numeric IDs.
func (s *Session) GetUint(key string) (uint, bool) {
	v, ok := s.data[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64: // JSON numbers unmarshal as float64
		return uint(n), true
	case int:
		return uint(n), true
	case uint:
		return n, true
	}
	return 0, false
}

// Delete removes a key from the session.
func (s *Session) Delete(key string) {
	delete(s.data, key)
	s.changed = true
}

const flashKey = "_flashes"

// AddFlash appends a one-time notice shown on the next rendered page.
func (s *Session) AddFlash(message string) {
	s.data[flashKey] = append(s.flashes(), message)
	s.changed = true
}

// Flashes returns and clears all pending notices.
func (s *Session) Flashes() []string {
	msgs := s.flashes()
	if len(msgs) > 0 {
		delete(s.data, flashKey)
		s.changed = true
	}
	return msgs
}

func (s *Session) flashes() []string {
	raw, ok := s.data[flashKey]
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case []string:
		return v
	case []interface{}: // post-JSON round trip
		out := make([]string, 0, len(v))
		for _, m := range v {
			if str, ok := m.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}

// Invalidate destroys the session (logout).
func (s *Session) Invalidate() {
	s.data = map[string]interface{}{}
	s.changed = true
}

// ID returns the session ID.
func (s *Session) ID() string { return s.id }

// Save persists the session to Redis and writes the cookie to the response.
func (s *Session) Save(w http.ResponseWriter) error {
	if !s.changed {
		return nil
	}

	raw, err := json.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}

	if err := cache.Set(storeKey(s.id), json.RawMessage(raw), s.opts.TTL); err != nil {
		return fmt.Errorf("session: store: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    s.id,
		Path:     s.opts.Path,
		MaxAge:   int(s.opts.TTL.Seconds()),
		HttpOnly: s.opts.HTTPOnly,
		Secure:   s.opts.Secure,
		SameSite: s.opts.SameSite,
	})

	s.changed = false
	return nil
}

// Middleware loads (or creates) the session for every request and injects it
// into the request context. Handlers call session.FromCtx(r) to access it.
func Middleware(opts Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := &Session{opts: opts}

			if cookie, err := r.Cookie(opts.CookieName); err == nil {
				sess.id = cookie.Value
				sess.data = load(sess.id)
			} else {
				id, _ := newID()
				sess.id = id
				sess.data = map[string]interface{}{}
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromCtx retrieves the session from the request context.
// Returns an empty (unsaved) session if none is present.
func FromCtx(r *http.Request) *Session {
	if s, ok := r.Context().Value(ctxKey{}).(*Session); ok {
		return s
	}
	id, _ := newID()
	return &Session{id: id, data: map[string]interface{}{}, opts: DefaultOptions()}
}
