package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shashiranjanraj/ordercrm/pkg/session"
)

func inRequest(t *testing.T, fn func(s *session.Session, w http.ResponseWriter)) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h := session.Middleware(session.DefaultOptions())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fn(session.FromCtx(r), w)
	}))
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	return rec
}

func TestSetAndTypedGet(t *testing.T) {
	inRequest(t, func(s *session.Session, _ http.ResponseWriter) {
		s.Set("user_id", uint(42))
		s.Set("role", "admin")

		if id, ok := s.GetUint("user_id"); !ok || id != 42 {
			t.Errorf("GetUint: got %d %v", id, ok)
		}
		if role, ok := s.GetString("role"); !ok || role != "admin" {
			t.Errorf("GetString: got %q %v", role, ok)
		}
		if _, ok := s.GetUint("missing"); ok {
			t.Error("missing key must miss")
		}
	})
}

func TestGetUintAfterJSONRoundTrip(t *testing.T) {
	inRequest(t, func(s *session.Session, _ http.ResponseWriter) {
		// Redis stores JSON, so numbers come back as float64.
		s.Set("user_id", float64(7))
		if id, ok := s.GetUint("user_id"); !ok || id != 7 {
			t.Errorf("GetUint on float64: got %d %v", id, ok)
		}
	})
}

func TestFlashesAreOneShot(t *testing.T) {
	inRequest(t, func(s *session.Session, _ http.ResponseWriter) {
		s.AddFlash("Account successfully created alice")
		s.AddFlash("second notice")

		msgs := s.Flashes()
		if len(msgs) != 2 || msgs[0] != "Account successfully created alice" {
			t.Fatalf("flashes: %v", msgs)
		}
		if again := s.Flashes(); len(again) != 0 {
			t.Errorf("flashes must clear after reading, got %v", again)
		}
	})
}

func TestFlashesSurviveJSONShape(t *testing.T) {
	inRequest(t, func(s *session.Session, _ http.ResponseWriter) {
		// Simulate the shape Redis hands back after unmarshalling.
		s.Set("_flashes", []interface{}{"stored notice"})
		msgs := s.Flashes()
		if len(msgs) != 1 || msgs[0] != "stored notice" {
			t.Errorf("flashes: %v", msgs)
		}
	})
}

func TestSaveSetsCookie(t *testing.T) {
	rec := inRequest(t, func(s *session.Session, w http.ResponseWriter) {
		s.Set("user_id", uint(1))
		if err := s.Save(w); err != nil {
			t.Fatalf("save: %v", err)
		}
	})

	var found bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "ordercrm_session" && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Error("Save must set the session cookie")
	}
}

func TestInvalidateClearsData(t *testing.T) {
	inRequest(t, func(s *session.Session, _ http.ResponseWriter) {
		s.Set("user_id", uint(1))
		s.Invalidate()
		if _, ok := s.GetUint("user_id"); ok {
			t.Error("invalidated session must not retain data")
		}
	})
}
