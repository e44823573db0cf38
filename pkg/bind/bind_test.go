package bind_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/shashiranjanraj/ordercrm/pkg/bind"
)

type orderForm struct {
	Product *uint  `form:"product"`
	Status  string `form:"status" validate:"required"`
	Note    string `form:"note"`
	Rush    bool   `form:"rush"`
	Hidden  string `form:"-"`
}

func TestValues(t *testing.T) {
	var f orderForm
	err := bind.Values(url.Values{
		"product": {"7"},
		"status":  {"Pending"},
		"note":    {"  leave at door  "},
		"rush":    {"on"},
	}, &f)
	if err != nil {
		t.Fatalf("bind: %v", err)
	}

	if f.Product == nil || *f.Product != 7 {
		t.Errorf("product: want 7, got %v", f.Product)
	}
	if f.Status != "Pending" {
		t.Errorf("status: got %q", f.Status)
	}
	if f.Note != "leave at door" {
		t.Errorf("note must be trimmed, got %q", f.Note)
	}
	if !f.Rush {
		t.Error("checkbox 'on' must bind true")
	}
}

func TestValuesEmptySelectIsNil(t *testing.T) {
	var f orderForm
	if err := bind.Values(url.Values{"product": {""}, "status": {"Pending"}}, &f); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if f.Product != nil {
		t.Errorf("empty option must bind nil, got %v", *f.Product)
	}
}

func TestValuesSkipsDashAndAbsent(t *testing.T) {
	f := orderForm{Hidden: "keep", Note: "keep"}
	if err := bind.Values(url.Values{"status": {"Pending"}}, &f); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if f.Hidden != "keep" {
		t.Error("form:\"-\" fields must never bind")
	}
	if f.Note != "keep" {
		t.Error("absent parameters must not clobber fields")
	}
}

func TestValuesBadNumber(t *testing.T) {
	var f orderForm
	if err := bind.Values(url.Values{"product": {"abc"}}, &f); err == nil {
		t.Error("expected an error for a non-numeric id")
	}
}

func TestFormValidates(t *testing.T) {
	body := url.Values{"note": {"no status"}}.Encode()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var f orderForm
	errs, err := bind.Form(req, &f)
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	if _, ok := errs["status"]; !ok {
		t.Error("expected the required rule to fire")
	}
}

func TestFormOK(t *testing.T) {
	body := url.Values{"status": {"Pending"}}.Encode()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var f orderForm
	errs, err := bind.Form(req, &f)
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	if errs.HasErrors() {
		t.Errorf("unexpected errors: %v", errs)
	}
	if f.Status != "Pending" {
		t.Errorf("status: got %q", f.Status)
	}
}
