// Package controllers holds the HTTP handlers. Controllers stay thin:
// decode the form, call a service, then render a template or redirect.
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/ordercrm/app/repositories"
	"github.com/shashiranjanraj/ordercrm/pkg/logger"
	"github.com/shashiranjanraj/ordercrm/pkg/view"
)

// paramID reads a numeric {id} path parameter. The second return is
// false when the segment is not a number; callers respond 404.
func paramID(r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// fail maps a service error to the right response: missing records are a
// 404, anything else logs and returns a 500.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, repositories.ErrNotFound) {
		view.NotFound(w)
		return
	}
	logger.WithCtx(r.Context()).Error("request failed", "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
