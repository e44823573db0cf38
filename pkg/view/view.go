// Package view renders server-side HTML pages.
//
// Controllers hand over a template name plus a map of named values; the
// renderer owns the layout, one-time flash notices, and the signed-in
// identity exposed to every page.
package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"

	"github.com/shashiranjanraj/ordercrm/pkg/guard"
	"github.com/shashiranjanraj/ordercrm/pkg/logger"
	"github.com/shashiranjanraj/ordercrm/pkg/session"
)

// Data is the context mapping handed to a template.
type Data map[string]interface{}

// Renderer holds the parsed page templates.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"date": func(t interface{ Format(string) string }) string {
		return t.Format("Jan 2, 2006 15:04")
	},
	// deref makes optional foreign keys comparable inside templates.
	"deref": func(p *uint) uint {
		if p == nil {
			return 0
		}
		return *p
	},
}

// New parses every page template in fsys against the shared layout.
// Pages live at the fs root as <name>.html; layout.html wraps them all.
func New(fsys fs.FS) (*Renderer, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("view: read templates: %w", err)
	}

	re := &Renderer{pages: map[string]*template.Template{}}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || path.Ext(name) != ".html" || name == "layout.html" {
			continue
		}

		t, err := template.New("layout.html").Funcs(funcs).ParseFS(fsys, "layout.html", name)
		if err != nil {
			return nil, fmt.Errorf("view: parse %s: %w", name, err)
		}
		re.pages[name[:len(name)-len(".html")]] = t
	}

	return re, nil
}

// Render writes the named page with data, merging in pending flash
// notices and the caller's identity. Render is a terminal operation; the
// handler should return afterwards.
func (re *Renderer) Render(w http.ResponseWriter, r *http.Request, name string, data Data) {
	t, ok := re.pages[name]
	if !ok {
		logger.WithCtx(r.Context()).Error("unknown template", "name", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if data == nil {
		data = Data{}
	}

	sess := session.FromCtx(r)
	data["Flashes"] = sess.Flashes()
	_ = sess.Save(w) // persist flash consumption before the body is written

	if id, ok := guard.CurrentUser(r); ok {
		data["Auth"] = id
		data["IsAdmin"] = id.Role == guard.RoleAdmin
	}

	// Render to a buffer first so a template error can still become a 500.
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		logger.WithCtx(r.Context()).Error("template execute", "name", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// NotFound writes the framework-level 404.
func NotFound(w http.ResponseWriter) {
	http.Error(w, "Not found", http.StatusNotFound)
}
