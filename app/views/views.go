// Package views embeds the HTML templates shipped with the binary.
package views

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var files embed.FS

// FS exposes the templates rooted at the template directory, the layout
// the renderer expects.
func FS() fs.FS {
	sub, err := fs.Sub(files, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}
