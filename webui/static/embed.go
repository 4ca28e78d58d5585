// Package static provides the embedded client page assets.
package static

import (
	"embed"
	"io/fs"
)

// StaticFS contains the client page: index.html, css/style.css, js/app.js.
//
//go:embed index.html css js
var StaticFS embed.FS

// GetFS returns the embedded filesystem.
func GetFS() fs.FS {
	return StaticFS
}

// ReadFile reads a file from the embedded filesystem.
func ReadFile(name string) ([]byte, error) {
	return StaticFS.ReadFile(name)
}
