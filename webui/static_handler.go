// Package webui provides the HTTP surface of the relay.
// This file serves the embedded client page assets.
package webui

import (
	"io/fs"
	"mime"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"aiphoto_backend/webui/static"
)

// StaticAssetHandler serves embedded static files with MIME type detection.
type StaticAssetHandler struct {
	fs     fs.FS
	prefix string
}

// NewStaticAssetHandler creates a handler over the embedded filesystem,
// mounted at the given URL prefix (default "/static").
func NewStaticAssetHandler(prefix string) *StaticAssetHandler {
	if prefix == "" {
		prefix = "/static"
	}
	return &StaticAssetHandler{
		fs:     static.GetFS(),
		prefix: prefix,
	}
}

// NewStaticAssetHandlerWithFS creates a handler with a custom filesystem.
// Useful for tests.
func NewStaticAssetHandlerWithFS(fsys fs.FS, prefix string) *StaticAssetHandler {
	h := NewStaticAssetHandler(prefix)
	h.fs = fsys
	return h
}

// ServeHTTP implements http.Handler for static assets.
func (h *StaticAssetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	urlPath := strings.TrimPrefix(r.URL.Path, h.prefix)
	urlPath = path.Clean("/" + urlPath)
	urlPath = strings.TrimPrefix(urlPath, "/")
	if urlPath == "" || urlPath == "." {
		urlPath = "index.html"
	}

	data, err := fs.ReadFile(h.fs, urlPath)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", detectContentType(urlPath))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// RegisterRoutes registers the static handler on a ServeMux.
func (h *StaticAssetHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle(h.prefix+"/", h)
}

// ServeIndex returns a handler that serves the client page.
func (h *StaticAssetHandler) ServeIndex() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := fs.ReadFile(h.fs, "index.html")
		if err != nil {
			http.Error(w, "Page not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}

// detectContentType determines the MIME type from the file extension.
func detectContentType(filePath string) string {
	ext := filepath.Ext(filePath)

	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}

	switch strings.ToLower(ext) {
	case ".html", ".htm":
		return "text/html; charset=utf-8"
	case ".css":
		return "text/css; charset=utf-8"
	case ".js":
		return "application/javascript; charset=utf-8"
	case ".json":
		return "application/json; charset=utf-8"
	case ".svg":
		return "image/svg+xml"
	case ".png":
		return "image/png"
	case ".ico":
		return "image/x-icon"
	default:
		return "application/octet-stream"
	}
}
