package handler

import (
	"io/fs"
	"net/http"
)

// PageHandler serves a single HTML page from fsys.
func PageHandler(fsys fs.FS, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		http.ServeFileFS(w, r, fsys, name)
	}
}
