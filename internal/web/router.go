// Package web serves the HTML form pages that drive the registry API.
package web

import (
	"net/http"

	webembed "inventar/web"
)

// NewRouter creates the web page router.
func NewRouter() http.Handler {
	mux := http.NewServeMux()
	static := webembed.StaticFS()

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(static)))

	mux.HandleFunc("GET /register-form", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, static, "register-form.html")
	})
	mux.HandleFunc("GET /search-form", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, static, "search-form.html")
	})

	return mux
}
