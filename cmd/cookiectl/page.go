package main

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.943 generate -f page.templ

import (
	"net/http"

	"github.com/a-h/templ"
)

// renderHTML writes component as a text/html response.
func renderHTML(w http.ResponseWriter, r *http.Request, status int, component templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return component.Render(r.Context(), w)
}
