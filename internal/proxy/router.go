// internal/proxy/router.go
package proxy

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// DefaultPath is where the hosting platform routes the status function.
const DefaultPath = "/.netlify/functions/activity"

func NewRouter(handler *Handler, path string) http.Handler {
	if path == "" {
		path = DefaultPath
	}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(accessLogMiddleware(handler.log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handler.getHealth)

	r.Group(func(r chi.Router) {
		r.Use(corsMiddleware)
		r.Options(path, handler.preflight)
		r.Get(path, handler.getActivity)
	})
	return r
}
