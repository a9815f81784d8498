package http

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	cfotel "github.com/Strob0t/gchat-notify/internal/adapter/otel"
)

// NewRouter builds the relay router with its middleware stack.
func NewRouter(h *Handlers, serviceName string) chi.Router {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(Logger)
	r.Use(chimw.Recoverer)
	r.Use(cfotel.HTTPMiddleware(serviceName))

	r.Get("/health", h.Health)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/messages", h.PostMessage)
		r.Post("/messages/batch", h.PostBatch)
	})

	return r
}
