package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func SetupRoutes(handler *Handler) *chi.Mux {
	r := chi.NewRouter()

	for _, middleware := range SetupMiddleware() {
		r.Use(middleware)
	}

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/health", handler.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		// Stateless generation
		r.Get("/controls", handler.GetControls)
		r.Get("/scene", handler.GetScene)
		r.Get("/heightmap", handler.GetHeightMap)
		r.Get("/voxels", handler.GetVoxels)

		// Server-side session
		r.Route("/session", func(r chi.Router) {
			r.Get("/", handler.GetSession)
			r.Put("/params/{key}", handler.SetSessionParam)
		})
	})

	return r
}
