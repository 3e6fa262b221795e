package corpus

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers corpus manager routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/", h.HealthCheck)
	r.Post("/create_and_import", h.CreateAndImport)
	r.Get("/imports", h.ListImports)
}
