package query

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers query service routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/", h.Query)
}
