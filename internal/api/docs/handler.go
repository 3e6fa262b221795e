package docs

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

const specRoute = "/docs/openapi.yaml"

// OpenAPI documents, one per service
const (
	CorpusManagerSpec = "corpus-manager.yaml"
	QueryServiceSpec  = "query-service.yaml"
)

//go:embed openapi/*.yaml
var specFiles embed.FS

// Handler returns a handler that serves Swagger UI.
func Handler() http.HandlerFunc {
	return httpSwagger.Handler(
		httpSwagger.URL(specRoute),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	)
}

// SpecHandler serves the embedded OpenAPI document with the given file name.
func SpecHandler(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := fs.ReadFile(specFiles, "openapi/"+name)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/yaml")
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	}
}

// RegisterRoutes registers Swagger documentation routes for the service
// described by the embedded document name.
func RegisterRoutes(r chi.Router, name string) {
	// Redirect base /docs to the Swagger UI index
	r.Get("/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/docs/index.html", http.StatusFound)
	})

	r.Get(specRoute, SpecHandler(name))

	// Serve Swagger UI and assets under /docs/*
	r.Get("/docs/*", Handler())
}
