package api

import (
	"net/http"

	corpusapi "github.com/futig/vertex-rag-services/internal/api/corpus"
	"github.com/futig/vertex-rag-services/internal/api/docs"
	"github.com/futig/vertex-rag-services/internal/api/middleware"
	queryapi "github.com/futig/vertex-rag-services/internal/api/query"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// SetupCorpusRouter creates the router of the corpus manager
func SetupCorpusRouter(handler *corpusapi.Handler, logger *zap.Logger) http.Handler {
	r := newRouter(logger)

	docs.RegisterRoutes(r, docs.CorpusManagerSpec)
	corpusapi.RegisterRoutes(r, handler)

	return r
}

// SetupQueryRouter creates the router of the query service
func SetupQueryRouter(handler *queryapi.Handler, logger *zap.Logger) http.Handler {
	r := newRouter(logger)

	docs.RegisterRoutes(r, docs.QueryServiceSpec)
	queryapi.RegisterRoutes(r, handler)

	return r
}

// newRouter installs the middleware stack and the JSON health check shared
// by both services. No request timeout is applied: corpus creation waits on
// a platform operation.
func newRouter(logger *zap.Logger) chi.Router {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)   // Recover from panics
	r.Use(chimiddleware.RequestID)   // Add request ID
	r.Use(middleware.Logger(logger)) // Log requests

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	return r
}
