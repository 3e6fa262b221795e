package query

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/futig/vertex-rag-services/internal/entity"
	"github.com/futig/vertex-rag-services/internal/pkg/logger"
	"github.com/futig/vertex-rag-services/internal/pkg/response"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type Handler struct {
	usecase QueryUsecase
}

func NewHandler(usecase QueryUsecase) *Handler {
	return &Handler{
		usecase: usecase,
	}
}

// Query handles GET /?query=<text>
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Query")

	q := r.URL.Query().Get("query")

	result, err := h.usecase.Answer(ctx, q)
	if err != nil {
		if errors.Is(err, entity.ErrEmptyQuery) {
			ctxzap.Warn(ctx, "query parameter is missing")
			response.Error(w, http.StatusBadRequest, "Please provide a 'query' parameter.")
			return
		}

		ctxzap.Error(ctx, "error during content generation", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, fmt.Sprintf("An error occurred during the query: %v", err))
		return
	}

	response.Success(w, &entity.QueryResponse{
		Query:    result.Query,
		Response: result.Response,
	})
}
