package corpus

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/futig/vertex-rag-services/internal/entity"
	"github.com/futig/vertex-rag-services/internal/pkg/logger"
	"github.com/futig/vertex-rag-services/internal/pkg/response"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	HealthMessage = "Indexing Service is running"

	statusInitiated   = "Corpus setup and file import process initiated successfully"
	messageAsync      = "The import is running asynchronously. Check Cloud Logging or Vertex AI console for its final status and details."
	errNotInitialized = "GCP_PROJECT_ID environment variable not set, Vertex AI not initialized."
	errSetupFailed    = "Failed to initiate corpus setup or import process"
)

type Handler struct {
	usecase CorpusUsecase
}

func NewHandler(usecase CorpusUsecase) *Handler {
	return &Handler{
		usecase: usecase,
	}
}

// HealthCheck handles GET /
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.Text(w, http.StatusOK, HealthMessage)
}

// CreateAndImport handles POST /create_and_import
func (h *Handler) CreateAndImport(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateAndImport")

	result, err := h.usecase.CreateAndImport(ctx)
	if err != nil {
		if errors.Is(err, entity.ErrProjectNotConfigured) {
			ctxzap.Error(ctx, "corpus manager is not configured", zap.Error(err))
			response.ErrorWithDetails(w, http.StatusInternalServerError, errNotInitialized, err.Error())
			return
		}

		ctxzap.Error(ctx, "an error occurred during corpus setup or import initiation", zap.Error(err))
		response.ErrorWithDetails(w, http.StatusInternalServerError, errSetupFailed, err.Error())
		return
	}

	ctxzap.Info(ctx, "RAG corpus setup and import process initiated",
		zap.String("corpus", result.CorpusName),
		zap.String("operation", result.ImportOperation),
		zap.Int("deleted_corpora", result.DeletedCorpora),
		zap.Int("failed_deletions", result.FailedDeletions),
	)

	response.Success(w, &entity.CreateAndImportResponse{
		Status:     statusInitiated,
		CorpusName: result.CorpusName,
		Message:    messageAsync,
		Operation:  result.ImportOperation,
	})
}

// ListImports handles GET /imports
func (h *Handler) ListImports(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListImports")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			ctxzap.Warn(ctx, "invalid limit parameter", zap.String("limit", raw))
			response.Error(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = v
	}

	jobs, err := h.usecase.ListImports(ctx, limit)
	if err != nil {
		ctxzap.Error(ctx, "failed to list imports", zap.Error(err))
		response.ErrorWithDetails(w, http.StatusInternalServerError, "Failed to list import jobs", err.Error())
		return
	}

	details := make([]*entity.ImportJobDetail, 0, len(jobs))
	for _, j := range jobs {
		details = append(details, toImportJobDetail(j))
	}

	response.Success(w, &entity.ListImportsResponse{Imports: details})
}
