package builder

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/futig/vertex-rag-services/internal/api"
	corpusapi "github.com/futig/vertex-rag-services/internal/api/corpus"
	queryapi "github.com/futig/vertex-rag-services/internal/api/query"
	"github.com/futig/vertex-rag-services/internal/config"
	"github.com/futig/vertex-rag-services/internal/entity"
	"github.com/futig/vertex-rag-services/internal/integration/gcs"
	"github.com/futig/vertex-rag-services/internal/integration/gemini"
	"github.com/futig/vertex-rag-services/internal/integration/vertexrag"
	"github.com/futig/vertex-rag-services/internal/usecase/corpus"
	"github.com/futig/vertex-rag-services/internal/usecase/query"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// BuildCorpusManager loads configuration and builds the corpus manager service
func BuildCorpusManager() (*App, error) {
	cfg, err := config.LoadCorpusManagerConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	return NewCorpusManager(context.Background(), cfg, logger)
}

// NewCorpusManager builds the corpus manager from an already parsed configuration
func NewCorpusManager(ctx context.Context, cfg *config.CorpusManagerConfig, logger *zap.Logger) (*App, error) {
	logger.Info("Building corpus manager",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.Addr()),
		zap.String("project_id", cfg.ProjectID),
		zap.String("location", cfg.Location),
		zap.Bool("delete_existing", bool(cfg.DeleteExisting)),
	)

	journal, db, err := setupJournal(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var closers []io.Closer

	// Initialize external service connectors (with mock support)
	var ragConnector corpus.RagConnector
	var sourceChecker corpus.SourceChecker

	switch {
	case cfg.ProjectID == "":
		logger.Error("GCP_PROJECT_ID environment variable not set, Vertex AI not initialized")
	case bool(cfg.EnableMocks):
		logger.Info("Using mock connectors for external services")
		ragConnector = vertexrag.NewMockConnector(cfg.ProjectID, cfg.Location, logger)
	default:
		logger.Info("Using real connectors for external services")
		connector, err := vertexrag.NewConnector(ctx, cfg.ProjectID, cfg.Location, logger)
		if err != nil {
			closeAll(closers, db, logger)
			return nil, fmt.Errorf("create vertex rag connector: %w", err)
		}
		ragConnector = connector
		closers = append(closers, connector)

		if bool(cfg.VerifySources) {
			checker, err := gcs.NewChecker(ctx)
			if err != nil {
				closeAll(closers, db, logger)
				return nil, fmt.Errorf("create storage checker: %w", err)
			}
			sourceChecker = checker
			closers = append(closers, checker)
		}
	}

	// Initialize use cases
	corpusUC := corpus.NewUsecase(
		corpus.Settings{
			ProjectID:      cfg.ProjectID,
			DeleteExisting: bool(cfg.DeleteExisting),
			Spec:           entity.DefaultCorpusSpec(),
		},
		ragConnector,
		sourceChecker,
		journal,
		logger,
	)
	logger.Info("Use cases initialized")

	handler := corpusapi.NewHandler(corpusUC)
	router := api.SetupCorpusRouter(handler, logger)

	logger.Info("Corpus manager built successfully")

	return &App{
		server:  newServer(cfg.ServerConfig, router),
		db:      db,
		closers: closers,
		logger:  logger,
	}, nil
}

// BuildQueryService loads configuration and builds the query service.
// Missing configuration or a failure to bind the generative model stops startup.
func BuildQueryService() (*App, error) {
	cfg, err := config.LoadQueryServiceConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	return NewQueryService(context.Background(), cfg, logger)
}

// NewQueryService builds the query service from an already parsed configuration
func NewQueryService(ctx context.Context, cfg *config.QueryServiceConfig, logger *zap.Logger) (*App, error) {
	settings := entity.RetrievalSettings{
		CorpusName:        cfg.CorpusName,
		ModelName:         cfg.GenerativeModelName,
		TopK:              cfg.RetrievalTopK,
		DistanceThreshold: cfg.RetrievalDistanceThreshold,
	}

	logger.Info("Building query service",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.Addr()),
		zap.String("project_id", cfg.ProjectID),
		zap.String("location", cfg.Location),
		zap.String("corpus", settings.CorpusName),
		zap.String("model", settings.ModelName),
	)

	var generator query.Generator
	if bool(cfg.EnableMocks) {
		logger.Info("Using mock connectors for external services")
		generator = gemini.NewMockConnector(settings, logger)
	} else {
		logger.Info("Using real connectors for external services")
		transport := gemini.TransportConfig{
			ConnectTimeout:  cfg.ModelConnectTimeout,
			KeepAlive:       cfg.ModelKeepAlive,
			IdleConnTimeout: cfg.ModelIdleConnTimeout,
		}
		connector, err := gemini.NewConnector(ctx, cfg.ProjectID, cfg.Location, settings, transport, logger)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", entity.ErrModelUnavailable, err)
		}
		generator = connector
	}
	logger.Info("Generative model with RAG retrieval tool loaded")

	queryUC := query.NewUsecase(generator, logger)

	handler := queryapi.NewHandler(queryUC)
	router := api.SetupQueryRouter(handler, logger)

	logger.Info("Query service built successfully")

	return &App{
		server: newServer(cfg.ServerConfig, router),
		logger: logger,
	}, nil
}

func newServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

func closeAll(closers []io.Closer, db *pgxpool.Pool, logger *zap.Logger) {
	app := &App{db: db, closers: closers, logger: logger}
	app.release()
}
