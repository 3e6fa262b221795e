package corpus

import (
	"context"
	"fmt"

	"github.com/futig/vertex-rag-services/internal/entity"
	"github.com/futig/vertex-rag-services/internal/pkg/logger"
	"github.com/futig/vertex-rag-services/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// Settings are the corpus manager switches read from configuration
type Settings struct {
	ProjectID      string
	DeleteExisting bool
	Spec           entity.CorpusSpec
}

// CorpusUsecase replaces or adds RAG corpora and starts ingestion
type CorpusUsecase struct {
	settings  Settings
	connector RagConnector
	checker   SourceChecker
	journal   ImportJobRepository
	logger    *zap.Logger
}

// NewUsecase creates a new corpus use case. connector may be nil when no
// project is configured; checker may be nil when source verification is off.
func NewUsecase(
	settings Settings,
	connector RagConnector,
	checker SourceChecker,
	journal ImportJobRepository,
	logger *zap.Logger,
) *CorpusUsecase {
	return &CorpusUsecase{
		settings:  settings,
		connector: connector,
		checker:   checker,
		journal:   journal,
		logger:    logger,
	}
}

// CreateAndImport lists the existing corpora, deletes them in destructive
// mode, creates one corpus and starts an import into it.
// Deletion failures are logged and counted only. Failures to create the
// corpus or to start the import fail the call; nothing is rolled back.
func (uc *CorpusUsecase) CreateAndImport(ctx context.Context) (*entity.RebuildResult, error) {
	if uc.settings.ProjectID == "" || uc.connector == nil {
		return nil, entity.ErrProjectNotConfigured
	}

	spec := uc.settings.Spec
	if err := validator.ValidateCorpusSpec(&spec); err != nil {
		return nil, fmt.Errorf("invalid corpus spec: %w", err)
	}

	ctxzap.Info(ctx, "starting RAG corpus setup and import")

	existing, err := uc.connector.ListCorpora(ctx)
	if err != nil {
		return nil, fmt.Errorf("list existing corpora: %w", err)
	}
	ctxzap.Info(ctx, "listed existing corpora", zap.Int("count", len(existing)))

	result := &entity.RebuildResult{}

	if uc.settings.DeleteExisting {
		ctxzap.Warn(ctx, "DELETE_EXISTING_CORPORA is enabled, deleting all existing corpora",
			zap.Int("count", len(existing)),
		)
		result.DeletedCorpora, result.FailedDeletions = uc.deleteAll(ctx, existing)
		uc.logRemaining(ctx)
	}

	uc.verifySources(ctx, spec.SourceURIs)

	ctxzap.Info(ctx, "creating new corpus", zap.String("display_name", spec.DisplayName))
	corpus, err := uc.connector.CreateCorpus(ctx, &spec)
	if err != nil {
		return nil, fmt.Errorf("create corpus: %w", err)
	}
	result.CorpusName = corpus.Name

	ctx = logger.WithCorpus(ctx, corpus.Name)
	ctxzap.Info(ctx, "new corpus created",
		zap.String("display_name", corpus.DisplayName),
		zap.String("embedding_model", corpus.EmbeddingModel),
		zap.Time("create_time", corpus.CreateTime),
	)

	ctxzap.Info(ctx, "starting file import", zap.Strings("source_uris", spec.SourceURIs))
	job, err := uc.connector.StartImport(ctx, corpus.Name, &spec)
	if err != nil {
		return result, fmt.Errorf("start import into %s: %w", corpus.Name, err)
	}
	result.ImportOperation = job.Operation

	ctxzap.Info(ctx, "import operation initiated", zap.String("operation", job.Operation))

	if _, err := uc.journal.Record(ctx, job); err != nil {
		ctxzap.Warn(ctx, "failed to record import job", zap.Error(err))
	}

	return result, nil
}

// ListImports returns the most recently started imports
func (uc *CorpusUsecase) ListImports(ctx context.Context, limit int) ([]*entity.ImportJob, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	jobs, err := uc.journal.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list import jobs: %w", err)
	}

	return jobs, nil
}

func (uc *CorpusUsecase) deleteAll(ctx context.Context, corpora []*entity.Corpus) (deleted, failed int) {
	for _, c := range corpora {
		ctxzap.Info(ctx, "deleting corpus", zap.String("name", c.Name))

		if err := uc.connector.DeleteCorpus(ctx, c.Name); err != nil {
			ctxzap.Error(ctx, "failed to delete corpus", zap.String("name", c.Name), zap.Error(err))
			failed++
			continue
		}

		ctxzap.Info(ctx, "corpus deleted", zap.String("name", c.Name))
		deleted++
	}

	return deleted, failed
}

func (uc *CorpusUsecase) logRemaining(ctx context.Context) {
	remaining, err := uc.connector.ListCorpora(ctx)
	if err != nil {
		ctxzap.Warn(ctx, "failed to list corpora after deletion", zap.Error(err))
		return
	}

	ctxzap.Info(ctx, "corpora remaining after deletion", zap.Int("count", len(remaining)))
}

func (uc *CorpusUsecase) verifySources(ctx context.Context, uris []string) {
	if uc.checker == nil {
		return
	}

	for _, uri := range uris {
		n, err := uc.checker.CountObjects(ctx, uri)
		switch {
		case err != nil:
			ctxzap.Warn(ctx, "could not inspect import source", zap.String("uri", uri), zap.Error(err))
		case n == 0:
			ctxzap.Warn(ctx, "import source is empty", zap.String("uri", uri))
		default:
			ctxzap.Info(ctx, "import source inspected", zap.String("uri", uri), zap.Int("objects", n))
		}
	}
}
