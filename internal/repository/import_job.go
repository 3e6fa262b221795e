package repository

import (
	"context"

	"github.com/futig/vertex-rag-services/internal/entity"
)

// ImportJobRepository records import operations started by the corpus manager
type ImportJobRepository interface {
	Record(ctx context.Context, job *entity.ImportJob) (*entity.ImportJob, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.ImportJob, error)
}

var _ ImportJobRepository = NoopImportJobs{}

// NoopImportJobs is used when no database is configured
type NoopImportJobs struct{}

func (NoopImportJobs) Record(_ context.Context, job *entity.ImportJob) (*entity.ImportJob, error) {
	return job, nil
}

func (NoopImportJobs) ListRecent(context.Context, int) ([]*entity.ImportJob, error) {
	return []*entity.ImportJob{}, nil
}
