package corpus

import (
	"context"

	"github.com/futig/vertex-rag-services/internal/entity"
)

type RagConnector interface {
	ListCorpora(ctx context.Context) ([]*entity.Corpus, error)
	DeleteCorpus(ctx context.Context, name string) error
	CreateCorpus(ctx context.Context, spec *entity.CorpusSpec) (*entity.Corpus, error)
	StartImport(ctx context.Context, corpusName string, spec *entity.CorpusSpec) (*entity.ImportJob, error)
}

type SourceChecker interface {
	CountObjects(ctx context.Context, uri string) (int, error)
}

type ImportJobRepository interface {
	Record(ctx context.Context, job *entity.ImportJob) (*entity.ImportJob, error)
	ListRecent(ctx context.Context, limit int) ([]*entity.ImportJob, error)
}
