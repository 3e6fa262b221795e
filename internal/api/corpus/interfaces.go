package corpus

import (
	"context"

	"github.com/futig/vertex-rag-services/internal/entity"
)

type CorpusUsecase interface {
	CreateAndImport(ctx context.Context) (*entity.RebuildResult, error)
	ListImports(ctx context.Context, limit int) ([]*entity.ImportJob, error)
}
