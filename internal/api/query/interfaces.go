package query

import (
	"context"

	"github.com/futig/vertex-rag-services/internal/entity"
)

type QueryUsecase interface {
	Answer(ctx context.Context, query string) (*entity.QueryResult, error)
}
