package query

import (
	"context"
	"fmt"

	"github.com/futig/vertex-rag-services/internal/entity"
	"github.com/futig/vertex-rag-services/internal/pkg/logger"
	"github.com/futig/vertex-rag-services/internal/pkg/validator"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const responseLogPrefix = 100

// QueryUsecase answers queries with the retrieval-augmented model
type QueryUsecase struct {
	generator Generator
	logger    *zap.Logger
}

func NewUsecase(generator Generator, logger *zap.Logger) *QueryUsecase {
	return &QueryUsecase{
		generator: generator,
		logger:    logger,
	}
}

// Answer forwards query unchanged to the model. Every call is independent.
func (uc *QueryUsecase) Answer(ctx context.Context, query string) (*entity.QueryResult, error) {
	if err := validator.ValidateQuery(query); err != nil {
		return nil, err
	}
	if uc.generator == nil {
		return nil, entity.ErrModelUnavailable
	}

	ctxzap.Info(ctx, "received query", zap.String("query", query))

	text, err := uc.generator.Generate(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	ctxzap.Info(ctx, "generated response", zap.String("response", logger.Truncate(text, responseLogPrefix)))

	return &entity.QueryResult{
		Query:    query,
		Response: text,
	}, nil
}
