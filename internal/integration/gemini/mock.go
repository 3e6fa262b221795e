package gemini

import (
	"context"
	"fmt"

	"github.com/futig/vertex-rag-services/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector answers every query with a canned text
type MockConnector struct {
	settings entity.RetrievalSettings
	logger   *zap.Logger
}

func NewMockConnector(settings entity.RetrievalSettings, logger *zap.Logger) *MockConnector {
	return &MockConnector{
		settings: settings,
		logger:   logger,
	}
}

func (m *MockConnector) Generate(ctx context.Context, query string) (string, error) {
	ctxzap.Info(ctx, "[MOCK] generating answer",
		zap.String("model", m.settings.ModelName),
		zap.String("corpus", m.settings.CorpusName),
	)

	return fmt.Sprintf("[mock %s] answer for %q from %s", m.settings.ModelName, query, m.settings.CorpusName), nil
}
