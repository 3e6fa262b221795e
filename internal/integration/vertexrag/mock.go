package vertexrag

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/futig/vertex-rag-services/internal/entity"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector keeps corpora in memory so the corpus manager can run
// without Google Cloud credentials.
type MockConnector struct {
	projectID string
	location  string
	logger    *zap.Logger

	mu      sync.Mutex
	corpora []*entity.Corpus
}

func NewMockConnector(projectID, location string, logger *zap.Logger) *MockConnector {
	return &MockConnector{
		projectID: projectID,
		location:  location,
		logger:    logger,
	}
}

func (m *MockConnector) Close() error {
	return nil
}

func (m *MockConnector) ListCorpora(ctx context.Context) ([]*entity.Corpus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctxzap.Info(ctx, "[MOCK] listing RAG corpora", zap.Int("count", len(m.corpora)))

	out := make([]*entity.Corpus, len(m.corpora))
	copy(out, m.corpora)
	return out, nil
}

func (m *MockConnector) DeleteCorpus(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ctxzap.Info(ctx, "[MOCK] deleting RAG corpus", zap.String("name", name))

	for i, c := range m.corpora {
		if c.Name == name {
			m.corpora = append(m.corpora[:i], m.corpora[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("corpus %s not found", name)
}

func (m *MockConnector) CreateCorpus(ctx context.Context, spec *entity.CorpusSpec) (*entity.Corpus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	corpus := &entity.Corpus{
		Name:           fmt.Sprintf("%s/ragCorpora/%s", ParentName(m.projectID, m.location), uuid.NewString()),
		DisplayName:    spec.DisplayName,
		EmbeddingModel: EmbeddingEndpoint(m.projectID, m.location, spec.EmbeddingModel),
		CreateTime:     time.Now().UTC(),
	}
	m.corpora = append(m.corpora, corpus)

	ctxzap.Info(ctx, "[MOCK] created RAG corpus", zap.String("name", corpus.Name))
	return corpus, nil
}

func (m *MockConnector) StartImport(ctx context.Context, corpusName string, spec *entity.CorpusSpec) (*entity.ImportJob, error) {
	ctxzap.Info(ctx, "[MOCK] starting RAG file import",
		zap.String("corpus", corpusName),
		zap.Strings("source_uris", spec.SourceURIs),
	)

	return &entity.ImportJob{
		Operation:                  fmt.Sprintf("%s/operations/%s", corpusName, uuid.NewString()),
		CorpusName:                 corpusName,
		SourceURIs:                 spec.SourceURIs,
		ChunkSize:                  spec.ChunkSize,
		ChunkOverlap:               spec.ChunkOverlap,
		MaxEmbeddingRequestsPerMin: spec.MaxEmbeddingRequestsPerMin,
		StartedAt:                  time.Now().UTC(),
	}, nil
}
