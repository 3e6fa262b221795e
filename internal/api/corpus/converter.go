package corpus

import (
	"time"

	"github.com/futig/vertex-rag-services/internal/entity"
)

func toImportJobDetail(j *entity.ImportJob) *entity.ImportJobDetail {
	return &entity.ImportJobDetail{
		ID:                         j.ID,
		Operation:                  j.Operation,
		CorpusName:                 j.CorpusName,
		SourceURIs:                 j.SourceURIs,
		ChunkSize:                  j.ChunkSize,
		ChunkOverlap:               j.ChunkOverlap,
		MaxEmbeddingRequestsPerMin: j.MaxEmbeddingRequestsPerMin,
		StartedAt:                  j.StartedAt.UTC().Format(time.RFC3339),
	}
}
