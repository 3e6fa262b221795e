package validator

import (
	"fmt"
	"strings"

	"github.com/futig/vertex-rag-services/internal/entity"
)

// ValidateCorpusSpec checks the corpus layout before any platform call is made
func ValidateCorpusSpec(spec *entity.CorpusSpec) error {
	if spec.DisplayName == "" {
		return fmt.Errorf("corpus display name is empty")
	}
	if spec.EmbeddingModel == "" {
		return fmt.Errorf("embedding model is empty")
	}
	if len(spec.SourceURIs) == 0 {
		return fmt.Errorf("no source paths configured")
	}
	for _, uri := range spec.SourceURIs {
		if !strings.HasPrefix(uri, "gs://") {
			return fmt.Errorf("source path %q is not a gs:// URI", uri)
		}
	}
	if spec.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", spec.ChunkSize)
	}
	if spec.ChunkOverlap < 0 || spec.ChunkOverlap >= spec.ChunkSize {
		return fmt.Errorf("chunk overlap must be in [0, %d), got %d", spec.ChunkSize, spec.ChunkOverlap)
	}
	if spec.MaxEmbeddingRequestsPerMin <= 0 {
		return fmt.Errorf("embedding rate cap must be positive, got %d", spec.MaxEmbeddingRequestsPerMin)
	}
	return nil
}
