package vertexrag

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/aiplatform/apiv1beta1/aiplatformpb"
	"github.com/futig/vertex-rag-services/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func TestEmbeddingEndpoint(t *testing.T) {
	tests := []struct {
		model string
		want  string
	}{
		{
			model: "publishers/google/models/text-multilingual-embedding-002",
			want:  "projects/p1/locations/us-central1/publishers/google/models/text-multilingual-embedding-002",
		},
		{
			model: "text-embedding-005",
			want:  "projects/p1/locations/us-central1/publishers/google/models/text-embedding-005",
		},
		{
			model: "projects/other/locations/europe-west4/endpoints/123",
			want:  "projects/other/locations/europe-west4/endpoints/123",
		},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, EmbeddingEndpoint("p1", "us-central1", tt.model))
	}
}

func TestRegionalEndpoint(t *testing.T) {
	assert.Equal(t, "asia-east1-aiplatform.googleapis.com:443", RegionalEndpoint("asia-east1"))
}

func TestBuildCreateCorpusRequest(t *testing.T) {
	spec := entity.DefaultCorpusSpec()

	req := buildCreateCorpusRequest("p1", "us-central1", &spec)

	assert.Equal(t, "projects/p1/locations/us-central1", req.GetParent())
	assert.Equal(t, "xu_zuoyebang_rag_corpus", req.GetRagCorpus().GetDisplayName())
	assert.Equal(t,
		"projects/p1/locations/us-central1/publishers/google/models/text-multilingual-embedding-002",
		req.GetRagCorpus().GetRagVectorDbConfig().GetRagEmbeddingModelConfig().GetVertexPredictionEndpoint().GetEndpoint(),
	)
}

func TestBuildImportRequest(t *testing.T) {
	spec := entity.DefaultCorpusSpec()
	corpus := "projects/p1/locations/us-central1/ragCorpora/42"

	req := buildImportRequest(corpus, &spec)

	assert.Equal(t, corpus, req.GetParent())
	cfg := req.GetImportRagFilesConfig()
	assert.Equal(t, []string{"gs://xu-2025/computer_science/software_engineering/"}, cfg.GetGcsSource().GetUris())
	assert.EqualValues(t, 1000, cfg.GetMaxEmbeddingRequestsPerMin())

	chunking := cfg.GetRagFileTransformationConfig().GetRagFileChunkingConfig().GetFixedLengthChunking()
	require.NotNil(t, chunking)
	assert.EqualValues(t, 512, chunking.GetChunkSize())
	assert.EqualValues(t, 100, chunking.GetChunkOverlap())
}

func TestToCorpus(t *testing.T) {
	created := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	pb := &aiplatformpb.RagCorpus{
		Name:        "projects/p1/locations/us-central1/ragCorpora/7",
		DisplayName: "docs",
		CreateTime:  timestamppb.New(created),
		RagVectorDbConfig: &aiplatformpb.RagVectorDbConfig{
			RagEmbeddingModelConfig: &aiplatformpb.RagEmbeddingModelConfig{
				ModelConfig: &aiplatformpb.RagEmbeddingModelConfig_VertexPredictionEndpoint_{
					VertexPredictionEndpoint: &aiplatformpb.RagEmbeddingModelConfig_VertexPredictionEndpoint{
						Endpoint: "projects/p1/locations/us-central1/publishers/google/models/m",
					},
				},
			},
		},
	}

	corpus := toCorpus(pb)

	assert.Equal(t, "projects/p1/locations/us-central1/ragCorpora/7", corpus.Name)
	assert.Equal(t, "docs", corpus.DisplayName)
	assert.Equal(t, "projects/p1/locations/us-central1/publishers/google/models/m", corpus.EmbeddingModel)
	assert.True(t, created.Equal(corpus.CreateTime))
}

func TestMockConnectorLifecycle(t *testing.T) {
	ctx := context.Background()
	m := NewMockConnector("p1", "us-central1", zap.NewNop())
	spec := entity.DefaultCorpusSpec()

	first, err := m.CreateCorpus(ctx, &spec)
	require.NoError(t, err)
	second, err := m.CreateCorpus(ctx, &spec)
	require.NoError(t, err)
	assert.NotEqual(t, first.Name, second.Name)

	corpora, err := m.ListCorpora(ctx)
	require.NoError(t, err)
	assert.Len(t, corpora, 2)

	require.NoError(t, m.DeleteCorpus(ctx, first.Name))
	assert.Error(t, m.DeleteCorpus(ctx, first.Name))

	job, err := m.StartImport(ctx, second.Name, &spec)
	require.NoError(t, err)
	assert.Equal(t, second.Name, job.CorpusName)
	assert.Contains(t, job.Operation, second.Name+"/operations/")
}
