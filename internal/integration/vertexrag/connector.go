package vertexrag

import (
	"context"
	"fmt"
	"strings"
	"time"

	aiplatform "cloud.google.com/go/aiplatform/apiv1beta1"
	"cloud.google.com/go/aiplatform/apiv1beta1/aiplatformpb"
	"cloud.google.com/go/auth/credentials"
	"github.com/futig/vertex-rag-services/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// Connector talks to the Vertex AI RAG data API of one project and location
type Connector struct {
	client    *aiplatform.VertexRagDataClient
	projectID string
	location  string
	logger    *zap.Logger
}

// NewConnector creates a Vertex RAG data client on the regional endpoint
// using application default credentials.
func NewConnector(ctx context.Context, projectID, location string, logger *zap.Logger) (*Connector, error) {
	creds, err := credentials.DetectDefault(&credentials.DetectOptions{
		Scopes: []string{cloudPlatformScope},
	})
	if err != nil {
		return nil, fmt.Errorf("detect default credentials: %w", err)
	}

	client, err := aiplatform.NewVertexRagDataClient(ctx,
		option.WithEndpoint(RegionalEndpoint(location)),
		option.WithAuthCredentials(creds),
	)
	if err != nil {
		return nil, fmt.Errorf("create Vertex RAG data client: %w", err)
	}

	logger.Info("Vertex RAG data client initialized",
		zap.String("project_id", projectID),
		zap.String("location", location),
	)

	return &Connector{
		client:    client,
		projectID: projectID,
		location:  location,
		logger:    logger,
	}, nil
}

// Close releases the underlying gRPC connection
func (c *Connector) Close() error {
	return c.client.Close()
}

// ListCorpora lists every corpus visible in the project and location
func (c *Connector) ListCorpora(ctx context.Context) ([]*entity.Corpus, error) {
	parent := ParentName(c.projectID, c.location)

	it := c.client.ListRagCorpora(ctx, &aiplatformpb.ListRagCorporaRequest{
		Parent: parent,
	})

	var corpora []*entity.Corpus
	for {
		pbCorpus, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list RAG corpora: %w", err)
		}
		corpora = append(corpora, toCorpus(pbCorpus))
	}

	ctxzap.Debug(ctx, "listed RAG corpora",
		zap.String("parent", parent),
		zap.Int("count", len(corpora)),
	)

	return corpora, nil
}

// DeleteCorpus deletes a corpus and waits for the operation to finish
func (c *Connector) DeleteCorpus(ctx context.Context, name string) error {
	op, err := c.client.DeleteRagCorpus(ctx, &aiplatformpb.DeleteRagCorpusRequest{
		Name: name,
	})
	if err != nil {
		return fmt.Errorf("delete RAG corpus %s: %w", name, err)
	}

	if err := op.Wait(ctx); err != nil {
		return fmt.Errorf("wait for RAG corpus %s deletion: %w", name, err)
	}

	return nil
}

// CreateCorpus creates a corpus with the display name and embedding model of
// spec and waits until the platform has assigned it a resource name.
func (c *Connector) CreateCorpus(ctx context.Context, spec *entity.CorpusSpec) (*entity.Corpus, error) {
	op, err := c.client.CreateRagCorpus(ctx, buildCreateCorpusRequest(c.projectID, c.location, spec))
	if err != nil {
		return nil, fmt.Errorf("create RAG corpus: %w", err)
	}

	pbCorpus, err := op.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("wait for RAG corpus creation: %w", err)
	}

	return toCorpus(pbCorpus), nil
}

// StartImport starts importing spec.SourceURIs into the corpus. It returns as
// soon as the platform accepted the long-running operation.
func (c *Connector) StartImport(ctx context.Context, corpusName string, spec *entity.CorpusSpec) (*entity.ImportJob, error) {
	op, err := c.client.ImportRagFiles(ctx, buildImportRequest(corpusName, spec))
	if err != nil {
		return nil, fmt.Errorf("import RAG files: %w", err)
	}

	return &entity.ImportJob{
		Operation:                  op.Name(),
		CorpusName:                 corpusName,
		SourceURIs:                 spec.SourceURIs,
		ChunkSize:                  spec.ChunkSize,
		ChunkOverlap:               spec.ChunkOverlap,
		MaxEmbeddingRequestsPerMin: spec.MaxEmbeddingRequestsPerMin,
		StartedAt:                  time.Now().UTC(),
	}, nil
}

// RegionalEndpoint returns the gRPC endpoint of Vertex AI in location
func RegionalEndpoint(location string) string {
	return fmt.Sprintf("%s-aiplatform.googleapis.com:443", location)
}

// ParentName returns projects/{project}/locations/{location}
func ParentName(projectID, location string) string {
	return fmt.Sprintf("projects/%s/locations/%s", projectID, location)
}

// EmbeddingEndpoint expands a publisher model reference
// ("publishers/google/models/x" or just "x") to the full prediction endpoint
// name. Full "projects/..." names are returned unchanged.
func EmbeddingEndpoint(projectID, location, model string) string {
	switch {
	case strings.HasPrefix(model, "projects/"):
		return model
	case strings.HasPrefix(model, "publishers/"):
		return fmt.Sprintf("%s/%s", ParentName(projectID, location), model)
	default:
		return fmt.Sprintf("%s/publishers/google/models/%s", ParentName(projectID, location), model)
	}
}

func buildCreateCorpusRequest(projectID, location string, spec *entity.CorpusSpec) *aiplatformpb.CreateRagCorpusRequest {
	return &aiplatformpb.CreateRagCorpusRequest{
		Parent: ParentName(projectID, location),
		RagCorpus: &aiplatformpb.RagCorpus{
			DisplayName: spec.DisplayName,
			RagVectorDbConfig: &aiplatformpb.RagVectorDbConfig{
				RagEmbeddingModelConfig: &aiplatformpb.RagEmbeddingModelConfig{
					ModelConfig: &aiplatformpb.RagEmbeddingModelConfig_VertexPredictionEndpoint_{
						VertexPredictionEndpoint: &aiplatformpb.RagEmbeddingModelConfig_VertexPredictionEndpoint{
							Endpoint: EmbeddingEndpoint(projectID, location, spec.EmbeddingModel),
						},
					},
				},
			},
		},
	}
}

func buildImportRequest(corpusName string, spec *entity.CorpusSpec) *aiplatformpb.ImportRagFilesRequest {
	return &aiplatformpb.ImportRagFilesRequest{
		Parent: corpusName,
		ImportRagFilesConfig: &aiplatformpb.ImportRagFilesConfig{
			ImportSource: &aiplatformpb.ImportRagFilesConfig_GcsSource{
				GcsSource: &aiplatformpb.GcsSource{
					Uris: spec.SourceURIs,
				},
			},
			RagFileTransformationConfig: &aiplatformpb.RagFileTransformationConfig{
				RagFileChunkingConfig: &aiplatformpb.RagFileChunkingConfig{
					ChunkingConfig: &aiplatformpb.RagFileChunkingConfig_FixedLengthChunking_{
						FixedLengthChunking: &aiplatformpb.RagFileChunkingConfig_FixedLengthChunking{
							ChunkSize:    spec.ChunkSize,
							ChunkOverlap: spec.ChunkOverlap,
						},
					},
				},
			},
			MaxEmbeddingRequestsPerMin: spec.MaxEmbeddingRequestsPerMin,
		},
	}
}

func toCorpus(pb *aiplatformpb.RagCorpus) *entity.Corpus {
	endpoint := pb.GetRagVectorDbConfig().GetRagEmbeddingModelConfig().GetVertexPredictionEndpoint()

	corpus := &entity.Corpus{
		Name:           pb.GetName(),
		DisplayName:    pb.GetDisplayName(),
		EmbeddingModel: endpoint.GetEndpoint(),
	}

	if pb.GetCreateTime() != nil {
		corpus.CreateTime = pb.GetCreateTime().AsTime()
	}

	return corpus
}
