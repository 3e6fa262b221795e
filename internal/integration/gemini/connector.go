package gemini

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"cloud.google.com/go/auth/credentials"
	"cloud.google.com/go/auth/httptransport"
	"github.com/futig/vertex-rag-services/internal/entity"
	pkghttp "github.com/futig/vertex-rag-services/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"

// Connector is a generative model handle bound to one RAG corpus.
// It is built once at startup and never changes afterwards.
type Connector struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
	logger *zap.Logger
}

// TransportConfig tunes the connections to the model endpoint. Requests
// themselves are not bounded.
type TransportConfig struct {
	ConnectTimeout  time.Duration
	KeepAlive       time.Duration
	IdleConnTimeout time.Duration
}

// NewTransport builds the logging round tripper placed under the Google
// auth transport
func NewTransport(cfg TransportConfig) http.RoundTripper {
	return pkghttp.NewTransport(
		pkghttp.WithConnClientTimeout(cfg.ConnectTimeout),
		pkghttp.WithClientKeepAlive(cfg.KeepAlive),
		pkghttp.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkghttp.WithRequestLogging(),
	)
}

// NewConnector creates a Vertex AI backed genai client and binds the
// retrieval tool described by settings to it.
func NewConnector(ctx context.Context, projectID, location string, settings entity.RetrievalSettings, transport TransportConfig, logger *zap.Logger) (*Connector, error) {
	creds, err := credentials.DetectDefault(&credentials.DetectOptions{
		Scopes: []string{cloudPlatformScope},
	})
	if err != nil {
		return nil, fmt.Errorf("detect default credentials: %w", err)
	}

	httpClient, err := httptransport.NewClient(&httptransport.Options{
		Credentials:      creds,
		BaseRoundTripper: NewTransport(transport),
	})
	if err != nil {
		return nil, fmt.Errorf("create authenticated HTTP client: %w", err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:     projectID,
		Location:    location,
		Backend:     genai.BackendVertexAI,
		Credentials: creds,
		HTTPClient:  httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	logger.Info("Model loaded with RAG retrieval tool",
		zap.String("model", settings.ModelName),
		zap.String("corpus", settings.CorpusName),
		zap.Int32("top_k", settings.TopK),
		zap.Float64("distance_threshold", settings.DistanceThreshold),
	)

	return &Connector{
		client: client,
		model:  settings.ModelName,
		config: BuildGenerateConfig(settings),
		logger: logger,
	}, nil
}

// BuildGenerateConfig returns a generation config whose only tool retrieves
// from the configured corpus.
func BuildGenerateConfig(settings entity.RetrievalSettings) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{
				Retrieval: &genai.Retrieval{
					VertexRAGStore: &genai.VertexRAGStore{
						RAGResources: []*genai.VertexRAGStoreRAGResource{
							{
								RAGCorpus: settings.CorpusName,
							},
						},
						SimilarityTopK:          genai.Ptr(settings.TopK),
						VectorDistanceThreshold: genai.Ptr(settings.DistanceThreshold),
					},
				},
			},
		},
	}
}

// Generate sends query verbatim to the model and returns the generated text
func (c *Connector) Generate(ctx context.Context, query string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(query), c.config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
			return "", fmt.Errorf("prompt blocked: %s %s", fb.BlockReason, fb.BlockReasonMessage)
		}
		return "", fmt.Errorf("model returned no candidates")
	}

	ctxzap.Debug(ctx, "model answered",
		zap.String("finish_reason", string(resp.Candidates[0].FinishReason)),
	)

	return resp.Text(), nil
}
