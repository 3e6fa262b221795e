package entity

import "time"

// Corpus is a RAG corpus as reported by the platform
type Corpus struct {
	Name           string
	DisplayName    string
	EmbeddingModel string
	CreateTime     time.Time
}

// CorpusSpec describes the corpus to create and the files to import into it
type CorpusSpec struct {
	DisplayName                string
	EmbeddingModel             string
	SourceURIs                 []string
	ChunkSize                  int32
	ChunkOverlap               int32
	MaxEmbeddingRequestsPerMin int32
}

const (
	DefaultCorpusDisplayName  = "xu_zuoyebang_rag_corpus"
	DefaultEmbeddingModel     = "publishers/google/models/text-multilingual-embedding-002"
	DefaultChunkSize          = 512
	DefaultChunkOverlap       = 100
	DefaultEmbeddingRateLimit = 1000
)

var defaultSourceURIs = []string{
	"gs://xu-2025/computer_science/software_engineering/",
}

// DefaultCorpusSpec returns the fixed corpus layout served by the corpus manager.
func DefaultCorpusSpec() CorpusSpec {
	return CorpusSpec{
		DisplayName:                DefaultCorpusDisplayName,
		EmbeddingModel:             DefaultEmbeddingModel,
		SourceURIs:                 append([]string(nil), defaultSourceURIs...),
		ChunkSize:                  DefaultChunkSize,
		ChunkOverlap:               DefaultChunkOverlap,
		MaxEmbeddingRequestsPerMin: DefaultEmbeddingRateLimit,
	}
}

// ImportJob is an import started on the platform. Progress is not tracked locally.
type ImportJob struct {
	ID                         string
	Operation                  string
	CorpusName                 string
	SourceURIs                 []string
	ChunkSize                  int32
	ChunkOverlap               int32
	MaxEmbeddingRequestsPerMin int32
	StartedAt                  time.Time
}

// RebuildResult summarizes a create-and-import run
type RebuildResult struct {
	CorpusName      string
	ImportOperation string
	DeletedCorpora  int
	FailedDeletions int
}
