package entity

// ErrorResponse is the error body of both services.
// Details is filled by the corpus manager only.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// CreateAndImportResponse is returned by POST /create_and_import
type CreateAndImportResponse struct {
	Status     string `json:"status"`
	CorpusName string `json:"corpus_name"`
	Message    string `json:"message"`
	Operation  string `json:"operation,omitempty"`
}

// ImportJobDetail is one entry of GET /imports
type ImportJobDetail struct {
	ID                         string   `json:"id"`
	Operation                  string   `json:"operation"`
	CorpusName                 string   `json:"corpus_name"`
	SourceURIs                 []string `json:"source_uris"`
	ChunkSize                  int32    `json:"chunk_size"`
	ChunkOverlap               int32    `json:"chunk_overlap"`
	MaxEmbeddingRequestsPerMin int32    `json:"max_embedding_requests_per_min"`
	StartedAt                  string   `json:"started_at"`
}

type ListImportsResponse struct {
	Imports []*ImportJobDetail `json:"imports"`
}

// QueryResponse is returned by GET /?query=
type QueryResponse struct {
	Query    string `json:"query"`
	Response string `json:"response"`
}
