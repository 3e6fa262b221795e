package entity

// RetrievalSettings binds the generative model to one corpus
type RetrievalSettings struct {
	CorpusName        string
	ModelName         string
	TopK              int32
	DistanceThreshold float64
}

// QueryResult is the answer produced for one query
type QueryResult struct {
	Query    string
	Response string
}
