package entity

import "errors"

// Domain errors
var (
	// Configuration errors
	ErrProjectNotConfigured = errors.New("GCP_PROJECT_ID environment variable not set")
	ErrModelUnavailable     = errors.New("generative model is not initialized")

	// Validation errors
	ErrEmptyQuery = errors.New("query is empty")
)
