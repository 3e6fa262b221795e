package repository

import (
	"context"
	"fmt"

	"github.com/futig/vertex-rag-services/internal/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ ImportJobRepository = &ImportJobPostgres{}

// ImportJobPostgres implements ImportJobRepository using PostgreSQL
type ImportJobPostgres struct {
	db *pgxpool.Pool
}

func NewImportJobPostgres(db *pgxpool.Pool) *ImportJobPostgres {
	return &ImportJobPostgres{db: db}
}

const insertImportJob = `
INSERT INTO import_jobs (id, operation, corpus_name, source_uris, chunk_size, chunk_overlap, max_embedding_requests_per_min, started_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

func (r *ImportJobPostgres) Record(ctx context.Context, job *entity.ImportJob) (*entity.ImportJob, error) {
	saved := *job
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}

	id, err := uuid.Parse(saved.ID)
	if err != nil {
		return nil, fmt.Errorf("parse import job ID: %w", err)
	}

	_, err = r.db.Exec(ctx, insertImportJob,
		id,
		saved.Operation,
		saved.CorpusName,
		saved.SourceURIs,
		saved.ChunkSize,
		saved.ChunkOverlap,
		saved.MaxEmbeddingRequestsPerMin,
		saved.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert import job: %w", err)
	}

	return &saved, nil
}

const selectRecentImportJobs = `
SELECT id, operation, corpus_name, source_uris, chunk_size, chunk_overlap, max_embedding_requests_per_min, started_at
FROM import_jobs
ORDER BY started_at DESC
LIMIT $1`

func (r *ImportJobPostgres) ListRecent(ctx context.Context, limit int) ([]*entity.ImportJob, error) {
	rows, err := r.db.Query(ctx, selectRecentImportJobs, limit)
	if err != nil {
		return nil, fmt.Errorf("list import jobs: %w", err)
	}

	jobs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.ImportJob, error) {
		var (
			id  uuid.UUID
			job entity.ImportJob
		)
		if err := row.Scan(
			&id,
			&job.Operation,
			&job.CorpusName,
			&job.SourceURIs,
			&job.ChunkSize,
			&job.ChunkOverlap,
			&job.MaxEmbeddingRequestsPerMin,
			&job.StartedAt,
		); err != nil {
			return nil, err
		}
		job.ID = id.String()
		return &job, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan import jobs: %w", err)
	}

	return jobs, nil
}
