package builder

import (
	"context"
	"fmt"

	"github.com/futig/vertex-rag-services/internal/config"
	"github.com/futig/vertex-rag-services/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// setupDatabase creates the connection pool of the import journal
func setupDatabase(ctx context.Context, cfg *config.CorpusManagerConfig, logger *zap.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.DatabaseMaxConn)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("database connection pool established",
		zap.Int32("max_conns", poolConfig.MaxConns),
	)

	return pool, nil
}

// setupJournal returns the Postgres import journal when DATABASE_URL is set
// and a no-op journal otherwise.
func setupJournal(ctx context.Context, cfg *config.CorpusManagerConfig, logger *zap.Logger) (repository.ImportJobRepository, *pgxpool.Pool, error) {
	if cfg.DatabaseURL == "" {
		logger.Info("DATABASE_URL not set, import journal disabled")
		return repository.NoopImportJobs{}, nil, nil
	}

	db, err := setupDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("setup database: %w", err)
	}

	logger.Info("Running database migrations")
	if err := repository.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	return repository.NewImportJobPostgres(db), db, nil
}
