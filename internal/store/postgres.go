package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// NewPool creates a pgx connection pool shared by all Postgres stores.
func NewPool(
	host string,
	port int,
	database, user, password string,
	maxConns, minConns int,
	logger *zap.Logger,
) (*pgxpool.Pool, error) {
	connString := fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s pool_max_conns=%d pool_min_conns=%d",
		host, port, database, user, password, maxConns, minConns,
	)

	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("connected to postgres",
		zap.String("host", host),
		zap.Int("port", port),
		zap.String("database", database))

	return pool, nil
}

// migrations are idempotent so startup is safe to retry. One shared table
// per region kind with a slug column replaces the per-tenant physical
// tables the provisioner used to create.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS tenants (
		slug VARCHAR(64) PRIMARY KEY,
		last_sequence BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS content_versions (
		id BIGSERIAL PRIMARY KEY,
		slug VARCHAR(64) NOT NULL REFERENCES tenants(slug),
		sequence BIGINT NOT NULL,
		shell TEXT NOT NULL DEFAULT '',
		behavior TEXT NOT NULL DEFAULT '',
		payload TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (slug, sequence)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_content_versions_current
		ON content_versions (slug, created_at DESC, sequence DESC)`,
	`CREATE TABLE IF NOT EXISTS visit_events (
		id BIGSERIAL PRIMARY KEY,
		slug VARCHAR(64) NOT NULL,
		source_marker VARCHAR(10) NOT NULL,
		origin TEXT NOT NULL DEFAULT 'unknown',
		occurred_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_visit_events_slug_time
		ON visit_events (slug, occurred_at)`,
	`CREATE TABLE IF NOT EXISTS enquiry_events (
		id BIGSERIAL PRIMARY KEY,
		slug VARCHAR(64) NOT NULL,
		contact TEXT,
		body TEXT,
		occurred_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_enquiry_events_slug_time
		ON enquiry_events (slug, occurred_at DESC)`,
	`CREATE TABLE IF NOT EXISTS templates (
		id BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		preview_url TEXT NOT NULL DEFAULT '',
		shell TEXT NOT NULL DEFAULT '',
		behavior TEXT NOT NULL DEFAULT '',
		payload TEXT NOT NULL DEFAULT ''
	)`,
}

// Migrate applies the schema and seeds the template catalog. Safe to run
// on every startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	for _, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply migration: %w", err)
		}
	}

	if err := seedTemplates(ctx, pool); err != nil {
		return fmt.Errorf("failed to seed templates: %w", err)
	}

	logger.Info("schema migrations applied")
	return nil
}
