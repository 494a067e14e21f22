package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/anuranjan87/7wink/internal/model"
)

// PostgresContentStore implements ContentStore for PostgreSQL
type PostgresContentStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgresContentStore creates a new PostgreSQL content store
func NewPostgresContentStore(pool *pgxpool.Pool, logger *zap.Logger) *PostgresContentStore {
	return &PostgresContentStore{
		pool:   pool,
		logger: logger,
	}
}

// Append writes a new version for the tenant. The sequence number comes
// from the tenant's counter row inside the same transaction, so two
// concurrent publishes for one tenant serialize on the row lock and each
// gets a distinct, strictly increasing sequence.
func (s *PostgresContentStore) Append(ctx context.Context, slug, shell, behavior, payload string) (*model.ContentVersion, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var sequence int64
	err = tx.QueryRow(ctx, `
		UPDATE tenants
		SET last_sequence = last_sequence + 1
		WHERE slug = $1
		RETURNING last_sequence
	`, slug).Scan(&sequence)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTenantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to assign sequence: %w", err)
	}

	version := &model.ContentVersion{
		Slug:     slug,
		Sequence: sequence,
		Shell:    shell,
		Behavior: behavior,
		Payload:  payload,
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO content_versions (slug, sequence, shell, behavior, payload)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, slug, sequence, shell, behavior, payload).Scan(&version.ID, &version.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to insert version: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit version: %w", err)
	}

	return version, nil
}

// GetLatest returns the current version: max (created_at, sequence),
// sequence breaking timestamp ties.
func (s *PostgresContentStore) GetLatest(ctx context.Context, slug string) (*model.ContentVersion, error) {
	query := `
		SELECT id, slug, sequence, shell, behavior, payload, created_at
		FROM content_versions
		WHERE slug = $1
		ORDER BY created_at DESC, sequence DESC
		LIMIT 1
	`

	var version model.ContentVersion
	err := s.pool.QueryRow(ctx, query, slug).Scan(
		&version.ID,
		&version.Slug,
		&version.Sequence,
		&version.Shell,
		&version.Behavior,
		&version.Payload,
		&version.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrVersionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest version: %w", err)
	}

	return &version, nil
}

// GetHistory returns all of the tenant's versions, newest first
func (s *PostgresContentStore) GetHistory(ctx context.Context, slug string) ([]*model.ContentVersion, error) {
	query := `
		SELECT id, slug, sequence, shell, behavior, payload, created_at
		FROM content_versions
		WHERE slug = $1
		ORDER BY created_at DESC, sequence DESC
	`

	rows, err := s.pool.Query(ctx, query, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	defer rows.Close()

	versions := make([]*model.ContentVersion, 0)
	for rows.Next() {
		var version model.ContentVersion
		if err := rows.Scan(
			&version.ID,
			&version.Slug,
			&version.Sequence,
			&version.Shell,
			&version.Behavior,
			&version.Payload,
			&version.CreatedAt,
		); err != nil {
			return nil, err
		}
		versions = append(versions, &version)
	}

	return versions, rows.Err()
}

// GetBySequence returns one version by sequence number
func (s *PostgresContentStore) GetBySequence(ctx context.Context, slug string, sequence int64) (*model.ContentVersion, error) {
	query := `
		SELECT id, slug, sequence, shell, behavior, payload, created_at
		FROM content_versions
		WHERE slug = $1 AND sequence = $2
	`

	var version model.ContentVersion
	err := s.pool.QueryRow(ctx, query, slug, sequence).Scan(
		&version.ID,
		&version.Slug,
		&version.Sequence,
		&version.Shell,
		&version.Behavior,
		&version.Payload,
		&version.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrVersionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get version %d: %w", sequence, err)
	}

	return &version, nil
}
