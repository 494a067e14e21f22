package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/anuranjan87/7wink/internal/model"
)

// PostgresRegistryStore implements RegistryStore for PostgreSQL
type PostgresRegistryStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgresRegistryStore creates a new PostgreSQL registry store
func NewPostgresRegistryStore(pool *pgxpool.Pool, logger *zap.Logger) *PostgresRegistryStore {
	return &PostgresRegistryStore{
		pool:   pool,
		logger: logger,
	}
}

// CreateTenant records the slug in the registry. Returns ErrTenantExists
// when the slug is already registered.
func (s *PostgresRegistryStore) CreateTenant(ctx context.Context, tenant *model.Tenant) error {
	query := `
		INSERT INTO tenants (slug, last_sequence, created_at)
		VALUES ($1, 0, $2)
	`

	_, err := s.pool.Exec(ctx, query, tenant.Slug, tenant.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrTenantExists
		}
		return fmt.Errorf("failed to create tenant: %w", err)
	}

	return nil
}

// GetTenant retrieves a tenant by slug
func (s *PostgresRegistryStore) GetTenant(ctx context.Context, slug string) (*model.Tenant, error) {
	query := `
		SELECT slug, last_sequence, created_at
		FROM tenants
		WHERE slug = $1
	`

	var tenant model.Tenant
	err := s.pool.QueryRow(ctx, query, slug).Scan(
		&tenant.Slug,
		&tenant.LastSequence,
		&tenant.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTenantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return &tenant, nil
}

// ListTenants retrieves all tenants, newest first
func (s *PostgresRegistryStore) ListTenants(ctx context.Context) ([]*model.Tenant, error) {
	query := `
		SELECT slug, last_sequence, created_at
		FROM tenants
		ORDER BY created_at DESC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	defer rows.Close()

	tenants := make([]*model.Tenant, 0)
	for rows.Next() {
		var tenant model.Tenant
		if err := rows.Scan(&tenant.Slug, &tenant.LastSequence, &tenant.CreatedAt); err != nil {
			return nil, err
		}
		tenants = append(tenants, &tenant)
	}

	return tenants, rows.Err()
}

// Ping checks the database connection
func (s *PostgresRegistryStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the connection pool
func (s *PostgresRegistryStore) Close() {
	s.pool.Close()
}
