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

// PostgresTemplateStore implements TemplateStore for PostgreSQL. The
// catalog is seeded at migration time and never written afterwards.
type PostgresTemplateStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgresTemplateStore creates a new PostgreSQL template store
func NewPostgresTemplateStore(pool *pgxpool.Pool, logger *zap.Logger) *PostgresTemplateStore {
	return &PostgresTemplateStore{
		pool:   pool,
		logger: logger,
	}
}

// ListTemplates returns catalog metadata for every template
func (s *PostgresTemplateStore) ListTemplates(ctx context.Context) ([]*model.Template, error) {
	query := `
		SELECT id, name, preview_url
		FROM templates
		ORDER BY id ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	defer rows.Close()

	templates := make([]*model.Template, 0)
	for rows.Next() {
		var tpl model.Template
		if err := rows.Scan(&tpl.ID, &tpl.Name, &tpl.PreviewURL); err != nil {
			return nil, err
		}
		templates = append(templates, &tpl)
	}

	return templates, rows.Err()
}

// GetTemplate returns one template including its layer contents
func (s *PostgresTemplateStore) GetTemplate(ctx context.Context, id int64) (*model.Template, error) {
	query := `
		SELECT id, name, preview_url, shell, behavior, payload
		FROM templates
		WHERE id = $1
	`

	var tpl model.Template
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&tpl.ID,
		&tpl.Name,
		&tpl.PreviewURL,
		&tpl.Shell,
		&tpl.Behavior,
		&tpl.Payload,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTemplateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get template %d: %w", id, err)
	}

	return &tpl, nil
}
