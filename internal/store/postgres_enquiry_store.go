package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/anuranjan87/7wink/internal/model"
)

// PostgresEnquiryStore implements EnquiryStore for PostgreSQL
type PostgresEnquiryStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgresEnquiryStore creates a new PostgreSQL enquiry store
func NewPostgresEnquiryStore(pool *pgxpool.Pool, logger *zap.Logger) *PostgresEnquiryStore {
	return &PostgresEnquiryStore{
		pool:   pool,
		logger: logger,
	}
}

// RecordEnquiry appends one form submission
func (s *PostgresEnquiryStore) RecordEnquiry(ctx context.Context, slug, contact, body string) error {
	query := `
		INSERT INTO enquiry_events (slug, contact, body)
		VALUES ($1, $2, $3)
	`

	if _, err := s.pool.Exec(ctx, query, slug, contact, body); err != nil {
		return fmt.Errorf("failed to record enquiry: %w", err)
	}

	return nil
}

// ListEnquiries returns the tenant's enquiries, newest first. NULL
// contact or body columns come back as empty strings rather than
// failing the listing.
func (s *PostgresEnquiryStore) ListEnquiries(ctx context.Context, slug string) ([]*model.Enquiry, error) {
	query := `
		SELECT id, slug, COALESCE(contact, ''), COALESCE(body, ''), occurred_at
		FROM enquiry_events
		WHERE slug = $1
		ORDER BY occurred_at DESC, id DESC
	`

	rows, err := s.pool.Query(ctx, query, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to list enquiries: %w", err)
	}
	defer rows.Close()

	enquiries := make([]*model.Enquiry, 0)
	for rows.Next() {
		var enquiry model.Enquiry
		if err := rows.Scan(
			&enquiry.ID,
			&enquiry.Slug,
			&enquiry.Contact,
			&enquiry.Body,
			&enquiry.OccurredAt,
		); err != nil {
			return nil, err
		}
		enquiries = append(enquiries, &enquiry)
	}

	return enquiries, rows.Err()
}
