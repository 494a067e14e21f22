package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/anuranjan87/7wink/internal/model"
)

// PostgresVisitStore implements VisitStore for PostgreSQL
type PostgresVisitStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgresVisitStore creates a new PostgreSQL visit store
func NewPostgresVisitStore(pool *pgxpool.Pool, logger *zap.Logger) *PostgresVisitStore {
	return &PostgresVisitStore{
		pool:   pool,
		logger: logger,
	}
}

// RecordVisit appends one page-load event
func (s *PostgresVisitStore) RecordVisit(ctx context.Context, slug, origin string) error {
	if origin == "" {
		origin = model.OriginUnknown
	}

	query := `
		INSERT INTO visit_events (slug, source_marker, origin)
		VALUES ($1, $2, $3)
	`

	if _, err := s.pool.Exec(ctx, query, slug, model.VisitMarkerPageLoad, origin); err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}

	return nil
}

// CountVisits returns the total number of recorded visits. A tenant with
// no events (or no storage at all) counts zero.
func (s *PostgresVisitStore) CountVisits(ctx context.Context, slug string) (int64, error) {
	query := `SELECT COUNT(*) FROM visit_events WHERE slug = $1`

	var count int64
	if err := s.pool.QueryRow(ctx, query, slug).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count visits: %w", err)
	}

	return count, nil
}

// DailyCounts returns sparse per-day totals and distinct-origin totals,
// oldest first. Day boundaries are evaluated in loc.
func (s *PostgresVisitStore) DailyCounts(ctx context.Context, slug string, loc *time.Location) ([]*model.DailyVisits, error) {
	query := `
		SELECT to_char(occurred_at AT TIME ZONE $2, 'YYYY-MM-DD') AS day,
		       COUNT(*) AS visits,
		       COUNT(DISTINCT origin) AS unique_visits
		FROM visit_events
		WHERE slug = $1
		GROUP BY day
		ORDER BY day ASC
	`

	rows, err := s.pool.Query(ctx, query, slug, loc.String())
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate visits: %w", err)
	}
	defer rows.Close()

	buckets := make([]*model.DailyVisits, 0)
	for rows.Next() {
		var bucket model.DailyVisits
		if err := rows.Scan(&bucket.Day, &bucket.Visits, &bucket.UniqueVisits); err != nil {
			return nil, err
		}
		buckets = append(buckets, &bucket)
	}

	return buckets, rows.Err()
}
