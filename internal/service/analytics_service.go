package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/anuranjan87/7wink/internal/model"
	"github.com/anuranjan87/7wink/internal/store"
)

const dayFormat = "2006-01-02"

// AnalyticsService owns the visit ledger and its gap-free daily series.
type AnalyticsService struct {
	visitStore store.VisitStore
	location   *time.Location
	now        func() time.Time
	logger     *zap.Logger
}

// NewAnalyticsService creates a new analytics service. Day boundaries for
// the series are evaluated in loc, one canonical zone for all visitors.
func NewAnalyticsService(visitStore store.VisitStore, loc *time.Location, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		visitStore: visitStore,
		location:   loc,
		now:        time.Now,
		logger:     logger,
	}
}

// RecordVisit appends a visit event. Best-effort: failures are logged and
// swallowed so visit tracking can never block page delivery.
func (s *AnalyticsService) RecordVisit(ctx context.Context, slug, origin string) {
	if err := s.visitStore.RecordVisit(ctx, slug, origin); err != nil {
		s.logger.Warn("failed to record visit",
			zap.String("slug", slug),
			zap.Error(err))
	}
}

// CountVisits returns the tenant's total visit count. Unregistered
// tenants count zero.
func (s *AnalyticsService) CountVisits(ctx context.Context, slug string) (int64, error) {
	return s.visitStore.CountVisits(ctx, slug)
}

// DailySeries returns one bucket per day from the first recorded event
// through max(last event day, today), inclusive. Days with no visits get
// an explicit zero bucket: the series never skips a day. A tenant with no
// events at all gets an empty series.
func (s *AnalyticsService) DailySeries(ctx context.Context, slug string) ([]*model.DailyVisits, error) {
	sparse, err := s.visitStore.DailyCounts(ctx, slug, s.location)
	if err != nil {
		return nil, err
	}
	if len(sparse) == 0 {
		return []*model.DailyVisits{}, nil
	}

	byDay := make(map[string]*model.DailyVisits, len(sparse))
	for _, bucket := range sparse {
		byDay[bucket.Day] = bucket
	}

	first, err := time.ParseInLocation(dayFormat, sparse[0].Day, s.location)
	if err != nil {
		return nil, err
	}
	last, err := time.ParseInLocation(dayFormat, sparse[len(sparse)-1].Day, s.location)
	if err != nil {
		return nil, err
	}

	// A currently-quiet tenant still reports today's zero bucket.
	now := s.now().In(s.location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)
	end := last
	if today.After(end) {
		end = today
	}

	series := make([]*model.DailyVisits, 0, int(end.Sub(first).Hours()/24)+1)
	for day := first; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := day.Format(dayFormat)
		if bucket, ok := byDay[key]; ok {
			series = append(series, bucket)
			continue
		}
		series = append(series, &model.DailyVisits{Day: key})
	}

	return series, nil
}
