package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/studybuddy-api/internal/models"
	appErrors "github.com/noah-isme/studybuddy-api/pkg/errors"
)

const (
	dayLayout       = "2006-01-02"
	topSubjectLimit = 10
)

// AnalyticsRepository describes the persistence layer required by AnalyticsService.
type AnalyticsRepository interface {
	Counters(ctx context.Context, from, to time.Time) (models.AnalyticsCounters, error)
	DailySignups(ctx context.Context, from, to time.Time) ([]models.DailyCount, error)
	DailyGroups(ctx context.Context, from, to time.Time) ([]models.DailyCount, error)
	TopSubjects(ctx context.Context, limit int) ([]models.KeyCount, error)
}

// AnalyticsService builds the admin dashboard with cache integration.
type AnalyticsService struct {
	repo    AnalyticsRepository
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
	now     func() time.Time
}

// NewAnalyticsService constructs an analytics service.
func NewAnalyticsService(repo AnalyticsRepository, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *AnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsService{repo: repo, cache: cache, metrics: metrics, logger: logger, now: time.Now}
}

// Overview returns the dashboard for the range. The boolean reports a cache hit.
func (s *AnalyticsService) Overview(ctx context.Context, actor models.Actor, rng string) (*models.AnalyticsOverview, bool, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, false, err
	}
	r, err := parseRange(rng)
	if err != nil {
		return nil, false, err
	}
	overview, hit, err := cachedLoad(ctx, s.cache, "analytics:overview:"+string(r), func(ctx context.Context) (*models.AnalyticsOverview, error) {
		return s.buildOverview(ctx, r)
	})
	if err != nil {
		return nil, false, appErrors.Internal(err, "failed to build analytics")
	}
	return overview, hit, nil
}

func (s *AnalyticsService) buildOverview(ctx context.Context, r models.AnalyticsRange) (*models.AnalyticsOverview, error) {
	now := s.now().UTC()
	from, to := rangeWindow(r, now)

	start := time.Now()
	counters, err := s.repo.Counters(ctx, from, to)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveDBQuery("analytics_counters", time.Since(start))
	if counters.TotalGroups > 0 {
		counters.AvgGroupSize = math.Round(float64(counters.TotalMemberships)/float64(counters.TotalGroups)*100) / 100
	}

	start = time.Now()
	signups, err := s.repo.DailySignups(ctx, from, to)
	if err != nil {
		return nil, err
	}
	groups, err := s.repo.DailyGroups(ctx, from, to)
	if err != nil {
		return nil, err
	}
	s.metrics.ObserveDBQuery("analytics_daily", time.Since(start))

	subjects, err := s.repo.TopSubjects(ctx, topSubjectLimit)
	if err != nil {
		return nil, err
	}
	if subjects == nil {
		subjects = []models.KeyCount{}
	}

	return &models.AnalyticsOverview{
		Range:         string(r),
		From:          from,
		To:            to,
		Counters:      counters,
		Signups:       fillDailyCounts(signups, from, to),
		GroupsCreated: fillDailyCounts(groups, from, to),
		TopSubjects:   subjects,
		GeneratedAt:   now,
	}, nil
}

// Invalidate drops every cached analytics payload.
func (s *AnalyticsService) Invalidate(ctx context.Context) {
	s.cache.Invalidate(ctx, "analytics:*")
}

// SystemMetrics returns system instrumentation snapshot.
func (s *AnalyticsService) SystemMetrics() models.AnalyticsSystemMetrics {
	return s.metrics.Snapshot()
}

// parseRange defaults to 30d and rejects anything unsupported.
func parseRange(raw string) (models.AnalyticsRange, error) {
	if raw == "" {
		return models.AnalyticsRange30d, nil
	}
	r := models.AnalyticsRange(raw)
	if r.Days() == 0 {
		return "", appErrors.Clone(appErrors.ErrValidation, "range must be one of 7d, 30d, 90d")
	}
	return r, nil
}

// rangeWindow covers the last n whole UTC days including today: [from, to).
func rangeWindow(r models.AnalyticsRange, now time.Time) (time.Time, time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := today.AddDate(0, 0, 1)
	return to.AddDate(0, 0, -r.Days()), to
}

func fillDailyCounts(points []models.DailyCount, from, to time.Time) []models.DailyCount {
	byDay := make(map[string]int, len(points))
	for _, p := range points {
		byDay[p.Date] += p.Count
	}
	var out []models.DailyCount
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		key := d.Format(dayLayout)
		out = append(out, models.DailyCount{Date: key, Count: byDay[key]})
	}
	return out
}
