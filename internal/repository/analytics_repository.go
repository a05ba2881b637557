package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/studybuddy-api/internal/models"
)

// AnalyticsRepository runs the admin dashboard aggregate queries.
type AnalyticsRepository struct {
	db *sqlx.DB
}

// NewAnalyticsRepository constructs the repository.
func NewAnalyticsRepository(db *sqlx.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// Counters returns scalar figures; "new" and "active" are bounded by [from, to).
func (r *AnalyticsRepository) Counters(ctx context.Context, from, to time.Time) (models.AnalyticsCounters, error) {
	const query = `SELECT
	(SELECT COUNT(*) FROM users) AS total_users,
	(SELECT COUNT(*) FROM users WHERE created_at >= $1 AND created_at < $2) AS new_users,
	(SELECT COUNT(*) FROM users WHERE last_active_at >= $1 AND last_active_at < $2) AS active_users,
	(SELECT COUNT(*) FROM users WHERE is_banned) AS banned_users,
	(SELECT COUNT(*) FROM groups) AS total_groups,
	(SELECT COUNT(*) FROM groups WHERE created_at >= $1 AND created_at < $2) AS new_groups,
	(SELECT COUNT(*) FROM group_members) AS total_memberships,
	(SELECT COUNT(*) FROM reports WHERE status = 'PENDING') AS pending_reports,
	(SELECT COUNT(*) FROM flagged_content WHERE status = 'PENDING') AS pending_flags,
	(SELECT COUNT(*) FROM feedback WHERE status IN ('NEW', 'IN_REVIEW')) AS open_feedback,
	(SELECT COUNT(*) FROM ai_usage_logs WHERE created_at >= $1 AND created_at < $2) AS ai_requests,
	(SELECT COALESCE(SUM(cost_usd), 0) FROM ai_usage_logs WHERE created_at >= $1 AND created_at < $2) AS ai_cost_usd`
	var counters models.AnalyticsCounters
	if err := r.db.GetContext(ctx, &counters, query, from, to); err != nil {
		return counters, fmt.Errorf("analytics counters: %w", err)
	}
	return counters, nil
}

// DailySignups counts new users per day with activity.
func (r *AnalyticsRepository) DailySignups(ctx context.Context, from, to time.Time) ([]models.DailyCount, error) {
	return r.daily(ctx, "users", from, to)
}

// DailyGroups counts created groups per day with activity.
func (r *AnalyticsRepository) DailyGroups(ctx context.Context, from, to time.Time) ([]models.DailyCount, error) {
	return r.daily(ctx, "groups", from, to)
}

func (r *AnalyticsRepository) daily(ctx context.Context, table string, from, to time.Time) ([]models.DailyCount, error) {
	query := fmt.Sprintf(`SELECT to_char(date_trunc('day', created_at), 'YYYY-MM-DD') AS day, COUNT(*) AS count
	FROM %s WHERE created_at >= $1 AND created_at < $2 GROUP BY 1 ORDER BY 1`, table)
	var items []models.DailyCount
	if err := r.db.SelectContext(ctx, &items, query, from, to); err != nil {
		return nil, fmt.Errorf("daily %s: %w", table, err)
	}
	return items, nil
}

// TopSubjects ranks subjects across all profiles.
func (r *AnalyticsRepository) TopSubjects(ctx context.Context, limit int) ([]models.KeyCount, error) {
	const query = `SELECT s AS key, COUNT(*) AS count FROM profiles p, unnest(p.subjects) AS s GROUP BY s ORDER BY count DESC, s ASC LIMIT $1`
	var items []models.KeyCount
	if err := r.db.SelectContext(ctx, &items, query, limit); err != nil {
		return nil, fmt.Errorf("top subjects: %w", err)
	}
	return items, nil
}
