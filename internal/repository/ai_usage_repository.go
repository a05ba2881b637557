package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/studybuddy-api/internal/models"
)

const aiUsageColumns = `id, user_id, feature, model, prompt_tokens, completion_tokens, total_tokens, cost_usd, latency_ms, success, error_message, created_at`

// AIUsageRepository persists and aggregates model usage logs.
type AIUsageRepository struct {
	db *sqlx.DB
}

// NewAIUsageRepository constructs the repository.
func NewAIUsageRepository(db *sqlx.DB) *AIUsageRepository {
	return &AIUsageRepository{db: db}
}

// Insert stores one usage row.
func (r *AIUsageRepository) Insert(ctx context.Context, entry *models.AIUsageLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO ai_usage_logs (` + aiUsageColumns + `)
	VALUES (:id, :user_id, :feature, :model, :prompt_tokens, :completion_tokens, :total_tokens, :cost_usd, :latency_ms, :success, :error_message, :created_at)
	ON CONFLICT (id) DO NOTHING`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("insert ai usage: %w", err)
	}
	return nil
}

// List returns usage rows, newest first.
func (r *AIUsageRepository) List(ctx context.Context, filter models.AIUsageFilter) ([]models.AIUsageLog, int, error) {
	var c conditions
	if filter.UserID != "" {
		c.add("user_id = $%d", filter.UserID)
	}
	if filter.Model != "" {
		c.add("model = $%d", filter.Model)
	}
	if filter.Feature != "" {
		c.add("feature = $%d", filter.Feature)
	}
	if filter.From != nil {
		c.add("created_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		c.add("created_at < $%d", *filter.To)
	}
	base := ` FROM ai_usage_logs` + c.where()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*)`+base, c.args...); err != nil {
		return nil, 0, fmt.Errorf("count ai usage: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s%s ORDER BY created_at DESC LIMIT %d OFFSET %d`, aiUsageColumns, base, filter.PageSize, filter.Offset())
	var items []models.AIUsageLog
	if err := r.db.SelectContext(ctx, &items, query, c.args...); err != nil {
		return nil, 0, fmt.Errorf("list ai usage: %w", err)
	}
	return items, total, nil
}

// Totals aggregates the range.
func (r *AIUsageRepository) Totals(ctx context.Context, from, to time.Time) (models.AIUsageTotals, error) {
	const query = `SELECT COUNT(*) AS requests,
	COUNT(*) FILTER (WHERE NOT success) AS failures,
	COALESCE(SUM(total_tokens), 0) AS total_tokens,
	COALESCE(SUM(cost_usd), 0) AS cost_usd,
	COALESCE(AVG(latency_ms), 0) AS avg_latency_ms
	FROM ai_usage_logs WHERE created_at >= $1 AND created_at < $2`
	var totals models.AIUsageTotals
	if err := r.db.GetContext(ctx, &totals, query, from, to); err != nil {
		return totals, fmt.Errorf("ai usage totals: %w", err)
	}
	return totals, nil
}

// Breakdown groups the range by model or feature.
func (r *AIUsageRepository) Breakdown(ctx context.Context, column string, from, to time.Time) ([]models.AIUsageBreakdown, error) {
	if column != "model" && column != "feature" {
		return nil, fmt.Errorf("unsupported ai usage breakdown %q", column)
	}
	query := fmt.Sprintf(`SELECT %[1]s AS key, COUNT(*) AS requests, COALESCE(SUM(total_tokens), 0) AS total_tokens, COALESCE(SUM(cost_usd), 0) AS cost_usd
	FROM ai_usage_logs WHERE created_at >= $1 AND created_at < $2 GROUP BY %[1]s ORDER BY cost_usd DESC, requests DESC`, column)
	var items []models.AIUsageBreakdown
	if err := r.db.SelectContext(ctx, &items, query, from, to); err != nil {
		return nil, fmt.Errorf("ai usage by %s: %w", column, err)
	}
	return items, nil
}

// TopUsers ranks users by spend in the range.
func (r *AIUsageRepository) TopUsers(ctx context.Context, from, to time.Time, limit int) ([]models.AIUserUsage, error) {
	const query = `SELECT l.user_id, u.name, COUNT(*) AS requests, COALESCE(SUM(l.total_tokens), 0) AS total_tokens, COALESCE(SUM(l.cost_usd), 0) AS cost_usd
	FROM ai_usage_logs l LEFT JOIN users u ON u.id = l.user_id
	WHERE l.user_id IS NOT NULL AND l.created_at >= $1 AND l.created_at < $2
	GROUP BY l.user_id, u.name ORDER BY cost_usd DESC, requests DESC LIMIT $3`
	var items []models.AIUserUsage
	if err := r.db.SelectContext(ctx, &items, query, from, to, limit); err != nil {
		return nil, fmt.Errorf("ai usage top users: %w", err)
	}
	return items, nil
}

// DailyCost returns per-day spend for days with activity.
func (r *AIUsageRepository) DailyCost(ctx context.Context, from, to time.Time) ([]models.DailyCost, error) {
	const query = `SELECT to_char(date_trunc('day', created_at), 'YYYY-MM-DD') AS day, COUNT(*) AS requests, COALESCE(SUM(cost_usd), 0) AS cost_usd
	FROM ai_usage_logs WHERE created_at >= $1 AND created_at < $2 GROUP BY 1 ORDER BY 1`
	var items []models.DailyCost
	if err := r.db.SelectContext(ctx, &items, query, from, to); err != nil {
		return nil, fmt.Errorf("ai usage daily cost: %w", err)
	}
	return items, nil
}
