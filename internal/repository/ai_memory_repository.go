package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/studybuddy-api/internal/models"
)

// AIMemoryRepository reads and prunes assistant memories.
type AIMemoryRepository struct {
	db *sqlx.DB
}

// NewAIMemoryRepository constructs the repository.
func NewAIMemoryRepository(db *sqlx.DB) *AIMemoryRepository {
	return &AIMemoryRepository{db: db}
}

const memorySelect = `SELECT m.id, m.user_id, u.name AS user_name, m.category, m.content, m.importance, m.source, m.expires_at, m.created_at, m.updated_at
	FROM ai_memories m LEFT JOIN users u ON u.id = m.user_id`

// List returns memories, most important and newest first.
func (r *AIMemoryRepository) List(ctx context.Context, filter models.AIMemoryFilter) ([]models.AIMemory, int, error) {
	var c conditions
	if filter.UserID != "" {
		c.add("m.user_id = $%d", filter.UserID)
	}
	if filter.Category != "" {
		c.add("m.category = $%d", filter.Category)
	}
	where := c.where()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM ai_memories m`+where, c.args...); err != nil {
		return nil, 0, fmt.Errorf("count ai memories: %w", err)
	}

	query := fmt.Sprintf(`%s%s ORDER BY m.importance DESC, m.created_at DESC LIMIT %d OFFSET %d`, memorySelect, where, filter.PageSize, filter.Offset())
	var items []models.AIMemory
	if err := r.db.SelectContext(ctx, &items, query, c.args...); err != nil {
		return nil, 0, fmt.Errorf("list ai memories: %w", err)
	}
	return items, total, nil
}

// FindByID loads a memory.
func (r *AIMemoryRepository) FindByID(ctx context.Context, id string) (*models.AIMemory, error) {
	var item models.AIMemory
	if err := r.db.GetContext(ctx, &item, memorySelect+` WHERE m.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find ai memory: %w", err)
	}
	return &item, nil
}

// Aggregate returns scalar statistics across all memories.
func (r *AIMemoryRepository) Aggregate(ctx context.Context, now time.Time) (models.AIMemoryAggregate, error) {
	const query = `SELECT COUNT(*) AS total, COUNT(DISTINCT user_id) AS users_with_data,
	COUNT(*) FILTER (WHERE expires_at IS NOT NULL AND expires_at <= $1) AS expired,
	COALESCE(AVG(importance), 0) AS avg_importance FROM ai_memories`
	var agg models.AIMemoryAggregate
	if err := r.db.GetContext(ctx, &agg, query, now); err != nil {
		return agg, fmt.Errorf("aggregate ai memories: %w", err)
	}
	return agg, nil
}

// CountByCategory buckets memories by category.
func (r *AIMemoryRepository) CountByCategory(ctx context.Context) ([]models.KeyCount, error) {
	var items []models.KeyCount
	if err := r.db.SelectContext(ctx, &items, `SELECT category AS key, COUNT(*) AS count FROM ai_memories GROUP BY category ORDER BY count DESC`); err != nil {
		return nil, fmt.Errorf("count ai memories by category: %w", err)
	}
	return items, nil
}

// Delete removes a single memory.
func (r *AIMemoryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ai_memories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete ai memory: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteByUser clears every memory of a user.
func (r *AIMemoryRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM ai_memories WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("clear ai memories: %w", err)
	}
	return res.RowsAffected()
}
