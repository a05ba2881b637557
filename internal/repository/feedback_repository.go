package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/studybuddy-api/internal/models"
)

const feedbackColumns = `id, user_id, type, subject, message, rating, page_url, status, admin_response, responded_by, responded_at, created_at, updated_at`

// FeedbackRepository persists product feedback.
type FeedbackRepository struct {
	db *sqlx.DB
}

// NewFeedbackRepository constructs the repository.
func NewFeedbackRepository(db *sqlx.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// Create inserts feedback.
func (r *FeedbackRepository) Create(ctx context.Context, fb *models.Feedback) error {
	if fb.ID == "" {
		fb.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	fb.CreatedAt = now
	fb.UpdatedAt = now

	const query = `INSERT INTO feedback (id, user_id, type, subject, message, rating, page_url, status, created_at, updated_at)
	VALUES (:id, :user_id, :type, :subject, :message, :rating, :page_url, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, fb); err != nil {
		return fmt.Errorf("create feedback: %w", err)
	}
	return nil
}

// FindByID loads feedback.
func (r *FeedbackRepository) FindByID(ctx context.Context, id string) (*models.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedback WHERE id = $1`
	var fb models.Feedback
	if err := r.db.GetContext(ctx, &fb, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find feedback: %w", err)
	}
	return &fb, nil
}

// List returns feedback matching the filter, newest first.
func (r *FeedbackRepository) List(ctx context.Context, filter models.FeedbackFilter) ([]models.Feedback, int, error) {
	var c conditions
	if filter.Type != "" {
		c.add("type = $%d", filter.Type)
	}
	if filter.Status != "" {
		c.add("status = $%d", filter.Status)
	}
	if filter.From != nil {
		c.add("created_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		c.add("created_at < $%d", *filter.To)
	}
	base := ` FROM feedback` + c.where()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*)`+base, c.args...); err != nil {
		return nil, 0, fmt.Errorf("count feedback: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s%s ORDER BY created_at DESC LIMIT %d OFFSET %d`, feedbackColumns, base, filter.PageSize, filter.Offset())
	var items []models.Feedback
	if err := r.db.SelectContext(ctx, &items, query, c.args...); err != nil {
		return nil, 0, fmt.Errorf("list feedback: %w", err)
	}
	return items, total, nil
}

// UpdateResponse stores the admin triage result.
func (r *FeedbackRepository) UpdateResponse(ctx context.Context, fb *models.Feedback) error {
	fb.UpdatedAt = time.Now().UTC()
	const query = `UPDATE feedback SET status = :status, admin_response = :admin_response, responded_by = :responded_by, responded_at = :responded_at, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, fb)
	if err != nil {
		return fmt.Errorf("update feedback: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountByStatus groups all feedback by status.
func (r *FeedbackRepository) CountByStatus(ctx context.Context) ([]models.StatusCount, error) {
	var counts []models.StatusCount
	if err := r.db.SelectContext(ctx, &counts, `SELECT status, COUNT(*) AS count FROM feedback GROUP BY status`); err != nil {
		return nil, fmt.Errorf("count feedback by status: %w", err)
	}
	return counts, nil
}
