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
	"github.com/noah-isme/studybuddy-api/pkg/database"
)

const flaggedColumns = `id, content_type, content_id, author_id, content_preview, source, reason, categories, severity, status, reviewed_by, reviewed_at, review_note, created_at, updated_at`

const severityRank = `CASE severity WHEN 'CRITICAL' THEN 4 WHEN 'HIGH' THEN 3 WHEN 'MEDIUM' THEN 2 ELSE 1 END`

// FlaggedContentRepository persists the moderation queue.
type FlaggedContentRepository struct {
	db *sqlx.DB
}

// NewFlaggedContentRepository constructs the repository.
func NewFlaggedContentRepository(db *sqlx.DB) *FlaggedContentRepository {
	return &FlaggedContentRepository{db: db}
}

// Create inserts a flag.
func (r *FlaggedContentRepository) Create(ctx context.Context, flag *models.FlaggedContent) error {
	if flag.ID == "" {
		flag.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	flag.CreatedAt = now
	flag.UpdatedAt = now

	const query = `INSERT INTO flagged_content (id, content_type, content_id, author_id, content_preview, source, reason, categories, severity, status, created_at, updated_at)
	VALUES (:id, :content_type, :content_id, :author_id, :content_preview, :source, :reason, :categories, :severity, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, flag); err != nil {
		return fmt.Errorf("create flagged content: %w", err)
	}
	return nil
}

// FindByID loads a flag.
func (r *FlaggedContentRepository) FindByID(ctx context.Context, id string) (*models.FlaggedContent, error) {
	query := `SELECT ` + flaggedColumns + ` FROM flagged_content WHERE id = $1`
	var flag models.FlaggedContent
	if err := r.db.GetContext(ctx, &flag, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find flagged content: %w", err)
	}
	return &flag, nil
}

// List returns flags, most severe and newest first.
func (r *FlaggedContentRepository) List(ctx context.Context, filter models.FlaggedContentFilter) ([]models.FlaggedContent, int, error) {
	var c conditions
	if filter.Status != "" {
		c.add("status = $%d", filter.Status)
	}
	if filter.Severity != "" {
		c.add("severity = $%d", filter.Severity)
	}
	if filter.ContentType != "" {
		c.add("content_type = $%d", filter.ContentType)
	}
	base := ` FROM flagged_content` + c.where()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*)`+base, c.args...); err != nil {
		return nil, 0, fmt.Errorf("count flagged content: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s%s ORDER BY %s DESC, created_at DESC LIMIT %d OFFSET %d`, flaggedColumns, base, severityRank, filter.PageSize, filter.Offset())
	var items []models.FlaggedContent
	if err := r.db.SelectContext(ctx, &items, query, c.args...); err != nil {
		return nil, 0, fmt.Errorf("list flagged content: %w", err)
	}
	return items, total, nil
}

// ErrStatusChanged reports that a row left the status a review was based on.
var ErrStatusChanged = errors.New("status changed concurrently")

// UpdateReview stores a review decision if the flag is still in the previous status.
func (r *FlaggedContentRepository) UpdateReview(ctx context.Context, flag *models.FlaggedContent, previous models.FlagStatus) error {
	return updateFlagReview(ctx, r.db, flag, previous)
}

// ReviewAndBan stores a review decision and bans the author in one transaction.
func (r *FlaggedContentRepository) ReviewAndBan(ctx context.Context, flag *models.FlaggedContent, previous models.FlagStatus, reason string) error {
	if flag.AuthorID == nil || *flag.AuthorID == "" {
		return errors.New("flag has no author")
	}
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := updateFlagReview(ctx, tx, flag, previous); err != nil {
			return err
		}
		return banUser(ctx, tx, *flag.AuthorID, reason, flag.UpdatedAt)
	})
}

func updateFlagReview(ctx context.Context, exec sqlx.ExecerContext, flag *models.FlaggedContent, previous models.FlagStatus) error {
	flag.UpdatedAt = time.Now().UTC()
	const query = `UPDATE flagged_content SET status = $2, reviewed_by = $3, reviewed_at = $4, review_note = $5, updated_at = $6 WHERE id = $1 AND status = $7`
	res, err := exec.ExecContext(ctx, query, flag.ID, flag.Status, flag.ReviewedBy, flag.ReviewedAt, flag.ReviewNote, flag.UpdatedAt, previous)
	if err != nil {
		return fmt.Errorf("update flagged content: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrStatusChanged
	}
	return nil
}

// CountByStatusAndSeverity buckets the whole queue.
func (r *FlaggedContentRepository) CountByStatusAndSeverity(ctx context.Context) ([]models.SeverityCount, error) {
	var counts []models.SeverityCount
	if err := r.db.SelectContext(ctx, &counts, `SELECT status, severity, COUNT(*) AS count FROM flagged_content GROUP BY status, severity`); err != nil {
		return nil, fmt.Errorf("count flagged content: %w", err)
	}
	return counts, nil
}
