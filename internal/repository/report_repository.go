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

const reportColumns = `id, reporter_id, reported_user_id, content_type, content_id, reason, description, status, admin_notes, reviewed_by, reviewed_at, created_at, updated_at`

// ReportRepository persists user reports.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository constructs the repository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create inserts a new report.
func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	if report.ID == "" {
		report.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	report.CreatedAt = now
	report.UpdatedAt = now

	const query = `INSERT INTO reports (id, reporter_id, reported_user_id, content_type, content_id, reason, description, status, created_at, updated_at)
	VALUES (:id, :reporter_id, :reported_user_id, :content_type, :content_id, :reason, :description, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, report); err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	return nil
}

// HasOpenReport reports whether the reporter already has an unresolved report on the content.
func (r *ReportRepository) HasOpenReport(ctx context.Context, reporterID string, contentType models.ReportContentType, contentID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM reports WHERE reporter_id = $1 AND content_type = $2 AND content_id = $3 AND status IN ('PENDING', 'REVIEWING'))`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, reporterID, contentType, contentID); err != nil {
		return false, fmt.Errorf("check open report: %w", err)
	}
	return exists, nil
}

// FindByID loads a report.
func (r *ReportRepository) FindByID(ctx context.Context, id string) (*models.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = $1`
	var report models.Report
	if err := r.db.GetContext(ctx, &report, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find report: %w", err)
	}
	return &report, nil
}

// List returns reports matching the filter, newest first.
func (r *ReportRepository) List(ctx context.Context, filter models.ReportFilter) ([]models.Report, int, error) {
	var c conditions
	if filter.Status != "" {
		c.add("status = $%d", filter.Status)
	}
	if filter.ContentType != "" {
		c.add("content_type = $%d", filter.ContentType)
	}
	if filter.Reason != "" {
		c.add("reason = $%d", filter.Reason)
	}
	if filter.From != nil {
		c.add("created_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		c.add("created_at < $%d", *filter.To)
	}
	base := ` FROM reports` + c.where()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*)`+base, c.args...); err != nil {
		return nil, 0, fmt.Errorf("count reports: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s%s ORDER BY created_at DESC LIMIT %d OFFSET %d`, reportColumns, base, filter.PageSize, filter.Offset())
	var items []models.Report
	if err := r.db.SelectContext(ctx, &items, query, c.args...); err != nil {
		return nil, 0, fmt.Errorf("list reports: %w", err)
	}
	return items, total, nil
}

// UpdateReview stores the moderation outcome if the report is still in the previous status.
func (r *ReportRepository) UpdateReview(ctx context.Context, report *models.Report, previous models.ReportStatus) error {
	report.UpdatedAt = time.Now().UTC()
	const query = `UPDATE reports SET status = $2, admin_notes = $3, reviewed_by = $4, reviewed_at = $5, updated_at = $6 WHERE id = $1 AND status = $7`
	res, err := r.db.ExecContext(ctx, query, report.ID, report.Status, report.AdminNotes, report.ReviewedBy, report.ReviewedAt, report.UpdatedAt, previous)
	if err != nil {
		return fmt.Errorf("update report: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrStatusChanged
	}
	return nil
}

// CountByStatus groups all reports by status.
func (r *ReportRepository) CountByStatus(ctx context.Context) ([]models.StatusCount, error) {
	var counts []models.StatusCount
	if err := r.db.SelectContext(ctx, &counts, `SELECT status, COUNT(*) AS count FROM reports GROUP BY status`); err != nil {
		return nil, fmt.Errorf("count reports by status: %w", err)
	}
	return counts, nil
}
