package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/studybuddy-api/internal/models"
)

const announcementColumns = `id, title, content, type, priority, status, audience, is_dismissible, starts_at, ends_at, created_by, created_at, updated_at`

// priorityRank orders URGENT first.
const priorityRank = `CASE priority WHEN 'URGENT' THEN 4 WHEN 'HIGH' THEN 3 WHEN 'NORMAL' THEN 2 ELSE 1 END`

// AnnouncementRepository persists admin announcements and per-user dismissals.
type AnnouncementRepository struct {
	db *sqlx.DB
}

// NewAnnouncementRepository constructs the repository.
func NewAnnouncementRepository(db *sqlx.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

// List returns announcements for the admin panel, newest first.
func (r *AnnouncementRepository) List(ctx context.Context, filter models.AnnouncementFilter) ([]models.Announcement, int, error) {
	var c conditions
	if filter.Status != "" {
		c.add("status = $%d", filter.Status)
	}
	base := ` FROM announcements` + c.where()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*)`+base, c.args...); err != nil {
		return nil, 0, fmt.Errorf("count announcements: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s%s ORDER BY created_at DESC LIMIT %d OFFSET %d`, announcementColumns, base, filter.PageSize, filter.Offset())
	var items []models.Announcement
	if err := r.db.SelectContext(ctx, &items, query, c.args...); err != nil {
		return nil, 0, fmt.Errorf("list announcements: %w", err)
	}
	return items, total, nil
}

// ListActive returns announcements currently visible to a user.
func (r *AnnouncementRepository) ListActive(ctx context.Context, audiences []string, userID string, now time.Time) ([]models.Announcement, error) {
	query := `SELECT ` + announcementColumns + ` FROM announcements a
	WHERE a.status = 'ACTIVE' AND a.starts_at <= $1 AND (a.ends_at IS NULL OR a.ends_at > $1)
	AND a.audience = ANY($2)
	AND NOT EXISTS (SELECT 1 FROM announcement_dismissals d WHERE d.announcement_id = a.id AND d.user_id = $3)
	ORDER BY ` + priorityRank + ` DESC, a.starts_at DESC`
	var items []models.Announcement
	if err := r.db.SelectContext(ctx, &items, query, now, pq.Array(audiences), userID); err != nil {
		return nil, fmt.Errorf("list active announcements: %w", err)
	}
	return items, nil
}

// FindByID loads one announcement.
func (r *AnnouncementRepository) FindByID(ctx context.Context, id string) (*models.Announcement, error) {
	query := `SELECT ` + announcementColumns + ` FROM announcements WHERE id = $1`
	var item models.Announcement
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find announcement: %w", err)
	}
	return &item, nil
}

// Create inserts a new announcement.
func (r *AnnouncementRepository) Create(ctx context.Context, item *models.Announcement) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	const query = `INSERT INTO announcements (id, title, content, type, priority, status, audience, is_dismissible, starts_at, ends_at, created_by, created_at, updated_at)
	VALUES (:id, :title, :content, :type, :priority, :status, :audience, :is_dismissible, :starts_at, :ends_at, :created_by, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create announcement: %w", err)
	}
	return nil
}

// Update overwrites the editable columns.
func (r *AnnouncementRepository) Update(ctx context.Context, item *models.Announcement) error {
	item.UpdatedAt = time.Now().UTC()
	const query = `UPDATE announcements SET title = :title, content = :content, type = :type, priority = :priority, status = :status, audience = :audience,
	is_dismissible = :is_dismissible, starts_at = :starts_at, ends_at = :ends_at, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, item)
	if err != nil {
		return fmt.Errorf("update announcement: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an announcement and its dismissals.
func (r *AnnouncementRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Dismiss records that the user hid the announcement. Repeat calls are no-ops.
func (r *AnnouncementRepository) Dismiss(ctx context.Context, announcementID, userID string, ts time.Time) error {
	const query = `INSERT INTO announcement_dismissals (announcement_id, user_id, dismissed_at) VALUES ($1, $2, $3) ON CONFLICT (announcement_id, user_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, announcementID, userID, ts); err != nil {
		return fmt.Errorf("dismiss announcement: %w", err)
	}
	return nil
}
