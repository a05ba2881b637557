package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/studybuddy-api/internal/models"
)

// AuditRepository persists the admin audit trail.
type AuditRepository struct {
	db *sqlx.DB
}

// NewAuditRepository constructs the repository.
func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create appends an audit entry.
func (r *AuditRepository) Create(ctx context.Context, entry *models.AdminAuditLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if len(entry.Details) == 0 {
		entry.Details = []byte("{}")
	}
	const query = `INSERT INTO admin_audit_logs (id, admin_id, action, target_type, target_id, details, ip_address, user_agent, created_at)
	VALUES (:id, :admin_id, :action, :target_type, :target_id, :details, :ip_address, :user_agent, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}

// List returns audit entries with the acting admin's name, newest first.
func (r *AuditRepository) List(ctx context.Context, filter models.AuditLogFilter) ([]models.AdminAuditLog, int, error) {
	var c conditions
	if filter.AdminID != "" {
		c.add("l.admin_id = $%d", filter.AdminID)
	}
	if filter.Action != "" {
		c.add("l.action = $%d", filter.Action)
	}
	if filter.TargetType != "" {
		c.add("l.target_type = $%d", filter.TargetType)
	}
	if filter.From != nil {
		c.add("l.created_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		c.add("l.created_at < $%d", *filter.To)
	}
	where := c.where()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM admin_audit_logs l`+where, c.args...); err != nil {
		return nil, 0, fmt.Errorf("count audit logs: %w", err)
	}

	query := fmt.Sprintf(`SELECT l.id, l.admin_id, u.name AS admin_name, l.action, l.target_type, l.target_id, l.details, l.ip_address, l.user_agent, l.created_at
	FROM admin_audit_logs l LEFT JOIN users u ON u.id = l.admin_id%s ORDER BY l.created_at DESC LIMIT %d OFFSET %d`, where, filter.PageSize, filter.Offset())
	var items []models.AdminAuditLog
	if err := r.db.SelectContext(ctx, &items, query, c.args...); err != nil {
		return nil, 0, fmt.Errorf("list audit logs: %w", err)
	}
	return items, total, nil
}

// Delete removes one entry and returns the number of rows removed.
func (r *AuditRepository) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM admin_audit_logs WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete audit log: %w", err)
	}
	return res.RowsAffected()
}

// DeleteOlderThan removes entries created before cutoff.
func (r *AuditRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM admin_audit_logs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge audit logs: %w", err)
	}
	return res.RowsAffected()
}

// DeleteAll empties the audit trail.
func (r *AuditRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM admin_audit_logs`)
	if err != nil {
		return 0, fmt.Errorf("purge audit logs: %w", err)
	}
	return res.RowsAffected()
}
