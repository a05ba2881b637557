package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/studybuddy-api/internal/models"
	appErrors "github.com/noah-isme/studybuddy-api/pkg/errors"
)

type auditRepository interface {
	Create(ctx context.Context, entry *models.AdminAuditLog) error
	List(ctx context.Context, filter models.AuditLogFilter) ([]models.AdminAuditLog, int, error)
	Delete(ctx context.Context, id string) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// PurgeAuditLogsRequest selects which entries a super admin removes.
type PurgeAuditLogsRequest struct {
	OlderThanDays int  `form:"olderThanDays" validate:"omitempty,min=1,max=3650"`
	All           bool `form:"all"`
}

// PurgeResult reports how many rows were removed.
type PurgeResult struct {
	Deleted int64 `json:"deleted"`
}

// AuditService records and manages the admin audit trail.
type AuditService struct {
	repo   auditRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewAuditService constructs an AuditService.
func NewAuditService(repo auditRepository, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{repo: repo, logger: logger, now: time.Now}
}

// Record appends an entry. A failed write is logged, never surfaced.
func (s *AuditService) Record(ctx context.Context, actor models.Actor, action, targetType, targetID string, details interface{}) {
	entry := &models.AdminAuditLog{
		AdminID:    actor.UserID,
		Action:     action,
		TargetType: targetType,
		TargetID:   stringPtr(targetID),
		IPAddress:  stringPtr(actor.IPAddress),
		UserAgent:  stringPtr(actor.UserAgent),
		CreatedAt:  s.now().UTC(),
	}
	if details != nil {
		raw, err := json.Marshal(details)
		if err != nil {
			s.logger.Warn("encode audit details", zap.String("action", action), zap.Error(err))
		} else {
			entry.Details = raw
		}
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Warn("write audit log failed",
			zap.String("admin_id", actor.UserID),
			zap.String("action", action),
			zap.String("target_type", targetType),
			zap.Error(err))
	}
}

// List returns audit entries for admins.
func (s *AuditService) List(ctx context.Context, actor models.Actor, filter models.AuditLogFilter) ([]models.AdminAuditLog, *models.Pagination, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, nil, err
	}
	filter.PageRequest = filter.PageRequest.Normalize(50, 200)
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list audit logs")
	}
	return items, models.NewPagination(filter.Page, filter.PageSize, total), nil
}

// Delete removes one entry. Super admins only.
func (s *AuditService) Delete(ctx context.Context, actor models.Actor, id string) error {
	if !actor.IsSuperAdmin {
		return appErrors.ErrSuperAdminRequired
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Internal(err, "failed to delete audit log")
	}
	if deleted == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "audit log not found")
	}
	s.Record(ctx, actor, models.AuditActionAuditLogDelete, models.AuditTargetAuditLog, id, map[string]interface{}{"deleted": deleted})
	return nil
}

// Purge removes entries older than N days, or every entry when All is set. Super admins only.
// The purge itself is recorded after the delete so it survives.
func (s *AuditService) Purge(ctx context.Context, actor models.Actor, req PurgeAuditLogsRequest) (*PurgeResult, error) {
	if !actor.IsSuperAdmin {
		return nil, appErrors.ErrSuperAdminRequired
	}
	if req.OlderThanDays < 0 || req.OlderThanDays > 3650 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "olderThanDays must be between 1 and 3650")
	}
	if !req.All && req.OlderThanDays == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "either olderThanDays or all=true is required")
	}

	var (
		deleted int64
		err     error
		details = map[string]interface{}{}
	)
	if req.All {
		deleted, err = s.repo.DeleteAll(ctx)
		details["scope"] = "all"
	} else {
		cutoff := s.now().UTC().AddDate(0, 0, -req.OlderThanDays)
		deleted, err = s.repo.DeleteOlderThan(ctx, cutoff)
		details["scope"] = "olderThan"
		details["olderThanDays"] = req.OlderThanDays
		details["cutoff"] = cutoff
	}
	if err != nil {
		return nil, appErrors.Internal(err, "failed to purge audit logs")
	}
	details["deleted"] = deleted
	s.Record(ctx, actor, models.AuditActionAuditLogPurge, models.AuditTargetAuditLog, "", details)
	s.logger.Info("audit logs purged", zap.String("admin_id", actor.UserID), zap.Int64("deleted", deleted))
	return &PurgeResult{Deleted: deleted}, nil
}
