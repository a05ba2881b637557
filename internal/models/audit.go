package models

import (
	"encoding/json"
	"time"
)

// Audit actions recorded by admin operations.
const (
	AuditActionAnnouncementCreate = "ANNOUNCEMENT_CREATE"
	AuditActionAnnouncementUpdate = "ANNOUNCEMENT_UPDATE"
	AuditActionAnnouncementDelete = "ANNOUNCEMENT_DELETE"
	AuditActionReportUpdate       = "REPORT_UPDATE"
	AuditActionFeedbackUpdate     = "FEEDBACK_UPDATE"
	AuditActionContentReview      = "CONTENT_REVIEW"
	AuditActionUserBan            = "USER_BAN"
	AuditActionAuditLogDelete     = "AUDIT_LOG_DELETE"
	AuditActionAuditLogPurge      = "AUDIT_LOG_PURGE"
	AuditActionAIMemoryDelete     = "AI_MEMORY_DELETE"
	AuditActionAIMemoryClear      = "AI_MEMORY_CLEAR"
	AuditActionExportCreate       = "EXPORT_CREATE"
)

// Audit target types.
const (
	AuditTargetAnnouncement = "ANNOUNCEMENT"
	AuditTargetReport       = "REPORT"
	AuditTargetFeedback     = "FEEDBACK"
	AuditTargetFlag         = "FLAGGED_CONTENT"
	AuditTargetUser         = "USER"
	AuditTargetAuditLog     = "AUDIT_LOG"
	AuditTargetAIMemory     = "AI_MEMORY"
	AuditTargetExport       = "EXPORT"
)

// AdminAuditLog is an immutable record of an admin action.
type AdminAuditLog struct {
	ID         string          `db:"id" json:"id"`
	AdminID    string          `db:"admin_id" json:"adminId"`
	AdminName  *string         `db:"admin_name" json:"adminName,omitempty"`
	Action     string          `db:"action" json:"action"`
	TargetType string          `db:"target_type" json:"targetType"`
	TargetID   *string         `db:"target_id" json:"targetId,omitempty"`
	Details    json.RawMessage `db:"details" json:"details,omitempty"`
	IPAddress  *string         `db:"ip_address" json:"ipAddress,omitempty"`
	UserAgent  *string         `db:"user_agent" json:"userAgent,omitempty"`
	CreatedAt  time.Time       `db:"created_at" json:"createdAt"`
}

// AuditLogFilter scopes audit log listings.
type AuditLogFilter struct {
	AdminID    string
	Action     string
	TargetType string
	From       *time.Time
	To         *time.Time
	PageRequest
}

// AuditMeta is the request origin attached to audit entries.
type AuditMeta struct {
	IPAddress string
	UserAgent string
}
