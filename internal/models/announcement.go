package models

import "time"

// AnnouncementType classifies an announcement banner.
type AnnouncementType string

const (
	AnnouncementTypeInfo        AnnouncementType = "INFO"
	AnnouncementTypeWarning     AnnouncementType = "WARNING"
	AnnouncementTypeUpdate      AnnouncementType = "UPDATE"
	AnnouncementTypeMaintenance AnnouncementType = "MAINTENANCE"
)

// AnnouncementPriority defines ordering for announcements.
type AnnouncementPriority string

const (
	AnnouncementPriorityLow    AnnouncementPriority = "LOW"
	AnnouncementPriorityNormal AnnouncementPriority = "NORMAL"
	AnnouncementPriorityHigh   AnnouncementPriority = "HIGH"
	AnnouncementPriorityUrgent AnnouncementPriority = "URGENT"
)

// AnnouncementStatus is the publication lifecycle.
type AnnouncementStatus string

const (
	AnnouncementStatusDraft    AnnouncementStatus = "DRAFT"
	AnnouncementStatusActive   AnnouncementStatus = "ACTIVE"
	AnnouncementStatusArchived AnnouncementStatus = "ARCHIVED"
)

// AnnouncementAudience defines who can see an announcement.
type AnnouncementAudience string

const (
	AnnouncementAudienceAll      AnnouncementAudience = "ALL"
	AnnouncementAudienceNewUsers AnnouncementAudience = "NEW_USERS"
	AnnouncementAudienceAdmins   AnnouncementAudience = "ADMINS"
)

// NewUserWindow is how long after signup a user counts as new.
const NewUserWindow = 7 * 24 * time.Hour

// Announcement represents a persisted announcement row.
type Announcement struct {
	ID            string               `db:"id" json:"id"`
	Title         string               `db:"title" json:"title"`
	Content       string               `db:"content" json:"content"`
	Type          AnnouncementType     `db:"type" json:"type"`
	Priority      AnnouncementPriority `db:"priority" json:"priority"`
	Status        AnnouncementStatus   `db:"status" json:"status"`
	Audience      AnnouncementAudience `db:"audience" json:"audience"`
	IsDismissible bool                 `db:"is_dismissible" json:"isDismissible"`
	StartsAt      time.Time            `db:"starts_at" json:"startsAt"`
	EndsAt        *time.Time           `db:"ends_at" json:"endsAt,omitempty"`
	CreatedBy     string               `db:"created_by" json:"createdBy"`
	CreatedAt     time.Time            `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time            `db:"updated_at" json:"updatedAt"`
}

// AnnouncementFilter allows listing announcements in the admin panel.
type AnnouncementFilter struct {
	Status string
	PageRequest
}
