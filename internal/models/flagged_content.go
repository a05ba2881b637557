package models

import (
	"time"

	"github.com/lib/pq"
)

// FlagContentType names the content kinds that can be flagged.
type FlagContentType string

const (
	FlagContentMessage      FlagContentType = "MESSAGE"
	FlagContentGroupMessage FlagContentType = "GROUP_MESSAGE"
	FlagContentGroup        FlagContentType = "GROUP"
	FlagContentProfile      FlagContentType = "PROFILE"
	FlagContentPost         FlagContentType = "POST"
)

// FlagSource records who raised a flag.
type FlagSource string

const (
	FlagSourceAuto       FlagSource = "AUTO"
	FlagSourceUserReport FlagSource = "USER_REPORT"
	FlagSourceAI         FlagSource = "AI"
)

// FlagSeverity orders flags for review.
type FlagSeverity string

const (
	FlagSeverityLow      FlagSeverity = "LOW"
	FlagSeverityMedium   FlagSeverity = "MEDIUM"
	FlagSeverityHigh     FlagSeverity = "HIGH"
	FlagSeverityCritical FlagSeverity = "CRITICAL"
)

// FlagStatus is the review state of a flag.
type FlagStatus string

const (
	FlagStatusPending   FlagStatus = "PENDING"
	FlagStatusApproved  FlagStatus = "APPROVED"
	FlagStatusRemoved   FlagStatus = "REMOVED"
	FlagStatusEscalated FlagStatus = "ESCALATED"
)

// Reviewable reports whether an admin may still act on the flag.
func (s FlagStatus) Reviewable() bool {
	return s == FlagStatusPending || s == FlagStatusEscalated
}

// FlagReviewAction is what an admin decides for a flag.
type FlagReviewAction string

const (
	FlagActionApprove  FlagReviewAction = "APPROVE"
	FlagActionRemove   FlagReviewAction = "REMOVE"
	FlagActionEscalate FlagReviewAction = "ESCALATE"
	FlagActionBanUser  FlagReviewAction = "BAN_USER"
)

// MaxContentPreview bounds the stored excerpt of flagged content.
const MaxContentPreview = 500

// FlaggedContent is a moderation queue entry.
type FlaggedContent struct {
	ID             string          `db:"id" json:"id"`
	ContentType    FlagContentType `db:"content_type" json:"contentType"`
	ContentID      string          `db:"content_id" json:"contentId"`
	AuthorID       *string         `db:"author_id" json:"authorId,omitempty"`
	ContentPreview string          `db:"content_preview" json:"contentPreview"`
	Source         FlagSource      `db:"source" json:"source"`
	Reason         string          `db:"reason" json:"reason"`
	Categories     pq.StringArray  `db:"categories" json:"categories"`
	Severity       FlagSeverity    `db:"severity" json:"severity"`
	Status         FlagStatus      `db:"status" json:"status"`
	ReviewedBy     *string         `db:"reviewed_by" json:"reviewedBy,omitempty"`
	ReviewedAt     *time.Time      `db:"reviewed_at" json:"reviewedAt,omitempty"`
	ReviewNote     *string         `db:"review_note" json:"reviewNote,omitempty"`
	CreatedAt      time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updatedAt"`
}

// FlaggedContentFilter scopes the moderation queue.
type FlaggedContentFilter struct {
	Status      string
	Severity    string
	ContentType string
	PageRequest
}

// FlaggedContentStats summarises the moderation queue.
type FlaggedContentStats struct {
	PendingBySeverity map[string]int `json:"pendingBySeverity"`
	ByStatus          map[string]int `json:"byStatus"`
	TotalPending      int            `json:"totalPending"`
}

// SeverityCount is one bucket of a GROUP BY status, severity query.
type SeverityCount struct {
	Status   string `db:"status"`
	Severity string `db:"severity"`
	Count    int    `db:"count"`
}
