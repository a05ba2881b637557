package models

import "time"

// ReportContentType names what kind of content a report points at.
type ReportContentType string

const (
	ReportContentUser    ReportContentType = "USER"
	ReportContentMessage ReportContentType = "MESSAGE"
	ReportContentGroup   ReportContentType = "GROUP"
	ReportContentProfile ReportContentType = "PROFILE"
	ReportContentPost    ReportContentType = "POST"
)

// ReportReason categorises why content was reported.
type ReportReason string

const (
	ReportReasonSpam          ReportReason = "SPAM"
	ReportReasonHarassment    ReportReason = "HARASSMENT"
	ReportReasonInappropriate ReportReason = "INAPPROPRIATE"
	ReportReasonFakeProfile   ReportReason = "FAKE_PROFILE"
	ReportReasonOther         ReportReason = "OTHER"
)

// ReportStatus tracks moderation progress.
type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "PENDING"
	ReportStatusReviewing ReportStatus = "REVIEWING"
	ReportStatusResolved  ReportStatus = "RESOLVED"
	ReportStatusDismissed ReportStatus = "DISMISSED"
)

// IsFinal reports whether the status closes the report.
func (s ReportStatus) IsFinal() bool {
	return s == ReportStatusResolved || s == ReportStatusDismissed
}

// Report is a user-submitted complaint about content or another user.
type Report struct {
	ID             string            `db:"id" json:"id"`
	ReporterID     string            `db:"reporter_id" json:"reporterId"`
	ReportedUserID *string           `db:"reported_user_id" json:"reportedUserId,omitempty"`
	ContentType    ReportContentType `db:"content_type" json:"contentType"`
	ContentID      string            `db:"content_id" json:"contentId"`
	Reason         ReportReason      `db:"reason" json:"reason"`
	Description    *string           `db:"description" json:"description,omitempty"`
	Status         ReportStatus      `db:"status" json:"status"`
	AdminNotes     *string           `db:"admin_notes" json:"adminNotes,omitempty"`
	ReviewedBy     *string           `db:"reviewed_by" json:"reviewedBy,omitempty"`
	ReviewedAt     *time.Time        `db:"reviewed_at" json:"reviewedAt,omitempty"`
	CreatedAt      time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time         `db:"updated_at" json:"updatedAt"`
}

// ReportFilter scopes admin report listings.
type ReportFilter struct {
	Status      string
	ContentType string
	Reason      string
	From        *time.Time
	To          *time.Time
	PageRequest
}

// FeedbackType classifies feedback.
type FeedbackType string

const (
	FeedbackTypeBug       FeedbackType = "BUG"
	FeedbackTypeFeature   FeedbackType = "FEATURE"
	FeedbackTypeGeneral   FeedbackType = "GENERAL"
	FeedbackTypeComplaint FeedbackType = "COMPLAINT"
)

// FeedbackStatus tracks admin triage.
type FeedbackStatus string

const (
	FeedbackStatusNew      FeedbackStatus = "NEW"
	FeedbackStatusInReview FeedbackStatus = "IN_REVIEW"
	FeedbackStatusResolved FeedbackStatus = "RESOLVED"
	FeedbackStatusArchived FeedbackStatus = "ARCHIVED"
)

// Feedback is free-form product feedback from a user.
type Feedback struct {
	ID            string         `db:"id" json:"id"`
	UserID        string         `db:"user_id" json:"userId"`
	Type          FeedbackType   `db:"type" json:"type"`
	Subject       string         `db:"subject" json:"subject"`
	Message       string         `db:"message" json:"message"`
	Rating        *int           `db:"rating" json:"rating,omitempty"`
	PageURL       *string        `db:"page_url" json:"pageUrl,omitempty"`
	Status        FeedbackStatus `db:"status" json:"status"`
	AdminResponse *string        `db:"admin_response" json:"adminResponse,omitempty"`
	RespondedBy   *string        `db:"responded_by" json:"respondedBy,omitempty"`
	RespondedAt   *time.Time     `db:"responded_at" json:"respondedAt,omitempty"`
	CreatedAt     time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updatedAt"`
}

// FeedbackFilter scopes admin feedback listings.
type FeedbackFilter struct {
	Type   string
	Status string
	From   *time.Time
	To     *time.Time
	PageRequest
}

// StatusCount is one bucket of a GROUP BY status query.
type StatusCount struct {
	Status string `db:"status" json:"status"`
	Count  int    `db:"count" json:"count"`
}

// ModerationSummary aggregates report and feedback counts per status.
type ModerationSummary struct {
	Reports  map[string]int `json:"reports"`
	Feedback map[string]int `json:"feedback"`
}
