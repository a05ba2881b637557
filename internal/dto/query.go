package dto

import (
	"strings"
	"time"

	"github.com/noah-isme/studybuddy-api/internal/models"
	appErrors "github.com/noah-isme/studybuddy-api/pkg/errors"
)

const dateLayout = "2006-01-02"

// PageQuery binds ?page=&pageSize=.
type PageQuery struct {
	Page     int `form:"page"`
	PageSize int `form:"pageSize"`
}

// Request converts the query to repository paging. Services apply defaults.
func (q PageQuery) Request() models.PageRequest {
	return models.PageRequest{Page: q.Page, PageSize: q.PageSize}
}

// DateRangeQuery binds ?from=&to= as RFC3339 timestamps or plain dates.
// A plain `to` date covers that whole day.
type DateRangeQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// Parse returns the half-open window [from, to).
func (q DateRangeQuery) Parse() (*time.Time, *time.Time, error) {
	from, err := parseBound(q.From, false)
	if err != nil {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "invalid from parameter")
	}
	to, err := parseBound(q.To, true)
	if err != nil {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "invalid to parameter")
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "to must not be before from")
	}
	return from, to, nil
}

func parseBound(raw string, upper bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, err
	}
	if upper {
		t = t.AddDate(0, 0, 1)
	}
	return &t, nil
}

// AuditLogQuery binds GET /admin/audit-logs.
type AuditLogQuery struct {
	AdminID    string `form:"adminId"`
	Action     string `form:"action"`
	TargetType string `form:"targetType"`
	DateRangeQuery
	PageQuery
}

// Filter converts the query into a repository filter.
func (q AuditLogQuery) Filter() (models.AuditLogFilter, error) {
	from, to, err := q.Parse()
	if err != nil {
		return models.AuditLogFilter{}, err
	}
	return models.AuditLogFilter{
		AdminID:     strings.TrimSpace(q.AdminID),
		Action:      strings.ToUpper(strings.TrimSpace(q.Action)),
		TargetType:  strings.ToUpper(strings.TrimSpace(q.TargetType)),
		From:        from,
		To:          to,
		PageRequest: q.Request(),
	}, nil
}

// AnnouncementQuery binds GET /admin/announcements.
type AnnouncementQuery struct {
	Status string `form:"status"`
	PageQuery
}

// Filter converts the query into a repository filter.
func (q AnnouncementQuery) Filter() models.AnnouncementFilter {
	return models.AnnouncementFilter{Status: strings.ToUpper(q.Status), PageRequest: q.Request()}
}

// ReportQuery binds GET /admin/reports.
type ReportQuery struct {
	Status      string `form:"status"`
	ContentType string `form:"contentType"`
	Reason      string `form:"reason"`
	DateRangeQuery
	PageQuery
}

// Filter converts the query into a repository filter.
func (q ReportQuery) Filter() (models.ReportFilter, error) {
	from, to, err := q.Parse()
	if err != nil {
		return models.ReportFilter{}, err
	}
	return models.ReportFilter{
		Status:      strings.ToUpper(q.Status),
		ContentType: strings.ToUpper(q.ContentType),
		Reason:      strings.ToUpper(q.Reason),
		From:        from,
		To:          to,
		PageRequest: q.Request(),
	}, nil
}

// FeedbackQuery binds GET /admin/feedback.
type FeedbackQuery struct {
	Type   string `form:"type"`
	Status string `form:"status"`
	DateRangeQuery
	PageQuery
}

// Filter converts the query into a repository filter.
func (q FeedbackQuery) Filter() (models.FeedbackFilter, error) {
	from, to, err := q.Parse()
	if err != nil {
		return models.FeedbackFilter{}, err
	}
	return models.FeedbackFilter{
		Type:        strings.ToUpper(q.Type),
		Status:      strings.ToUpper(q.Status),
		From:        from,
		To:          to,
		PageRequest: q.Request(),
	}, nil
}

// FlaggedContentQuery binds GET /admin/flagged.
type FlaggedContentQuery struct {
	Status      string `form:"status"`
	Severity    string `form:"severity"`
	ContentType string `form:"contentType"`
	PageQuery
}

// Filter converts the query into a repository filter.
func (q FlaggedContentQuery) Filter() models.FlaggedContentFilter {
	return models.FlaggedContentFilter{
		Status:      strings.ToUpper(q.Status),
		Severity:    strings.ToUpper(q.Severity),
		ContentType: strings.ToUpper(q.ContentType),
		PageRequest: q.Request(),
	}
}

// AIUsageQuery binds GET /admin/ai/usage.
type AIUsageQuery struct {
	UserID  string `form:"userId"`
	Model   string `form:"model"`
	Feature string `form:"feature"`
	DateRangeQuery
	PageQuery
}

// Filter converts the query into a repository filter.
func (q AIUsageQuery) Filter() (models.AIUsageFilter, error) {
	from, to, err := q.Parse()
	if err != nil {
		return models.AIUsageFilter{}, err
	}
	return models.AIUsageFilter{
		UserID:      strings.TrimSpace(q.UserID),
		Model:       strings.TrimSpace(q.Model),
		Feature:     strings.ToUpper(q.Feature),
		From:        from,
		To:          to,
		PageRequest: q.Request(),
	}, nil
}

// AIMemoryQuery binds GET /admin/ai/memory.
type AIMemoryQuery struct {
	UserID   string `form:"userId"`
	Category string `form:"category"`
	PageQuery
}

// Filter converts the query into a repository filter.
func (q AIMemoryQuery) Filter() models.AIMemoryFilter {
	return models.AIMemoryFilter{UserID: strings.TrimSpace(q.UserID), Category: strings.ToUpper(q.Category), PageRequest: q.Request()}
}

// GroupDiscoverQuery binds GET /groups/discover.
type GroupDiscoverQuery struct {
	Query   string `form:"q"`
	Subject string `form:"subject"`
	PageQuery
}

// Filter converts the query into a repository filter for viewerID.
func (q GroupDiscoverQuery) Filter(viewerID string) models.GroupFilter {
	return models.GroupFilter{ViewerID: viewerID, Query: q.Query, Subject: strings.TrimSpace(q.Subject), PageRequest: q.Request()}
}

// PartnerSearchQuery binds GET /partners/search. List parameters accept repeats
// and comma separated values.
type PartnerSearchQuery struct {
	Query         string   `form:"q"`
	Subjects      []string `form:"subjects"`
	Interests     []string `form:"interests"`
	SkillLevel    string   `form:"skillLevel"`
	StudyStyle    string   `form:"studyStyle"`
	School        string   `form:"school"`
	AvailableDays []string `form:"availableDays"`
	Timezone      string   `form:"timezone"`
	PageQuery
}

// Filter converts the query into a search filter for requesterID.
func (q PartnerSearchQuery) Filter(requesterID string) models.PartnerSearchFilter {
	return models.PartnerSearchFilter{
		RequesterID:   requesterID,
		Query:         q.Query,
		Subjects:      q.Subjects,
		Interests:     q.Interests,
		SkillLevel:    q.SkillLevel,
		StudyStyle:    q.StudyStyle,
		School:        strings.TrimSpace(q.School),
		AvailableDays: q.AvailableDays,
		Timezone:      strings.TrimSpace(q.Timezone),
		PageRequest:   q.Request(),
	}
}
