package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/studybuddy-api/internal/models"
	"github.com/noah-isme/studybuddy-api/internal/repository"
	appErrors "github.com/noah-isme/studybuddy-api/pkg/errors"
	"github.com/noah-isme/studybuddy-api/pkg/events"
)

type reportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	HasOpenReport(ctx context.Context, reporterID string, contentType models.ReportContentType, contentID string) (bool, error)
	FindByID(ctx context.Context, id string) (*models.Report, error)
	List(ctx context.Context, filter models.ReportFilter) ([]models.Report, int, error)
	UpdateReview(ctx context.Context, report *models.Report, previous models.ReportStatus) error
	CountByStatus(ctx context.Context) ([]models.StatusCount, error)
}

type feedbackRepository interface {
	Create(ctx context.Context, fb *models.Feedback) error
	FindByID(ctx context.Context, id string) (*models.Feedback, error)
	List(ctx context.Context, filter models.FeedbackFilter) ([]models.Feedback, int, error)
	UpdateResponse(ctx context.Context, fb *models.Feedback) error
	CountByStatus(ctx context.Context) ([]models.StatusCount, error)
}

// CreateReportRequest is submitted by any signed-in user.
type CreateReportRequest struct {
	ReportedUserID string                   `json:"reportedUserId" validate:"omitempty,max=64"`
	ContentType    models.ReportContentType `json:"contentType" validate:"required,oneof=USER MESSAGE GROUP PROFILE POST"`
	ContentID      string                   `json:"contentId" validate:"required,max=64"`
	Reason         models.ReportReason      `json:"reason" validate:"required,oneof=SPAM HARASSMENT INAPPROPRIATE FAKE_PROFILE OTHER"`
	Description    string                   `json:"description" validate:"max=2000"`
}

// UpdateReportRequest is the admin review of a report.
type UpdateReportRequest struct {
	Status     models.ReportStatus `json:"status" validate:"required,oneof=PENDING REVIEWING RESOLVED DISMISSED"`
	AdminNotes *string             `json:"adminNotes" validate:"omitempty,max=2000"`
}

// CreateFeedbackRequest is submitted by any signed-in user.
type CreateFeedbackRequest struct {
	Type    models.FeedbackType `json:"type" validate:"required,oneof=BUG FEATURE GENERAL COMPLAINT"`
	Subject string              `json:"subject" validate:"required,min=3,max=200"`
	Message string              `json:"message" validate:"required,min=10,max=5000"`
	Rating  *int                `json:"rating" validate:"omitempty,min=1,max=5"`
	PageURL string              `json:"pageUrl" validate:"omitempty,max=500"`
}

// UpdateFeedbackRequest is the admin triage of feedback.
type UpdateFeedbackRequest struct {
	Status        models.FeedbackStatus `json:"status" validate:"required,oneof=NEW IN_REVIEW RESOLVED ARCHIVED"`
	AdminResponse *string               `json:"adminResponse" validate:"omitempty,max=5000"`
}

// ReportService handles user reports and product feedback.
type ReportService struct {
	reports   reportRepository
	feedback  feedbackRepository
	audit     auditRecorder
	publisher events.Publisher
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewReportService constructs the service.
func NewReportService(reports reportRepository, feedback feedbackRepository, audit auditRecorder, publisher events.Publisher, validate *validator.Validate, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ReportService{reports: reports, feedback: feedback, audit: audit, publisher: publisher, validator: validate, logger: logger, now: time.Now}
}

// Submit files a report on behalf of the user.
func (s *ReportService) Submit(ctx context.Context, reporterID string, req CreateReportRequest) (*models.Report, error) {
	if err := validateStruct(s.validator, req, "invalid report payload"); err != nil {
		return nil, err
	}
	reported := req.ReportedUserID
	if reported == "" && (req.ContentType == models.ReportContentUser || req.ContentType == models.ReportContentProfile) {
		reported = req.ContentID
	}
	if reported == reporterID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "you cannot report yourself")
	}

	open, err := s.reports.HasOpenReport(ctx, reporterID, req.ContentType, req.ContentID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to check existing reports")
	}
	if open {
		return nil, appErrors.Clone(appErrors.ErrConflict, "you already reported this content")
	}

	report := &models.Report{
		ReporterID:     reporterID,
		ReportedUserID: stringPtr(reported),
		ContentType:    req.ContentType,
		ContentID:      req.ContentID,
		Reason:         req.Reason,
		Description:    stringPtr(req.Description),
		Status:         models.ReportStatusPending,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, appErrors.Internal(err, "failed to create report")
	}
	return report, nil
}

// List returns reports for admins.
func (s *ReportService) List(ctx context.Context, actor models.Actor, filter models.ReportFilter) ([]models.Report, *models.Pagination, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, nil, err
	}
	filter.PageRequest = filter.PageRequest.Normalize(defaultPageSize, maxPageSize)
	items, total, err := s.reports.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list reports")
	}
	return items, models.NewPagination(filter.Page, filter.PageSize, total), nil
}

// Get returns a single report for admins.
func (s *ReportService) Get(ctx context.Context, actor models.Actor, id string) (*models.Report, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	report, err := s.reports.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "report not found", "failed to load report")
	}
	return report, nil
}

// Review moves a report through moderation. Closing statuses stamp the reviewer.
func (s *ReportService) Review(ctx context.Context, actor models.Actor, id string, req UpdateReportRequest) (*models.Report, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := validateStruct(s.validator, req, "invalid report update"); err != nil {
		return nil, err
	}
	report, err := s.reports.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "report not found", "failed to load report")
	}

	previous := report.Status
	report.Status = req.Status
	if req.AdminNotes != nil {
		report.AdminNotes = req.AdminNotes
	}
	if req.Status.IsFinal() {
		now := s.now().UTC()
		report.ReviewedBy = &actor.UserID
		report.ReviewedAt = &now
	}
	if err := s.reports.UpdateReview(ctx, report, previous); err != nil {
		if errors.Is(err, repository.ErrStatusChanged) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "report was updated by another reviewer")
		}
		return nil, appErrors.Internal(err, "failed to update report")
	}

	s.audit.Record(ctx, actor, models.AuditActionReportUpdate, models.AuditTargetReport, report.ID, map[string]interface{}{
		"previousStatus": previous, "status": report.Status,
	})
	if previous != report.Status {
		publishEvent(ctx, s.publisher, s.logger, events.Event{
			Type:    events.TypeReportStatusChanged,
			Key:     report.ID,
			ActorID: actor.UserID,
			Data: map[string]interface{}{
				"reportId":       report.ID,
				"reporterId":     report.ReporterID,
				"previousStatus": previous,
				"status":         report.Status,
			},
		})
	}
	return report, nil
}

// SubmitFeedback stores feedback from a user.
func (s *ReportService) SubmitFeedback(ctx context.Context, userID string, req CreateFeedbackRequest) (*models.Feedback, error) {
	if err := validateStruct(s.validator, req, "invalid feedback payload"); err != nil {
		return nil, err
	}
	fb := &models.Feedback{
		UserID:  userID,
		Type:    req.Type,
		Subject: req.Subject,
		Message: req.Message,
		Rating:  req.Rating,
		PageURL: stringPtr(req.PageURL),
		Status:  models.FeedbackStatusNew,
	}
	if err := s.feedback.Create(ctx, fb); err != nil {
		return nil, appErrors.Internal(err, "failed to save feedback")
	}
	return fb, nil
}

// ListFeedback returns feedback for admins.
func (s *ReportService) ListFeedback(ctx context.Context, actor models.Actor, filter models.FeedbackFilter) ([]models.Feedback, *models.Pagination, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, nil, err
	}
	filter.PageRequest = filter.PageRequest.Normalize(defaultPageSize, maxPageSize)
	items, total, err := s.feedback.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list feedback")
	}
	return items, models.NewPagination(filter.Page, filter.PageSize, total), nil
}

// RespondFeedback records admin triage.
func (s *ReportService) RespondFeedback(ctx context.Context, actor models.Actor, id string, req UpdateFeedbackRequest) (*models.Feedback, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := validateStruct(s.validator, req, "invalid feedback update"); err != nil {
		return nil, err
	}
	fb, err := s.feedback.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "feedback not found", "failed to load feedback")
	}
	previous := fb.Status
	fb.Status = req.Status
	if req.AdminResponse != nil {
		now := s.now().UTC()
		fb.AdminResponse = req.AdminResponse
		fb.RespondedBy = &actor.UserID
		fb.RespondedAt = &now
	}
	if err := s.feedback.UpdateResponse(ctx, fb); err != nil {
		return nil, lookupError(err, "feedback not found", "failed to update feedback")
	}
	s.audit.Record(ctx, actor, models.AuditActionFeedbackUpdate, models.AuditTargetFeedback, fb.ID, map[string]interface{}{
		"previousStatus": previous, "status": fb.Status, "responded": req.AdminResponse != nil,
	})
	return fb, nil
}

// Summary counts reports and feedback per status. Every known status is present.
func (s *ReportService) Summary(ctx context.Context, actor models.Actor) (*models.ModerationSummary, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	reportCounts, err := s.reports.CountByStatus(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to count reports")
	}
	feedbackCounts, err := s.feedback.CountByStatus(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to count feedback")
	}

	summary := &models.ModerationSummary{
		Reports:  zeroCounts(string(models.ReportStatusPending), string(models.ReportStatusReviewing), string(models.ReportStatusResolved), string(models.ReportStatusDismissed)),
		Feedback: zeroCounts(string(models.FeedbackStatusNew), string(models.FeedbackStatusInReview), string(models.FeedbackStatusResolved), string(models.FeedbackStatusArchived)),
	}
	for _, c := range reportCounts {
		summary.Reports[c.Status] = c.Count
	}
	for _, c := range feedbackCounts {
		summary.Feedback[c.Status] = c.Count
	}
	return summary, nil
}

func zeroCounts(keys ...string) map[string]int {
	out := make(map[string]int, len(keys))
	for _, k := range keys {
		out[k] = 0
	}
	return out
}
