package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/studybuddy-api/internal/models"
	"github.com/noah-isme/studybuddy-api/internal/repository"
	appErrors "github.com/noah-isme/studybuddy-api/pkg/errors"
	"github.com/noah-isme/studybuddy-api/pkg/events"
)

type flaggedContentRepository interface {
	Create(ctx context.Context, flag *models.FlaggedContent) error
	FindByID(ctx context.Context, id string) (*models.FlaggedContent, error)
	List(ctx context.Context, filter models.FlaggedContentFilter) ([]models.FlaggedContent, int, error)
	UpdateReview(ctx context.Context, flag *models.FlaggedContent, previous models.FlagStatus) error
	ReviewAndBan(ctx context.Context, flag *models.FlaggedContent, previous models.FlagStatus, reason string) error
	CountByStatusAndSeverity(ctx context.Context) ([]models.SeverityCount, error)
}

// CreateFlagRequest is raised by internal services (AI screening, report escalation).
type CreateFlagRequest struct {
	ContentType    models.FlagContentType `json:"contentType" validate:"required,oneof=MESSAGE GROUP_MESSAGE GROUP PROFILE POST"`
	ContentID      string                 `json:"contentId" validate:"required,max=64"`
	AuthorID       string                 `json:"authorId" validate:"omitempty,max=64"`
	ContentPreview string                 `json:"contentPreview" validate:"required"`
	Source         models.FlagSource      `json:"source" validate:"omitempty,oneof=AUTO USER_REPORT AI"`
	Reason         string                 `json:"reason" validate:"required,max=500"`
	Categories     []string               `json:"categories" validate:"omitempty,dive,max=50"`
	Severity       models.FlagSeverity    `json:"severity" validate:"omitempty,oneof=LOW MEDIUM HIGH CRITICAL"`
}

// ReviewFlagRequest is the admin decision on a flag.
type ReviewFlagRequest struct {
	Action models.FlagReviewAction `json:"action" validate:"required,oneof=APPROVE REMOVE ESCALATE BAN_USER"`
	Note   string                  `json:"note" validate:"max=2000"`
}

// ModerationService manages the flagged content queue.
type ModerationService struct {
	flags     flaggedContentRepository
	filter    *ContentFilter
	audit     auditRecorder
	publisher events.Publisher
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewModerationService constructs the service. A nil filter disables automatic screening.
func NewModerationService(flags flaggedContentRepository, filter *ContentFilter, audit auditRecorder, publisher events.Publisher, validate *validator.Validate, logger *zap.Logger) *ModerationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ModerationService{flags: flags, filter: filter, audit: audit, publisher: publisher, validator: validate, logger: logger, now: time.Now}
}

// Flag enqueues content for review.
func (s *ModerationService) Flag(ctx context.Context, req CreateFlagRequest) (*models.FlaggedContent, error) {
	if err := validateStruct(s.validator, req, "invalid flag payload"); err != nil {
		return nil, err
	}
	if req.Source == "" {
		req.Source = models.FlagSourceAI
	}
	if req.Severity == "" {
		req.Severity = models.FlagSeverityMedium
	}
	flag := &models.FlaggedContent{
		ContentType:    req.ContentType,
		ContentID:      req.ContentID,
		AuthorID:       stringPtr(req.AuthorID),
		ContentPreview: truncatePreview(req.ContentPreview),
		Source:         req.Source,
		Reason:         req.Reason,
		Categories:     append([]string{}, req.Categories...),
		Severity:       req.Severity,
		Status:         models.FlagStatusPending,
	}
	if err := s.flags.Create(ctx, flag); err != nil {
		return nil, appErrors.Internal(err, "failed to flag content")
	}
	return flag, nil
}

// Screen runs text through the content filter and queues a flag when it matches.
// Failures are logged; the caller's write is never blocked by screening.
func (s *ModerationService) Screen(ctx context.Context, contentType models.FlagContentType, contentID, authorID string, parts ...string) *models.FlaggedContent {
	if s == nil || s.filter == nil {
		return nil
	}
	text := strings.TrimSpace(strings.Join(parts, "\n"))
	result := s.filter.Check(text)
	if !result.Flagged {
		return nil
	}
	flag, err := s.Flag(ctx, CreateFlagRequest{
		ContentType:    contentType,
		ContentID:      contentID,
		AuthorID:       authorID,
		ContentPreview: text,
		Source:         models.FlagSourceAuto,
		Reason:         result.Reason(),
		Categories:     result.Categories,
		Severity:       result.Severity,
	})
	if err != nil {
		s.logger.Warn("auto flag failed", zap.String("content_type", string(contentType)), zap.String("content_id", contentID), zap.Error(err))
		return nil
	}
	s.logger.Info("content auto flagged",
		zap.String("content_type", string(contentType)),
		zap.String("content_id", contentID),
		zap.Strings("categories", result.Categories),
	)
	return flag
}

// List returns the moderation queue, most severe first.
func (s *ModerationService) List(ctx context.Context, actor models.Actor, filter models.FlaggedContentFilter) ([]models.FlaggedContent, *models.Pagination, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, nil, err
	}
	filter.PageRequest = filter.PageRequest.Normalize(defaultPageSize, maxPageSize)
	items, total, err := s.flags.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list flagged content")
	}
	return items, models.NewPagination(filter.Page, filter.PageSize, total), nil
}

// Get returns one flag.
func (s *ModerationService) Get(ctx context.Context, actor models.Actor, id string) (*models.FlaggedContent, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	flag, err := s.flags.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "flagged content not found", "failed to load flagged content")
	}
	return flag, nil
}

// Stats summarises the queue. All severities and statuses are present.
func (s *ModerationService) Stats(ctx context.Context, actor models.Actor) (*models.FlaggedContentStats, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	counts, err := s.flags.CountByStatusAndSeverity(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load moderation stats")
	}
	stats := &models.FlaggedContentStats{
		PendingBySeverity: map[string]int{},
		ByStatus:          map[string]int{},
	}
	for _, sev := range []models.FlagSeverity{models.FlagSeverityLow, models.FlagSeverityMedium, models.FlagSeverityHigh, models.FlagSeverityCritical} {
		stats.PendingBySeverity[string(sev)] = 0
	}
	for _, st := range []models.FlagStatus{models.FlagStatusPending, models.FlagStatusApproved, models.FlagStatusRemoved, models.FlagStatusEscalated} {
		stats.ByStatus[string(st)] = 0
	}
	for _, c := range counts {
		stats.ByStatus[c.Status] += c.Count
		if c.Status == string(models.FlagStatusPending) {
			stats.PendingBySeverity[c.Severity] += c.Count
			stats.TotalPending += c.Count
		}
	}
	return stats, nil
}

// Review applies an admin decision. Only pending or escalated flags can be reviewed.
func (s *ModerationService) Review(ctx context.Context, actor models.Actor, id string, req ReviewFlagRequest) (*models.FlaggedContent, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := validateStruct(s.validator, req, "invalid review payload"); err != nil {
		return nil, err
	}
	flag, err := s.flags.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "flagged content not found", "failed to load flagged content")
	}
	if !flag.Status.Reviewable() {
		return nil, appErrors.Clone(appErrors.ErrConflict, "flagged content was already reviewed")
	}
	if req.Action == models.FlagActionBanUser && deref(flag.AuthorID) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "flagged content has no known author")
	}

	now := s.now().UTC()
	previous := flag.Status
	switch req.Action {
	case models.FlagActionApprove:
		flag.Status = models.FlagStatusApproved
	case models.FlagActionEscalate:
		flag.Status = models.FlagStatusEscalated
	default:
		flag.Status = models.FlagStatusRemoved
	}
	flag.ReviewedBy = &actor.UserID
	flag.ReviewedAt = &now
	flag.ReviewNote = stringPtr(req.Note)

	var reason string
	if req.Action == models.FlagActionBanUser {
		reason = req.Note
		if reason == "" {
			reason = flag.Reason
		}
		err = s.flags.ReviewAndBan(ctx, flag, previous, reason)
	} else {
		err = s.flags.UpdateReview(ctx, flag, previous)
	}
	if err != nil {
		return nil, reviewError(err)
	}
	if req.Action == models.FlagActionBanUser {
		s.audit.Record(ctx, actor, models.AuditActionUserBan, models.AuditTargetUser, *flag.AuthorID, map[string]interface{}{
			"reason": reason, "flagId": flag.ID,
		})
	}
	s.audit.Record(ctx, actor, models.AuditActionContentReview, models.AuditTargetFlag, flag.ID, map[string]interface{}{
		"action": req.Action, "previousStatus": previous, "status": flag.Status,
		"contentType": flag.ContentType, "contentId": flag.ContentID,
	})

	if flag.Status == models.FlagStatusRemoved {
		publishEvent(ctx, s.publisher, s.logger, events.Event{
			Type:    events.TypeContentRemoved,
			Key:     flag.ContentID,
			ActorID: actor.UserID,
			Data: map[string]interface{}{
				"flagId":      flag.ID,
				"contentType": flag.ContentType,
				"contentId":   flag.ContentID,
				"authorId":    flag.AuthorID,
			},
		})
	}
	if req.Action == models.FlagActionBanUser {
		publishEvent(ctx, s.publisher, s.logger, events.Event{
			Type:    events.TypeUserBanned,
			Key:     *flag.AuthorID,
			ActorID: actor.UserID,
			Data:    map[string]interface{}{"userId": *flag.AuthorID, "reason": reason, "flagId": flag.ID},
		})
	}
	return flag, nil
}

func reviewError(err error) error {
	switch {
	case errors.Is(err, repository.ErrStatusChanged):
		return appErrors.Clone(appErrors.ErrConflict, "flagged content was already reviewed")
	case errors.Is(err, sql.ErrNoRows):
		return appErrors.Clone(appErrors.ErrNotFound, "author not found")
	default:
		return appErrors.Internal(err, "failed to update flagged content")
	}
}
