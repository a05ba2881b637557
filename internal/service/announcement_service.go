package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/studybuddy-api/internal/models"
	appErrors "github.com/noah-isme/studybuddy-api/pkg/errors"
	"github.com/noah-isme/studybuddy-api/pkg/events"
)

type announcementRepository interface {
	List(ctx context.Context, filter models.AnnouncementFilter) ([]models.Announcement, int, error)
	ListActive(ctx context.Context, audiences []string, userID string, now time.Time) ([]models.Announcement, error)
	FindByID(ctx context.Context, id string) (*models.Announcement, error)
	Create(ctx context.Context, item *models.Announcement) error
	Update(ctx context.Context, item *models.Announcement) error
	Delete(ctx context.Context, id string) error
	Dismiss(ctx context.Context, announcementID, userID string, ts time.Time) error
}

// AnnouncementRequest is the create and full-update payload.
type AnnouncementRequest struct {
	Title         string                      `json:"title" validate:"required,min=1,max=200"`
	Content       string                      `json:"content" validate:"required,max=5000"`
	Type          models.AnnouncementType     `json:"type" validate:"required,oneof=INFO WARNING UPDATE MAINTENANCE"`
	Priority      models.AnnouncementPriority `json:"priority" validate:"omitempty,oneof=LOW NORMAL HIGH URGENT"`
	Status        models.AnnouncementStatus   `json:"status" validate:"omitempty,oneof=DRAFT ACTIVE ARCHIVED"`
	Audience      models.AnnouncementAudience `json:"audience" validate:"omitempty,oneof=ALL NEW_USERS ADMINS"`
	IsDismissible *bool                       `json:"isDismissible"`
	StartsAt      *time.Time                  `json:"startsAt"`
	EndsAt        *time.Time                  `json:"endsAt"`
}

// AnnouncementService manages admin announcements and their delivery to users.
type AnnouncementService struct {
	repo      announcementRepository
	audit     auditRecorder
	publisher events.Publisher
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewAnnouncementService constructs the service.
func NewAnnouncementService(repo announcementRepository, audit auditRecorder, publisher events.Publisher, validate *validator.Validate, logger *zap.Logger) *AnnouncementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AnnouncementService{repo: repo, audit: audit, publisher: publisher, validator: validate, logger: logger, now: time.Now}
}

// List returns announcements for the admin panel.
func (s *AnnouncementService) List(ctx context.Context, actor models.Actor, filter models.AnnouncementFilter) ([]models.Announcement, *models.Pagination, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, nil, err
	}
	filter.PageRequest = filter.PageRequest.Normalize(defaultPageSize, maxPageSize)
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list announcements")
	}
	return items, models.NewPagination(filter.Page, filter.PageSize, total), nil
}

// Create stores a new announcement.
func (s *AnnouncementService) Create(ctx context.Context, actor models.Actor, req AnnouncementRequest) (*models.Announcement, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	item := &models.Announcement{CreatedBy: actor.UserID}
	if err := s.apply(item, req); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, appErrors.Internal(err, "failed to create announcement")
	}

	s.audit.Record(ctx, actor, models.AuditActionAnnouncementCreate, models.AuditTargetAnnouncement, item.ID, map[string]interface{}{
		"title": item.Title, "status": item.Status, "audience": item.Audience,
	})
	if item.Status == models.AnnouncementStatusActive {
		s.published(ctx, actor, item)
	}
	return item, nil
}

// Update replaces the editable fields of an announcement.
func (s *AnnouncementService) Update(ctx context.Context, actor models.Actor, id string, req AnnouncementRequest) (*models.Announcement, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "announcement not found", "failed to load announcement")
	}
	previous := item.Status
	if err := s.apply(item, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, lookupError(err, "announcement not found", "failed to update announcement")
	}

	s.audit.Record(ctx, actor, models.AuditActionAnnouncementUpdate, models.AuditTargetAnnouncement, item.ID, map[string]interface{}{
		"title": item.Title, "previousStatus": previous, "status": item.Status,
	})
	if previous != models.AnnouncementStatusActive && item.Status == models.AnnouncementStatusActive {
		s.published(ctx, actor, item)
	}
	return item, nil
}

// Delete removes an announcement.
func (s *AnnouncementService) Delete(ctx context.Context, actor models.Actor, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, "announcement not found", "failed to delete announcement")
	}
	s.audit.Record(ctx, actor, models.AuditActionAnnouncementDelete, models.AuditTargetAnnouncement, id, nil)
	return nil
}

// Active returns what the user should see right now, most urgent first.
func (s *AnnouncementService) Active(ctx context.Context, user *models.User) ([]models.Announcement, error) {
	if user == nil {
		return nil, appErrors.ErrUnauthorized
	}
	now := s.now().UTC()
	items, err := s.repo.ListActive(ctx, audiencesFor(user, now), user.ID, now)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load announcements")
	}
	if items == nil {
		items = []models.Announcement{}
	}
	return items, nil
}

// Dismiss hides a dismissible announcement for the user.
func (s *AnnouncementService) Dismiss(ctx context.Context, user *models.User, id string) error {
	if user == nil {
		return appErrors.ErrUnauthorized
	}
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return lookupError(err, "announcement not found", "failed to load announcement")
	}
	if !item.IsDismissible {
		return appErrors.Clone(appErrors.ErrValidation, "announcement cannot be dismissed")
	}
	if err := s.repo.Dismiss(ctx, id, user.ID, s.now().UTC()); err != nil {
		return appErrors.Internal(err, "failed to dismiss announcement")
	}
	return nil
}

// apply copies req onto item. Omitted startsAt and isDismissible keep the stored values.
func (s *AnnouncementService) apply(item *models.Announcement, req AnnouncementRequest) error {
	if err := validateStruct(s.validator, req, "invalid announcement payload"); err != nil {
		return err
	}
	startsAt := item.StartsAt
	if startsAt.IsZero() {
		startsAt = s.now().UTC()
	}
	if req.StartsAt != nil {
		startsAt = req.StartsAt.UTC()
	}
	if req.EndsAt != nil && !req.EndsAt.After(startsAt) {
		return appErrors.Clone(appErrors.ErrValidation, "endsAt must be after startsAt")
	}

	item.Title = req.Title
	item.Content = req.Content
	item.Type = req.Type
	item.Priority = req.Priority
	if item.Priority == "" {
		item.Priority = models.AnnouncementPriorityNormal
	}
	item.Status = req.Status
	if item.Status == "" {
		item.Status = models.AnnouncementStatusDraft
	}
	item.Audience = req.Audience
	if item.Audience == "" {
		item.Audience = models.AnnouncementAudienceAll
	}
	if item.ID == "" {
		item.IsDismissible = true
	}
	if req.IsDismissible != nil {
		item.IsDismissible = *req.IsDismissible
	}
	item.StartsAt = startsAt
	item.EndsAt = nil
	if req.EndsAt != nil {
		ends := req.EndsAt.UTC()
		item.EndsAt = &ends
	}
	return nil
}

func (s *AnnouncementService) published(ctx context.Context, actor models.Actor, item *models.Announcement) {
	publishEvent(ctx, s.publisher, s.logger, events.Event{
		Type:    events.TypeAnnouncementPublished,
		Key:     item.ID,
		ActorID: actor.UserID,
		Data: map[string]interface{}{
			"announcementId": item.ID,
			"title":          item.Title,
			"priority":       item.Priority,
			"audience":       item.Audience,
		},
	})
}

func audiencesFor(user *models.User, now time.Time) []string {
	audiences := []string{string(models.AnnouncementAudienceAll)}
	if user.HasAdminAccess() {
		audiences = append(audiences, string(models.AnnouncementAudienceAdmins))
	}
	if now.Sub(user.CreatedAt) <= models.NewUserWindow {
		audiences = append(audiences, string(models.AnnouncementAudienceNewUsers))
	}
	return audiences
}
