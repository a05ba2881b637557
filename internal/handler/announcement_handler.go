package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studybuddy-api/internal/dto"
	"github.com/noah-isme/studybuddy-api/internal/models"
	"github.com/noah-isme/studybuddy-api/internal/service"
	"github.com/noah-isme/studybuddy-api/pkg/response"
)

type announcementService interface {
	List(ctx context.Context, actor models.Actor, filter models.AnnouncementFilter) ([]models.Announcement, *models.Pagination, error)
	Create(ctx context.Context, actor models.Actor, req service.AnnouncementRequest) (*models.Announcement, error)
	Update(ctx context.Context, actor models.Actor, id string, req service.AnnouncementRequest) (*models.Announcement, error)
	Delete(ctx context.Context, actor models.Actor, id string) error
	Active(ctx context.Context, user *models.User) ([]models.Announcement, error)
	Dismiss(ctx context.Context, user *models.User, id string) error
}

// AnnouncementHandler serves admin announcement management and the user banner feed.
type AnnouncementHandler struct {
	service announcementService
}

// NewAnnouncementHandler constructs the handler.
func NewAnnouncementHandler(svc announcementService) *AnnouncementHandler {
	return &AnnouncementHandler{service: svc}
}

// List godoc
// @Summary List announcements
// @Tags Admin Announcements
// @Produce json
// @Security BearerAuth
// @Param status query string false "DRAFT, ACTIVE or ARCHIVED"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /admin/announcements [get]
func (h *AnnouncementHandler) List(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var query dto.AnnouncementQuery
	if err := bindQuery(c, &query); err != nil {
		response.Error(c, err)
		return
	}
	items, pagination, err := h.service.List(c.Request.Context(), actor, query.Filter())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Create godoc
// @Summary Create announcement
// @Tags Admin Announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.AnnouncementRequest true "Announcement"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/announcements [post]
func (h *AnnouncementHandler) Create(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.AnnouncementRequest
	if err := bindJSON(c, &req, "invalid announcement payload"); err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Update announcement
// @Tags Admin Announcements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Announcement ID"
// @Param payload body service.AnnouncementRequest true "Announcement"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/announcements/{id} [put]
func (h *AnnouncementHandler) Update(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.AnnouncementRequest
	if err := bindJSON(c, &req, "invalid announcement payload"); err != nil {
		response.Error(c, err)
		return
	}
	item, err := h.service.Update(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

// Delete godoc
// @Summary Delete announcement
// @Tags Admin Announcements
// @Security BearerAuth
// @Param id path string true "Announcement ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /admin/announcements/{id} [delete]
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Active godoc
// @Summary Active announcements for the caller
// @Tags Announcements
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /announcements/active [get]
func (h *AnnouncementHandler) Active(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	items, err := h.service.Active(c.Request.Context(), user)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

// Dismiss godoc
// @Summary Dismiss an announcement
// @Tags Announcements
// @Security BearerAuth
// @Param id path string true "Announcement ID"
// @Success 204
// @Failure 400 {object} response.Envelope
// @Router /announcements/{id}/dismiss [post]
func (h *AnnouncementHandler) Dismiss(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Dismiss(c.Request.Context(), user, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
