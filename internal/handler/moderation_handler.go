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

type moderationService interface {
	Flag(ctx context.Context, req service.CreateFlagRequest) (*models.FlaggedContent, error)
	List(ctx context.Context, actor models.Actor, filter models.FlaggedContentFilter) ([]models.FlaggedContent, *models.Pagination, error)
	Get(ctx context.Context, actor models.Actor, id string) (*models.FlaggedContent, error)
	Stats(ctx context.Context, actor models.Actor) (*models.FlaggedContentStats, error)
	Review(ctx context.Context, actor models.Actor, id string, req service.ReviewFlagRequest) (*models.FlaggedContent, error)
}

// ModerationHandler serves the flagged content queue.
type ModerationHandler struct {
	service moderationService
}

// NewModerationHandler constructs the handler.
func NewModerationHandler(svc moderationService) *ModerationHandler {
	return &ModerationHandler{service: svc}
}

// Flag godoc
// @Summary Record flagged content
// @Description Called by trusted backends with the internal key.
// @Tags Internal
// @Accept json
// @Produce json
// @Security InternalKey
// @Param payload body service.CreateFlagRequest true "Flag"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /internal/moderation/flags [post]
func (h *ModerationHandler) Flag(c *gin.Context) {
	var req service.CreateFlagRequest
	if err := bindJSON(c, &req, "invalid flag payload"); err != nil {
		response.Error(c, err)
		return
	}
	flag, err := h.service.Flag(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, flag)
}

// List godoc
// @Summary List flagged content
// @Tags Admin Moderation
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status"
// @Param severity query string false "Severity"
// @Param contentType query string false "Content type"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /admin/flagged [get]
func (h *ModerationHandler) List(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var query dto.FlaggedContentQuery
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

// Get godoc
// @Summary Get flagged content
// @Tags Admin Moderation
// @Produce json
// @Security BearerAuth
// @Param id path string true "Flag ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/flagged/{id} [get]
func (h *ModerationHandler) Get(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	flag, err := h.service.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, flag)
}

// Stats godoc
// @Summary Moderation queue stats
// @Tags Admin Moderation
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/flagged/stats [get]
func (h *ModerationHandler) Stats(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	stats, err := h.service.Stats(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}

// Review godoc
// @Summary Review flagged content
// @Tags Admin Moderation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Flag ID"
// @Param payload body service.ReviewFlagRequest true "Review"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/flagged/{id}/review [post]
func (h *ModerationHandler) Review(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.ReviewFlagRequest
	if err := bindJSON(c, &req, "invalid review payload"); err != nil {
		response.Error(c, err)
		return
	}
	flag, err := h.service.Review(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, flag)
}
