package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studybuddy-api/internal/dto"
	"github.com/noah-isme/studybuddy-api/internal/middleware"
	"github.com/noah-isme/studybuddy-api/internal/models"
	"github.com/noah-isme/studybuddy-api/internal/service"
	"github.com/noah-isme/studybuddy-api/pkg/response"
)

type aiUsageService interface {
	Ingest(ctx context.Context, req service.RecordAIUsageRequest) (*models.AIUsageLog, error)
	List(ctx context.Context, actor models.Actor, filter models.AIUsageFilter) ([]models.AIUsageLog, *models.Pagination, error)
	Summary(ctx context.Context, actor models.Actor, rng string) (*models.AIUsageSummary, bool, error)
}

type aiMemoryService interface {
	List(ctx context.Context, actor models.Actor, filter models.AIMemoryFilter) ([]models.AIMemory, *models.Pagination, error)
	Stats(ctx context.Context, actor models.Actor) (*models.AIMemoryStats, error)
	Delete(ctx context.Context, actor models.Actor, id string) error
	ClearUser(ctx context.Context, actor models.Actor, userID string) (*service.ClearMemoryResult, error)
}

// AIHandler serves AI usage accounting and assistant memory administration.
type AIHandler struct {
	usage  aiUsageService
	memory aiMemoryService
}

// NewAIHandler constructs the handler.
func NewAIHandler(usage aiUsageService, memory aiMemoryService) *AIHandler {
	return &AIHandler{usage: usage, memory: memory}
}

// IngestUsage godoc
// @Summary Record an AI call
// @Description Accepted entries are persisted asynchronously.
// @Tags Internal
// @Accept json
// @Produce json
// @Security InternalKey
// @Param payload body service.RecordAIUsageRequest true "Usage entry"
// @Success 202 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /internal/ai/usage [post]
func (h *AIHandler) IngestUsage(c *gin.Context) {
	var req service.RecordAIUsageRequest
	if err := bindJSON(c, &req, "invalid usage payload"); err != nil {
		response.Error(c, err)
		return
	}
	entry, err := h.usage.Ingest(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, gin.H{"id": entry.ID, "costUsd": entry.CostUSD}, nil)
}

// ListUsage godoc
// @Summary List AI usage entries
// @Tags Admin AI
// @Produce json
// @Security BearerAuth
// @Param userId query string false "User ID"
// @Param model query string false "Model"
// @Param feature query string false "Feature"
// @Param from query string false "From"
// @Param to query string false "To"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /admin/ai/usage [get]
func (h *AIHandler) ListUsage(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var query dto.AIUsageQuery
	if err := bindQuery(c, &query); err != nil {
		response.Error(c, err)
		return
	}
	filter, err := query.Filter()
	if err != nil {
		response.Error(c, err)
		return
	}
	items, pagination, err := h.usage.List(c.Request.Context(), actor, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// UsageSummary godoc
// @Summary AI usage summary
// @Tags Admin AI
// @Produce json
// @Security BearerAuth
// @Param range query string false "7d, 30d or 90d" default(30d)
// @Success 200 {object} response.Envelope
// @Router /admin/ai/usage/summary [get]
func (h *AIHandler) UsageSummary(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	summary, hit, err := h.usage.Summary(c.Request.Context(), actor, c.Query("range"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil, middleware.SetCacheHit(c, hit))
}

// ListMemory godoc
// @Summary List assistant memories
// @Tags Admin AI
// @Produce json
// @Security BearerAuth
// @Param userId query string false "User ID"
// @Param category query string false "Category"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /admin/ai/memory [get]
func (h *AIHandler) ListMemory(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var query dto.AIMemoryQuery
	if err := bindQuery(c, &query); err != nil {
		response.Error(c, err)
		return
	}
	items, pagination, err := h.memory.List(c.Request.Context(), actor, query.Filter())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// MemoryStats godoc
// @Summary Assistant memory stats
// @Tags Admin AI
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/ai/memory/stats [get]
func (h *AIHandler) MemoryStats(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	stats, err := h.memory.Stats(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}

// DeleteMemory godoc
// @Summary Delete a memory
// @Tags Admin AI
// @Security BearerAuth
// @Param id path string true "Memory ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /admin/ai/memory/{id} [delete]
func (h *AIHandler) DeleteMemory(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.memory.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ClearUserMemory godoc
// @Summary Clear all memories of a user
// @Tags Admin AI
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Success 200 {object} response.Envelope
// @Router /admin/ai/memory/users/{userId} [delete]
func (h *AIHandler) ClearUserMemory(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.memory.ClearUser(c.Request.Context(), actor, c.Param("userId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
