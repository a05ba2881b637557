package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studybuddy-api/internal/middleware"
	"github.com/noah-isme/studybuddy-api/internal/models"
	"github.com/noah-isme/studybuddy-api/pkg/response"
)

type analyticsService interface {
	Overview(ctx context.Context, actor models.Actor, rng string) (*models.AnalyticsOverview, bool, error)
	SystemMetrics() models.AnalyticsSystemMetrics
}

// AnalyticsHandler exposes dashboard-ready analytics endpoints.
type AnalyticsHandler struct {
	analytics analyticsService
}

// NewAnalyticsHandler constructs the analytics handler.
func NewAnalyticsHandler(analytics analyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Overview godoc
// @Summary Platform analytics overview
// @Description Counters, daily series and top subjects for the range. Cached; meta.cache_hit tells whether the cache served it.
// @Tags Admin Analytics
// @Produce json
// @Security BearerAuth
// @Param range query string false "7d, 30d or 90d" default(30d)
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/analytics [get]
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	overview, hit, err := h.analytics.Overview(c.Request.Context(), actor, c.Query("range"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, overview, nil, middleware.SetCacheHit(c, hit))
}

// System godoc
// @Summary Instrumentation snapshot
// @Tags Admin Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/analytics/system [get]
func (h *AnalyticsHandler) System(c *gin.Context) {
	response.OK(c, h.analytics.SystemMetrics())
}
