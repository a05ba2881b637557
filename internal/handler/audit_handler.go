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

type auditService interface {
	List(ctx context.Context, actor models.Actor, filter models.AuditLogFilter) ([]models.AdminAuditLog, *models.Pagination, error)
	Delete(ctx context.Context, actor models.Actor, id string) error
	Purge(ctx context.Context, actor models.Actor, req service.PurgeAuditLogsRequest) (*service.PurgeResult, error)
}

// AuditHandler exposes the admin audit trail.
type AuditHandler struct {
	service auditService
}

// NewAuditHandler constructs the handler.
func NewAuditHandler(svc auditService) *AuditHandler {
	return &AuditHandler{service: svc}
}

// List godoc
// @Summary List audit logs
// @Tags Admin Audit
// @Produce json
// @Security BearerAuth
// @Param adminId query string false "Admin ID"
// @Param action query string false "Action"
// @Param targetType query string false "Target type"
// @Param from query string false "From (RFC3339 or YYYY-MM-DD)"
// @Param to query string false "To (RFC3339 or YYYY-MM-DD)"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /admin/audit-logs [get]
func (h *AuditHandler) List(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var query dto.AuditLogQuery
	if err := bindQuery(c, &query); err != nil {
		response.Error(c, err)
		return
	}
	filter, err := query.Filter()
	if err != nil {
		response.Error(c, err)
		return
	}
	items, pagination, err := h.service.List(c.Request.Context(), actor, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Delete godoc
// @Summary Delete one audit log entry
// @Tags Admin Audit
// @Security BearerAuth
// @Param id path string true "Audit log ID"
// @Success 204
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/audit-logs/{id} [delete]
func (h *AuditHandler) Delete(c *gin.Context) {
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

// Purge godoc
// @Summary Purge audit logs
// @Description Deletes entries older than olderThanDays, or everything with all=true. Super admin only.
// @Tags Admin Audit
// @Produce json
// @Security BearerAuth
// @Param olderThanDays query int false "Age threshold in days"
// @Param all query bool false "Delete every entry"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /admin/audit-logs [delete]
func (h *AuditHandler) Purge(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.PurgeAuditLogsRequest
	if err := bindQuery(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.service.Purge(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
