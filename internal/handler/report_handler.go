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

type reportService interface {
	Submit(ctx context.Context, reporterID string, req service.CreateReportRequest) (*models.Report, error)
	List(ctx context.Context, actor models.Actor, filter models.ReportFilter) ([]models.Report, *models.Pagination, error)
	Get(ctx context.Context, actor models.Actor, id string) (*models.Report, error)
	Review(ctx context.Context, actor models.Actor, id string, req service.UpdateReportRequest) (*models.Report, error)
	SubmitFeedback(ctx context.Context, userID string, req service.CreateFeedbackRequest) (*models.Feedback, error)
	ListFeedback(ctx context.Context, actor models.Actor, filter models.FeedbackFilter) ([]models.Feedback, *models.Pagination, error)
	RespondFeedback(ctx context.Context, actor models.Actor, id string, req service.UpdateFeedbackRequest) (*models.Feedback, error)
	Summary(ctx context.Context, actor models.Actor) (*models.ModerationSummary, error)
}

// ReportHandler serves user reports and feedback.
type ReportHandler struct {
	service reportService
}

// NewReportHandler constructs the handler.
func NewReportHandler(svc reportService) *ReportHandler {
	return &ReportHandler{service: svc}
}

// Submit godoc
// @Summary Report a user or content
// @Tags Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateReportRequest true "Report"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /reports [post]
func (h *ReportHandler) Submit(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.CreateReportRequest
	if err := bindJSON(c, &req, "invalid report payload"); err != nil {
		response.Error(c, err)
		return
	}
	report, err := h.service.Submit(c.Request.Context(), user.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, report)
}

// List godoc
// @Summary List reports
// @Tags Admin Reports
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status"
// @Param contentType query string false "Content type"
// @Param reason query string false "Reason"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /admin/reports [get]
func (h *ReportHandler) List(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var query dto.ReportQuery
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

// Get godoc
// @Summary Get report
// @Tags Admin Reports
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/reports/{id} [get]
func (h *ReportHandler) Get(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	report, err := h.service.Get(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, report)
}

// Review godoc
// @Summary Update report status
// @Tags Admin Reports
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Param payload body service.UpdateReportRequest true "Review"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/reports/{id} [patch]
func (h *ReportHandler) Review(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.UpdateReportRequest
	if err := bindJSON(c, &req, "invalid review payload"); err != nil {
		response.Error(c, err)
		return
	}
	report, err := h.service.Review(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, report)
}

// Summary godoc
// @Summary Report and feedback counts per status
// @Tags Admin Reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/reports/summary [get]
func (h *ReportHandler) Summary(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	summary, err := h.service.Summary(c.Request.Context(), actor)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, summary)
}

// SubmitFeedback godoc
// @Summary Send product feedback
// @Tags Feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateFeedbackRequest true "Feedback"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /feedback [post]
func (h *ReportHandler) SubmitFeedback(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.CreateFeedbackRequest
	if err := bindJSON(c, &req, "invalid feedback payload"); err != nil {
		response.Error(c, err)
		return
	}
	feedback, err := h.service.SubmitFeedback(c.Request.Context(), user.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, feedback)
}

// ListFeedback godoc
// @Summary List feedback
// @Tags Admin Feedback
// @Produce json
// @Security BearerAuth
// @Param type query string false "Type"
// @Param status query string false "Status"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /admin/feedback [get]
func (h *ReportHandler) ListFeedback(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var query dto.FeedbackQuery
	if err := bindQuery(c, &query); err != nil {
		response.Error(c, err)
		return
	}
	filter, err := query.Filter()
	if err != nil {
		response.Error(c, err)
		return
	}
	items, pagination, err := h.service.ListFeedback(c.Request.Context(), actor, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// RespondFeedback godoc
// @Summary Triage feedback
// @Tags Admin Feedback
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Feedback ID"
// @Param payload body service.UpdateFeedbackRequest true "Triage"
// @Success 200 {object} response.Envelope
// @Router /admin/feedback/{id} [patch]
func (h *ReportHandler) RespondFeedback(c *gin.Context) {
	actor, err := actorFromContext(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.UpdateFeedbackRequest
	if err := bindJSON(c, &req, "invalid feedback payload"); err != nil {
		response.Error(c, err)
		return
	}
	feedback, err := h.service.RespondFeedback(c.Request.Context(), actor, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, feedback)
}
