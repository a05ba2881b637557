package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studybuddy-api/internal/dto"
	"github.com/noah-isme/studybuddy-api/internal/models"
	"github.com/noah-isme/studybuddy-api/pkg/response"
)

type partnerService interface {
	Search(ctx context.Context, filter models.PartnerSearchFilter) ([]models.PartnerCandidate, *models.Pagination, error)
}

// PartnerHandler serves study partner discovery.
type PartnerHandler struct {
	service partnerService
}

// NewPartnerHandler constructs the handler.
func NewPartnerHandler(svc partnerService) *PartnerHandler {
	return &PartnerHandler{service: svc}
}

// Search godoc
// @Summary Find study partners
// @Description Results are ranked by shared subjects and interests and carry a 0..100 matchScore.
// @Tags Partners
// @Produce json
// @Security BearerAuth
// @Param q query string false "Name, username, bio or school"
// @Param subjects query []string false "Subjects" collectionFormat(multi)
// @Param interests query []string false "Interests" collectionFormat(multi)
// @Param skillLevel query string false "Skill level"
// @Param studyStyle query string false "Study style"
// @Param school query string false "School"
// @Param availableDays query []string false "Days" collectionFormat(multi)
// @Param timezone query string false "Timezone"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /partners/search [get]
func (h *PartnerHandler) Search(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var query dto.PartnerSearchQuery
	if err := bindQuery(c, &query); err != nil {
		response.Error(c, err)
		return
	}
	items, pagination, err := h.service.Search(c.Request.Context(), query.Filter(user.ID))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}
