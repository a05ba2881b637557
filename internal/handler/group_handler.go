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

type groupService interface {
	Create(ctx context.Context, userID string, req service.CreateGroupRequest) (*models.Group, error)
	ListMine(ctx context.Context, userID string) ([]models.GroupListItem, error)
	Discover(ctx context.Context, filter models.GroupFilter) ([]models.GroupListItem, *models.Pagination, error)
	Get(ctx context.Context, userID, id string) (*models.GroupDetail, error)
	Update(ctx context.Context, userID, id string, req service.UpdateGroupRequest) (*models.Group, error)
	Delete(ctx context.Context, userID, id string) error
	Join(ctx context.Context, userID, id string) (*models.Group, error)
	Leave(ctx context.Context, userID, id string) (*service.LeaveResult, error)
	Invite(ctx context.Context, userID, id string, req service.InviteMembersRequest) ([]models.InviteOutcome, error)
	ListInvites(ctx context.Context, userID string) ([]models.GroupInviteView, error)
	RespondInvite(ctx context.Context, userID, inviteID string, req service.RespondInviteRequest) (*models.GroupInvite, error)
	CancelInvite(ctx context.Context, userID, inviteID string) error
	RemoveMember(ctx context.Context, userID, groupID, memberID string) error
	UpdateMemberRole(ctx context.Context, userID, groupID, memberID string, req service.UpdateMemberRoleRequest) (*models.GroupMember, error)
	TransferOwnership(ctx context.Context, userID, groupID string, req service.TransferOwnershipRequest) (*models.Group, error)
}

// GroupHandler serves study groups, their members and invites.
type GroupHandler struct {
	service groupService
}

// NewGroupHandler constructs the handler.
func NewGroupHandler(svc groupService) *GroupHandler {
	return &GroupHandler{service: svc}
}

// Create godoc
// @Summary Create a study group
// @Tags Groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CreateGroupRequest true "Group"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /groups [post]
func (h *GroupHandler) Create(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.CreateGroupRequest
	if err := bindJSON(c, &req, "invalid group payload"); err != nil {
		response.Error(c, err)
		return
	}
	group, err := h.service.Create(c.Request.Context(), user.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, group)
}

// ListMine godoc
// @Summary List my groups
// @Tags Groups
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /groups [get]
func (h *GroupHandler) ListMine(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	items, err := h.service.ListMine(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

// Discover godoc
// @Summary Discover public groups
// @Tags Groups
// @Produce json
// @Security BearerAuth
// @Param q query string false "Name or description"
// @Param subject query string false "Subject"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /groups/discover [get]
func (h *GroupHandler) Discover(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var query dto.GroupDiscoverQuery
	if err := bindQuery(c, &query); err != nil {
		response.Error(c, err)
		return
	}
	items, pagination, err := h.service.Discover(c.Request.Context(), query.Filter(user.ID))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Get godoc
// @Summary Group detail with members
// @Tags Groups
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /groups/{id} [get]
func (h *GroupHandler) Get(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	detail, err := h.service.Get(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, detail)
}

// Update godoc
// @Summary Update a group
// @Tags Groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Param payload body service.UpdateGroupRequest true "Changes"
// @Success 200 {object} response.Envelope
// @Router /groups/{id} [patch]
func (h *GroupHandler) Update(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.UpdateGroupRequest
	if err := bindJSON(c, &req, "invalid group payload"); err != nil {
		response.Error(c, err)
		return
	}
	group, err := h.service.Update(c.Request.Context(), user.ID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, group)
}

// Delete godoc
// @Summary Delete a group
// @Tags Groups
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Success 204
// @Failure 403 {object} response.Envelope
// @Router /groups/{id} [delete]
func (h *GroupHandler) Delete(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Join godoc
// @Summary Join a public group
// @Tags Groups
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /groups/{id}/join [post]
func (h *GroupHandler) Join(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	group, err := h.service.Join(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, group)
}

// Leave godoc
// @Summary Leave a group
// @Tags Groups
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /groups/{id}/leave [post]
func (h *GroupHandler) Leave(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.service.Leave(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Invite godoc
// @Summary Invite users to a group
// @Tags Groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Param payload body service.InviteMembersRequest true "Invitees"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /groups/{id}/invites [post]
func (h *GroupHandler) Invite(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.InviteMembersRequest
	if err := bindJSON(c, &req, "invalid invite payload"); err != nil {
		response.Error(c, err)
		return
	}
	outcomes, err := h.service.Invite(c.Request.Context(), user.ID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, outcomes)
}

// ListInvites godoc
// @Summary My pending invites
// @Tags Groups
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /groups/invites [get]
func (h *GroupHandler) ListInvites(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	invites, err := h.service.ListInvites(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, invites)
}

// RespondInvite godoc
// @Summary Accept or decline an invite
// @Tags Groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param inviteId path string true "Invite ID"
// @Param payload body service.RespondInviteRequest true "Answer"
// @Success 200 {object} response.Envelope
// @Failure 410 {object} response.Envelope
// @Router /groups/invites/{inviteId}/respond [post]
func (h *GroupHandler) RespondInvite(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.RespondInviteRequest
	if err := bindJSON(c, &req, "invalid invite response"); err != nil {
		response.Error(c, err)
		return
	}
	invite, err := h.service.RespondInvite(c.Request.Context(), user.ID, c.Param("inviteId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, invite)
}

// CancelInvite godoc
// @Summary Cancel a pending invite
// @Tags Groups
// @Security BearerAuth
// @Param inviteId path string true "Invite ID"
// @Success 204
// @Router /groups/invites/{inviteId} [delete]
func (h *GroupHandler) CancelInvite(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.CancelInvite(c.Request.Context(), user.ID, c.Param("inviteId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// RemoveMember godoc
// @Summary Remove a member
// @Tags Groups
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Param userId path string true "Member user ID"
// @Success 204
// @Failure 403 {object} response.Envelope
// @Router /groups/{id}/members/{userId} [delete]
func (h *GroupHandler) RemoveMember(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.RemoveMember(c.Request.Context(), user.ID, c.Param("id"), c.Param("userId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// UpdateMemberRole godoc
// @Summary Change a member's role
// @Tags Groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Param userId path string true "Member user ID"
// @Param payload body service.UpdateMemberRoleRequest true "Role"
// @Success 200 {object} response.Envelope
// @Router /groups/{id}/members/{userId} [patch]
func (h *GroupHandler) UpdateMemberRole(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.UpdateMemberRoleRequest
	if err := bindJSON(c, &req, "invalid role payload"); err != nil {
		response.Error(c, err)
		return
	}
	member, err := h.service.UpdateMemberRole(c.Request.Context(), user.ID, c.Param("id"), c.Param("userId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, member)
}

// TransferOwnership godoc
// @Summary Hand the group to another member
// @Tags Groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Group ID"
// @Param payload body service.TransferOwnershipRequest true "New owner"
// @Success 200 {object} response.Envelope
// @Router /groups/{id}/transfer [post]
func (h *GroupHandler) TransferOwnership(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req service.TransferOwnershipRequest
	if err := bindJSON(c, &req, "invalid transfer payload"); err != nil {
		response.Error(c, err)
		return
	}
	group, err := h.service.TransferOwnership(c.Request.Context(), user.ID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, group)
}
