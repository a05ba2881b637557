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

type groupRepository interface {
	Create(ctx context.Context, group *models.Group) error
	FindByID(ctx context.Context, id string) (*models.Group, error)
	ListByMember(ctx context.Context, userID string) ([]models.GroupListItem, error)
	Discover(ctx context.Context, filter models.GroupFilter) ([]models.GroupListItem, int, error)
	Update(ctx context.Context, group *models.Group) error
	Delete(ctx context.Context, id string) error
	Members(ctx context.Context, groupID string) ([]models.GroupMember, error)
	FindMember(ctx context.Context, groupID, userID string) (*models.GroupMember, error)
	NextOwner(ctx context.Context, groupID, ownerID string) (*models.GroupMember, error)
	AddMember(ctx context.Context, groupID, userID string, role models.GroupRole) error
	RemoveMember(ctx context.Context, groupID, userID string) error
	UpdateMemberRole(ctx context.Context, groupID, userID string, role models.GroupRole) error
	TransferOwnership(ctx context.Context, groupID, currentOwnerID, newOwnerID string) error
	HandOverAndLeave(ctx context.Context, groupID, ownerID, successorID string) error
	CreateInvite(ctx context.Context, invite *models.GroupInvite) error
	FindInvite(ctx context.Context, id string) (*models.GroupInvite, error)
	HasPendingInvite(ctx context.Context, groupID, userID string, now time.Time) (bool, error)
	ListPendingInvites(ctx context.Context, userID string, now time.Time) ([]models.GroupInviteView, error)
	SetInviteStatus(ctx context.Context, id string, status models.InviteStatus, ts time.Time) error
	AcceptInvite(ctx context.Context, invite *models.GroupInvite, ts time.Time) error
}

type userDirectory interface {
	ExistingIDs(ctx context.Context, ids []string) ([]string, error)
}

type contentScreener interface {
	Screen(ctx context.Context, contentType models.FlagContentType, contentID, authorID string, parts ...string) *models.FlaggedContent
}

// GroupServiceConfig bounds group sizes and invites.
type GroupServiceConfig struct {
	MinMembers        int
	MaxMembers        int
	DefaultMaxMembers int
	InviteTTL         time.Duration
	MaxInvitesPerCall int
}

func (c GroupServiceConfig) withDefaults() GroupServiceConfig {
	if c.MinMembers <= 0 {
		c.MinMembers = 2
	}
	if c.MaxMembers <= 0 {
		c.MaxMembers = 50
	}
	if c.DefaultMaxMembers <= 0 {
		c.DefaultMaxMembers = 10
	}
	if c.InviteTTL <= 0 {
		c.InviteTTL = 7 * 24 * time.Hour
	}
	if c.MaxInvitesPerCall <= 0 {
		c.MaxInvitesPerCall = 20
	}
	return c
}

// CreateGroupRequest is the payload for a new group.
type CreateGroupRequest struct {
	Name        string              `json:"name" validate:"required,min=3,max=100"`
	Description string              `json:"description" validate:"max=1000"`
	Subject     string              `json:"subject" validate:"max=100"`
	SkillLevel  *models.SkillLevel  `json:"skillLevel" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED EXPERT"`
	Privacy     models.GroupPrivacy `json:"privacy" validate:"omitempty,oneof=PUBLIC PRIVATE"`
	MaxMembers  *int                `json:"maxMembers"`
}

// UpdateGroupRequest patches a group. Nil fields are left unchanged.
type UpdateGroupRequest struct {
	Name        *string              `json:"name" validate:"omitnil,min=3,max=100"`
	Description *string              `json:"description" validate:"omitempty,max=1000"`
	Subject     *string              `json:"subject" validate:"omitempty,max=100"`
	SkillLevel  *models.SkillLevel   `json:"skillLevel" validate:"omitempty,oneof=BEGINNER INTERMEDIATE ADVANCED EXPERT"`
	Privacy     *models.GroupPrivacy `json:"privacy" validate:"omitempty,oneof=PUBLIC PRIVATE"`
	MaxMembers  *int                 `json:"maxMembers"`
}

func (r *CreateGroupRequest) trim() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.Subject = strings.TrimSpace(r.Subject)
}

func (r *UpdateGroupRequest) trim() {
	r.Name = trimmedPtr(r.Name)
	r.Description = trimmedPtr(r.Description)
	r.Subject = trimmedPtr(r.Subject)
}

func trimmedPtr(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	return &trimmed
}

// InviteMembersRequest invites users by id.
type InviteMembersRequest struct {
	UserIDs []string `json:"userIds" validate:"required,min=1,dive,required,max=64"`
	Message string   `json:"message" validate:"max=500"`
}

// RespondInviteRequest accepts or declines an invite.
type RespondInviteRequest struct {
	Action string `json:"action" validate:"required,oneof=ACCEPT DECLINE"`
}

// UpdateMemberRoleRequest promotes or demotes a member.
type UpdateMemberRoleRequest struct {
	Role models.GroupRole `json:"role" validate:"required,oneof=ADMIN MEMBER"`
}

// TransferOwnershipRequest hands the group to another member.
type TransferOwnershipRequest struct {
	UserID string `json:"userId" validate:"required,max=64"`
}

// LeaveResult tells the caller what happened to the group after leaving.
type LeaveResult struct {
	GroupDeleted bool   `json:"groupDeleted"`
	NewOwnerID   string `json:"newOwnerId,omitempty"`
}

// GroupService implements study group membership rules.
type GroupService struct {
	repo      groupRepository
	users     userDirectory
	screener  contentScreener
	publisher events.Publisher
	validator *validator.Validate
	logger    *zap.Logger
	cfg       GroupServiceConfig
	now       func() time.Time
}

// NewGroupService constructs the service. screener may be nil.
func NewGroupService(repo groupRepository, users userDirectory, screener contentScreener, publisher events.Publisher, validate *validator.Validate, logger *zap.Logger, cfg GroupServiceConfig) *GroupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &GroupService{
		repo:      repo,
		users:     users,
		screener:  screener,
		publisher: publisher,
		validator: validate,
		logger:    logger,
		cfg:       cfg.withDefaults(),
		now:       time.Now,
	}
}

// Create stores a group with the caller as owner.
func (s *GroupService) Create(ctx context.Context, userID string, req CreateGroupRequest) (*models.Group, error) {
	req.trim()
	if err := validateStruct(s.validator, req, "invalid group payload"); err != nil {
		return nil, err
	}
	maxMembers := s.cfg.DefaultMaxMembers
	if req.MaxMembers != nil {
		maxMembers = *req.MaxMembers
	}
	if err := s.checkCapacity(maxMembers, 1); err != nil {
		return nil, err
	}
	privacy := req.Privacy
	if privacy == "" {
		privacy = models.GroupPrivacyPublic
	}

	group := &models.Group{
		Name:        req.Name,
		Description: stringPtr(req.Description),
		Subject:     stringPtr(req.Subject),
		SkillLevel:  req.SkillLevel,
		Privacy:     privacy,
		MaxMembers:  maxMembers,
		OwnerID:     userID,
	}
	if err := s.repo.Create(ctx, group); err != nil {
		return nil, appErrors.Internal(err, "failed to create group")
	}
	s.screen(ctx, group)

	publishEvent(ctx, s.publisher, s.logger, events.Event{
		Type:    events.TypeGroupCreated,
		Key:     group.ID,
		ActorID: userID,
		Data:    map[string]interface{}{"groupId": group.ID, "name": group.Name, "privacy": group.Privacy},
	})
	return group, nil
}

// ListMine returns the caller's groups.
func (s *GroupService) ListMine(ctx context.Context, userID string) ([]models.GroupListItem, error) {
	items, err := s.repo.ListByMember(ctx, userID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list groups")
	}
	if items == nil {
		items = []models.GroupListItem{}
	}
	return items, nil
}

// Discover searches public groups.
func (s *GroupService) Discover(ctx context.Context, filter models.GroupFilter) ([]models.GroupListItem, *models.Pagination, error) {
	filter.PageRequest = filter.PageRequest.Normalize(defaultPageSize, maxPageSize)
	filter.Query = strings.TrimSpace(filter.Query)
	items, total, err := s.repo.Discover(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to discover groups")
	}
	if items == nil {
		items = []models.GroupListItem{}
	}
	return items, models.NewPagination(filter.Page, filter.PageSize, total), nil
}

// Get returns a group with its members. Private groups are visible to members and invitees only.
func (s *GroupService) Get(ctx context.Context, userID, id string) (*models.GroupDetail, error) {
	group, err := s.loadGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	member, err := s.membership(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if member == nil && group.Privacy == models.GroupPrivacyPrivate {
		invited, err := s.repo.HasPendingInvite(ctx, id, userID, s.now().UTC())
		if err != nil {
			return nil, appErrors.Internal(err, "failed to check invite")
		}
		if !invited {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "this group is private")
		}
	}

	members, err := s.repo.Members(ctx, id)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load members")
	}
	if members == nil {
		members = []models.GroupMember{}
	}
	detail := &models.GroupDetail{Group: *group, Members: members}
	if member != nil {
		role := member.Role
		detail.MyRole = &role
	}
	return detail, nil
}

// Update edits a group. Owners and admins only.
func (s *GroupService) Update(ctx context.Context, userID, id string, req UpdateGroupRequest) (*models.Group, error) {
	req.trim()
	if err := validateStruct(s.validator, req, "invalid group payload"); err != nil {
		return nil, err
	}
	group, err := s.loadGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireRole(ctx, id, userID, func(r models.GroupRole) bool { return r.CanManage() }, "only group owners and admins can edit the group"); err != nil {
		return nil, err
	}

	textChanged := false
	if req.Name != nil {
		group.Name = *req.Name
		textChanged = true
	}
	if req.Description != nil {
		group.Description = stringPtr(*req.Description)
		textChanged = true
	}
	if req.Subject != nil {
		group.Subject = stringPtr(*req.Subject)
	}
	if req.SkillLevel != nil {
		group.SkillLevel = req.SkillLevel
	}
	if req.Privacy != nil {
		group.Privacy = *req.Privacy
	}
	if req.MaxMembers != nil {
		if err := s.checkCapacity(*req.MaxMembers, group.MemberCount); err != nil {
			return nil, err
		}
		group.MaxMembers = *req.MaxMembers
	}

	if err := s.repo.Update(ctx, group); err != nil {
		return nil, lookupError(err, "group not found", "failed to update group")
	}
	if textChanged {
		s.screen(ctx, group)
	}
	return group, nil
}

// Delete removes a group. Owner only.
func (s *GroupService) Delete(ctx context.Context, userID, id string) error {
	group, err := s.loadGroup(ctx, id)
	if err != nil {
		return err
	}
	if group.OwnerID != userID {
		return appErrors.Clone(appErrors.ErrForbidden, "only the owner can delete the group")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, "group not found", "failed to delete group")
	}
	s.publishDeleted(ctx, group, userID)
	return nil
}

// Join adds the caller to a public group.
func (s *GroupService) Join(ctx context.Context, userID, id string) (*models.Group, error) {
	group, err := s.loadGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	if group.Privacy != models.GroupPrivacyPublic {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "private groups require an invite")
	}
	if err := s.repo.AddMember(ctx, id, userID, models.GroupRoleMember); err != nil {
		return nil, seatError(err)
	}
	group.MemberCount++
	s.publishJoined(ctx, id, userID, "join")
	return group, nil
}

// Leave removes the caller. A departing owner hands over to the next admin or member,
// or deletes the group when nobody is left.
func (s *GroupService) Leave(ctx context.Context, userID, id string) (*LeaveResult, error) {
	group, err := s.loadGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	member, err := s.membership(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, appErrors.ErrNotMember
	}

	if member.Role != models.GroupRoleOwner {
		if err := s.repo.RemoveMember(ctx, id, userID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.ErrNotMember
			}
			return nil, appErrors.Internal(err, "failed to leave group")
		}
		s.publishLeft(ctx, id, userID, userID, "leave")
		return &LeaveResult{}, nil
	}

	successor, err := s.repo.NextOwner(ctx, id, userID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Internal(err, "failed to pick a new owner")
	}
	if successor == nil {
		if err := s.repo.Delete(ctx, id); err != nil {
			return nil, lookupError(err, "group not found", "failed to delete group")
		}
		s.publishDeleted(ctx, group, userID)
		return &LeaveResult{GroupDeleted: true}, nil
	}

	if err := s.repo.HandOverAndLeave(ctx, id, userID, successor.UserID); err != nil {
		return nil, appErrors.Internal(err, "failed to hand over ownership")
	}
	s.logger.Info("group ownership handed over",
		zap.String("group_id", id),
		zap.String("previous_owner", userID),
		zap.String("new_owner", successor.UserID),
	)
	s.publishLeft(ctx, id, userID, userID, "leave")
	return &LeaveResult{NewOwnerID: successor.UserID}, nil
}

// Invite invites a batch of users and reports a per-user outcome.
func (s *GroupService) Invite(ctx context.Context, userID, id string, req InviteMembersRequest) ([]models.InviteOutcome, error) {
	if err := validateStruct(s.validator, req, "invalid invite payload"); err != nil {
		return nil, err
	}
	ids := uniqueStrings(req.UserIDs)
	if len(ids) > s.cfg.MaxInvitesPerCall {
		return nil, appErrors.Clone(appErrors.ErrValidation, "too many users in one invite request")
	}
	group, err := s.loadGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireRole(ctx, id, userID, func(r models.GroupRole) bool { return r.CanManage() }, "only group owners and admins can invite"); err != nil {
		return nil, err
	}
	if group.IsFull() {
		return nil, appErrors.ErrGroupFull
	}

	existing, err := s.users.ExistingIDs(ctx, ids)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to look up users")
	}
	known := make(map[string]struct{}, len(existing))
	for _, uid := range existing {
		known[uid] = struct{}{}
	}

	now := s.now().UTC()
	outcomes := make([]models.InviteOutcome, 0, len(ids))
	for _, inviteeID := range ids {
		outcome := models.InviteOutcome{UserID: inviteeID}
		switch {
		case inviteeID == userID:
			outcome.Reason = models.InviteSkipSelf
		case !contains(known, inviteeID):
			outcome.Reason = models.InviteSkipUserNotFound
		}
		if outcome.Reason == "" {
			reason, err := s.inviteBlocker(ctx, id, inviteeID, now)
			if err != nil {
				return nil, err
			}
			outcome.Reason = reason
		}
		if outcome.Reason != "" {
			outcomes = append(outcomes, outcome)
			continue
		}

		invite := &models.GroupInvite{
			GroupID:   id,
			InviterID: userID,
			InviteeID: inviteeID,
			Status:    models.InviteStatusPending,
			Message:   stringPtr(strings.TrimSpace(req.Message)),
			ExpiresAt: now.Add(s.cfg.InviteTTL),
			CreatedAt: now,
		}
		if err := s.repo.CreateInvite(ctx, invite); err != nil {
			return nil, appErrors.Internal(err, "failed to create invite")
		}
		outcome.Invited = true
		outcome.InviteID = invite.ID
		outcomes = append(outcomes, outcome)

		publishEvent(ctx, s.publisher, s.logger, events.Event{
			Type:    events.TypeGroupInviteCreated,
			Key:     id,
			ActorID: userID,
			Data:    map[string]interface{}{"groupId": id, "inviteId": invite.ID, "inviteeId": inviteeID},
		})
	}
	return outcomes, nil
}

func (s *GroupService) inviteBlocker(ctx context.Context, groupID, userID string, now time.Time) (string, error) {
	member, err := s.membership(ctx, groupID, userID)
	if err != nil {
		return "", err
	}
	if member != nil {
		return models.InviteSkipAlreadyMember, nil
	}
	pending, err := s.repo.HasPendingInvite(ctx, groupID, userID, now)
	if err != nil {
		return "", appErrors.Internal(err, "failed to check invite")
	}
	if pending {
		return models.InviteSkipAlreadyInvited, nil
	}
	return "", nil
}

// ListInvites returns the caller's pending, unexpired invites.
func (s *GroupService) ListInvites(ctx context.Context, userID string) ([]models.GroupInviteView, error) {
	items, err := s.repo.ListPendingInvites(ctx, userID, s.now().UTC())
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list invites")
	}
	if items == nil {
		items = []models.GroupInviteView{}
	}
	return items, nil
}

// RespondInvite accepts or declines an invite addressed to the caller.
func (s *GroupService) RespondInvite(ctx context.Context, userID, inviteID string, req RespondInviteRequest) (*models.GroupInvite, error) {
	if err := validateStruct(s.validator, req, "invalid invite response"); err != nil {
		return nil, err
	}
	invite, err := s.repo.FindInvite(ctx, inviteID)
	if err != nil {
		return nil, lookupError(err, "invite not found", "failed to load invite")
	}
	if invite.InviteeID != userID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "invite not found")
	}
	if invite.Status != models.InviteStatusPending {
		return nil, appErrors.Clone(appErrors.ErrConflict, "invite was already answered")
	}
	now := s.now().UTC()
	if invite.Expired(now) {
		return nil, appErrors.ErrInviteExpired
	}

	if req.Action == "DECLINE" {
		if err := s.repo.SetInviteStatus(ctx, invite.ID, models.InviteStatusDeclined, now); err != nil {
			return nil, inviteUpdateError(err)
		}
		invite.Status = models.InviteStatusDeclined
		invite.RespondedAt = &now
		return invite, nil
	}

	if err := s.repo.AcceptInvite(ctx, invite, now); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "invite is no longer pending")
		}
		return nil, seatError(err)
	}
	invite.Status = models.InviteStatusAccepted
	invite.RespondedAt = &now
	s.publishJoined(ctx, invite.GroupID, userID, "invite")
	return invite, nil
}

// CancelInvite withdraws a pending invite. Allowed for the inviter and group owners/admins.
func (s *GroupService) CancelInvite(ctx context.Context, userID, inviteID string) error {
	invite, err := s.repo.FindInvite(ctx, inviteID)
	if err != nil {
		return lookupError(err, "invite not found", "failed to load invite")
	}
	if invite.InviterID != userID {
		if _, err := s.requireRole(ctx, invite.GroupID, userID, func(r models.GroupRole) bool { return r.CanManage() }, "only the inviter or group admins can cancel this invite"); err != nil {
			return err
		}
	}
	if invite.Status != models.InviteStatusPending {
		return appErrors.Clone(appErrors.ErrConflict, "invite was already answered")
	}
	if err := s.repo.SetInviteStatus(ctx, invite.ID, models.InviteStatusCancelled, s.now().UTC()); err != nil {
		return inviteUpdateError(err)
	}
	return nil
}

// RemoveMember removes another member. Owners remove anyone but themselves; admins remove plain members.
func (s *GroupService) RemoveMember(ctx context.Context, userID, groupID, memberID string) error {
	if memberID == userID {
		return appErrors.Clone(appErrors.ErrValidation, "use leave to remove yourself")
	}
	if _, err := s.loadGroup(ctx, groupID); err != nil {
		return err
	}
	actor, err := s.requireRole(ctx, groupID, userID, func(r models.GroupRole) bool { return r.CanManage() }, "only group owners and admins can remove members")
	if err != nil {
		return err
	}
	target, err := s.membership(ctx, groupID, memberID)
	if err != nil {
		return err
	}
	if target == nil {
		return appErrors.ErrNotMember
	}
	if target.Role == models.GroupRoleOwner || (actor.Role == models.GroupRoleAdmin && target.Role != models.GroupRoleMember) {
		return appErrors.Clone(appErrors.ErrForbidden, "you cannot remove this member")
	}
	if err := s.repo.RemoveMember(ctx, groupID, memberID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrNotMember
		}
		return appErrors.Internal(err, "failed to remove member")
	}
	s.publishLeft(ctx, groupID, memberID, userID, "removed")
	return nil
}

// UpdateMemberRole switches a member between ADMIN and MEMBER. Owner only.
func (s *GroupService) UpdateMemberRole(ctx context.Context, userID, groupID, memberID string, req UpdateMemberRoleRequest) (*models.GroupMember, error) {
	if err := validateStruct(s.validator, req, "invalid role payload"); err != nil {
		return nil, err
	}
	if _, err := s.loadGroup(ctx, groupID); err != nil {
		return nil, err
	}
	if _, err := s.requireRole(ctx, groupID, userID, isOwner, "only the owner can change roles"); err != nil {
		return nil, err
	}
	target, err := s.membership(ctx, groupID, memberID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, appErrors.ErrNotMember
	}
	if target.Role == models.GroupRoleOwner {
		return nil, appErrors.Clone(appErrors.ErrValidation, "use ownership transfer to change the owner's role")
	}
	if err := s.repo.UpdateMemberRole(ctx, groupID, memberID, req.Role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotMember
		}
		return nil, appErrors.Internal(err, "failed to update role")
	}
	target.Role = req.Role
	return target, nil
}

// TransferOwnership makes another member the owner. The previous owner becomes an admin.
func (s *GroupService) TransferOwnership(ctx context.Context, userID, groupID string, req TransferOwnershipRequest) (*models.Group, error) {
	if err := validateStruct(s.validator, req, "invalid transfer payload"); err != nil {
		return nil, err
	}
	if req.UserID == userID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "you already own this group")
	}
	group, err := s.loadGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireRole(ctx, groupID, userID, isOwner, "only the owner can transfer ownership"); err != nil {
		return nil, err
	}
	target, err := s.membership(ctx, groupID, req.UserID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, appErrors.ErrNotMember
	}
	if err := s.repo.TransferOwnership(ctx, groupID, userID, req.UserID); err != nil {
		return nil, lookupError(err, "group not found", "failed to transfer ownership")
	}
	group.OwnerID = req.UserID
	return group, nil
}

func (s *GroupService) loadGroup(ctx context.Context, id string) (*models.Group, error) {
	group, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "group not found", "failed to load group")
	}
	return group, nil
}

// membership returns nil without error when the user is not in the group.
func (s *GroupService) membership(ctx context.Context, groupID, userID string) (*models.GroupMember, error) {
	member, err := s.repo.FindMember(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, appErrors.Internal(err, "failed to load membership")
	}
	return member, nil
}

func (s *GroupService) requireRole(ctx context.Context, groupID, userID string, allowed func(models.GroupRole) bool, message string) (*models.GroupMember, error) {
	member, err := s.membership(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	if member == nil || !allowed(member.Role) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, message)
	}
	return member, nil
}

func (s *GroupService) checkCapacity(maxMembers, current int) error {
	if maxMembers < s.cfg.MinMembers || maxMembers > s.cfg.MaxMembers {
		return appErrors.Clone(appErrors.ErrValidation, "maxMembers is out of range")
	}
	if maxMembers < current {
		return appErrors.Clone(appErrors.ErrValidation, "maxMembers cannot be lower than the current member count")
	}
	return nil
}

func (s *GroupService) screen(ctx context.Context, group *models.Group) {
	if s.screener == nil {
		return
	}
	s.screener.Screen(ctx, models.FlagContentGroup, group.ID, group.OwnerID, group.Name, deref(group.Description))
}

func (s *GroupService) publishJoined(ctx context.Context, groupID, userID, via string) {
	publishEvent(ctx, s.publisher, s.logger, events.Event{
		Type:    events.TypeGroupMemberJoined,
		Key:     groupID,
		ActorID: userID,
		Data:    map[string]interface{}{"groupId": groupID, "userId": userID, "via": via},
	})
}

func (s *GroupService) publishLeft(ctx context.Context, groupID, userID, actorID, reason string) {
	publishEvent(ctx, s.publisher, s.logger, events.Event{
		Type:    events.TypeGroupMemberLeft,
		Key:     groupID,
		ActorID: actorID,
		Data:    map[string]interface{}{"groupId": groupID, "userId": userID, "reason": reason},
	})
}

func (s *GroupService) publishDeleted(ctx context.Context, group *models.Group, actorID string) {
	publishEvent(ctx, s.publisher, s.logger, events.Event{
		Type:    events.TypeGroupDeleted,
		Key:     group.ID,
		ActorID: actorID,
		Data:    map[string]interface{}{"groupId": group.ID, "name": group.Name},
	})
}

func seatError(err error) error {
	switch {
	case errors.Is(err, repository.ErrGroupAtCapacity):
		return appErrors.ErrGroupFull
	case errors.Is(err, repository.ErrAlreadyMember):
		return appErrors.ErrAlreadyMember
	case errors.Is(err, sql.ErrNoRows):
		return appErrors.Clone(appErrors.ErrNotFound, "group not found")
	default:
		return appErrors.Internal(err, "failed to join group")
	}
}

func inviteUpdateError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrConflict, "invite is no longer pending")
	}
	return appErrors.Internal(err, "failed to update invite")
}

func isOwner(r models.GroupRole) bool {
	return r == models.GroupRoleOwner
}

func contains(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
