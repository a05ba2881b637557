package models

import "time"

// GroupPrivacy controls discoverability and open joining.
type GroupPrivacy string

const (
	GroupPrivacyPublic  GroupPrivacy = "PUBLIC"
	GroupPrivacyPrivate GroupPrivacy = "PRIVATE"
)

// GroupRole is a member's role inside a group.
type GroupRole string

const (
	GroupRoleOwner  GroupRole = "OWNER"
	GroupRoleAdmin  GroupRole = "ADMIN"
	GroupRoleMember GroupRole = "MEMBER"
)

// CanManage reports whether the role may edit the group and invite.
func (r GroupRole) CanManage() bool {
	return r == GroupRoleOwner || r == GroupRoleAdmin
}

// InviteStatus is the lifecycle of a group invite.
type InviteStatus string

const (
	InviteStatusPending   InviteStatus = "PENDING"
	InviteStatusAccepted  InviteStatus = "ACCEPTED"
	InviteStatusDeclined  InviteStatus = "DECLINED"
	InviteStatusCancelled InviteStatus = "CANCELLED"
)

// Group is a study group.
type Group struct {
	ID          string       `db:"id" json:"id"`
	Name        string       `db:"name" json:"name"`
	Description *string      `db:"description" json:"description,omitempty"`
	Subject     *string      `db:"subject" json:"subject,omitempty"`
	SkillLevel  *SkillLevel  `db:"skill_level" json:"skillLevel,omitempty"`
	Privacy     GroupPrivacy `db:"privacy" json:"privacy"`
	MaxMembers  int          `db:"max_members" json:"maxMembers"`
	OwnerID     string       `db:"owner_id" json:"ownerId"`
	MemberCount int          `db:"member_count" json:"memberCount"`
	CreatedAt   time.Time    `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time    `db:"updated_at" json:"updatedAt"`
}

// IsFull reports whether no seat is left.
func (g *Group) IsFull() bool {
	return g.MemberCount >= g.MaxMembers
}

// GroupListItem decorates a group with the caller's relation to it.
type GroupListItem struct {
	Group
	IsMember bool       `db:"is_member" json:"isMember"`
	MyRole   *GroupRole `db:"my_role" json:"myRole,omitempty"`
}

// GroupMember is a membership row joined with the member's public profile.
type GroupMember struct {
	GroupID   string    `db:"group_id" json:"groupId"`
	UserID    string    `db:"user_id" json:"userId"`
	Role      GroupRole `db:"role" json:"role"`
	JoinedAt  time.Time `db:"joined_at" json:"joinedAt"`
	Name      string    `db:"name" json:"name"`
	Username  *string   `db:"username" json:"username,omitempty"`
	AvatarURL *string   `db:"avatar_url" json:"avatarUrl,omitempty"`
}

// GroupDetail is a group with its member list.
type GroupDetail struct {
	Group
	Members []GroupMember `json:"members"`
	MyRole  *GroupRole    `json:"myRole,omitempty"`
}

// GroupInvite invites a user into a group.
type GroupInvite struct {
	ID          string       `db:"id" json:"id"`
	GroupID     string       `db:"group_id" json:"groupId"`
	InviterID   string       `db:"inviter_id" json:"inviterId"`
	InviteeID   string       `db:"invitee_id" json:"inviteeId"`
	Status      InviteStatus `db:"status" json:"status"`
	Message     *string      `db:"message" json:"message,omitempty"`
	ExpiresAt   time.Time    `db:"expires_at" json:"expiresAt"`
	RespondedAt *time.Time   `db:"responded_at" json:"respondedAt,omitempty"`
	CreatedAt   time.Time    `db:"created_at" json:"createdAt"`
}

// Expired reports whether the invite can no longer be accepted at now.
func (i *GroupInvite) Expired(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}

// GroupInviteView is an invite with the group and inviter names for the invitee's inbox.
type GroupInviteView struct {
	GroupInvite
	GroupName   string `db:"group_name" json:"groupName"`
	InviterName string `db:"inviter_name" json:"inviterName"`
}

// InviteOutcome is the per-user result of a batch invite.
type InviteOutcome struct {
	UserID   string `json:"userId"`
	Invited  bool   `json:"invited"`
	InviteID string `json:"inviteId,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// Reasons an invite was skipped.
const (
	InviteSkipAlreadyMember  = "ALREADY_MEMBER"
	InviteSkipAlreadyInvited = "ALREADY_INVITED"
	InviteSkipUserNotFound   = "USER_NOT_FOUND"
	InviteSkipSelf           = "SELF"
)

// GroupFilter scopes group discovery.
type GroupFilter struct {
	ViewerID string
	Query    string
	Subject  string
	PageRequest
}
