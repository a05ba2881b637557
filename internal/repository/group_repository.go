package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/studybuddy-api/internal/models"
	"github.com/noah-isme/studybuddy-api/pkg/database"
)

var (
	// ErrGroupAtCapacity is returned when a seat was requested in a full group.
	ErrGroupAtCapacity = errors.New("group at capacity")
	// ErrAlreadyMember is returned when the user already holds a membership.
	ErrAlreadyMember = errors.New("already a member")
)

const groupSelect = `SELECT g.id, g.name, g.description, g.subject, g.skill_level, g.privacy, g.max_members, g.owner_id, g.created_at, g.updated_at,
	(SELECT COUNT(*) FROM group_members gm WHERE gm.group_id = g.id) AS member_count`

const memberSelect = `SELECT m.group_id, m.user_id, m.role, m.joined_at, u.name, u.username, u.avatar_url
	FROM group_members m JOIN users u ON u.id = m.user_id`

const inviteColumns = `id, group_id, inviter_id, invitee_id, status, message, expires_at, responded_at, created_at`

// GroupRepository persists study groups, memberships and invites.
type GroupRepository struct {
	db *sqlx.DB
}

// NewGroupRepository constructs the repository.
func NewGroupRepository(db *sqlx.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// Create inserts the group and its owner membership in one transaction.
func (r *GroupRepository) Create(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	group.CreatedAt = now
	group.UpdatedAt = now

	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		const insertGroup = `INSERT INTO groups (id, name, description, subject, skill_level, privacy, max_members, owner_id, created_at, updated_at)
		VALUES (:id, :name, :description, :subject, :skill_level, :privacy, :max_members, :owner_id, :created_at, :updated_at)`
		if _, err := tx.NamedExecContext(ctx, insertGroup, group); err != nil {
			return fmt.Errorf("create group: %w", err)
		}
		if err := insertMember(ctx, tx, group.ID, group.OwnerID, models.GroupRoleOwner, now); err != nil {
			return err
		}
		group.MemberCount = 1
		return nil
	})
}

// FindByID loads a group with its current member count.
func (r *GroupRepository) FindByID(ctx context.Context, id string) (*models.Group, error) {
	var group models.Group
	if err := r.db.GetContext(ctx, &group, groupSelect+` FROM groups g WHERE g.id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find group: %w", err)
	}
	return &group, nil
}

// ListByMember returns every group the user belongs to.
func (r *GroupRepository) ListByMember(ctx context.Context, userID string) ([]models.GroupListItem, error) {
	query := groupSelect + `, TRUE AS is_member, me.role AS my_role
	FROM groups g JOIN group_members me ON me.group_id = g.id AND me.user_id = $1
	ORDER BY me.joined_at DESC`
	var items []models.GroupListItem
	if err := r.db.SelectContext(ctx, &items, query, userID); err != nil {
		return nil, fmt.Errorf("list my groups: %w", err)
	}
	return items, nil
}

// Discover lists public groups, flagging those the viewer already belongs to.
func (r *GroupRepository) Discover(ctx context.Context, filter models.GroupFilter) ([]models.GroupListItem, int, error) {
	var c conditions
	viewer := c.next(filter.ViewerID)
	c.raw("g.privacy = 'PUBLIC'")
	if filter.Query != "" {
		c.add("(LOWER(g.name) LIKE $%[1]d OR LOWER(COALESCE(g.description, '')) LIKE $%[1]d)", likePattern(filter.Query))
	}
	if filter.Subject != "" {
		c.add("LOWER(COALESCE(g.subject, '')) = $%d", normalizeKey(filter.Subject))
	}
	from := ` FROM groups g LEFT JOIN group_members me ON me.group_id = g.id AND me.user_id = ` + viewer + c.where()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*)`+from, c.args...); err != nil {
		return nil, 0, fmt.Errorf("count groups: %w", err)
	}

	query := fmt.Sprintf(`%s, me.user_id IS NOT NULL AS is_member, me.role AS my_role%s ORDER BY g.created_at DESC LIMIT %d OFFSET %d`,
		groupSelect, from, filter.PageSize, filter.Offset())
	var items []models.GroupListItem
	if err := r.db.SelectContext(ctx, &items, query, c.args...); err != nil {
		return nil, 0, fmt.Errorf("discover groups: %w", err)
	}
	return items, total, nil
}

// Update stores editable group fields.
func (r *GroupRepository) Update(ctx context.Context, group *models.Group) error {
	group.UpdatedAt = time.Now().UTC()
	const query = `UPDATE groups SET name = :name, description = :description, subject = :subject, skill_level = :skill_level, privacy = :privacy,
	max_members = :max_members, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, group)
	if err != nil {
		return fmt.Errorf("update group: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes the group. Members and invites cascade.
func (r *GroupRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Members returns the member list, owner first then by join time.
func (r *GroupRepository) Members(ctx context.Context, groupID string) ([]models.GroupMember, error) {
	query := memberSelect + ` WHERE m.group_id = $1
	ORDER BY CASE m.role WHEN 'OWNER' THEN 0 WHEN 'ADMIN' THEN 1 ELSE 2 END, m.joined_at ASC`
	var members []models.GroupMember
	if err := r.db.SelectContext(ctx, &members, query, groupID); err != nil {
		return nil, fmt.Errorf("list group members: %w", err)
	}
	return members, nil
}

// FindMember returns a single membership.
func (r *GroupRepository) FindMember(ctx context.Context, groupID, userID string) (*models.GroupMember, error) {
	var member models.GroupMember
	if err := r.db.GetContext(ctx, &member, memberSelect+` WHERE m.group_id = $1 AND m.user_id = $2`, groupID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find group member: %w", err)
	}
	return &member, nil
}

// NextOwner picks the successor when the owner leaves: the longest-standing admin,
// else the longest-standing member.
func (r *GroupRepository) NextOwner(ctx context.Context, groupID, ownerID string) (*models.GroupMember, error) {
	query := memberSelect + ` WHERE m.group_id = $1 AND m.user_id <> $2
	ORDER BY CASE m.role WHEN 'ADMIN' THEN 0 ELSE 1 END, m.joined_at ASC LIMIT 1`
	var member models.GroupMember
	if err := r.db.GetContext(ctx, &member, query, groupID, ownerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find next owner: %w", err)
	}
	return &member, nil
}

// AddMember joins the user under a capacity check on the locked group row.
func (r *GroupRepository) AddMember(ctx context.Context, groupID, userID string, role models.GroupRole) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := reserveSeat(ctx, tx, groupID, userID); err != nil {
			return err
		}
		return insertMember(ctx, tx, groupID, userID, role, time.Now().UTC())
	})
}

// RemoveMember deletes a membership.
func (r *GroupRepository) RemoveMember(ctx context.Context, groupID, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM group_members WHERE group_id = $1 AND user_id = $2`, groupID, userID)
	if err != nil {
		return fmt.Errorf("remove group member: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateMemberRole changes a member's role.
func (r *GroupRepository) UpdateMemberRole(ctx context.Context, groupID, userID string, role models.GroupRole) error {
	res, err := r.db.ExecContext(ctx, `UPDATE group_members SET role = $3 WHERE group_id = $1 AND user_id = $2`, groupID, userID, role)
	if err != nil {
		return fmt.Errorf("update member role: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// TransferOwnership makes newOwnerID the owner and demotes the previous owner to admin.
func (r *GroupRepository) TransferOwnership(ctx context.Context, groupID, currentOwnerID, newOwnerID string) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := setOwner(ctx, tx, groupID, newOwnerID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `UPDATE group_members SET role = 'ADMIN' WHERE group_id = $1 AND user_id = $2`, groupID, currentOwnerID); err != nil {
			return fmt.Errorf("demote previous owner: %w", err)
		}
		return nil
	})
}

// HandOverAndLeave promotes the successor and removes the departing owner atomically.
func (r *GroupRepository) HandOverAndLeave(ctx context.Context, groupID, ownerID, successorID string) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := setOwner(ctx, tx, groupID, successorID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM group_members WHERE group_id = $1 AND user_id = $2`, groupID, ownerID); err != nil {
			return fmt.Errorf("remove previous owner: %w", err)
		}
		return nil
	})
}

// CreateInvite inserts a pending invite.
func (r *GroupRepository) CreateInvite(ctx context.Context, invite *models.GroupInvite) error {
	if invite.ID == "" {
		invite.ID = uuid.NewString()
	}
	if invite.CreatedAt.IsZero() {
		invite.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO group_invites (id, group_id, inviter_id, invitee_id, status, message, expires_at, created_at)
	VALUES (:id, :group_id, :inviter_id, :invitee_id, :status, :message, :expires_at, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, invite); err != nil {
		return fmt.Errorf("create group invite: %w", err)
	}
	return nil
}

// FindInvite loads an invite.
func (r *GroupRepository) FindInvite(ctx context.Context, id string) (*models.GroupInvite, error) {
	var invite models.GroupInvite
	if err := r.db.GetContext(ctx, &invite, `SELECT `+inviteColumns+` FROM group_invites WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find group invite: %w", err)
	}
	return &invite, nil
}

// HasPendingInvite reports whether the user holds a live invite to the group.
func (r *GroupRepository) HasPendingInvite(ctx context.Context, groupID, userID string, now time.Time) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM group_invites WHERE group_id = $1 AND invitee_id = $2 AND status = 'PENDING' AND expires_at > $3)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, groupID, userID, now); err != nil {
		return false, fmt.Errorf("check pending invite: %w", err)
	}
	return exists, nil
}

// ListPendingInvites returns the user's live invites with group and inviter names.
func (r *GroupRepository) ListPendingInvites(ctx context.Context, userID string, now time.Time) ([]models.GroupInviteView, error) {
	const query = `SELECT i.id, i.group_id, i.inviter_id, i.invitee_id, i.status, i.message, i.expires_at, i.responded_at, i.created_at,
	g.name AS group_name, u.name AS inviter_name
	FROM group_invites i JOIN groups g ON g.id = i.group_id JOIN users u ON u.id = i.inviter_id
	WHERE i.invitee_id = $1 AND i.status = 'PENDING' AND i.expires_at > $2
	ORDER BY i.created_at DESC`
	var items []models.GroupInviteView
	if err := r.db.SelectContext(ctx, &items, query, userID, now); err != nil {
		return nil, fmt.Errorf("list group invites: %w", err)
	}
	return items, nil
}

// SetInviteStatus closes an invite with the given status.
func (r *GroupRepository) SetInviteStatus(ctx context.Context, id string, status models.InviteStatus, ts time.Time) error {
	res, err := r.db.ExecContext(ctx, `UPDATE group_invites SET status = $2, responded_at = $3 WHERE id = $1 AND status = 'PENDING'`, id, status, ts)
	if err != nil {
		return fmt.Errorf("update group invite: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// AcceptInvite joins the invitee and closes the invite in one transaction.
func (r *GroupRepository) AcceptInvite(ctx context.Context, invite *models.GroupInvite, ts time.Time) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := reserveSeat(ctx, tx, invite.GroupID, invite.InviteeID); err != nil {
			return err
		}
		if err := insertMember(ctx, tx, invite.GroupID, invite.InviteeID, models.GroupRoleMember, ts); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `UPDATE group_invites SET status = 'ACCEPTED', responded_at = $2 WHERE id = $1 AND status = 'PENDING'`, invite.ID, ts)
		if err != nil {
			return fmt.Errorf("accept group invite: %w", err)
		}
		if affected, err := res.RowsAffected(); err == nil && affected == 0 {
			return sql.ErrNoRows
		}
		return nil
	})
}

// reserveSeat locks the group row and fails when the user is already in or no seat is left.
func reserveSeat(ctx context.Context, tx *sqlx.Tx, groupID, userID string) error {
	var maxMembers int
	if err := tx.GetContext(ctx, &maxMembers, `SELECT max_members FROM groups WHERE id = $1 FOR UPDATE`, groupID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return err
		}
		return fmt.Errorf("lock group: %w", err)
	}

	var state struct {
		Members  int  `db:"members"`
		IsMember bool `db:"is_member"`
	}
	const countQuery = `SELECT COUNT(*) AS members, COALESCE(BOOL_OR(user_id = $2), FALSE) AS is_member FROM group_members WHERE group_id = $1`
	if err := tx.GetContext(ctx, &state, countQuery, groupID, userID); err != nil {
		return fmt.Errorf("count group members: %w", err)
	}
	if state.IsMember {
		return ErrAlreadyMember
	}
	if state.Members >= maxMembers {
		return ErrGroupAtCapacity
	}
	return nil
}

func insertMember(ctx context.Context, tx *sqlx.Tx, groupID, userID string, role models.GroupRole, joinedAt time.Time) error {
	const query = `INSERT INTO group_members (group_id, user_id, role, joined_at) VALUES ($1, $2, $3, $4)`
	if _, err := tx.ExecContext(ctx, query, groupID, userID, role, joinedAt); err != nil {
		return fmt.Errorf("insert group member: %w", err)
	}
	return nil
}

func setOwner(ctx context.Context, tx *sqlx.Tx, groupID, userID string) error {
	res, err := tx.ExecContext(ctx, `UPDATE group_members SET role = 'OWNER' WHERE group_id = $1 AND user_id = $2`, groupID, userID)
	if err != nil {
		return fmt.Errorf("promote owner: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	if _, err := tx.ExecContext(ctx, `UPDATE groups SET owner_id = $2, updated_at = $3 WHERE id = $1`, groupID, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("set group owner: %w", err)
	}
	return nil
}
