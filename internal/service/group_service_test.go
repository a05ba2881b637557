package service

import (
	"context"
	"database/sql"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/studybuddy-api/internal/models"
	"github.com/noah-isme/studybuddy-api/internal/repository"
	appErrors "github.com/noah-isme/studybuddy-api/pkg/errors"
	"github.com/noah-isme/studybuddy-api/pkg/events"
)

// groupRepoStub keeps groups, members and invites in memory.
type groupRepoStub struct {
	groups  map[string]*models.Group
	members map[string][]models.GroupMember
	invites map[string]*models.GroupInvite
	clock   time.Time
}

func newGroupRepoStub() *groupRepoStub {
	return &groupRepoStub{
		groups:  map[string]*models.Group{},
		members: map[string][]models.GroupMember{},
		invites: map[string]*models.GroupInvite{},
		clock:   fixedNow,
	}
}

func (r *groupRepoStub) tick() time.Time {
	r.clock = r.clock.Add(time.Minute)
	return r.clock
}

func (r *groupRepoStub) Create(ctx context.Context, group *models.Group) error {
	group.ID = uuid.NewString()
	group.MemberCount = 1
	stored := *group
	r.groups[group.ID] = &stored
	r.members[group.ID] = []models.GroupMember{{GroupID: group.ID, UserID: group.OwnerID, Role: models.GroupRoleOwner, JoinedAt: r.tick()}}
	return nil
}

func (r *groupRepoStub) FindByID(ctx context.Context, id string) (*models.Group, error) {
	g, ok := r.groups[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	stored := *g
	stored.MemberCount = len(r.members[id])
	return &stored, nil
}

func (r *groupRepoStub) ListByMember(ctx context.Context, userID string) ([]models.GroupListItem, error) {
	var out []models.GroupListItem
	for id, members := range r.members {
		for _, m := range members {
			if m.UserID == userID {
				role := m.Role
				out = append(out, models.GroupListItem{Group: *r.groups[id], IsMember: true, MyRole: &role})
			}
		}
	}
	return out, nil
}

func (r *groupRepoStub) Discover(ctx context.Context, filter models.GroupFilter) ([]models.GroupListItem, int, error) {
	return nil, 0, nil
}

func (r *groupRepoStub) Update(ctx context.Context, group *models.Group) error {
	if _, ok := r.groups[group.ID]; !ok {
		return sql.ErrNoRows
	}
	stored := *group
	r.groups[group.ID] = &stored
	return nil
}

func (r *groupRepoStub) Delete(ctx context.Context, id string) error {
	if _, ok := r.groups[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.groups, id)
	delete(r.members, id)
	return nil
}

func (r *groupRepoStub) Members(ctx context.Context, groupID string) ([]models.GroupMember, error) {
	return append([]models.GroupMember{}, r.members[groupID]...), nil
}

func (r *groupRepoStub) FindMember(ctx context.Context, groupID, userID string) (*models.GroupMember, error) {
	for _, m := range r.members[groupID] {
		if m.UserID == userID {
			stored := m
			return &stored, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *groupRepoStub) NextOwner(ctx context.Context, groupID, ownerID string) (*models.GroupMember, error) {
	var candidates []models.GroupMember
	for _, m := range r.members[groupID] {
		if m.UserID != ownerID {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		return nil, sql.ErrNoRows
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		ai, aj := candidates[i].Role == models.GroupRoleAdmin, candidates[j].Role == models.GroupRoleAdmin
		if ai != aj {
			return ai
		}
		return candidates[i].JoinedAt.Before(candidates[j].JoinedAt)
	})
	return &candidates[0], nil
}

func (r *groupRepoStub) reserve(groupID, userID string) error {
	g, ok := r.groups[groupID]
	if !ok {
		return sql.ErrNoRows
	}
	for _, m := range r.members[groupID] {
		if m.UserID == userID {
			return repository.ErrAlreadyMember
		}
	}
	if len(r.members[groupID]) >= g.MaxMembers {
		return repository.ErrGroupAtCapacity
	}
	return nil
}

func (r *groupRepoStub) AddMember(ctx context.Context, groupID, userID string, role models.GroupRole) error {
	if err := r.reserve(groupID, userID); err != nil {
		return err
	}
	r.members[groupID] = append(r.members[groupID], models.GroupMember{GroupID: groupID, UserID: userID, Role: role, JoinedAt: r.tick()})
	return nil
}

func (r *groupRepoStub) RemoveMember(ctx context.Context, groupID, userID string) error {
	members := r.members[groupID]
	for i, m := range members {
		if m.UserID == userID {
			r.members[groupID] = append(members[:i], members[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *groupRepoStub) UpdateMemberRole(ctx context.Context, groupID, userID string, role models.GroupRole) error {
	for i, m := range r.members[groupID] {
		if m.UserID == userID {
			r.members[groupID][i].Role = role
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r *groupRepoStub) TransferOwnership(ctx context.Context, groupID, currentOwnerID, newOwnerID string) error {
	r.groups[groupID].OwnerID = newOwnerID
	_ = r.UpdateMemberRole(ctx, groupID, newOwnerID, models.GroupRoleOwner)
	return r.UpdateMemberRole(ctx, groupID, currentOwnerID, models.GroupRoleAdmin)
}

func (r *groupRepoStub) HandOverAndLeave(ctx context.Context, groupID, ownerID, successorID string) error {
	r.groups[groupID].OwnerID = successorID
	_ = r.UpdateMemberRole(ctx, groupID, successorID, models.GroupRoleOwner)
	return r.RemoveMember(ctx, groupID, ownerID)
}

func (r *groupRepoStub) CreateInvite(ctx context.Context, invite *models.GroupInvite) error {
	invite.ID = uuid.NewString()
	stored := *invite
	r.invites[invite.ID] = &stored
	return nil
}

func (r *groupRepoStub) FindInvite(ctx context.Context, id string) (*models.GroupInvite, error) {
	inv, ok := r.invites[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	stored := *inv
	return &stored, nil
}

func (r *groupRepoStub) HasPendingInvite(ctx context.Context, groupID, userID string, now time.Time) (bool, error) {
	for _, inv := range r.invites {
		if inv.GroupID == groupID && inv.InviteeID == userID && inv.Status == models.InviteStatusPending && inv.ExpiresAt.After(now) {
			return true, nil
		}
	}
	return false, nil
}

func (r *groupRepoStub) ListPendingInvites(ctx context.Context, userID string, now time.Time) ([]models.GroupInviteView, error) {
	var out []models.GroupInviteView
	for _, inv := range r.invites {
		if inv.InviteeID == userID && inv.Status == models.InviteStatusPending && inv.ExpiresAt.After(now) {
			out = append(out, models.GroupInviteView{GroupInvite: *inv})
		}
	}
	return out, nil
}

func (r *groupRepoStub) SetInviteStatus(ctx context.Context, id string, status models.InviteStatus, ts time.Time) error {
	inv, ok := r.invites[id]
	if !ok || inv.Status != models.InviteStatusPending {
		return sql.ErrNoRows
	}
	inv.Status = status
	inv.RespondedAt = &ts
	return nil
}

func (r *groupRepoStub) AcceptInvite(ctx context.Context, invite *models.GroupInvite, ts time.Time) error {
	if err := r.AddMember(ctx, invite.GroupID, invite.InviteeID, models.GroupRoleMember); err != nil {
		return err
	}
	return r.SetInviteStatus(ctx, invite.ID, models.InviteStatusAccepted, ts)
}

type userDirectoryStub struct {
	known map[string]bool
}

func (u userDirectoryStub) ExistingIDs(ctx context.Context, ids []string) ([]string, error) {
	var out []string
	for _, id := range ids {
		if u.known[id] {
			out = append(out, id)
		}
	}
	return out, nil
}

type screenerSpy struct {
	calls []string
}

func (s *screenerSpy) Screen(ctx context.Context, contentType models.FlagContentType, contentID, authorID string, parts ...string) *models.FlaggedContent {
	s.calls = append(s.calls, contentID)
	return nil
}

type groupFixture struct {
	svc      *GroupService
	repo     *groupRepoStub
	pub      *publisherSpy
	screener *screenerSpy
}

func newGroupFixture() groupFixture {
	f := groupFixture{repo: newGroupRepoStub(), pub: &publisherSpy{}, screener: &screenerSpy{}}
	users := userDirectoryStub{known: map[string]bool{"owner": true, "ada": true, "bo": true, "cy": true, "dee": true}}
	f.svc = NewGroupService(f.repo, users, f.screener, f.pub, nil, nil, GroupServiceConfig{InviteTTL: 48 * time.Hour, MaxInvitesPerCall: 3})
	f.svc.now = clock
	return f
}

func (f groupFixture) create(t *testing.T, privacy models.GroupPrivacy, maxMembers int) *models.Group {
	t.Helper()
	g, err := f.svc.Create(context.Background(), "owner", CreateGroupRequest{Name: "Organic Chemistry", Privacy: privacy, MaxMembers: &maxMembers})
	require.NoError(t, err)
	return g
}

func TestGroupServiceCreate(t *testing.T) {
	f := newGroupFixture()
	g, err := f.svc.Create(context.Background(), "owner", CreateGroupRequest{Name: "  Discrete Math  ", Description: "proofs"})
	require.NoError(t, err)
	assert.Equal(t, "Discrete Math", g.Name)
	assert.Equal(t, models.GroupPrivacyPublic, g.Privacy)
	assert.Equal(t, 10, g.MaxMembers)
	assert.Equal(t, 1, g.MemberCount)
	assert.Equal(t, []string{g.ID}, f.screener.calls)
	assert.Equal(t, []string{events.TypeGroupCreated}, f.pub.types())

	for _, n := range []int{1, 51} {
		_, err := f.svc.Create(context.Background(), "owner", CreateGroupRequest{Name: "Too odd", MaxMembers: &n})
		assert.ErrorIs(t, err, appErrors.ErrValidation)
	}
	_, err = f.svc.Create(context.Background(), "owner", CreateGroupRequest{Name: "ab"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestGroupServiceNameLengthAfterTrim(t *testing.T) {
	f := newGroupFixture()
	_, err := f.svc.Create(context.Background(), "owner", CreateGroupRequest{Name: "  a  "})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Empty(t, f.repo.groups)

	g := f.create(t, models.GroupPrivacyPublic, 5)
	for _, name := range []string{"    ", " ab ", ""} {
		_, err = f.svc.Update(context.Background(), "owner", g.ID, UpdateGroupRequest{Name: ptr(name)})
		assert.ErrorIs(t, err, appErrors.ErrValidation, "name %q", name)
	}
	assert.Equal(t, "Organic Chemistry", f.repo.groups[g.ID].Name)

	raw := "  Linear Algebra  "
	updated, err := f.svc.Update(context.Background(), "owner", g.ID, UpdateGroupRequest{Name: &raw})
	require.NoError(t, err)
	assert.Equal(t, "Linear Algebra", updated.Name)
	assert.Equal(t, "  Linear Algebra  ", raw)
}

func TestGroupServiceJoin(t *testing.T) {
	f := newGroupFixture()
	g := f.create(t, models.GroupPrivacyPublic, 2)

	joined, err := f.svc.Join(context.Background(), "ada", g.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, joined.MemberCount)

	_, err = f.svc.Join(context.Background(), "ada", g.ID)
	assert.ErrorIs(t, err, appErrors.ErrAlreadyMember)

	_, err = f.svc.Join(context.Background(), "bo", g.ID)
	assert.ErrorIs(t, err, appErrors.ErrGroupFull)

	private := f.create(t, models.GroupPrivacyPrivate, 5)
	_, err = f.svc.Join(context.Background(), "bo", private.ID)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	_, err = f.svc.Join(context.Background(), "bo", "missing")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestGroupServiceGetPrivateVisibility(t *testing.T) {
	f := newGroupFixture()
	g := f.create(t, models.GroupPrivacyPrivate, 5)

	_, err := f.svc.Get(context.Background(), "ada", g.ID)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	_, err = f.svc.Invite(context.Background(), "owner", g.ID, InviteMembersRequest{UserIDs: []string{"ada"}})
	require.NoError(t, err)
	detail, err := f.svc.Get(context.Background(), "ada", g.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.MyRole)
	assert.Len(t, detail.Members, 1)

	detail, err = f.svc.Get(context.Background(), "owner", g.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GroupRoleOwner, *detail.MyRole)
}

func TestGroupServiceUpdate(t *testing.T) {
	f := newGroupFixture()
	g := f.create(t, models.GroupPrivacyPublic, 5)
	_, err := f.svc.Join(context.Background(), "ada", g.ID)
	require.NoError(t, err)
	_, err = f.svc.Join(context.Background(), "bo", g.ID)
	require.NoError(t, err)

	_, err = f.svc.Update(context.Background(), "ada", g.ID, UpdateGroupRequest{Name: ptr("Renamed")})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	_, err = f.svc.Update(context.Background(), "owner", g.ID, UpdateGroupRequest{MaxMembers: ptr(2)})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	updated, err := f.svc.Update(context.Background(), "owner", g.ID, UpdateGroupRequest{Name: ptr("Renamed"), MaxMembers: ptr(3)})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, 3, updated.MaxMembers)
	assert.Len(t, f.screener.calls, 2)

	_, err = f.svc.Update(context.Background(), "owner", g.ID, UpdateGroupRequest{Privacy: ptr(models.GroupPrivacyPrivate)})
	require.NoError(t, err)
	assert.Len(t, f.screener.calls, 2)
}

func TestGroupServiceLeave(t *testing.T) {
	t.Run("member leaves", func(t *testing.T) {
		f := newGroupFixture()
		g := f.create(t, models.GroupPrivacyPublic, 5)
		_, _ = f.svc.Join(context.Background(), "ada", g.ID)
		res, err := f.svc.Leave(context.Background(), "ada", g.ID)
		require.NoError(t, err)
		assert.False(t, res.GroupDeleted)
		assert.Contains(t, f.pub.types(), events.TypeGroupMemberLeft)
	})

	t.Run("non member", func(t *testing.T) {
		f := newGroupFixture()
		g := f.create(t, models.GroupPrivacyPublic, 5)
		_, err := f.svc.Leave(context.Background(), "ada", g.ID)
		assert.ErrorIs(t, err, appErrors.ErrNotMember)
	})

	t.Run("owner hands over to the oldest admin", func(t *testing.T) {
		f := newGroupFixture()
		g := f.create(t, models.GroupPrivacyPublic, 5)
		_, _ = f.svc.Join(context.Background(), "ada", g.ID)
		_, _ = f.svc.Join(context.Background(), "bo", g.ID)
		_, err := f.svc.UpdateMemberRole(context.Background(), "owner", g.ID, "bo", UpdateMemberRoleRequest{Role: models.GroupRoleAdmin})
		require.NoError(t, err)

		res, err := f.svc.Leave(context.Background(), "owner", g.ID)
		require.NoError(t, err)
		assert.Equal(t, "bo", res.NewOwnerID)
		assert.Equal(t, "bo", f.repo.groups[g.ID].OwnerID)
	})

	t.Run("owner hands over to the oldest member", func(t *testing.T) {
		f := newGroupFixture()
		g := f.create(t, models.GroupPrivacyPublic, 5)
		_, _ = f.svc.Join(context.Background(), "ada", g.ID)
		_, _ = f.svc.Join(context.Background(), "bo", g.ID)

		res, err := f.svc.Leave(context.Background(), "owner", g.ID)
		require.NoError(t, err)
		assert.Equal(t, "ada", res.NewOwnerID)
	})

	t.Run("lone owner deletes the group", func(t *testing.T) {
		f := newGroupFixture()
		g := f.create(t, models.GroupPrivacyPublic, 5)
		res, err := f.svc.Leave(context.Background(), "owner", g.ID)
		require.NoError(t, err)
		assert.True(t, res.GroupDeleted)
		assert.NotContains(t, f.repo.groups, g.ID)
		assert.Contains(t, f.pub.types(), events.TypeGroupDeleted)
	})
}

func TestGroupServiceInvite(t *testing.T) {
	f := newGroupFixture()
	g := f.create(t, models.GroupPrivacyPrivate, 5)
	_, err := f.svc.Invite(context.Background(), "owner", g.ID, InviteMembersRequest{UserIDs: []string{"bo"}})
	require.NoError(t, err)
	_ = f.repo.AddMember(context.Background(), g.ID, "cy", models.GroupRoleMember)

	outcomes, err := f.svc.Invite(context.Background(), "owner", g.ID, InviteMembersRequest{UserIDs: []string{"ada", "ada", "owner", "ghost"}})
	require.NoError(t, err)
	require.Len(t, outcomes, 3)
	assert.True(t, outcomes[0].Invited)
	assert.NotEmpty(t, outcomes[0].InviteID)
	assert.Equal(t, models.InviteSkipSelf, outcomes[1].Reason)
	assert.Equal(t, models.InviteSkipUserNotFound, outcomes[2].Reason)

	outcomes, err = f.svc.Invite(context.Background(), "owner", g.ID, InviteMembersRequest{UserIDs: []string{"bo", "cy"}})
	require.NoError(t, err)
	assert.Equal(t, models.InviteSkipAlreadyInvited, outcomes[0].Reason)
	assert.Equal(t, models.InviteSkipAlreadyMember, outcomes[1].Reason)

	_, err = f.svc.Invite(context.Background(), "cy", g.ID, InviteMembersRequest{UserIDs: []string{"dee"}})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	_, err = f.svc.Invite(context.Background(), "owner", g.ID, InviteMembersRequest{UserIDs: []string{"a", "b", "c", "d"}})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	full := f.create(t, models.GroupPrivacyPrivate, 2)
	_ = f.repo.AddMember(context.Background(), full.ID, "cy", models.GroupRoleMember)
	_, err = f.svc.Invite(context.Background(), "owner", full.ID, InviteMembersRequest{UserIDs: []string{"dee"}})
	assert.ErrorIs(t, err, appErrors.ErrGroupFull)
}

func TestGroupServiceRespondInvite(t *testing.T) {
	f := newGroupFixture()
	g := f.create(t, models.GroupPrivacyPrivate, 2)
	outcomes, err := f.svc.Invite(context.Background(), "owner", g.ID, InviteMembersRequest{UserIDs: []string{"ada", "bo"}})
	require.NoError(t, err)
	adaInvite, boInvite := outcomes[0].InviteID, outcomes[1].InviteID

	_, err = f.svc.RespondInvite(context.Background(), "bo", adaInvite, RespondInviteRequest{Action: "ACCEPT"})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	invite, err := f.svc.RespondInvite(context.Background(), "ada", adaInvite, RespondInviteRequest{Action: "ACCEPT"})
	require.NoError(t, err)
	assert.Equal(t, models.InviteStatusAccepted, invite.Status)
	assert.Contains(t, f.pub.types(), events.TypeGroupMemberJoined)

	_, err = f.svc.RespondInvite(context.Background(), "ada", adaInvite, RespondInviteRequest{Action: "DECLINE"})
	assert.ErrorIs(t, err, appErrors.ErrConflict)

	_, err = f.svc.RespondInvite(context.Background(), "bo", boInvite, RespondInviteRequest{Action: "ACCEPT"})
	assert.ErrorIs(t, err, appErrors.ErrGroupFull)

	declined, err := f.svc.RespondInvite(context.Background(), "bo", boInvite, RespondInviteRequest{Action: "DECLINE"})
	require.NoError(t, err)
	assert.Equal(t, models.InviteStatusDeclined, declined.Status)
}

func TestGroupServiceRespondExpiredInvite(t *testing.T) {
	f := newGroupFixture()
	g := f.create(t, models.GroupPrivacyPrivate, 5)
	outcomes, err := f.svc.Invite(context.Background(), "owner", g.ID, InviteMembersRequest{UserIDs: []string{"ada"}})
	require.NoError(t, err)

	f.svc.now = func() time.Time { return fixedNow.Add(72 * time.Hour) }
	_, err = f.svc.RespondInvite(context.Background(), "ada", outcomes[0].InviteID, RespondInviteRequest{Action: "ACCEPT"})
	assert.ErrorIs(t, err, appErrors.ErrInviteExpired)
}

func TestGroupServiceCancelInvite(t *testing.T) {
	f := newGroupFixture()
	g := f.create(t, models.GroupPrivacyPrivate, 5)
	_ = f.repo.AddMember(context.Background(), g.ID, "cy", models.GroupRoleMember)
	outcomes, err := f.svc.Invite(context.Background(), "owner", g.ID, InviteMembersRequest{UserIDs: []string{"ada"}})
	require.NoError(t, err)

	err = f.svc.CancelInvite(context.Background(), "cy", outcomes[0].InviteID)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	require.NoError(t, f.svc.CancelInvite(context.Background(), "owner", outcomes[0].InviteID))
	assert.Equal(t, models.InviteStatusCancelled, f.repo.invites[outcomes[0].InviteID].Status)

	err = f.svc.CancelInvite(context.Background(), "owner", outcomes[0].InviteID)
	assert.ErrorIs(t, err, appErrors.ErrConflict)
}

func TestGroupServiceMemberManagement(t *testing.T) {
	f := newGroupFixture()
	g := f.create(t, models.GroupPrivacyPublic, 10)
	for _, u := range []string{"ada", "bo", "cy"} {
		_, err := f.svc.Join(context.Background(), u, g.ID)
		require.NoError(t, err)
	}

	_, err := f.svc.UpdateMemberRole(context.Background(), "ada", g.ID, "bo", UpdateMemberRoleRequest{Role: models.GroupRoleAdmin})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	member, err := f.svc.UpdateMemberRole(context.Background(), "owner", g.ID, "ada", UpdateMemberRoleRequest{Role: models.GroupRoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, models.GroupRoleAdmin, member.Role)

	_, err = f.svc.UpdateMemberRole(context.Background(), "owner", g.ID, "bo", UpdateMemberRoleRequest{Role: models.GroupRoleOwner})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	require.NoError(t, f.svc.RemoveMember(context.Background(), "ada", g.ID, "bo"))

	_, err = f.svc.UpdateMemberRole(context.Background(), "owner", g.ID, "cy", UpdateMemberRoleRequest{Role: models.GroupRoleAdmin})
	require.NoError(t, err)
	err = f.svc.RemoveMember(context.Background(), "ada", g.ID, "cy")
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
	err = f.svc.RemoveMember(context.Background(), "ada", g.ID, "owner")
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
	require.NoError(t, f.svc.RemoveMember(context.Background(), "owner", g.ID, "cy"))

	err = f.svc.RemoveMember(context.Background(), "owner", g.ID, "bo")
	assert.ErrorIs(t, err, appErrors.ErrNotMember)
}

func TestGroupServiceTransferOwnership(t *testing.T) {
	f := newGroupFixture()
	g := f.create(t, models.GroupPrivacyPublic, 10)
	_, err := f.svc.Join(context.Background(), "ada", g.ID)
	require.NoError(t, err)

	_, err = f.svc.TransferOwnership(context.Background(), "ada", g.ID, TransferOwnershipRequest{UserID: "ada2"})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	_, err = f.svc.TransferOwnership(context.Background(), "owner", g.ID, TransferOwnershipRequest{UserID: "bo"})
	assert.ErrorIs(t, err, appErrors.ErrNotMember)

	updated, err := f.svc.TransferOwnership(context.Background(), "owner", g.ID, TransferOwnershipRequest{UserID: "ada"})
	require.NoError(t, err)
	assert.Equal(t, "ada", updated.OwnerID)
	previous, err := f.repo.FindMember(context.Background(), g.ID, "owner")
	require.NoError(t, err)
	assert.Equal(t, models.GroupRoleAdmin, previous.Role)
}

func TestGroupServiceDeleteOwnerOnly(t *testing.T) {
	f := newGroupFixture()
	g := f.create(t, models.GroupPrivacyPublic, 10)
	_, _ = f.svc.Join(context.Background(), "ada", g.ID)

	err := f.svc.Delete(context.Background(), "ada", g.ID)
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
	require.NoError(t, f.svc.Delete(context.Background(), "owner", g.ID))
	assert.Contains(t, f.pub.types(), events.TypeGroupDeleted)
}
