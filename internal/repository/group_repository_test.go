package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/studybuddy-api/internal/models"
)

func TestGroupCreateInsertsOwnerInTransaction(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGroupRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO groups").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO group_members (group_id, user_id, role, joined_at)")).
		WithArgs(sqlmock.AnyArg(), "owner-1", models.GroupRoleOwner, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	group := &models.Group{Name: "Calculus crew", Privacy: models.GroupPrivacyPublic, MaxMembers: 10, OwnerID: "owner-1"}
	require.NoError(t, repo.Create(context.Background(), group))
	assert.NotEmpty(t, group.ID)
	assert.Equal(t, 1, group.MemberCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupCreateRollsBackOnMemberFailure(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGroupRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO groups").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO group_members").WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.Group{Name: "x", OwnerID: "o", MaxMembers: 5, Privacy: models.GroupPrivacyPublic})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupAddMemberRejectsFullGroup(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGroupRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT max_members FROM groups WHERE id = $1 FOR UPDATE")).
		WithArgs("g1").
		WillReturnRows(sqlmock.NewRows([]string{"max_members"}).AddRow(2))
	mock.ExpectQuery("FROM group_members WHERE group_id = \\$1").
		WithArgs("g1", "u3").
		WillReturnRows(sqlmock.NewRows([]string{"members", "is_member"}).AddRow(2, false))
	mock.ExpectRollback()

	err := repo.AddMember(context.Background(), "g1", "u3", models.GroupRoleMember)
	assert.ErrorIs(t, err, ErrGroupAtCapacity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupAddMemberRejectsExistingMember(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGroupRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WillReturnRows(sqlmock.NewRows([]string{"max_members"}).AddRow(10))
	mock.ExpectQuery("BOOL_OR").WillReturnRows(sqlmock.NewRows([]string{"members", "is_member"}).AddRow(3, true))
	mock.ExpectRollback()

	err := repo.AddMember(context.Background(), "g1", "u2", models.GroupRoleMember)
	assert.ErrorIs(t, err, ErrAlreadyMember)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupAcceptInvite(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGroupRepository(db)

	ts := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WillReturnRows(sqlmock.NewRows([]string{"max_members"}).AddRow(10))
	mock.ExpectQuery("BOOL_OR").WillReturnRows(sqlmock.NewRows([]string{"members", "is_member"}).AddRow(3, false))
	mock.ExpectExec("INSERT INTO group_members").
		WithArgs("g1", "u2", models.GroupRoleMember, ts).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE group_invites SET status = 'ACCEPTED'")).
		WithArgs("inv1", ts).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.AcceptInvite(context.Background(), &models.GroupInvite{ID: "inv1", GroupID: "g1", InviteeID: "u2"}, ts)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupHandOverAndLeave(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGroupRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE group_members SET role = 'OWNER'")).
		WithArgs("g1", "admin-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE groups SET owner_id = $2")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM group_members WHERE group_id = $1 AND user_id = $2")).
		WithArgs("g1", "owner-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.HandOverAndLeave(context.Background(), "g1", "owner-1", "admin-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupDiscoverFlagsMembership(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGroupRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM groups g LEFT JOIN group_members me ON me.group_id = g.id AND me.user_id = $1 WHERE g.privacy = 'PUBLIC' AND LOWER(COALESCE(g.subject, '')) = $2")).
		WithArgs("viewer", "math").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "description", "subject", "skill_level", "privacy", "max_members", "owner_id", "created_at", "updated_at", "member_count", "is_member", "my_role"}).
		AddRow("g1", "Algebra", nil, "Math", nil, "PUBLIC", 10, "o1", now, now, 4, true, "MEMBER")
	mock.ExpectQuery("me.user_id IS NOT NULL AS is_member").
		WillReturnRows(rows)

	items, total, err := repo.Discover(context.Background(), models.GroupFilter{ViewerID: "viewer", Subject: " Math ", PageRequest: models.PageRequest{Page: 1, PageSize: 20}})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.True(t, items[0].IsMember)
	assert.Equal(t, 4, items[0].MemberCount)
	assert.Equal(t, models.GroupRoleMember, *items[0].MyRole)
	assert.NoError(t, mock.ExpectationsWereMet())
}
