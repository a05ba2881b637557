package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/studybuddy-api/internal/models"
	appErrors "github.com/noah-isme/studybuddy-api/pkg/errors"
)

type auditRepoStub struct {
	created    []*models.AdminAuditLog
	createErr  error
	deleteRows int64
	purgeRows  int64
	cutoff     time.Time
	deletedAll bool
	lastFilter models.AuditLogFilter
}

func (r *auditRepoStub) Create(ctx context.Context, entry *models.AdminAuditLog) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, entry)
	return nil
}

func (r *auditRepoStub) List(ctx context.Context, filter models.AuditLogFilter) ([]models.AdminAuditLog, int, error) {
	r.lastFilter = filter
	return []models.AdminAuditLog{{ID: "log-1"}}, 1, nil
}

func (r *auditRepoStub) Delete(ctx context.Context, id string) (int64, error) {
	return r.deleteRows, nil
}

func (r *auditRepoStub) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	r.cutoff = cutoff
	return r.purgeRows, nil
}

func (r *auditRepoStub) DeleteAll(ctx context.Context) (int64, error) {
	r.deletedAll = true
	return r.purgeRows, nil
}

func newAuditServiceForTest() (*AuditService, *auditRepoStub) {
	repo := &auditRepoStub{}
	svc := NewAuditService(repo, nil)
	svc.now = clock
	return svc, repo
}

func TestAuditServiceRecordStoresDetails(t *testing.T) {
	svc, repo := newAuditServiceForTest()
	svc.Record(context.Background(), adminActor(), models.AuditActionReportUpdate, models.AuditTargetReport, "rep-1", map[string]string{"status": "RESOLVED"})

	require.Len(t, repo.created, 1)
	entry := repo.created[0]
	assert.Equal(t, "admin-1", entry.AdminID)
	assert.Equal(t, "rep-1", *entry.TargetID)
	assert.Equal(t, "10.0.0.1", *entry.IPAddress)
	var details map[string]string
	require.NoError(t, json.Unmarshal(entry.Details, &details))
	assert.Equal(t, "RESOLVED", details["status"])
}

func TestAuditServiceRecordSwallowsFailures(t *testing.T) {
	svc, repo := newAuditServiceForTest()
	repo.createErr = errors.New("db down")
	assert.NotPanics(t, func() {
		svc.Record(context.Background(), adminActor(), models.AuditActionUserBan, models.AuditTargetUser, "u-1", nil)
	})
}

func TestAuditServiceListRequiresAdmin(t *testing.T) {
	svc, repo := newAuditServiceForTest()
	_, _, err := svc.List(context.Background(), userActor(), models.AuditLogFilter{})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	items, page, err := svc.List(context.Background(), adminActor(), models.AuditLogFilter{})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 50, repo.lastFilter.PageSize)
	assert.Equal(t, 1, page.TotalCount)
}

func TestAuditServiceDeleteIsSuperAdminOnly(t *testing.T) {
	svc, repo := newAuditServiceForTest()
	repo.deleteRows = 1

	err := svc.Delete(context.Background(), adminActor(), "log-1")
	assert.ErrorIs(t, err, appErrors.ErrSuperAdminRequired)

	require.NoError(t, svc.Delete(context.Background(), superAdminActor(), "log-1"))
	require.Len(t, repo.created, 1)
	assert.Equal(t, models.AuditActionAuditLogDelete, repo.created[0].Action)

	repo.deleteRows = 0
	err = svc.Delete(context.Background(), superAdminActor(), "missing")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestAuditServicePurge(t *testing.T) {
	t.Run("plain admin is rejected", func(t *testing.T) {
		svc, _ := newAuditServiceForTest()
		_, err := svc.Purge(context.Background(), adminActor(), PurgeAuditLogsRequest{All: true})
		assert.ErrorIs(t, err, appErrors.ErrSuperAdminRequired)
	})

	t.Run("missing scope", func(t *testing.T) {
		svc, _ := newAuditServiceForTest()
		_, err := svc.Purge(context.Background(), superAdminActor(), PurgeAuditLogsRequest{})
		assert.ErrorIs(t, err, appErrors.ErrValidation)
	})

	t.Run("older than days records the purge afterwards", func(t *testing.T) {
		svc, repo := newAuditServiceForTest()
		repo.purgeRows = 12
		res, err := svc.Purge(context.Background(), superAdminActor(), PurgeAuditLogsRequest{OlderThanDays: 30})
		require.NoError(t, err)
		assert.Equal(t, int64(12), res.Deleted)
		assert.Equal(t, fixedNow.AddDate(0, 0, -30), repo.cutoff)
		require.Len(t, repo.created, 1)
		assert.Equal(t, models.AuditActionAuditLogPurge, repo.created[0].Action)
		assert.Contains(t, string(repo.created[0].Details), `"deleted":12`)
	})

	t.Run("all", func(t *testing.T) {
		svc, repo := newAuditServiceForTest()
		repo.purgeRows = 3
		res, err := svc.Purge(context.Background(), superAdminActor(), PurgeAuditLogsRequest{All: true})
		require.NoError(t, err)
		assert.True(t, repo.deletedAll)
		assert.Equal(t, int64(3), res.Deleted)
	})
}
