package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/studybuddy-api/internal/middleware"
	"github.com/noah-isme/studybuddy-api/internal/models"
	"github.com/noah-isme/studybuddy-api/internal/service"
)

type auditRepoStub struct {
	entries     []models.AdminAuditLog
	created     []*models.AdminAuditLog
	purgedAll   bool
	purgeCutoff time.Time
}

func (r *auditRepoStub) Create(ctx context.Context, entry *models.AdminAuditLog) error {
	r.created = append(r.created, entry)
	return nil
}

func (r *auditRepoStub) List(ctx context.Context, filter models.AuditLogFilter) ([]models.AdminAuditLog, int, error) {
	return r.entries, len(r.entries), nil
}

func (r *auditRepoStub) Delete(ctx context.Context, id string) (int64, error) {
	for _, e := range r.entries {
		if e.ID == id {
			return 1, nil
		}
	}
	return 0, nil
}

func (r *auditRepoStub) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	r.purgeCutoff = cutoff
	return 4, nil
}

func (r *auditRepoStub) DeleteAll(ctx context.Context) (int64, error) {
	r.purgedAll = true
	return int64(len(r.entries)), nil
}

func auditRouter(user *models.User, repo *auditRepoStub) (*auditRepoStub, http.Handler) {
	h := NewAuditHandler(service.NewAuditService(repo, nil))
	r := newRouter(user)
	admin := r.Group("/admin", middleware.RequireAdmin())
	admin.GET("/audit-logs", h.List)
	admin.DELETE("/audit-logs", h.Purge)
	admin.DELETE("/audit-logs/:id", h.Delete)
	return repo, r
}

func TestAuditHandlerList(t *testing.T) {
	repo, r := auditRouter(adminUser, &auditRepoStub{entries: []models.AdminAuditLog{{ID: "a1", Action: "REPORT_UPDATE"}}})

	w := perform(r, http.MethodGet, "/admin/audit-logs?action=report_update&from=2025-03-01", nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 1, env.Pagination.TotalCount)
	assert.Empty(t, repo.created)

	w = perform(r, http.MethodGet, "/admin/audit-logs?from=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuditHandlerPurge(t *testing.T) {
	t.Run("plain admin is forbidden", func(t *testing.T) {
		repo, r := auditRouter(adminUser, &auditRepoStub{})
		w := perform(r, http.MethodDelete, "/admin/audit-logs?olderThanDays=30", nil)
		require.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "SUPER_ADMIN_REQUIRED", decode(t, w).Error.Code)
		assert.True(t, repo.purgeCutoff.IsZero())
	})

	t.Run("missing parameters", func(t *testing.T) {
		_, r := auditRouter(superAdmin, &auditRepoStub{})
		w := perform(r, http.MethodDelete, "/admin/audit-logs", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non numeric days", func(t *testing.T) {
		_, r := auditRouter(superAdmin, &auditRepoStub{})
		w := perform(r, http.MethodDelete, "/admin/audit-logs?olderThanDays=lots", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("older than", func(t *testing.T) {
		repo, r := auditRouter(superAdmin, &auditRepoStub{})
		w := perform(r, http.MethodDelete, "/admin/audit-logs?olderThanDays=30", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"deleted":4}`, string(decode(t, w).Data))
		assert.WithinDuration(t, time.Now().AddDate(0, 0, -30), repo.purgeCutoff, time.Minute)
		require.Len(t, repo.created, 1)
		assert.Equal(t, models.AuditActionAuditLogPurge, repo.created[0].Action)
	})

	t.Run("all", func(t *testing.T) {
		repo, r := auditRouter(superAdmin, &auditRepoStub{entries: make([]models.AdminAuditLog, 3)})
		w := perform(r, http.MethodDelete, "/admin/audit-logs?all=true", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, repo.purgedAll)
	})
}

func TestAuditHandlerDelete(t *testing.T) {
	_, r := auditRouter(adminUser, &auditRepoStub{entries: []models.AdminAuditLog{{ID: "a1"}}})
	assert.Equal(t, http.StatusForbidden, perform(r, http.MethodDelete, "/admin/audit-logs/a1", nil).Code)

	repo, r := auditRouter(superAdmin, &auditRepoStub{entries: []models.AdminAuditLog{{ID: "a1"}}})
	assert.Equal(t, http.StatusNoContent, perform(r, http.MethodDelete, "/admin/audit-logs/a1", nil).Code)
	assert.Equal(t, http.StatusNotFound, perform(r, http.MethodDelete, "/admin/audit-logs/missing", nil).Code)
	assert.Len(t, repo.created, 1)
}

func TestAuditHandlerRequiresAdmin(t *testing.T) {
	_, r := auditRouter(plainUser, &auditRepoStub{})
	assert.Equal(t, http.StatusForbidden, perform(r, http.MethodGet, "/admin/audit-logs", nil).Code)

	_, r = auditRouter(nil, &auditRepoStub{})
	assert.Equal(t, http.StatusUnauthorized, perform(r, http.MethodGet, "/admin/audit-logs", nil).Code)
}
