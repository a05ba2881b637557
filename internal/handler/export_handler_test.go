package handler

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/studybuddy-api/internal/models"
	"github.com/noah-isme/studybuddy-api/internal/service"
	appErrors "github.com/noah-isme/studybuddy-api/pkg/errors"
)

type exportServiceStub struct {
	dir     string
	created service.CreateExportRequest
}

func (s *exportServiceStub) Create(ctx context.Context, actor models.Actor, req service.CreateExportRequest) (*models.ExportResult, error) {
	if !actor.IsAdmin {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "admin access required")
	}
	s.created = req
	return &models.ExportResult{ID: "e1", Dataset: string(req.Dataset), Format: string(req.Format), URL: "/api/exports/tok", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (s *exportServiceStub) Open(token string) (*service.ExportFile, error) {
	switch token {
	case "expired":
		return nil, appErrors.New("LINK_EXPIRED", http.StatusGone, "download link has expired")
	case "valid":
		f, err := os.Open(filepath.Join(s.dir, "reports.csv"))
		if err != nil {
			return nil, err
		}
		return &service.ExportFile{File: f, Name: "reports.csv", ContentType: "text/csv"}, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "export not found")
}

func exportRouter(t *testing.T, user *models.User) (*exportServiceStub, *gin.Engine) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "reports.csv"), []byte("id,status\nr1,PENDING\n"), 0o600))
	stub := &exportServiceStub{dir: dir}
	h := NewExportHandler(stub)
	r := newRouter(user)
	r.POST("/admin/exports", h.Create)
	r.GET("/exports/:token", h.Download)
	return stub, r
}

func TestExportHandlerCreate(t *testing.T) {
	stub, r := exportRouter(t, adminUser)
	w := perform(r, http.MethodPost, "/admin/exports", map[string]string{"dataset": "REPORTS", "format": "CSV", "from": "2025-03-01T00:00:00Z"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, models.ExportDataset("REPORTS"), stub.created.Dataset)
	require.NotNil(t, stub.created.From)
	assert.Contains(t, string(decode(t, w).Data), `"url":"/api/exports/tok"`)

	_, r = exportRouter(t, plainUser)
	assert.Equal(t, http.StatusForbidden, perform(r, http.MethodPost, "/admin/exports", map[string]string{"dataset": "REPORTS", "format": "CSV"}).Code)

	_, r = exportRouter(t, adminUser)
	assert.Equal(t, http.StatusBadRequest, perform(r, http.MethodPost, "/admin/exports", map[string]string{"from": "last week"}).Code)
}

func TestExportHandlerDownload(t *testing.T) {
	_, r := exportRouter(t, nil)

	w := perform(r, http.MethodGet, "/exports/valid", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="reports.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.Equal(t, "id,status\nr1,PENDING\n", w.Body.String())

	w = perform(r, http.MethodGet, "/exports/expired", nil)
	require.Equal(t, http.StatusGone, w.Code)
	assert.Equal(t, "LINK_EXPIRED", decode(t, w).Error.Code)

	assert.Equal(t, http.StatusNotFound, perform(r, http.MethodGet, "/exports/forged", nil).Code)
}
