package service

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/studybuddy-api/internal/models"
	appErrors "github.com/noah-isme/studybuddy-api/pkg/errors"
	"github.com/noah-isme/studybuddy-api/pkg/storage"
)

type reportListerStub struct {
	items  []models.Report
	filter models.ReportFilter
	err    error
}

func (r *reportListerStub) List(ctx context.Context, filter models.ReportFilter) ([]models.Report, int, error) {
	r.filter = filter
	return r.items, len(r.items), r.err
}

type aiUsageListerStub struct {
	items []models.AIUsageLog
}

func (r *aiUsageListerStub) List(ctx context.Context, filter models.AIUsageFilter) ([]models.AIUsageLog, int, error) {
	return r.items, len(r.items), nil
}

type expiredSigner struct{}

func (expiredSigner) Generate(id, relPath string) (string, time.Time, error) {
	return "token", fixedNow, nil
}

func (expiredSigner) Parse(token string, allowExpired bool) (*storage.SignedFile, error) {
	return nil, storage.ErrTokenExpired
}

type exportFixture struct {
	svc     *ExportService
	reports *reportListerStub
	audit   *auditSpy
	store   *storage.LocalStorage
}

func newExportFixture(t *testing.T) exportFixture {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	f := exportFixture{
		reports: &reportListerStub{items: []models.Report{
			{ID: "rep-1", ReporterID: "user-1", ReportedUserID: ptr("user-2"), ContentType: models.ReportContentUser, ContentID: "user-2", Reason: models.ReportReasonSpam, Status: models.ReportStatusPending, CreatedAt: fixedNow},
			{ID: "rep-2", ReporterID: "user-3", ContentType: models.ReportContentGroup, ContentID: "grp-1", Reason: models.ReportReasonOther, Status: models.ReportStatusResolved, CreatedAt: fixedNow},
		}},
		audit: &auditSpy{},
		store: store,
	}
	sources := ExportSources{
		Reports: f.reports,
		AIUsage: &aiUsageListerStub{items: []models.AIUsageLog{{ID: "u-1", Feature: models.AIFeatureChat, Model: "gpt-4o", TotalTokens: 10, CostUSD: 0.0001, Success: true, CreatedAt: fixedNow}}},
	}
	f.svc = NewExportService(sources, store, storage.NewSignedURLSigner("export-secret", time.Hour), f.audit, nil, nil, ExportConfig{APIPrefix: "/api/v1/"})
	f.svc.now = clock
	return f
}

func TestExportServiceCreateCSV(t *testing.T) {
	f := newExportFixture(t)
	from := fixedNow.Add(-48 * time.Hour)

	result, err := f.svc.Create(context.Background(), adminActor(), CreateExportRequest{Dataset: models.ExportDatasetReports, Format: models.ExportFormatCSV, From: &from})
	require.NoError(t, err)
	assert.Equal(t, 2, result.RowCount)
	assert.True(t, strings.HasPrefix(result.URL, "/api/v1/exports/"))
	assert.Equal(t, exportRowLimit, f.reports.filter.PageSize)
	assert.Equal(t, &from, f.reports.filter.From)
	assert.Equal(t, []string{models.AuditActionExportCreate}, f.audit.actions())

	token := strings.TrimPrefix(result.URL, "/api/v1/exports/")
	file, err := f.svc.Open(token)
	require.NoError(t, err)
	defer file.File.Close()
	assert.Equal(t, "text/csv", file.ContentType)
	assert.True(t, strings.HasPrefix(file.Name, "reports_20250314_103000_"))

	records, err := csv.NewReader(file.File).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Reporter", records[0][1])
	assert.Equal(t, []string{"rep-1", "user-1", "user-2", "USER", "user-2", "SPAM", "PENDING", "2025-03-14 10:30:00"}, records[1])
	assert.Equal(t, "", records[2][2])
}

func TestExportServiceCreatePDF(t *testing.T) {
	f := newExportFixture(t)
	result, err := f.svc.Create(context.Background(), adminActor(), CreateExportRequest{Dataset: models.ExportDatasetAIUsage, Format: models.ExportFormatPDF})
	require.NoError(t, err)

	file, err := f.svc.Open(strings.TrimPrefix(result.URL, "/api/v1/exports/"))
	require.NoError(t, err)
	defer file.File.Close()
	assert.Equal(t, "application/pdf", file.ContentType)
	head := make([]byte, 4)
	_, err = io.ReadFull(file.File, head)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(head))
}

func TestExportServiceCreateRejects(t *testing.T) {
	f := newExportFixture(t)

	_, err := f.svc.Create(context.Background(), userActor(), CreateExportRequest{Dataset: models.ExportDatasetReports, Format: models.ExportFormatCSV})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	_, err = f.svc.Create(context.Background(), adminActor(), CreateExportRequest{Dataset: "USERS", Format: models.ExportFormatCSV})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	from, to := fixedNow, fixedNow.Add(-time.Hour)
	_, err = f.svc.Create(context.Background(), adminActor(), CreateExportRequest{Dataset: models.ExportDatasetReports, Format: models.ExportFormatCSV, From: &from, To: &to})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	f.reports.err = errors.New("db down")
	_, err = f.svc.Create(context.Background(), adminActor(), CreateExportRequest{Dataset: models.ExportDatasetReports, Format: models.ExportFormatCSV})
	assert.ErrorIs(t, err, appErrors.ErrInternal)
	assert.Empty(t, f.audit.entries)
}

func TestExportServiceOpenErrors(t *testing.T) {
	f := newExportFixture(t)

	_, err := f.svc.Open("not-a-token")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	signer := storage.NewSignedURLSigner("export-secret", time.Hour)
	token, _, err := signer.Generate("gone", "missing.csv")
	require.NoError(t, err)
	_, err = f.svc.Open(token)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	expired := NewExportService(ExportSources{}, f.store, expiredSigner{}, f.audit, nil, nil, ExportConfig{})
	_, err = expired.Open("token")
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "LINK_EXPIRED", appErr.Code)
	assert.Equal(t, 410, appErr.Status)
}

func TestExportServiceCleanup(t *testing.T) {
	f := newExportFixture(t)
	_, err := f.store.Save("old.csv", []byte("a,b\n"))
	require.NoError(t, err)

	svc := NewExportService(ExportSources{}, f.store, nil, f.audit, nil, nil, ExportConfig{ResultTTL: time.Nanosecond})
	time.Sleep(5 * time.Millisecond)
	removed, err := svc.Cleanup()
	require.NoError(t, err)
	assert.Len(t, removed, 1)
}
