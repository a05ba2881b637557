package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/studybuddy-api/internal/models"
)

func TestReportHasOpenReport(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("status IN ('PENDING', 'REVIEWING')")).
		WithArgs("u1", models.ReportContentMessage, "m1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.HasOpenReport(context.Background(), "u1", models.ReportContentMessage, "m1")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportListAppliesFilters(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM reports WHERE status = $1 AND reason = $2 AND created_at >= $3")).
		WithArgs("PENDING", "SPAM", from).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "reporter_id", "reported_user_id", "content_type", "content_id", "reason", "description", "status", "admin_notes", "reviewed_by", "reviewed_at", "created_at", "updated_at"}).
		AddRow("r1", "u1", "u2", "USER", "u2", "SPAM", nil, "PENDING", nil, nil, nil, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC LIMIT 20 OFFSET 0")).
		WillReturnRows(rows)

	items, total, err := repo.List(context.Background(), models.ReportFilter{
		Status:      "PENDING",
		Reason:      "SPAM",
		From:        &from,
		PageRequest: models.PageRequest{Page: 1, PageSize: 20},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "u2", *items[0].ReportedUserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeedbackCountByStatus(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewFeedbackRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT status, COUNT(*) AS count FROM feedback GROUP BY status")).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).AddRow("NEW", 3).AddRow("RESOLVED", 1))

	counts, err := repo.CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.StatusCount{{Status: "NEW", Count: 3}, {Status: "RESOLVED", Count: 1}}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportUpdateReviewGuardsStatus(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewReportRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("WHERE id = $1 AND status = $7")).
		WithArgs("r1", models.ReportStatusResolved, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), models.ReportStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateReview(context.Background(), &models.Report{ID: "r1", Status: models.ReportStatusResolved}, models.ReportStatusPending)
	assert.ErrorIs(t, err, ErrStatusChanged)
	assert.NoError(t, mock.ExpectationsWereMet())
}
