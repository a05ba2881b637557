package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/studybuddy-api/internal/models"
	appErrors "github.com/noah-isme/studybuddy-api/pkg/errors"
	"github.com/noah-isme/studybuddy-api/pkg/jobs"
)

type aiUsageRepoStub struct {
	mu         sync.Mutex
	inserted   []models.AIUsageLog
	insertErr  error
	listFilter models.AIUsageFilter
	totals     models.AIUsageTotals
	byModel    []models.AIUsageBreakdown
	daily      []models.DailyCost
	columns    []string
}

func (r *aiUsageRepoStub) Insert(ctx context.Context, entry *models.AIUsageLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted = append(r.inserted, *entry)
	return nil
}

func (r *aiUsageRepoStub) List(ctx context.Context, filter models.AIUsageFilter) ([]models.AIUsageLog, int, error) {
	r.listFilter = filter
	return nil, 0, nil
}

func (r *aiUsageRepoStub) Totals(ctx context.Context, from, to time.Time) (models.AIUsageTotals, error) {
	return r.totals, nil
}

func (r *aiUsageRepoStub) Breakdown(ctx context.Context, column string, from, to time.Time) ([]models.AIUsageBreakdown, error) {
	r.columns = append(r.columns, column)
	if column == "model" {
		return r.byModel, nil
	}
	return nil, nil
}

func (r *aiUsageRepoStub) TopUsers(ctx context.Context, from, to time.Time, limit int) ([]models.AIUserUsage, error) {
	return nil, nil
}

func (r *aiUsageRepoStub) DailyCost(ctx context.Context, from, to time.Time) ([]models.DailyCost, error) {
	return r.daily, nil
}

func (r *aiUsageRepoStub) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.inserted)
}

type queueStub struct {
	jobs []jobs.Job[models.AIUsageLog]
	err  error
}

func (q *queueStub) TryEnqueue(job jobs.Job[models.AIUsageLog]) error {
	if q.err != nil {
		return q.err
	}
	q.jobs = append(q.jobs, job)
	return nil
}

func newAIUsageFixture() (*AIUsageService, *aiUsageRepoStub, *MetricsService) {
	repo := &aiUsageRepoStub{}
	metrics := NewMetricsService()
	svc := NewAIUsageService(repo, nil, nil, metrics, nil, nil)
	svc.now = clock
	return svc, repo, metrics
}

func TestAIUsageIngestPricesAndQueues(t *testing.T) {
	svc, _, _ := newAIUsageFixture()
	queue := &queueStub{}
	svc.AttachQueue(queue)

	occurred := time.Date(2025, 3, 13, 8, 0, 0, 0, time.FixedZone("WIB", 7*3600))
	entry, err := svc.Ingest(context.Background(), RecordAIUsageRequest{
		UserID:           "user-1",
		Feature:          models.AIFeatureChat,
		Model:            " gpt-4o-mini ",
		PromptTokens:     1000,
		CompletionTokens: 500,
		LatencyMs:        820,
		OccurredAt:       &occurred,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "gpt-4o-mini", entry.Model)
	assert.Equal(t, 1500, entry.TotalTokens)
	assert.InDelta(t, 0.00045, entry.CostUSD, 1e-9)
	assert.True(t, entry.Success)
	assert.Nil(t, entry.ErrorMessage)
	assert.Equal(t, time.Date(2025, 3, 13, 1, 0, 0, 0, time.UTC), entry.CreatedAt)

	require.Len(t, queue.jobs, 1)
	assert.Equal(t, entry.ID, queue.jobs[0].ID)

	failed, err := svc.Ingest(context.Background(), RecordAIUsageRequest{
		ID:           "4a3c5b7e-0c1d-4c8e-9f47-2b6f1d9a0e11",
		Feature:      models.AIFeatureQuiz,
		Model:        "mystery-model",
		Success:      ptr(false),
		ErrorMessage: "upstream timeout",
	})
	require.NoError(t, err)
	assert.Equal(t, "4a3c5b7e-0c1d-4c8e-9f47-2b6f1d9a0e11", failed.ID)
	assert.False(t, failed.Success)
	assert.Zero(t, failed.CostUSD)
	assert.Nil(t, failed.UserID)
	assert.Equal(t, fixedNow, failed.CreatedAt)
}

func TestAIUsageIngestRejects(t *testing.T) {
	svc, _, metrics := newAIUsageFixture()

	_, err := svc.Ingest(context.Background(), RecordAIUsageRequest{Feature: models.AIFeatureChat, Model: "gpt-4o"})
	assert.ErrorIs(t, err, appErrors.ErrInternal)

	svc.AttachQueue(&queueStub{})
	_, err = svc.Ingest(context.Background(), RecordAIUsageRequest{Feature: "POETRY", Model: "gpt-4o"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	_, err = svc.Ingest(context.Background(), RecordAIUsageRequest{Feature: models.AIFeatureChat, Model: "gpt-4o", PromptTokens: -1})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	svc.AttachQueue(&queueStub{err: fmt.Errorf("queue ai-usage: %w", jobs.ErrQueueFull)})
	_, err = svc.Ingest(context.Background(), RecordAIUsageRequest{Feature: models.AIFeatureChat, Model: "gpt-4o"})
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "INGEST_BUSY", appErr.Code)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.Status)
	assert.Equal(t, uint64(1), metrics.Snapshot().AIUsageDropped)
}

func TestAIUsageProcess(t *testing.T) {
	svc, repo, metrics := newAIUsageFixture()
	job := jobs.Job[models.AIUsageLog]{ID: "job-1", Payload: models.AIUsageLog{ID: "job-1", Model: "gpt-4o"}}

	require.NoError(t, svc.Process(context.Background(), job))
	assert.Equal(t, 1, repo.count())
	assert.Equal(t, uint64(1), metrics.Snapshot().AIUsageIngested)

	repo.insertErr = errors.New("connection reset")
	assert.Error(t, svc.Process(context.Background(), job))
	assert.Equal(t, uint64(1), metrics.Snapshot().AIUsageIngested)
}

func TestAIUsageIngestQueueStoresEntries(t *testing.T) {
	svc, repo, _ := newAIUsageFixture()
	queue := svc.NewIngestQueue(2, 16, 1)
	queue.Start(context.Background())

	for i := 0; i < 5; i++ {
		_, err := svc.Ingest(context.Background(), RecordAIUsageRequest{Feature: models.AIFeatureSummary, Model: "claude-3-haiku", PromptTokens: 100})
		require.NoError(t, err)
	}
	queue.Stop(time.Second)
	assert.Equal(t, 5, repo.count())
}

func TestAIUsageList(t *testing.T) {
	svc, repo, _ := newAIUsageFixture()

	_, _, err := svc.List(context.Background(), userActor(), models.AIUsageFilter{})
	assert.ErrorIs(t, err, appErrors.ErrForbidden)

	from, to := fixedNow, fixedNow.Add(-time.Hour)
	_, _, err = svc.List(context.Background(), adminActor(), models.AIUsageFilter{From: &from, To: &to})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	items, page, err := svc.List(context.Background(), adminActor(), models.AIUsageFilter{Model: "gpt-4o"})
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Equal(t, 50, page.PageSize)
	assert.Equal(t, "gpt-4o", repo.listFilter.Model)
}

func TestAIUsageSummary(t *testing.T) {
	svc, repo, _ := newAIUsageFixture()
	repo.totals = models.AIUsageTotals{Requests: 8, Failures: 1, CostUSD: 1.25}
	repo.byModel = []models.AIUsageBreakdown{{Key: "gpt-4o", Requests: 8}}
	repo.daily = []models.DailyCost{{Date: "2025-03-12", Requests: 8, CostUSD: 1.25}}

	summary, hit, err := svc.Summary(context.Background(), adminActor(), "7d")
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 0.125, summary.Totals.ErrorRate)
	assert.Equal(t, []string{"model", "feature"}, repo.columns)
	assert.Len(t, summary.ByModel, 1)
	assert.NotNil(t, summary.ByFeature)
	assert.NotNil(t, summary.TopUsers)
	require.Len(t, summary.Daily, 7)
	assert.Equal(t, 1.25, summary.Daily[4].CostUSD)
	assert.Zero(t, summary.Daily[0].Requests)

	_, _, err = svc.Summary(context.Background(), adminActor(), "weekly")
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}
