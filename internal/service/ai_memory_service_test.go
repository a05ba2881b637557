package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/studybuddy-api/internal/models"
	appErrors "github.com/noah-isme/studybuddy-api/pkg/errors"
)

type aiMemoryRepoStub struct {
	memories map[string]models.AIMemory
	agg      models.AIMemoryAggregate
	counts   []models.KeyCount
	aggNow   time.Time
	cleared  int64
}

func (r *aiMemoryRepoStub) List(ctx context.Context, filter models.AIMemoryFilter) ([]models.AIMemory, int, error) {
	return nil, 0, nil
}

func (r *aiMemoryRepoStub) FindByID(ctx context.Context, id string) (*models.AIMemory, error) {
	m, ok := r.memories[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &m, nil
}

func (r *aiMemoryRepoStub) Aggregate(ctx context.Context, now time.Time) (models.AIMemoryAggregate, error) {
	r.aggNow = now
	return r.agg, nil
}

func (r *aiMemoryRepoStub) CountByCategory(ctx context.Context) ([]models.KeyCount, error) {
	return r.counts, nil
}

func (r *aiMemoryRepoStub) Delete(ctx context.Context, id string) error {
	if _, ok := r.memories[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.memories, id)
	return nil
}

func (r *aiMemoryRepoStub) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	return r.cleared, nil
}

func TestAIMemoryStats(t *testing.T) {
	repo := &aiMemoryRepoStub{
		agg:    models.AIMemoryAggregate{Total: 9, UsersWithData: 4, Expired: 2, AvgImportance: 3.14159},
		counts: []models.KeyCount{{Key: "FACT", Count: 6}, {Key: "GOAL", Count: 3}},
	}
	svc := NewAIMemoryService(repo, &auditSpy{}, nil)
	svc.now = clock

	stats, err := svc.Stats(context.Background(), adminActor())
	require.NoError(t, err)
	assert.Equal(t, 9, stats.Total)
	assert.Equal(t, 3.14, stats.AvgImportance)
	assert.Equal(t, map[string]int{"PREFERENCE": 0, "FACT": 6, "GOAL": 3, "CONTEXT": 0}, stats.ByCategory)
	assert.Equal(t, fixedNow, repo.aggNow)

	_, err = svc.Stats(context.Background(), userActor())
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}

func TestAIMemoryDelete(t *testing.T) {
	repo := &aiMemoryRepoStub{memories: map[string]models.AIMemory{
		"mem-1": {ID: "mem-1", UserID: "user-9", Category: models.AIMemoryGoal},
	}}
	audit := &auditSpy{}
	svc := NewAIMemoryService(repo, audit, nil)

	err := svc.Delete(context.Background(), adminActor(), "missing")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	require.NoError(t, svc.Delete(context.Background(), adminActor(), "mem-1"))
	require.Len(t, audit.entries, 1)
	assert.Equal(t, models.AuditActionAIMemoryDelete, audit.entries[0].Action)
	assert.Equal(t, "mem-1", audit.entries[0].TargetID)
	assert.Empty(t, repo.memories)
}

func TestAIMemoryClearUser(t *testing.T) {
	repo := &aiMemoryRepoStub{cleared: 7}
	audit := &auditSpy{}
	svc := NewAIMemoryService(repo, audit, nil)

	_, err := svc.ClearUser(context.Background(), adminActor(), "")
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	res, err := svc.ClearUser(context.Background(), adminActor(), "user-9")
	require.NoError(t, err)
	assert.Equal(t, int64(7), res.Deleted)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, models.AuditActionAIMemoryClear, audit.entries[0].Action)
	assert.Equal(t, models.AuditTargetUser, audit.entries[0].TargetType)
}

func TestAIMemoryListDefaults(t *testing.T) {
	svc := NewAIMemoryService(&aiMemoryRepoStub{}, &auditSpy{}, nil)
	items, page, err := svc.List(context.Background(), adminActor(), models.AIMemoryFilter{})
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Equal(t, defaultPageSize, page.PageSize)
}
