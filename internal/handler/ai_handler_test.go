package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/studybuddy-api/internal/middleware"
	"github.com/noah-isme/studybuddy-api/internal/models"
	"github.com/noah-isme/studybuddy-api/internal/service"
	appErrors "github.com/noah-isme/studybuddy-api/pkg/errors"
)

type aiUsageStub struct {
	ingested   []service.RecordAIUsageRequest
	ingestErr  error
	summaryHit bool
	filter     models.AIUsageFilter
}

func (s *aiUsageStub) Ingest(ctx context.Context, req service.RecordAIUsageRequest) (*models.AIUsageLog, error) {
	if s.ingestErr != nil {
		return nil, s.ingestErr
	}
	s.ingested = append(s.ingested, req)
	return &models.AIUsageLog{ID: "usage-1", CostUSD: 0.0021}, nil
}

func (s *aiUsageStub) List(ctx context.Context, actor models.Actor, filter models.AIUsageFilter) ([]models.AIUsageLog, *models.Pagination, error) {
	s.filter = filter
	return []models.AIUsageLog{}, models.NewPagination(1, 20, 0), nil
}

func (s *aiUsageStub) Summary(ctx context.Context, actor models.Actor, rng string) (*models.AIUsageSummary, bool, error) {
	return &models.AIUsageSummary{Range: rng}, s.summaryHit, nil
}

type aiMemoryStub struct {
	deleted []string
	cleared string
}

func (s *aiMemoryStub) List(ctx context.Context, actor models.Actor, filter models.AIMemoryFilter) ([]models.AIMemory, *models.Pagination, error) {
	return []models.AIMemory{}, models.NewPagination(1, 20, 0), nil
}

func (s *aiMemoryStub) Stats(ctx context.Context, actor models.Actor) (*models.AIMemoryStats, error) {
	return &models.AIMemoryStats{Total: 12}, nil
}

func (s *aiMemoryStub) Delete(ctx context.Context, actor models.Actor, id string) error {
	if id == "missing" {
		return appErrors.Clone(appErrors.ErrNotFound, "memory not found")
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *aiMemoryStub) ClearUser(ctx context.Context, actor models.Actor, userID string) (*service.ClearMemoryResult, error) {
	s.cleared = userID
	return &service.ClearMemoryResult{UserID: userID, Deleted: 7}, nil
}

func aiRouter(user *models.User, usage *aiUsageStub, memory *aiMemoryStub) *gin.Engine {
	h := NewAIHandler(usage, memory)
	r := newRouter(user)
	r.POST("/internal/ai/usage", middleware.InternalKey("secret"), h.IngestUsage)
	r.GET("/admin/ai/usage", h.ListUsage)
	r.GET("/admin/ai/usage/summary", h.UsageSummary)
	r.GET("/admin/ai/memory", h.ListMemory)
	r.GET("/admin/ai/memory/stats", h.MemoryStats)
	r.DELETE("/admin/ai/memory/users/:userId", h.ClearUserMemory)
	r.DELETE("/admin/ai/memory/:id", h.DeleteMemory)
	return r
}

func TestAIHandlerIngest(t *testing.T) {
	payload := map[string]interface{}{"feature": "CHAT", "model": "gpt-4o-mini", "promptTokens": 1200, "completionTokens": 300}

	t.Run("accepted", func(t *testing.T) {
		usage := &aiUsageStub{}
		r := aiRouter(nil, usage, &aiMemoryStub{})
		req := newJSONRequest(http.MethodPost, "/internal/ai/usage", payload)
		req.Header.Set(middleware.InternalKeyHeader, "secret")
		w := serve(r, req)
		require.Equal(t, http.StatusAccepted, w.Code)
		assert.JSONEq(t, `{"id":"usage-1","costUsd":0.0021}`, string(decode(t, w).Data))
		require.Len(t, usage.ingested, 1)
		assert.Equal(t, 1200, usage.ingested[0].PromptTokens)
	})

	t.Run("wrong key", func(t *testing.T) {
		usage := &aiUsageStub{}
		req := newJSONRequest(http.MethodPost, "/internal/ai/usage", payload)
		req.Header.Set(middleware.InternalKeyHeader, "guess")
		w := serve(aiRouter(nil, usage, &aiMemoryStub{}), req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, usage.ingested)
	})

	t.Run("queue full", func(t *testing.T) {
		usage := &aiUsageStub{ingestErr: appErrors.New("INGEST_BUSY", http.StatusServiceUnavailable, "usage ingest is saturated")}
		req := newJSONRequest(http.MethodPost, "/internal/ai/usage", payload)
		req.Header.Set(middleware.InternalKeyHeader, "secret")
		w := serve(aiRouter(nil, usage, &aiMemoryStub{}), req)
		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "INGEST_BUSY", decode(t, w).Error.Code)
	})
}

func TestAIHandlerUsageAdmin(t *testing.T) {
	usage := &aiUsageStub{summaryHit: true}
	r := aiRouter(adminUser, usage, &aiMemoryStub{})

	w := perform(r, http.MethodGet, "/admin/ai/usage?feature=chat&model=gpt-4o&from=2025-03-01&to=2025-03-01", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "CHAT", usage.filter.Feature)
	require.NotNil(t, usage.filter.From)
	require.NotNil(t, usage.filter.To)
	assert.Equal(t, 24.0, usage.filter.To.Sub(*usage.filter.From).Hours())

	w = perform(r, http.MethodGet, "/admin/ai/usage/summary?range=7d", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w).Meta["cache_hit"])
}

func TestAIHandlerMemory(t *testing.T) {
	memory := &aiMemoryStub{}
	r := aiRouter(adminUser, &aiUsageStub{}, memory)

	w := perform(r, http.MethodGet, "/admin/ai/memory/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(decode(t, w).Data), `"total":12`)

	assert.Equal(t, http.StatusNoContent, perform(r, http.MethodDelete, "/admin/ai/memory/m1", nil).Code)
	assert.Equal(t, http.StatusNotFound, perform(r, http.MethodDelete, "/admin/ai/memory/missing", nil).Code)
	assert.Equal(t, []string{"m1"}, memory.deleted)

	w = perform(r, http.MethodDelete, "/admin/ai/memory/users/u42", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u42", memory.cleared)
	assert.JSONEq(t, `{"userId":"u42","deleted":7}`, string(decode(t, w).Data))
}
