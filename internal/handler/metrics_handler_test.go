package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/studybuddy-api/internal/service"
)

func TestMetricsHandlerReady(t *testing.T) {
	ok := PingerFunc(func(ctx context.Context) error { return nil })
	down := PingerFunc(func(ctx context.Context) error { return errors.New("connection refused") })

	cases := []struct {
		name   string
		checks map[string]Pinger
		status int
		state  string
	}{
		{"all healthy", map[string]Pinger{"database": ok, "redis": ok}, http.StatusOK, "ready"},
		{"redis down", map[string]Pinger{"database": ok, "redis": down}, http.StatusServiceUnavailable, "degraded"},
		{"no checks", nil, http.StatusOK, "ready"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			h := NewMetricsHandler(service.NewMetricsService(), tc.checks)
			r := gin.New()
			r.GET("/ready", h.Ready)

			w := perform(r, http.MethodGet, "/ready", nil)
			require.Equal(t, tc.status, w.Code)
			var body struct {
				Status string            `json:"status"`
				Checks map[string]string `json:"checks"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.state, body.Status)
			if tc.name == "redis down" {
				assert.Equal(t, "connection refused", body.Checks["redis"])
				assert.Equal(t, "ok", body.Checks["database"])
			}
		})
	}
}

func TestMetricsHandlerPrometheus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	metrics.RecordAIUsage("ingested")
	h := NewMetricsHandler(metrics, nil)
	r := gin.New()
	r.GET("/metrics", h.Prometheus)
	r.GET("/health", h.Health)

	w := perform(r, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `ai_usage_ingest_total{result="ingested"} 1`)

	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/health", nil).Code)
}
