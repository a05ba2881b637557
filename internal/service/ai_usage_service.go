package service

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/studybuddy-api/internal/models"
	appErrors "github.com/noah-isme/studybuddy-api/pkg/errors"
	"github.com/noah-isme/studybuddy-api/pkg/jobs"
)

const topAIUsersLimit = 10

type aiUsageRepository interface {
	Insert(ctx context.Context, entry *models.AIUsageLog) error
	List(ctx context.Context, filter models.AIUsageFilter) ([]models.AIUsageLog, int, error)
	Totals(ctx context.Context, from, to time.Time) (models.AIUsageTotals, error)
	Breakdown(ctx context.Context, column string, from, to time.Time) ([]models.AIUsageBreakdown, error)
	TopUsers(ctx context.Context, from, to time.Time, limit int) ([]models.AIUserUsage, error)
	DailyCost(ctx context.Context, from, to time.Time) ([]models.DailyCost, error)
}

type usageQueue interface {
	TryEnqueue(job jobs.Job[models.AIUsageLog]) error
}

// RecordAIUsageRequest is posted by the assistant backend after each model call.
type RecordAIUsageRequest struct {
	ID               string           `json:"id" validate:"omitempty,uuid"`
	UserID           string           `json:"userId" validate:"omitempty,max=64"`
	Feature          models.AIFeature `json:"feature" validate:"required,oneof=CHAT FLASHCARDS QUIZ SUMMARY MEMORY MATCHING"`
	Model            string           `json:"model" validate:"required,max=100"`
	PromptTokens     int              `json:"promptTokens" validate:"min=0"`
	CompletionTokens int              `json:"completionTokens" validate:"min=0"`
	LatencyMs        int              `json:"latencyMs" validate:"min=0"`
	Success          *bool            `json:"success"`
	ErrorMessage     string           `json:"errorMessage" validate:"max=1000"`
	OccurredAt       *time.Time       `json:"occurredAt"`
}

// AIUsageService ingests and reports AI usage.
type AIUsageService struct {
	repo      aiUsageRepository
	queue     usageQueue
	prices    PriceTable
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewAIUsageService constructs the service. Build the worker pool with NewIngestQueue before Ingest.
func NewAIUsageService(repo aiUsageRepository, prices PriceTable, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *AIUsageService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if prices == nil {
		prices = DefaultPriceTable()
	}
	return &AIUsageService{repo: repo, prices: prices, cache: cache, metrics: metrics, validator: validate, logger: logger, now: time.Now}
}

// AttachQueue swaps the ingest queue, letting tests capture entries without workers.
func (s *AIUsageService) AttachQueue(queue usageQueue) {
	s.queue = queue
}

// NewIngestQueue builds the worker pool that persists usage entries.
func (s *AIUsageService) NewIngestQueue(workers, buffer, maxRetries int) *jobs.Queue[models.AIUsageLog] {
	q := jobs.NewQueue("ai-usage", s.Process, jobs.QueueConfig{
		Workers:    workers,
		BufferSize: buffer,
		MaxRetries: maxRetries,
		RetryDelay: 500 * time.Millisecond,
		Logger:     s.logger,
		OnDrop: func(jobID string, err error) {
			s.metrics.RecordAIUsage("dropped")
			s.logger.Error("ai usage entry dropped", zap.String("id", jobID), zap.Error(err))
		},
	})
	s.queue = q
	return q
}

// Ingest validates an entry, prices it and hands it to the worker pool.
func (s *AIUsageService) Ingest(ctx context.Context, req RecordAIUsageRequest) (*models.AIUsageLog, error) {
	if err := validateStruct(s.validator, req, "invalid usage payload"); err != nil {
		return nil, err
	}
	if s.queue == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "usage ingest is not running")
	}

	entry := models.AIUsageLog{
		ID:               req.ID,
		UserID:           stringPtr(req.UserID),
		Feature:          req.Feature,
		Model:            strings.TrimSpace(req.Model),
		PromptTokens:     req.PromptTokens,
		CompletionTokens: req.CompletionTokens,
		TotalTokens:      req.PromptTokens + req.CompletionTokens,
		LatencyMs:        req.LatencyMs,
		Success:          req.Success == nil || *req.Success,
		ErrorMessage:     stringPtr(req.ErrorMessage),
		CreatedAt:        s.now().UTC(),
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if req.OccurredAt != nil && !req.OccurredAt.IsZero() {
		entry.CreatedAt = req.OccurredAt.UTC()
	}
	entry.CostUSD = s.prices.Cost(entry.Model, entry.PromptTokens, entry.CompletionTokens)

	if err := s.queue.TryEnqueue(jobs.Job[models.AIUsageLog]{ID: entry.ID, Payload: entry}); err != nil {
		s.metrics.RecordAIUsage("dropped")
		if errors.Is(err, jobs.ErrQueueFull) {
			return nil, appErrors.New("INGEST_BUSY", http.StatusServiceUnavailable, "usage ingest is saturated, retry later")
		}
		return nil, appErrors.Internal(err, "failed to queue usage entry")
	}
	return &entry, nil
}

// Process persists one queued entry. Inserts are idempotent on id so retries are safe.
func (s *AIUsageService) Process(ctx context.Context, job jobs.Job[models.AIUsageLog]) error {
	entry := job.Payload
	start := time.Now()
	if err := s.repo.Insert(ctx, &entry); err != nil {
		s.metrics.RecordAIUsage("retry")
		return err
	}
	s.metrics.ObserveDBQuery("ai_usage_insert", time.Since(start))
	s.metrics.RecordAIUsage("stored")
	return nil
}

// List returns raw usage entries for admins.
func (s *AIUsageService) List(ctx context.Context, actor models.Actor, filter models.AIUsageFilter) ([]models.AIUsageLog, *models.Pagination, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, nil, err
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "to must not be before from")
	}
	filter.PageRequest = filter.PageRequest.Normalize(50, 200)
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list ai usage")
	}
	if items == nil {
		items = []models.AIUsageLog{}
	}
	return items, models.NewPagination(filter.Page, filter.PageSize, total), nil
}

// Summary aggregates usage for the range. The boolean reports a cache hit.
func (s *AIUsageService) Summary(ctx context.Context, actor models.Actor, rng string) (*models.AIUsageSummary, bool, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, false, err
	}
	r, err := parseRange(rng)
	if err != nil {
		return nil, false, err
	}
	summary, hit, err := cachedLoad(ctx, s.cache, "analytics:ai-usage:"+string(r), func(ctx context.Context) (*models.AIUsageSummary, error) {
		return s.buildSummary(ctx, r)
	})
	if err != nil {
		return nil, false, appErrors.Internal(err, "failed to summarise ai usage")
	}
	return summary, hit, nil
}

func (s *AIUsageService) buildSummary(ctx context.Context, r models.AnalyticsRange) (*models.AIUsageSummary, error) {
	from, to := rangeWindow(r, s.now().UTC())

	totals, err := s.repo.Totals(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if totals.Requests > 0 {
		totals.ErrorRate = math.Round(float64(totals.Failures)/float64(totals.Requests)*10000) / 10000
	}
	byModel, err := s.repo.Breakdown(ctx, "model", from, to)
	if err != nil {
		return nil, err
	}
	byFeature, err := s.repo.Breakdown(ctx, "feature", from, to)
	if err != nil {
		return nil, err
	}
	topUsers, err := s.repo.TopUsers(ctx, from, to, topAIUsersLimit)
	if err != nil {
		return nil, err
	}
	daily, err := s.repo.DailyCost(ctx, from, to)
	if err != nil {
		return nil, err
	}

	if byModel == nil {
		byModel = []models.AIUsageBreakdown{}
	}
	if byFeature == nil {
		byFeature = []models.AIUsageBreakdown{}
	}
	if topUsers == nil {
		topUsers = []models.AIUserUsage{}
	}
	return &models.AIUsageSummary{
		Range:     string(r),
		From:      from,
		To:        to,
		Totals:    totals,
		ByModel:   byModel,
		ByFeature: byFeature,
		TopUsers:  topUsers,
		Daily:     fillDailyCost(daily, from, to),
	}, nil
}

func fillDailyCost(points []models.DailyCost, from, to time.Time) []models.DailyCost {
	byDay := make(map[string]models.DailyCost, len(points))
	for _, p := range points {
		byDay[p.Date] = p
	}
	var out []models.DailyCost
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		key := d.Format(dayLayout)
		point := byDay[key]
		point.Date = key
		out = append(out, point)
	}
	return out
}
