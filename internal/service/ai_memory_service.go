package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/studybuddy-api/internal/models"
	appErrors "github.com/noah-isme/studybuddy-api/pkg/errors"
)

type aiMemoryRepository interface {
	List(ctx context.Context, filter models.AIMemoryFilter) ([]models.AIMemory, int, error)
	FindByID(ctx context.Context, id string) (*models.AIMemory, error)
	Aggregate(ctx context.Context, now time.Time) (models.AIMemoryAggregate, error)
	CountByCategory(ctx context.Context) ([]models.KeyCount, error)
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}

// ClearMemoryResult reports how many memories were removed for a user.
type ClearMemoryResult struct {
	UserID  string `json:"userId"`
	Deleted int64  `json:"deleted"`
}

// AIMemoryService lets admins inspect and prune assistant memories.
type AIMemoryService struct {
	repo   aiMemoryRepository
	audit  auditRecorder
	logger *zap.Logger
	now    func() time.Time
}

// NewAIMemoryService constructs the service.
func NewAIMemoryService(repo aiMemoryRepository, audit auditRecorder, logger *zap.Logger) *AIMemoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AIMemoryService{repo: repo, audit: audit, logger: logger, now: time.Now}
}

// List returns memories, newest first.
func (s *AIMemoryService) List(ctx context.Context, actor models.Actor, filter models.AIMemoryFilter) ([]models.AIMemory, *models.Pagination, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, nil, err
	}
	filter.PageRequest = filter.PageRequest.Normalize(defaultPageSize, maxPageSize)
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list ai memories")
	}
	if items == nil {
		items = []models.AIMemory{}
	}
	return items, models.NewPagination(filter.Page, filter.PageSize, total), nil
}

// Stats summarises stored memories.
func (s *AIMemoryService) Stats(ctx context.Context, actor models.Actor) (*models.AIMemoryStats, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	agg, err := s.repo.Aggregate(ctx, s.now().UTC())
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load ai memory stats")
	}
	counts, err := s.repo.CountByCategory(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load ai memory stats")
	}
	stats := &models.AIMemoryStats{
		Total:         agg.Total,
		UsersWithData: agg.UsersWithData,
		Expired:       agg.Expired,
		AvgImportance: math.Round(agg.AvgImportance*100) / 100,
		ByCategory:    map[string]int{},
	}
	for _, c := range []models.AIMemoryCategory{models.AIMemoryPreference, models.AIMemoryFact, models.AIMemoryGoal, models.AIMemoryContext} {
		stats.ByCategory[string(c)] = 0
	}
	for _, c := range counts {
		stats.ByCategory[c.Key] += c.Count
	}
	return stats, nil
}

// Delete removes one memory.
func (s *AIMemoryService) Delete(ctx context.Context, actor models.Actor, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	memory, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return lookupError(err, "memory not found", "failed to load memory")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, "memory not found", "failed to delete memory")
	}
	s.audit.Record(ctx, actor, models.AuditActionAIMemoryDelete, models.AuditTargetAIMemory, id, map[string]interface{}{
		"userId": memory.UserID, "category": memory.Category,
	})
	return nil
}

// ClearUser removes every memory of a user.
func (s *AIMemoryService) ClearUser(ctx context.Context, actor models.Actor, userID string) (*ClearMemoryResult, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "userId is required")
	}
	deleted, err := s.repo.DeleteByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to clear memories")
	}
	s.audit.Record(ctx, actor, models.AuditActionAIMemoryClear, models.AuditTargetUser, userID, map[string]interface{}{
		"deleted": deleted,
	})
	s.logger.Info("ai memories cleared", zap.String("user_id", userID), zap.Int64("deleted", deleted))
	return &ClearMemoryResult{UserID: userID, Deleted: deleted}, nil
}
