package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/studybuddy-api/internal/models"
	appErrors "github.com/noah-isme/studybuddy-api/pkg/errors"
	"github.com/noah-isme/studybuddy-api/pkg/events"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// auditRecorder appends admin audit entries. Implementations log and swallow failures.
type auditRecorder interface {
	Record(ctx context.Context, actor models.Actor, action, targetType, targetID string, details interface{})
}

func validateStruct(v *validator.Validate, payload interface{}, message string) error {
	if err := v.Struct(payload); err != nil {
		return appErrors.Validation(err, message)
	}
	return nil
}

// lookupError maps sql.ErrNoRows to a NOT_FOUND with notFoundMsg, anything else to a 500.
func lookupError(err error, notFoundMsg, internalMsg string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, notFoundMsg)
	}
	return appErrors.Internal(err, internalMsg)
}

func requireAdmin(actor models.Actor) error {
	if actor.UserID == "" {
		return appErrors.ErrUnauthorized
	}
	if !actor.IsAdmin && !actor.IsSuperAdmin {
		return appErrors.Clone(appErrors.ErrForbidden, "admin access required")
	}
	return nil
}

func publishEvent(ctx context.Context, pub events.Publisher, logger *zap.Logger, evt events.Event) {
	if pub == nil {
		return
	}
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now().UTC()
	}
	if err := pub.Publish(ctx, evt); err != nil {
		logger.Warn("publish event failed", zap.String("type", evt.Type), zap.String("key", evt.Key), zap.Error(err))
	}
}

func stringPtr(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// InstrumentedPublisher counts publish outcomes before delegating.
type InstrumentedPublisher struct {
	next    events.Publisher
	metrics *MetricsService
}

// NewInstrumentedPublisher wraps next with publish counters.
func NewInstrumentedPublisher(next events.Publisher, metrics *MetricsService) *InstrumentedPublisher {
	return &InstrumentedPublisher{next: next, metrics: metrics}
}

// Publish implements events.Publisher.
func (p *InstrumentedPublisher) Publish(ctx context.Context, evt events.Event) error {
	err := p.next.Publish(ctx, evt)
	p.metrics.RecordEvent(evt.Type, err)
	return err
}

// Close implements events.Publisher.
func (p *InstrumentedPublisher) Close() error {
	return p.next.Close()
}
