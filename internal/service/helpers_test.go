package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/noah-isme/studybuddy-api/internal/models"
	appErrors "github.com/noah-isme/studybuddy-api/pkg/errors"
	"github.com/noah-isme/studybuddy-api/pkg/events"
)

var fixedNow = time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type auditEntry struct {
	Actor      models.Actor
	Action     string
	TargetType string
	TargetID   string
	Details    interface{}
}

type auditSpy struct {
	entries []auditEntry
}

func (a *auditSpy) Record(ctx context.Context, actor models.Actor, action, targetType, targetID string, details interface{}) {
	a.entries = append(a.entries, auditEntry{Actor: actor, Action: action, TargetType: targetType, TargetID: targetID, Details: details})
}

func (a *auditSpy) actions() []string {
	out := make([]string, 0, len(a.entries))
	for _, e := range a.entries {
		out = append(out, e.Action)
	}
	return out
}

type publisherSpy struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *publisherSpy) Publish(ctx context.Context, evt events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}

func (p *publisherSpy) Close() error { return nil }

func (p *publisherSpy) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func adminActor() models.Actor {
	return models.Actor{UserID: "admin-1", IsAdmin: true, IPAddress: "10.0.0.1", UserAgent: "test"}
}

func superAdminActor() models.Actor {
	return models.Actor{UserID: "root-1", IsAdmin: true, IsSuperAdmin: true}
}

func userActor() models.Actor {
	return models.Actor{UserID: "user-1"}
}

func ptr[T any](v T) *T { return &v }

// memoryCache stores JSON payloads the way the redis repository does.
type memoryCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string][]byte{}}
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.items[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = raw
	return nil
}

func (c *memoryCache) DeleteByPattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
		}
	}
	return nil
}
