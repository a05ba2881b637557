package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	appErrors "github.com/noah-isme/studybuddy-api/pkg/errors"
)

func TestCacheRepositoryWithoutClient(t *testing.T) {
	repo := NewCacheRepository(nil, "studybuddy:", nil)
	ctx := context.Background()

	var dest map[string]int
	assert.ErrorIs(t, repo.Get(ctx, "analytics:30d", &dest), appErrors.ErrCacheMiss)
	assert.NoError(t, repo.Set(ctx, "analytics:30d", map[string]int{"users": 1}, time.Minute))
	assert.NoError(t, repo.DeleteByPattern(ctx, "analytics:*"))
	assert.NoError(t, repo.Ping(ctx))
	assert.NoError(t, repo.Close())
	assert.Equal(t, "studybuddy:analytics:7d", repo.key("analytics:7d"))
}
