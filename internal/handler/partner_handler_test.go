package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/studybuddy-api/internal/models"
)

type partnerServiceStub struct {
	filter models.PartnerSearchFilter
}

func (s *partnerServiceStub) Search(ctx context.Context, filter models.PartnerSearchFilter) ([]models.PartnerCandidate, *models.Pagination, error) {
	s.filter = filter
	return []models.PartnerCandidate{{MatchScore: 75}}, models.NewPagination(1, 10, 1), nil
}

func TestPartnerHandlerSearch(t *testing.T) {
	stub := &partnerServiceStub{}
	h := NewPartnerHandler(stub)
	r := newRouter(plainUser)
	r.GET("/partners/search", h.Search)

	w := perform(r, http.MethodGet, "/partners/search?q=ada&subjects=math&subjects=physics&interests=chess&skillLevel=advanced&availableDays=MON&pageSize=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, plainUser.ID, stub.filter.RequesterID)
	assert.Equal(t, "ada", stub.filter.Query)
	assert.Equal(t, []string{"math", "physics"}, stub.filter.Subjects)
	assert.Equal(t, []string{"chess"}, stub.filter.Interests)
	assert.Equal(t, []string{"MON"}, stub.filter.AvailableDays)
	assert.Equal(t, 10, stub.filter.PageSize)

	env := decode(t, w)
	assert.Contains(t, string(env.Data), `"matchScore":75`)
	assert.Equal(t, 1, env.Pagination.TotalCount)
}

func TestPartnerHandlerRequiresUser(t *testing.T) {
	h := NewPartnerHandler(&partnerServiceStub{})
	r := newRouter(nil)
	r.GET("/partners/search", h.Search)
	assert.Equal(t, http.StatusUnauthorized, perform(r, http.MethodGet, "/partners/search", nil).Code)
}
