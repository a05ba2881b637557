package service

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/studybuddy-api/internal/models"
	appErrors "github.com/noah-isme/studybuddy-api/pkg/errors"
)

type partnerRepository interface {
	FindProfile(ctx context.Context, userID string) (*models.Profile, error)
	Search(ctx context.Context, filter models.PartnerSearchFilter) ([]models.PartnerCandidate, int, error)
}

// Match score weights. They add up to 100.
const (
	subjectWeight    = 50
	interestWeight   = 25
	skillLevelWeight = 15
	studyStyleWeight = 10
)

// PartnerService finds study partners for a user.
type PartnerService struct {
	repo        partnerRepository
	logger      *zap.Logger
	maxPageSize int
}

// NewPartnerService constructs the service.
func NewPartnerService(repo partnerRepository, logger *zap.Logger, maxPageSize int) *PartnerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxPageSize <= 0 {
		maxPageSize = 50
	}
	return &PartnerService{repo: repo, logger: logger, maxPageSize: maxPageSize}
}

// Search returns candidates ranked by overlap with the requester's profile.
func (s *PartnerService) Search(ctx context.Context, filter models.PartnerSearchFilter) ([]models.PartnerCandidate, *models.Pagination, error) {
	if filter.RequesterID == "" {
		return nil, nil, appErrors.ErrUnauthorized
	}
	if filter.PageSize > s.maxPageSize {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "pageSize exceeds the allowed maximum")
	}
	filter.PageRequest = filter.PageRequest.Normalize(defaultPageSize, s.maxPageSize)
	filter.Query = strings.TrimSpace(filter.Query)
	filter.Subjects = cleanList(filter.Subjects)
	filter.Interests = cleanList(filter.Interests)
	filter.AvailableDays = upperList(filter.AvailableDays)
	filter.SkillLevel = strings.ToUpper(strings.TrimSpace(filter.SkillLevel))
	filter.StudyStyle = strings.ToUpper(strings.TrimSpace(filter.StudyStyle))

	profile, err := s.repo.FindProfile(ctx, filter.RequesterID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Internal(err, "failed to load profile")
		}
		profile = &models.Profile{UserID: filter.RequesterID}
	}
	filter.RankSubjects = append([]string{}, profile.Subjects...)
	filter.RankInterests = append([]string{}, profile.Interests...)

	candidates, total, err := s.repo.Search(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to search partners")
	}
	if candidates == nil {
		candidates = []models.PartnerCandidate{}
	}
	for i := range candidates {
		candidates[i].MatchScore = MatchScore(profile, &candidates[i])
	}
	return candidates, models.NewPagination(filter.Page, filter.PageSize, total), nil
}

// MatchScore rates a candidate against the requester on a 0..100 scale.
func MatchScore(requester *models.Profile, candidate *models.PartnerCandidate) int {
	score := 0.0
	if n := len(requester.Subjects); n > 0 {
		score += subjectWeight * math.Min(1, float64(candidate.SharedSubjects)/float64(n))
	}
	if n := len(requester.Interests); n > 0 {
		score += interestWeight * math.Min(1, float64(candidate.SharedInterests)/float64(n))
	}
	if requester.SkillLevel != nil && candidate.SkillLevel != nil && *requester.SkillLevel == *candidate.SkillLevel {
		score += skillLevelWeight
	}
	if requester.StudyStyle != nil && candidate.StudyStyle != nil && *requester.StudyStyle == *candidate.StudyStyle {
		score += studyStyleWeight
	}
	rounded := int(math.Round(score))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}

func cleanList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func upperList(values []string) []string {
	out := cleanList(values)
	for i := range out {
		out[i] = strings.ToUpper(out[i])
	}
	return out
}
