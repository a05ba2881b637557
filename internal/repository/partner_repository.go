package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/studybuddy-api/internal/models"
)

// PartnerRepository reads study profiles for partner matching.
type PartnerRepository struct {
	db *sqlx.DB
}

// NewPartnerRepository creates a new PartnerRepository.
func NewPartnerRepository(db *sqlx.DB) *PartnerRepository {
	return &PartnerRepository{db: db}
}

// FindProfile returns the study profile of a user.
func (r *PartnerRepository) FindProfile(ctx context.Context, userID string) (*models.Profile, error) {
	const query = `SELECT user_id, bio, school, subjects, interests, goals, skill_level, study_style, available_days, timezone, is_looking_for_partner, updated_at FROM profiles WHERE user_id = $1`
	var profile models.Profile
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return &profile, nil
}

// Search returns candidates matching the filter ordered by overlap with the requester's
// subjects and interests, then by recent activity.
func (r *PartnerRepository) Search(ctx context.Context, filter models.PartnerSearchFilter) ([]models.PartnerCandidate, int, error) {
	var c conditions
	c.add("u.id <> $%d", filter.RequesterID)
	c.raw("u.is_banned = FALSE")
	c.raw("p.is_looking_for_partner = TRUE")

	if filter.Query != "" {
		c.add("(LOWER(u.name) LIKE $%[1]d OR LOWER(COALESCE(u.username, '')) LIKE $%[1]d OR LOWER(COALESCE(p.bio, '')) LIKE $%[1]d OR LOWER(COALESCE(p.school, '')) LIKE $%[1]d)", likePattern(filter.Query))
	}
	if len(filter.Subjects) > 0 {
		c.add("p.subjects && $%d", pq.Array(filter.Subjects))
	}
	if len(filter.Interests) > 0 {
		c.add("p.interests && $%d", pq.Array(filter.Interests))
	}
	if filter.SkillLevel != "" {
		c.add("p.skill_level = $%d", filter.SkillLevel)
	}
	if filter.StudyStyle != "" {
		c.add("p.study_style = $%d", filter.StudyStyle)
	}
	if filter.School != "" {
		c.add("LOWER(COALESCE(p.school, '')) LIKE $%d", likePattern(filter.School))
	}
	if len(filter.AvailableDays) > 0 {
		c.add("p.available_days && $%d", pq.Array(filter.AvailableDays))
	}
	if filter.Timezone != "" {
		c.add("p.timezone = $%d", filter.Timezone)
	}

	base := ` FROM users u JOIN profiles p ON p.user_id = u.id` + c.where()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*)`+base, c.args...); err != nil {
		return nil, 0, fmt.Errorf("count partners: %w", err)
	}

	listArgs := append([]interface{}{}, c.args...)
	listArgs = append(listArgs, pq.Array(filter.RankSubjects), pq.Array(filter.RankInterests))
	subjectsArg := len(c.args) + 1
	interestsArg := len(c.args) + 2

	query := fmt.Sprintf(`SELECT u.id AS user_id, u.name, u.username, u.avatar_url, p.bio, p.school, p.subjects, p.interests, p.skill_level, p.study_style, p.available_days, p.timezone, u.last_active_at,
	(SELECT COUNT(*) FROM unnest(p.subjects) s WHERE s = ANY($%d)) AS shared_subjects,
	(SELECT COUNT(*) FROM unnest(p.interests) i WHERE i = ANY($%d)) AS shared_interests%s
	ORDER BY shared_subjects DESC, shared_interests DESC, u.last_active_at DESC NULLS LAST, u.created_at DESC
	LIMIT %d OFFSET %d`, subjectsArg, interestsArg, base, filter.PageSize, filter.Offset())

	var candidates []models.PartnerCandidate
	if err := r.db.SelectContext(ctx, &candidates, query, listArgs...); err != nil {
		return nil, 0, fmt.Errorf("search partners: %w", err)
	}
	return candidates, total, nil
}
