package models

import (
	"time"

	"github.com/lib/pq"
)

// SkillLevel grades how advanced a learner is.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "BEGINNER"
	SkillIntermediate SkillLevel = "INTERMEDIATE"
	SkillAdvanced     SkillLevel = "ADVANCED"
	SkillExpert       SkillLevel = "EXPERT"
)

// StudyStyle describes a preferred way of learning.
type StudyStyle string

const (
	StudyStyleVisual      StudyStyle = "VISUAL"
	StudyStyleAuditory    StudyStyle = "AUDITORY"
	StudyStyleReading     StudyStyle = "READING"
	StudyStyleKinesthetic StudyStyle = "KINESTHETIC"
	StudyStyleMixed       StudyStyle = "MIXED"
)

// Profile holds the matching attributes of a user.
type Profile struct {
	UserID              string         `db:"user_id" json:"userId"`
	Bio                 *string        `db:"bio" json:"bio,omitempty"`
	School              *string        `db:"school" json:"school,omitempty"`
	Subjects            pq.StringArray `db:"subjects" json:"subjects"`
	Interests           pq.StringArray `db:"interests" json:"interests"`
	Goals               pq.StringArray `db:"goals" json:"goals"`
	SkillLevel          *SkillLevel    `db:"skill_level" json:"skillLevel,omitempty"`
	StudyStyle          *StudyStyle    `db:"study_style" json:"studyStyle,omitempty"`
	AvailableDays       pq.StringArray `db:"available_days" json:"availableDays"`
	Timezone            *string        `db:"timezone" json:"timezone,omitempty"`
	IsLookingForPartner bool           `db:"is_looking_for_partner" json:"isLookingForPartner"`
	UpdatedAt           time.Time      `db:"updated_at" json:"updatedAt"`
}

// PartnerSearchFilter scopes the partner search query.
type PartnerSearchFilter struct {
	RequesterID   string
	Query         string
	Subjects      []string
	Interests     []string
	SkillLevel    string
	StudyStyle    string
	School        string
	AvailableDays []string
	Timezone      string
	// RankSubjects and RankInterests come from the requester's profile and drive ordering.
	RankSubjects  []string
	RankInterests []string
	PageRequest
}

// PartnerCandidate is one row returned by partner search.
type PartnerCandidate struct {
	UserID          string         `db:"user_id" json:"userId"`
	Name            string         `db:"name" json:"name"`
	Username        *string        `db:"username" json:"username,omitempty"`
	AvatarURL       *string        `db:"avatar_url" json:"avatarUrl,omitempty"`
	Bio             *string        `db:"bio" json:"bio,omitempty"`
	School          *string        `db:"school" json:"school,omitempty"`
	Subjects        pq.StringArray `db:"subjects" json:"subjects"`
	Interests       pq.StringArray `db:"interests" json:"interests"`
	SkillLevel      *SkillLevel    `db:"skill_level" json:"skillLevel,omitempty"`
	StudyStyle      *StudyStyle    `db:"study_style" json:"studyStyle,omitempty"`
	AvailableDays   pq.StringArray `db:"available_days" json:"availableDays"`
	Timezone        *string        `db:"timezone" json:"timezone,omitempty"`
	LastActiveAt    *time.Time     `db:"last_active_at" json:"lastActiveAt,omitempty"`
	SharedSubjects  int            `db:"shared_subjects" json:"sharedSubjects"`
	SharedInterests int            `db:"shared_interests" json:"sharedInterests"`
	MatchScore      int            `db:"-" json:"matchScore"`
}
