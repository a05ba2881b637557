package models

import "time"

// AIFeature names the product surface that issued an AI request.
type AIFeature string

const (
	AIFeatureChat       AIFeature = "CHAT"
	AIFeatureFlashcards AIFeature = "FLASHCARDS"
	AIFeatureQuiz       AIFeature = "QUIZ"
	AIFeatureSummary    AIFeature = "SUMMARY"
	AIFeatureMemory     AIFeature = "MEMORY"
	AIFeatureMatching   AIFeature = "MATCHING"
)

// AIUsageLog records one model call.
type AIUsageLog struct {
	ID               string    `db:"id" json:"id"`
	UserID           *string   `db:"user_id" json:"userId,omitempty"`
	Feature          AIFeature `db:"feature" json:"feature"`
	Model            string    `db:"model" json:"model"`
	PromptTokens     int       `db:"prompt_tokens" json:"promptTokens"`
	CompletionTokens int       `db:"completion_tokens" json:"completionTokens"`
	TotalTokens      int       `db:"total_tokens" json:"totalTokens"`
	CostUSD          float64   `db:"cost_usd" json:"costUsd"`
	LatencyMs        int       `db:"latency_ms" json:"latencyMs"`
	Success          bool      `db:"success" json:"success"`
	ErrorMessage     *string   `db:"error_message" json:"errorMessage,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
}

// AIUsageFilter scopes usage log listings.
type AIUsageFilter struct {
	UserID  string
	Model   string
	Feature string
	From    *time.Time
	To      *time.Time
	PageRequest
}

// AIUsageTotals are range-wide usage aggregates.
type AIUsageTotals struct {
	Requests     int     `db:"requests" json:"requests"`
	Failures     int     `db:"failures" json:"failures"`
	TotalTokens  int64   `db:"total_tokens" json:"totalTokens"`
	CostUSD      float64 `db:"cost_usd" json:"costUsd"`
	AvgLatencyMs float64 `db:"avg_latency_ms" json:"avgLatencyMs"`
	ErrorRate    float64 `db:"-" json:"errorRate"`
}

// AIUsageBreakdown is usage grouped by a single key such as model or feature.
type AIUsageBreakdown struct {
	Key         string  `db:"key" json:"key"`
	Requests    int     `db:"requests" json:"requests"`
	TotalTokens int64   `db:"total_tokens" json:"totalTokens"`
	CostUSD     float64 `db:"cost_usd" json:"costUsd"`
}

// AIUserUsage is usage per user.
type AIUserUsage struct {
	UserID      string  `db:"user_id" json:"userId"`
	Name        *string `db:"name" json:"name,omitempty"`
	Requests    int     `db:"requests" json:"requests"`
	TotalTokens int64   `db:"total_tokens" json:"totalTokens"`
	CostUSD     float64 `db:"cost_usd" json:"costUsd"`
}

// DailyCost is one point of the cost series.
type DailyCost struct {
	Date     string  `db:"day" json:"date"`
	Requests int     `db:"requests" json:"requests"`
	CostUSD  float64 `db:"cost_usd" json:"costUsd"`
}

// AIUsageSummary is the admin AI usage dashboard payload.
type AIUsageSummary struct {
	Range     string             `json:"range"`
	From      time.Time          `json:"from"`
	To        time.Time          `json:"to"`
	Totals    AIUsageTotals      `json:"totals"`
	ByModel   []AIUsageBreakdown `json:"byModel"`
	ByFeature []AIUsageBreakdown `json:"byFeature"`
	TopUsers  []AIUserUsage      `json:"topUsers"`
	Daily     []DailyCost        `json:"daily"`
}

// AIMemoryCategory classifies stored assistant memories.
type AIMemoryCategory string

const (
	AIMemoryPreference AIMemoryCategory = "PREFERENCE"
	AIMemoryFact       AIMemoryCategory = "FACT"
	AIMemoryGoal       AIMemoryCategory = "GOAL"
	AIMemoryContext    AIMemoryCategory = "CONTEXT"
)

// AIMemory is one remembered fact about a user.
type AIMemory struct {
	ID         string           `db:"id" json:"id"`
	UserID     string           `db:"user_id" json:"userId"`
	UserName   *string          `db:"user_name" json:"userName,omitempty"`
	Category   AIMemoryCategory `db:"category" json:"category"`
	Content    string           `db:"content" json:"content"`
	Importance int              `db:"importance" json:"importance"`
	Source     *string          `db:"source" json:"source,omitempty"`
	ExpiresAt  *time.Time       `db:"expires_at" json:"expiresAt,omitempty"`
	CreatedAt  time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time        `db:"updated_at" json:"updatedAt"`
}

// AIMemoryFilter scopes memory listings.
type AIMemoryFilter struct {
	UserID   string
	Category string
	PageRequest
}

// AIMemoryStats summarises stored memories.
type AIMemoryStats struct {
	Total         int            `json:"total"`
	UsersWithData int            `json:"usersWithData"`
	Expired       int            `json:"expired"`
	AvgImportance float64        `json:"avgImportance"`
	ByCategory    map[string]int `json:"byCategory"`
}

// AIMemoryAggregate is the scalar part of memory stats.
type AIMemoryAggregate struct {
	Total         int     `db:"total"`
	UsersWithData int     `db:"users_with_data"`
	Expired       int     `db:"expired"`
	AvgImportance float64 `db:"avg_importance"`
}

// KeyCount is a generic GROUP BY bucket.
type KeyCount struct {
	Key   string `db:"key" json:"key"`
	Count int    `db:"count" json:"count"`
}
