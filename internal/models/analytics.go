package models

import "time"

// AnalyticsRange is one of the supported dashboard windows.
type AnalyticsRange string

const (
	AnalyticsRange7d  AnalyticsRange = "7d"
	AnalyticsRange30d AnalyticsRange = "30d"
	AnalyticsRange90d AnalyticsRange = "90d"
)

// Days returns the window length, or 0 for an unsupported range.
func (r AnalyticsRange) Days() int {
	switch r {
	case AnalyticsRange7d:
		return 7
	case AnalyticsRange30d:
		return 30
	case AnalyticsRange90d:
		return 90
	}
	return 0
}

// AnalyticsCounters are the scalar dashboard figures.
type AnalyticsCounters struct {
	TotalUsers       int     `db:"total_users" json:"totalUsers"`
	NewUsers         int     `db:"new_users" json:"newUsers"`
	ActiveUsers      int     `db:"active_users" json:"activeUsers"`
	BannedUsers      int     `db:"banned_users" json:"bannedUsers"`
	TotalGroups      int     `db:"total_groups" json:"totalGroups"`
	NewGroups        int     `db:"new_groups" json:"newGroups"`
	TotalMemberships int     `db:"total_memberships" json:"totalMemberships"`
	AvgGroupSize     float64 `db:"-" json:"avgGroupSize"`
	PendingReports   int     `db:"pending_reports" json:"pendingReports"`
	PendingFlags     int     `db:"pending_flags" json:"pendingFlags"`
	OpenFeedback     int     `db:"open_feedback" json:"openFeedback"`
	AIRequests       int     `db:"ai_requests" json:"aiRequests"`
	AICostUSD        float64 `db:"ai_cost_usd" json:"aiCostUsd"`
}

// DailyCount is one point of a daily series.
type DailyCount struct {
	Date  string `db:"day" json:"date"`
	Count int    `db:"count" json:"count"`
}

// AnalyticsOverview is the admin dashboard payload.
type AnalyticsOverview struct {
	Range         string            `json:"range"`
	From          time.Time         `json:"from"`
	To            time.Time         `json:"to"`
	Counters      AnalyticsCounters `json:"counters"`
	Signups       []DailyCount      `json:"signups"`
	GroupsCreated []DailyCount      `json:"groupsCreated"`
	TopSubjects   []KeyCount        `json:"topSubjects"`
	GeneratedAt   time.Time         `json:"generatedAt"`
}

// AnalyticsSystemMetrics represents instrumentation snapshots for observability endpoints.
type AnalyticsSystemMetrics struct {
	CacheHitRatio            float64   `json:"cacheHitRatio"`
	CacheHits                uint64    `json:"cacheHits"`
	CacheMisses              uint64    `json:"cacheMisses"`
	RequestsTotal            uint64    `json:"requestsTotal"`
	AverageRequestDurationMs float64   `json:"averageRequestDurationMs"`
	DBQueryCount             uint64    `json:"dbQueryCount"`
	AverageDBQueryDurationMs float64   `json:"averageDbQueryDurationMs"`
	AIUsageIngested          uint64    `json:"aiUsageIngested"`
	AIUsageDropped           uint64    `json:"aiUsageDropped"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generatedAt"`
}
