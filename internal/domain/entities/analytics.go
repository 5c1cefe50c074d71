package entities

import "time"

// KindStats counts the records of one kind, broken down by status.
type KindStats struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"byStatus"`
}

// AnalyticsSnapshot backs the admin dashboard.
type AnalyticsSnapshot struct {
	Kinds              map[Kind]KindStats `json:"kinds"`
	RecentApplications int64              `json:"recentApplications"`
	UnreadMessages     int64              `json:"unreadMessages"`
	GeneratedAt        time.Time          `json:"generatedAt"`
}
