package models

import "time"

// StatCard is one tile on the dashboard.
type StatCard struct {
	Key   string  `json:"key"`
	Title string  `json:"title"`
	Value float64 `json:"value"`
	// Unit is "" for counts and "%" for growth.
	Unit string `json:"unit,omitempty"`
}

// Activity is one entry of the recent-activity feed.
type Activity struct {
	Action    string    `json:"action"`
	Resource  string    `json:"resource"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Actor     string    `json:"actor,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Dashboard is the body of GET /dashboard.
type Dashboard struct {
	Stats          []StatCard `json:"stats"`
	RecentActivity []Activity `json:"recentActivity"`
	GeneratedAt    time.Time  `json:"generatedAt"`
}
