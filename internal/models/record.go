package models

import "time"

// Record is implemented by the pointer type of every persisted entity.
type Record interface {
	GetID() string
	Init(id string, now time.Time)
	Touch(now time.Time)
	MatchesSearch(q string) bool
}

// Toggleable records carry an isActive flag.
type Toggleable interface {
	ToggleActive()
}

// Resource names used in routes, events, metrics and the local blob.
const (
	ResourceContents   = "contents"
	ResourceCategories = "categories"
	ResourceStaff      = "manage-users"
	ResourceUsers      = "users"
	ResourceContacts   = "contacts"
)
