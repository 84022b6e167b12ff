// Package events publishes catalog lifecycle events to a Redis stream.
package events

import (
	"time"

	"github.com/google/uuid"
)

// DefaultStream is used when no stream name is configured.
const DefaultStream = "content-events"

// EventType is the lifecycle transition an event reports.
type EventType string

const (
	Created  EventType = "CREATED"
	Updated  EventType = "UPDATED"
	Deleted  EventType = "DELETED"
	Enabled  EventType = "ENABLED"
	Disabled EventType = "DISABLED"
	Imported EventType = "IMPORTED"
)

// ToggleType maps the new isActive value to Enabled or Disabled.
func ToggleType(active bool) EventType {
	if active {
		return Enabled
	}
	return Disabled
}

// Event is the envelope written under the "event" field of each stream entry.
type Event struct {
	EventID    uuid.UUID `json:"event_id"`
	EventType  EventType `json:"event_type"`
	Resource   string    `json:"resource"`
	ResourceID string    `json:"resource_id"`
	Name       string    `json:"name,omitempty"`
	Actor      string    `json:"actor,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	Payload    any       `json:"payload,omitempty"`
}

// ImportedPayload summarizes a spreadsheet import.
type ImportedPayload struct {
	FileName string `json:"file_name"`
	Created  int    `json:"created"`
	Failed   int    `json:"failed"`
}
