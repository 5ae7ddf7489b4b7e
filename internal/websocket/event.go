package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents what happened to the entity
type EventType string

const (
	EventTypeCreated       EventType = "created"
	EventTypeStatusChanged EventType = "status_changed"
	EventTypeUploaded      EventType = "uploaded"
	EventTypeDeleted       EventType = "deleted"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeApplication EntityType = "application"
	EntityTypeDocument    EntityType = "document"
)

// Event represents a WebSocket event message sent to dashboard clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "application.status_changed"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "application"
	Payload   interface{} `json:"payload"`   // Full entity data
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// ApplicationCreated creates an application.created event
func ApplicationCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeApplication, payload)
}

// ApplicationStatusChanged creates an application.status_changed event
func ApplicationStatusChanged(payload interface{}) Event {
	return NewEvent(EventTypeStatusChanged, EntityTypeApplication, payload)
}

// DocumentUploaded creates a document.uploaded event
func DocumentUploaded(payload interface{}) Event {
	return NewEvent(EventTypeUploaded, EntityTypeDocument, payload)
}
