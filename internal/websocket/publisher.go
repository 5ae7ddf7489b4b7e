package websocket

import "github.com/google/uuid"

// EventPublisher abstracts event broadcasting so services can publish
// without depending on the concrete hub. Tests use NoOpPublisher.
type EventPublisher interface {
	Publish(agentID uuid.UUID, event Event)
}

// HubPublisher publishes events through a Hub.
type HubPublisher struct {
	hub *Hub
}

// NewHubPublisher creates a publisher backed by the given hub.
func NewHubPublisher(hub *Hub) *HubPublisher {
	return &HubPublisher{hub: hub}
}

// Publish broadcasts the event to all of the agent's dashboard clients.
func (p *HubPublisher) Publish(agentID uuid.UUID, event Event) {
	p.hub.Broadcast(agentID, event)
}

// NoOpPublisher discards all events.
type NoOpPublisher struct{}

// Publish does nothing.
func (NoOpPublisher) Publish(uuid.UUID, Event) {}
