package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents what happened to the entity
type EventType string

const (
	EventTypeLoaded   EventType = "loaded"
	EventTypeReplaced EventType = "replaced"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeLedger EntityType = "ledger"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "ledger.replaced"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "ledger"
	Payload   interface{} `json:"payload"`   // Event data (ledger stats)
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

// LedgerLoaded creates a ledger.loaded event
func LedgerLoaded(payload interface{}) Event {
	return NewEvent(EventTypeLoaded, EntityTypeLedger, payload)
}

// LedgerReplaced creates a ledger.replaced event
func LedgerReplaced(payload interface{}) Event {
	return NewEvent(EventTypeReplaced, EntityTypeLedger, payload)
}
