package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types sent by clients.
const (
	EventTypePing = "ping"
)

// Event types pushed by the server.
const (
	EventTypeUserCreated = "user.created"
	EventTypeUserUpdated = "user.updated"
	EventTypeUserDeleted = "user.deleted"
	EventTypePong        = "pong"
	EventTypeError       = "error"
)

// Event is the envelope of every message on the event stream.
type Event struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"ts,omitempty"`
}

// IsUserChange reports whether the event announces a created, updated or
// deleted user.
func (e Event) IsUserChange() bool {
	switch e.Type {
	case EventTypeUserCreated, EventTypeUserUpdated, EventTypeUserDeleted:
		return true
	}
	return false
}

type UserDeletedPayload struct {
	ID uuid.UUID `json:"id"`
}

type EventErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewEvent stamps an event with the current time and encodes payload.
func NewEvent(eventType string, payload any) (*Event, error) {
	evt := &Event{Type: eventType, Timestamp: time.Now().Unix()}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		evt.Payload = data
	}
	return evt, nil
}
