package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventUserLoggedIn   EventType = "user_logged_in"
	EventLoginFailed    EventType = "login_failed"
)

// Event represents an authentication event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	UserID    string    `json:"user_id,omitempty"`
	LoginCode string    `json:"login_code"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent stamps an event with an id and the current time.
func NewEvent(eventType EventType, userID, loginCode string) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		LoginCode: loginCode,
		Timestamp: time.Now().UTC(),
	}
}
