package domain

import "time"

// EventType represents the type of table event
type EventType string

const (
	EventPlayerAdded      EventType = "PLAYER_ADDED"
	EventPlayerRemoved    EventType = "PLAYER_REMOVED"
	EventSetupChanged     EventType = "SETUP_CHANGED"
	EventRoundStarted     EventType = "ROUND_STARTED"
	EventPeekAdvanced     EventType = "PEEK_ADVANCED"
	EventPlayingStarted   EventType = "PLAYING_STARTED"
	EventTraitorsRevealed EventType = "TRAITORS_REVEALED"
	EventRoundReset       EventType = "ROUND_RESET"
)

// TableEvent represents something that happened at a table. The payload is
// the table view after the change.
type TableEvent struct {
	Type      EventType  `json:"type"`
	TableCode string     `json:"tableCode"`
	Payload   *TableView `json:"payload,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

// NewEvent creates a new table event
func NewEvent(eventType EventType, tableCode string, view *TableView) *TableEvent {
	return &TableEvent{
		Type:      eventType,
		TableCode: tableCode,
		Payload:   view,
		Timestamp: time.Now(),
	}
}
