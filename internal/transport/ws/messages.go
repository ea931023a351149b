package ws

import (
	"encoding/json"
	"errors"
	"time"

	"traitor/internal/domain"
)

// MessageType represents the type of WebSocket message
type MessageType string

// Client → Server message types
const (
	MsgAddPlayer        MessageType = "add_player"
	MsgRemovePlayer     MessageType = "remove_player"
	MsgSelectCategories MessageType = "select_categories"
	MsgToggleCategory   MessageType = "toggle_category"
	MsgSetTraitorCount  MessageType = "set_traitor_count"
	MsgStartGame        MessageType = "start_game"
	MsgAdvance          MessageType = "advance"
	MsgReveal           MessageType = "reveal"
	MsgReset            MessageType = "reset"
	MsgPing             MessageType = "ping"
)

// Server → Client message types. Table events are sent as domain.TableEvent.
const (
	MsgConnected MessageType = "connected"
	MsgError     MessageType = "error"
	MsgPong      MessageType = "pong"
)

// ClientMessage represents a message from client to server
type ClientMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ServerMessage represents a message from server to client
type ServerMessage struct {
	Type      MessageType `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// NewServerMessage creates a new server message with current timestamp
func NewServerMessage(msgType MessageType, payload interface{}) *ServerMessage {
	return &ServerMessage{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// Client message payloads

// AddPlayerPayload is the payload for add_player message
type AddPlayerPayload struct {
	Name string `json:"name"`
}

// RemovePlayerPayload is the payload for remove_player message
type RemovePlayerPayload struct {
	PlayerID string `json:"playerId"`
}

// SelectCategoriesPayload is the payload for select_categories message
type SelectCategoriesPayload struct {
	CategoryIDs []string `json:"categoryIds"`
}

// ToggleCategoryPayload is the payload for toggle_category message
type ToggleCategoryPayload struct {
	CategoryID string `json:"categoryId"`
}

// SetTraitorCountPayload is the payload for set_traitor_count message
type SetTraitorCountPayload struct {
	Count int `json:"count"`
}

// Server message payloads

// ConnectedPayload is the payload for connected message
type ConnectedPayload struct {
	ClientID   string                   `json:"clientId"`
	TableCode  string                   `json:"tableCode"`
	State      *domain.TableView        `json:"state"`
	Categories []domain.CategorySummary `json:"categories"`
}

// ErrorPayload is the payload for error message
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	ErrCodeInvalidMessage    = "INVALID_MESSAGE"
	ErrCodeInvalidAction     = "INVALID_ACTION"
	ErrCodeInvalidName       = "INVALID_NAME"
	ErrCodeTableFull         = "TABLE_FULL"
	ErrCodePlayerNotFound    = "PLAYER_NOT_FOUND"
	ErrCodeUnknownCategory   = "UNKNOWN_CATEGORY"
	ErrCodeNotEnoughPlayers  = "NOT_ENOUGH_PLAYERS"
	ErrCodeNoCategories      = "NO_CATEGORIES"
	ErrCodeNoWordsAvailable  = "NO_WORDS_AVAILABLE"
	ErrCodeInvalidTraitorCnt = "INVALID_TRAITOR_COUNT"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// errorCode maps a domain error to its wire code and message
func errorCode(err error) (string, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidPhase), errors.Is(err, domain.ErrInvalidTransition):
		return ErrCodeInvalidAction, "Not allowed in the current phase"
	case errors.Is(err, domain.ErrEmptyName):
		return ErrCodeInvalidName, "Name is required"
	case errors.Is(err, domain.ErrNameTooLong):
		return ErrCodeInvalidName, "Name is too long"
	case errors.Is(err, domain.ErrDuplicatePlayer):
		return ErrCodeInvalidName, "Player is already at the table"
	case errors.Is(err, domain.ErrTableFull):
		return ErrCodeTableFull, "Table is full"
	case errors.Is(err, domain.ErrPlayerNotFound):
		return ErrCodePlayerNotFound, "Player not found"
	case errors.Is(err, domain.ErrUnknownCategory):
		return ErrCodeUnknownCategory, "Unknown category"
	case errors.Is(err, domain.ErrNotEnoughPlayers):
		return ErrCodeNotEnoughPlayers, "Not enough players to start"
	case errors.Is(err, domain.ErrNoCategoriesSelected):
		return ErrCodeNoCategories, "Select at least one category"
	case errors.Is(err, domain.ErrNoWordsAvailable):
		return ErrCodeNoWordsAvailable, "Selected categories have no words"
	case errors.Is(err, domain.ErrInvalidTraitorCount):
		return ErrCodeInvalidTraitorCnt, "Invalid traitor count"
	default:
		return ErrCodeInternalError, err.Error()
	}
}
