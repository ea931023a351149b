package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"traitor/internal/app"
	"traitor/internal/catalog"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096

	// Size of the send channel buffer
	sendBufferSize = 256
)

// Client is one screen connected to a table. Every client may drive the
// game; the table itself serializes the transitions.
type Client struct {
	conn     *websocket.Conn
	table    *app.Table
	catalog  *catalog.Catalog
	clientID string
	send     chan []byte
	done     chan struct{}
	logger   *slog.Logger
	mu       sync.Mutex
	closed   bool
}

// NewClient creates a new WebSocket client
func NewClient(conn *websocket.Conn, table *app.Table, cat *catalog.Catalog, clientID string, logger *slog.Logger) *Client {
	return &Client{
		conn:     conn,
		table:    table,
		catalog:  cat,
		clientID: clientID,
		send:     make(chan []byte, sendBufferSize),
		done:     make(chan struct{}),
		logger:   logger.With("tableCode", table.GetCode(), "clientID", clientID),
	}
}

// GetClientID returns the ID of this connection
func (c *Client) GetClientID() string {
	return c.clientID
}

// Send implements app.ClientConnection interface
func (c *Client) Send(message interface{}) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	select {
	case c.send <- data:
		return nil
	default:
		// Buffer full, message dropped
		c.logger.Warn("send buffer full, message dropped")
		return nil
	}
}

// Close implements app.ClientConnection interface
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true
	close(c.done)
	return c.conn.Close()
}

// Run starts the client's read and write pumps
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

// readPump pumps messages from the WebSocket connection
func (c *Client) readPump() {
	defer func() {
		c.table.UnregisterClient(c.clientID)
		c.Close()
		c.logger.Info("websocket disconnected")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Debug("websocket read error", "error", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// handleMessage processes an incoming message from the client
func (c *Client) handleMessage(data []byte) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sendError(ErrCodeInvalidMessage, "Invalid message format")
		return
	}

	var err error
	switch msg.Type {
	case MsgAddPlayer:
		var p AddPlayerPayload
		if !c.decode(msg.Payload, &p) {
			return
		}
		_, err = c.table.AddPlayer(p.Name)
	case MsgRemovePlayer:
		var p RemovePlayerPayload
		if !c.decode(msg.Payload, &p) {
			return
		}
		err = c.table.RemovePlayer(p.PlayerID)
	case MsgSelectCategories:
		var p SelectCategoriesPayload
		if !c.decode(msg.Payload, &p) {
			return
		}
		err = c.table.SelectCategories(p.CategoryIDs)
	case MsgToggleCategory:
		var p ToggleCategoryPayload
		if !c.decode(msg.Payload, &p) {
			return
		}
		err = c.table.ToggleCategory(p.CategoryID)
	case MsgSetTraitorCount:
		var p SetTraitorCountPayload
		if !c.decode(msg.Payload, &p) {
			return
		}
		err = c.table.SetTraitorCount(p.Count)
	case MsgStartGame:
		err = c.table.StartGame()
	case MsgAdvance:
		err = c.table.Advance()
	case MsgReveal:
		err = c.table.Reveal()
	case MsgReset:
		err = c.table.Reset()
	case MsgPing:
		c.sendPong()
	default:
		c.sendError(ErrCodeInvalidMessage, "Unknown message type")
	}

	if err != nil {
		code, message := errorCode(err)
		c.logger.Debug("command rejected", "type", msg.Type, "error", err)
		c.sendError(code, message)
	}
}

// decode unmarshals a command payload, answering with an error when it is malformed
func (c *Client) decode(payload json.RawMessage, v interface{}) bool {
	if len(payload) == 0 {
		c.sendError(ErrCodeInvalidMessage, "Payload is required")
		return false
	}
	if err := json.Unmarshal(payload, v); err != nil {
		c.sendError(ErrCodeInvalidMessage, "Invalid payload")
		return false
	}
	return true
}

// sendConnected sends the connected message to the client
func (c *Client) sendConnected() {
	payload := &ConnectedPayload{
		ClientID:   c.clientID,
		TableCode:  c.table.GetCode(),
		State:      c.table.View(),
		Categories: c.catalog.Summaries(),
	}

	c.Send(NewServerMessage(MsgConnected, payload))
}

// sendError sends an error message to the client
func (c *Client) sendError(code, message string) {
	payload := &ErrorPayload{
		Code:    code,
		Message: message,
	}

	c.Send(NewServerMessage(MsgError, payload))
}

// sendPong sends a pong message in response to ping
func (c *Client) sendPong() {
	c.Send(NewServerMessage(MsgPong, nil))
}
