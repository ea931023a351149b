package ws

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"traitor/internal/app"
)

// Handler handles WebSocket connections
type Handler struct {
	hub      *app.GameHub
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *app.GameHub, logger *slog.Logger) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: logger,
	}
}

// ServeHTTP handles WebSocket upgrade requests
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tableCode := strings.ToUpper(r.URL.Query().Get("tableCode"))
	if tableCode == "" {
		http.Error(w, "tableCode is required", http.StatusBadRequest)
		return
	}

	table, err := h.hub.GetTable(tableCode)
	if err != nil {
		http.Error(w, "Table not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	clientID := uuid.New().String()
	client := NewClient(conn, table, h.hub.Catalog(), clientID, h.logger)
	table.RegisterClient(client)

	h.logger.Info("websocket connected",
		"tableCode", tableCode,
		"clientID", clientID,
	)

	client.sendConnected()
	client.Run()
}
