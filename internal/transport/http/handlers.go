package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/skip2/go-qrcode"

	"traitor/internal/app"
	"traitor/internal/domain"
)

// qrSize is the edge length of invite QR codes, in pixels
const qrSize = 320

// Response is a standard API response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo contains error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CreateTableResponse is the response for table creation
type CreateTableResponse struct {
	TableCode  string `json:"tableCode"`
	InviteLink string `json:"inviteLink"`
	QRLink     string `json:"qrLink"`
}

// GetTableResponse is the response for getting table info
type GetTableResponse struct {
	TableCode   string `json:"tableCode"`
	PlayerCount int    `json:"playerCount"`
	Phase       string `json:"phase"`
	Clients     int    `json:"clients"`
}

// TableExistsResponse is the response for checking if a table exists
type TableExistsResponse struct {
	Exists bool `json:"exists"`
}

// HealthResponse is the response for health check
type HealthResponse struct {
	Status string `json:"status"`
}

// StatsResponse is the response for stats endpoint
type StatsResponse struct {
	ActiveTables int `json:"activeTables"`
	TotalPlayers int `json:"totalPlayers"`
}

// handleCreateTable handles POST /api/tables
func (s *Server) handleCreateTable(w http.ResponseWriter, r *http.Request) {
	table, err := s.hub.CreateTable()
	if err != nil {
		s.logger.Error("failed to create table", "error", err)
		s.sendError(w, http.StatusInternalServerError, "CREATION_FAILED", "Failed to create table")
		return
	}

	base := baseURL(r)
	s.sendSuccess(w, &CreateTableResponse{
		TableCode:  table.GetCode(),
		InviteLink: s.inviteLink(r, table.GetCode()),
		QRLink:     base + "/api/tables/" + table.GetCode() + "/qr",
	})
}

// handleGetTable handles GET /api/tables/{tableCode}
func (s *Server) handleGetTable(w http.ResponseWriter, r *http.Request) {
	table, ok := s.lookupTable(w, r)
	if !ok {
		return
	}

	s.sendSuccess(w, &GetTableResponse{
		TableCode:   table.GetCode(),
		PlayerCount: table.GetPlayerCount(),
		Phase:       string(table.GetPhase()),
		Clients:     table.ClientCount(),
	})
}

// handleTableExists handles GET /api/tables/{tableCode}/exists
func (s *Server) handleTableExists(w http.ResponseWriter, r *http.Request) {
	_, err := s.hub.GetTable(strings.ToUpper(r.PathValue("tableCode")))

	s.sendSuccess(w, &TableExistsResponse{
		Exists: err == nil,
	})
}

// handleTableState handles GET /api/tables/{tableCode}/state
func (s *Server) handleTableState(w http.ResponseWriter, r *http.Request) {
	table, ok := s.lookupTable(w, r)
	if !ok {
		return
	}

	s.sendSuccess(w, table.View())
}

// handleTableQR handles GET /api/tables/{tableCode}/qr
func (s *Server) handleTableQR(w http.ResponseWriter, r *http.Request) {
	table, ok := s.lookupTable(w, r)
	if !ok {
		return
	}

	png, err := qrcode.Encode(s.inviteLink(r, table.GetCode()), qrcode.Medium, qrSize)
	if err != nil {
		s.logger.Error("qr generation failed", "tableCode", table.GetCode(), "error", err)
		s.sendError(w, http.StatusInternalServerError, "QR_FAILED", "QR generation failed")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(png)
}

// handleCategories handles GET /api/categories
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, s.hub.Catalog().Summaries())
}

// handleHealth handles GET /api/health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, &HealthResponse{
		Status: "ok",
	})
}

// handleStats handles GET /api/stats
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.sendSuccess(w, &StatsResponse{
		ActiveTables: s.hub.GetTableCount(),
		TotalPlayers: s.hub.GetTotalPlayerCount(),
	})
}

// lookupTable resolves the {tableCode} path value, writing the error response itself
func (s *Server) lookupTable(w http.ResponseWriter, r *http.Request) (*app.Table, bool) {
	code := strings.ToUpper(r.PathValue("tableCode"))
	if code == "" {
		s.sendError(w, http.StatusBadRequest, "MISSING_TABLE_CODE", "Table code is required")
		return nil, false
	}

	table, err := s.hub.GetTable(code)
	if err != nil {
		if errors.Is(err, domain.ErrTableNotFound) {
			s.sendError(w, http.StatusNotFound, "TABLE_NOT_FOUND", "Table not found")
		} else {
			s.sendError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
		}
		return nil, false
	}

	return table, true
}

// baseURL derives scheme and host of the request, respecting X-Forwarded-Proto
func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

// inviteLink is the URL players open to join a table: the configured
// renderer join page, or this server's table endpoint
func (s *Server) inviteLink(r *http.Request, code string) string {
	if s.config.Server.JoinURL != "" {
		return s.config.Server.JoinURL + "/" + code
	}
	return baseURL(r) + "/api/tables/" + code
}

// sendSuccess sends a successful JSON response
func (s *Server) sendSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(&Response{
		Success: true,
		Data:    data,
	})
}

// sendError sends an error JSON response
func (s *Server) sendError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(&Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	})
}
