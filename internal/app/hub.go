package app

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"traitor/internal/catalog"
	"traitor/internal/domain"
)

const (
	// DefaultTableCodeLength is the default length for table codes
	DefaultTableCodeLength = 4

	// DefaultStaleTableTimeout is how long an idle table without clients is kept
	DefaultStaleTableTimeout = 2 * time.Hour

	// cleanupInterval is how often stale tables are looked for
	cleanupInterval = 10 * time.Minute
)

// TableCodeChars are characters used for table codes (no ambiguous chars)
const TableCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// HubOptions configures a GameHub
type HubOptions struct {
	Settings          domain.GameSettings
	TableCodeLength   int
	StaleTableTimeout time.Duration
	Random            domain.Random // shared by all tables behind a lock; nil means domain.DefaultRandom
}

// GameHub manages all active tables
type GameHub struct {
	tables  map[string]*Table
	mu      sync.RWMutex
	opts    HubOptions
	catalog *catalog.Catalog
	logger  *slog.Logger
	done    chan struct{}
	once    sync.Once
}

// NewGameHub creates a new game hub
func NewGameHub(opts HubOptions, cat *catalog.Catalog, logger *slog.Logger) *GameHub {
	if opts.TableCodeLength <= 0 {
		opts.TableCodeLength = DefaultTableCodeLength
	}
	if opts.StaleTableTimeout <= 0 {
		opts.StaleTableTimeout = DefaultStaleTableTimeout
	}
	opts.Random = domain.NewLockedRandom(opts.Random)

	hub := &GameHub{
		tables:  make(map[string]*Table),
		opts:    opts,
		catalog: cat,
		logger:  logger,
		done:    make(chan struct{}),
	}

	// Start cleanup goroutine
	go hub.cleanupLoop()

	return hub
}

// Catalog returns the categories tables draw words from
func (h *GameHub) Catalog() *catalog.Catalog {
	return h.catalog
}

// CreateTable creates a new table and returns it
func (h *GameHub) CreateTable() (*Table, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Generate unique table code
	var code string
	for attempts := 0; attempts < 10; attempts++ {
		code = h.generateTableCode()
		if _, exists := h.tables[code]; !exists {
			break
		}
	}

	// Check if we found a unique code
	if _, exists := h.tables[code]; exists {
		return nil, fmt.Errorf("failed to generate unique table code")
	}

	table := NewTable(code, h.opts.Settings, h.catalog, h.opts.Random, h.logger)
	h.tables[code] = table

	h.logger.Info("table created", "tableCode", code)

	return table, nil
}

// GetTable returns a table by code
func (h *GameHub) GetTable(code string) (*Table, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	table, ok := h.tables[code]
	if !ok {
		return nil, domain.ErrTableNotFound
	}

	return table, nil
}

// DeleteTable removes a table
func (h *GameHub) DeleteTable(code string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if table, ok := h.tables[code]; ok {
		table.Close()
		delete(h.tables, code)
		h.logger.Info("table deleted", "tableCode", code)
	}
}

// GetTableCount returns the number of active tables
func (h *GameHub) GetTableCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.tables)
}

// GetTotalPlayerCount returns the total number of players across all tables
func (h *GameHub) GetTotalPlayerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, table := range h.tables {
		total += table.GetPlayerCount()
	}
	return total
}

// Close shuts down the hub and all tables
func (h *GameHub) Close() {
	h.once.Do(func() { close(h.done) })

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, table := range h.tables {
		table.Close()
	}
	h.tables = make(map[string]*Table)
}

// generateTableCode generates a random table code
func (h *GameHub) generateTableCode() string {
	b := make([]byte, h.opts.TableCodeLength)
	rand.Read(b)

	code := make([]byte, h.opts.TableCodeLength)
	for i := range code {
		code[i] = TableCodeChars[int(b[i])%len(TableCodeChars)]
	}

	return string(code)
}

// cleanupLoop periodically cleans up stale tables
func (h *GameHub) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case now := <-ticker.C:
			h.cleanupStaleTables(now)
		}
	}
}

// cleanupStaleTables removes tables nobody is connected to that have been idle too long
func (h *GameHub) cleanupStaleTables(now time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()

	stale := make([]string, 0)

	for code, table := range h.tables {
		if table.ClientCount() == 0 && now.Sub(table.LastActivity()) > h.opts.StaleTableTimeout {
			stale = append(stale, code)
		}
	}

	for _, code := range stale {
		if table, ok := h.tables[code]; ok {
			table.Close()
			delete(h.tables, code)
			h.logger.Info("stale table cleaned up", "tableCode", code)
		}
	}
}
