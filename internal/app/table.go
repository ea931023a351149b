package app

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"traitor/internal/catalog"
	"traitor/internal/domain"
)

// ClientConnection represents a connected client
type ClientConnection interface {
	Send(message interface{}) error
	GetClientID() string
	Close() error
}

// Table wraps one game with concurrency control and client management.
// The game state is replaced wholesale by each successful transition.
type Table struct {
	code      string
	state     domain.GameState
	catalog   *catalog.Catalog
	rng       domain.Random
	mu        sync.RWMutex
	clients   map[string]ClientConnection // clientID -> client
	clientsMu sync.RWMutex
	logger    *slog.Logger

	createdAt    time.Time
	lastActivity time.Time

	// Event channel for broadcasting
	events chan *domain.TableEvent
	done   chan struct{}
}

// NewTable creates a new table in SETUP
func NewTable(code string, settings domain.GameSettings, cat *catalog.Catalog, rng domain.Random, logger *slog.Logger) *Table {
	if rng == nil {
		rng = domain.DefaultRandom
	}

	// Selecting in SETUP cannot fail
	state, _ := domain.NewGameState(settings).SelectCategories(cat.DefaultSelection())

	now := time.Now()
	table := &Table{
		code:         code,
		state:        state,
		catalog:      cat,
		rng:          rng,
		clients:      make(map[string]ClientConnection),
		logger:       logger.With("tableCode", code),
		createdAt:    now,
		lastActivity: now,
		events:       make(chan *domain.TableEvent, 100),
		done:         make(chan struct{}),
	}

	// Start event broadcaster
	go table.eventLoop()

	return table
}

// GetCode returns the table code
func (t *Table) GetCode() string {
	return t.code
}

// GetCreatedAt returns when the table was created
func (t *Table) GetCreatedAt() time.Time {
	return t.createdAt
}

// LastActivity returns when the game state last changed
func (t *Table) LastActivity() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lastActivity
}

// State returns the current game state. Transitions never modify a state in
// place, so the returned value stays valid.
func (t *Table) State() domain.GameState {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// View returns the renderer-facing projection of the current state
func (t *Table) View() *domain.TableView {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state.View(t.code)
}

// GetPlayerCount returns the number of players
func (t *Table) GetPlayerCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.state.Players)
}

// GetPhase returns the current game phase
func (t *Table) GetPhase() domain.Phase {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state.Phase
}

// RegisterClient registers a client connection
func (t *Table) RegisterClient(client ClientConnection) {
	t.clientsMu.Lock()
	defer t.clientsMu.Unlock()
	t.clients[client.GetClientID()] = client
}

// UnregisterClient removes a client connection
func (t *Table) UnregisterClient(clientID string) {
	t.clientsMu.Lock()
	defer t.clientsMu.Unlock()
	delete(t.clients, clientID)
}

// GetClient returns a client by ID
func (t *Table) GetClient(clientID string) (ClientConnection, bool) {
	t.clientsMu.RLock()
	defer t.clientsMu.RUnlock()
	client, ok := t.clients[clientID]
	return client, ok
}

// ClientCount returns the number of connected clients
func (t *Table) ClientCount() int {
	t.clientsMu.RLock()
	defer t.clientsMu.RUnlock()
	return len(t.clients)
}

// AddPlayer seats a new player with a generated ID
func (t *Table) AddPlayer(name string) (domain.Player, error) {
	id := uuid.New().String()

	var player domain.Player
	err := t.apply("add player",
		func(s domain.GameState) (domain.GameState, error) {
			next, err := s.AddPlayer(id, name)
			if err != nil {
				return s, err
			}
			player = next.Players[len(next.Players)-1]
			return next, nil
		},
		func(domain.GameState) domain.EventType { return domain.EventPlayerAdded },
	)
	if err != nil {
		return domain.Player{}, err
	}

	return player, nil
}

// RemovePlayer removes a player from the roster
func (t *Table) RemovePlayer(playerID string) error {
	return t.apply("remove player",
		func(s domain.GameState) (domain.GameState, error) {
			return s.RemovePlayer(playerID)
		},
		func(domain.GameState) domain.EventType { return domain.EventPlayerRemoved },
	)
}

// SelectCategories replaces the category selection. Every id must exist in the catalog.
func (t *Table) SelectCategories(ids []string) error {
	if err := t.catalog.CheckIDs(ids); err != nil {
		return err
	}

	return t.apply("select categories",
		func(s domain.GameState) (domain.GameState, error) {
			return s.SelectCategories(ids)
		},
		func(domain.GameState) domain.EventType { return domain.EventSetupChanged },
	)
}

// ToggleCategory flips one category, keeping mix in step with the others
func (t *Table) ToggleCategory(id string) error {
	ids := t.catalog.IDs()
	return t.apply("toggle category",
		func(s domain.GameState) (domain.GameState, error) {
			return s.ToggleCategory(id, ids)
		},
		func(domain.GameState) domain.EventType { return domain.EventSetupChanged },
	)
}

// SetTraitorCount stores the traitor count, clamped to the roster
func (t *Table) SetTraitorCount(count int) error {
	return t.apply("set traitor count",
		func(s domain.GameState) (domain.GameState, error) {
			return s.SetTraitorCount(count)
		},
		func(domain.GameState) domain.EventType { return domain.EventSetupChanged },
	)
}

// StartGame starts a round with the table's roster, categories and traitor count
func (t *Table) StartGame() error {
	return t.apply("start game",
		func(s domain.GameState) (domain.GameState, error) {
			return s.Start(t.catalog.Categories(), t.rng)
		},
		func(domain.GameState) domain.EventType { return domain.EventRoundStarted },
	)
}

// Advance moves to the next peeker, or to PLAYING after the last one
func (t *Table) Advance() error {
	return t.apply("advance",
		func(s domain.GameState) (domain.GameState, error) {
			return s.Advance(t.rng)
		},
		func(next domain.GameState) domain.EventType {
			if next.Phase == domain.PhasePlaying {
				return domain.EventPlayingStarted
			}
			return domain.EventPeekAdvanced
		},
	)
}

// Reveal shows the secret word and the traitors
func (t *Table) Reveal() error {
	return t.apply("reveal",
		func(s domain.GameState) (domain.GameState, error) {
			return s.Reveal()
		},
		func(domain.GameState) domain.EventType { return domain.EventTraitorsRevealed },
	)
}

// Reset ends the round and returns the table to SETUP
func (t *Table) Reset() error {
	return t.apply("reset",
		func(s domain.GameState) (domain.GameState, error) {
			return s.Reset(), nil
		},
		func(domain.GameState) domain.EventType { return domain.EventRoundReset },
	)
}

// apply runs a transition under the lock and swaps the state in on success
func (t *Table) apply(op string, transition func(domain.GameState) (domain.GameState, error), event func(domain.GameState) domain.EventType) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	next, err := transition(t.state)
	if err != nil {
		t.logger.Debug("transition rejected", "op", op, "phase", t.state.Phase, "error", err)
		return err
	}

	prev := t.state.Phase
	t.state = next
	t.lastActivity = time.Now()

	t.logger.Info(op,
		"from", prev,
		"to", next.Phase,
		"players", len(next.Players),
	)

	t.queueEvent(domain.NewEvent(event(next), t.code, next.View(t.code)))
	return nil
}

// queueEvent adds an event to the broadcast queue
func (t *Table) queueEvent(event *domain.TableEvent) {
	select {
	case t.events <- event:
	default:
		t.logger.Warn("event queue full, dropping event", "type", event.Type)
	}
}

// eventLoop processes events and broadcasts to clients
func (t *Table) eventLoop() {
	for {
		select {
		case <-t.done:
			return
		case event := <-t.events:
			t.broadcastEvent(event)
		}
	}
}

// broadcastEvent sends an event to every client at the table
func (t *Table) broadcastEvent(event *domain.TableEvent) {
	t.clientsMu.RLock()
	defer t.clientsMu.RUnlock()

	for clientID, client := range t.clients {
		if err := client.Send(event); err != nil {
			t.logger.Debug("failed to send to client", "clientID", clientID, "error", err)
		}
	}
}

// Close shuts down the table
func (t *Table) Close() {
	select {
	case <-t.done:
		return // Already closed
	default:
		close(t.done)
	}

	// Close all client connections
	t.clientsMu.Lock()
	for _, client := range t.clients {
		client.Close()
	}
	t.clients = make(map[string]ClientConnection)
	t.clientsMu.Unlock()
}
