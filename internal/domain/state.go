package domain

import (
	"fmt"
	"slices"
)

// GameSettings holds configurable table parameters
type GameSettings struct {
	MinPlayers int `json:"minPlayers"`
	MaxPlayers int `json:"maxPlayers"`
}

// DefaultGameSettings returns the default game settings
func DefaultGameSettings() GameSettings {
	return GameSettings{
		MinPlayers: 3,
		MaxPlayers: 20,
	}
}

// GameState is the authoritative state of one table. Transitions are value
// methods returning the next state; on error the receiver is returned as is.
type GameState struct {
	Phase               Phase        `json:"phase"`
	Players             []Player     `json:"players"`
	CurrentPeekIndex    int          `json:"currentPeekIndex"`
	SecretWord          Word         `json:"secretWord"`
	SelectedCategoryIDs []string     `json:"selectedCategoryIds"`
	TraitorCount        int          `json:"traitorCount"`
	StartingPlayerID    string       `json:"startingPlayerId,omitempty"`
	Settings            GameSettings `json:"settings"`
}

// NewGameState creates an empty table in SETUP
func NewGameState(settings GameSettings) GameState {
	return GameState{
		Phase:               PhaseSetup,
		Players:             []Player{},
		SelectedCategoryIDs: []string{},
		TraitorCount:        1,
		Settings:            settings,
	}
}

// clone copies the slices so the returned state shares nothing with s
func (s GameState) clone() GameState {
	next := s
	next.Players = make([]Player, len(s.Players))
	copy(next.Players, s.Players)
	next.SelectedCategoryIDs = make([]string, len(s.SelectedCategoryIDs))
	copy(next.SelectedCategoryIDs, s.SelectedCategoryIDs)
	return next
}

// AddPlayer appends a player to the roster
func (s GameState) AddPlayer(id, name string) (GameState, error) {
	if s.Phase != PhaseSetup {
		return s, ErrInvalidPhase
	}

	name, err := NormalizeName(name)
	if err != nil {
		return s, err
	}

	if indexOfPlayer(s.Players, id) >= 0 {
		return s, ErrDuplicatePlayer
	}

	if s.Settings.MaxPlayers > 0 && len(s.Players) >= s.Settings.MaxPlayers {
		return s, ErrTableFull
	}

	next := s.clone()
	next.Players = append(next.Players, NewPlayer(id, name))
	next.TraitorCount = ClampTraitorCount(next.TraitorCount, len(next.Players))
	return next, nil
}

// RemovePlayer drops a player from the roster
func (s GameState) RemovePlayer(id string) (GameState, error) {
	if s.Phase != PhaseSetup {
		return s, ErrInvalidPhase
	}

	idx := indexOfPlayer(s.Players, id)
	if idx < 0 {
		return s, ErrPlayerNotFound
	}

	next := s.clone()
	next.Players = append(next.Players[:idx], next.Players[idx+1:]...)
	next.TraitorCount = ClampTraitorCount(next.TraitorCount, len(next.Players))
	return next, nil
}

// SelectCategories replaces the category selection. Duplicates are dropped.
func (s GameState) SelectCategories(ids []string) (GameState, error) {
	if s.Phase != PhaseSetup {
		return s, ErrInvalidPhase
	}

	next := s.clone()
	next.SelectedCategoryIDs = uniqueIDs(ids)
	return next, nil
}

// ToggleCategory flips one category in the selection. categoryIDs lists every
// category in display order, the mix category first. Toggling mix selects or
// clears everything; mix stays selected exactly when every other category is.
func (s GameState) ToggleCategory(id string, categoryIDs []string) (GameState, error) {
	if s.Phase != PhaseSetup {
		return s, ErrInvalidPhase
	}
	if !slices.Contains(categoryIDs, id) {
		return s, fmt.Errorf("%w: %q", ErrUnknownCategory, id)
	}

	selected := make(map[string]bool, len(categoryIDs))
	for _, sel := range s.SelectedCategoryIDs {
		selected[sel] = true
	}

	mixID := categoryIDs[0]
	if id == mixID {
		on := !selected[mixID]
		for _, c := range categoryIDs {
			selected[c] = on
		}
	} else {
		selected[id] = !selected[id]
		all := true
		for _, c := range categoryIDs[1:] {
			if !selected[c] {
				all = false
				break
			}
		}
		selected[mixID] = all
	}

	next := s.clone()
	next.SelectedCategoryIDs = make([]string, 0, len(categoryIDs))
	for _, c := range categoryIDs {
		if selected[c] {
			next.SelectedCategoryIDs = append(next.SelectedCategoryIDs, c)
		}
	}
	return next, nil
}

// SetTraitorCount stores the requested traitor count, clamped to the roster
func (s GameState) SetTraitorCount(count int) (GameState, error) {
	if s.Phase != PhaseSetup {
		return s, ErrInvalidPhase
	}

	next := s.clone()
	next.TraitorCount = ClampTraitorCount(count, len(next.Players))
	return next, nil
}

// MissingPlayers returns how many more players are needed to start
func (s GameState) MissingPlayers() int {
	missing := s.Settings.MinPlayers - len(s.Players)
	if missing < 0 {
		return 0
	}
	return missing
}

// CanStart checks if the round can be started from the table's own setup
func (s GameState) CanStart() bool {
	return s.Phase == PhaseSetup &&
		len(s.Players) >= 2 &&
		s.MissingPlayers() == 0 &&
		len(s.SelectedCategoryIDs) > 0
}

// StartGame begins a round: it resolves the word pool, picks the secret
// word, assigns roles and moves to PEEK at index 0. players is not mutated.
func (s GameState) StartGame(categories []Category, players []Player, categoryIDs []string, traitorCount int, rng Random) (GameState, error) {
	if s.Phase != PhaseSetup {
		return s, fmt.Errorf("start game from %s: %w", s.Phase, ErrInvalidTransition)
	}

	if len(players) < 2 || len(players) < s.Settings.MinPlayers {
		return s, ErrNotEnoughPlayers
	}

	ids := uniqueIDs(categoryIDs)
	if len(ids) == 0 {
		return s, ErrNoCategoriesSelected
	}

	pool, err := ResolvePool(categories, ids)
	if err != nil {
		return s, err
	}

	word, err := PickWord(pool, rng)
	if err != nil {
		return s, err
	}

	traitorCount = ClampTraitorCount(traitorCount, len(players))
	assigned, err := AssignRoles(clearRoles(players), traitorCount, rng)
	if err != nil {
		return s, err
	}

	next := s.clone()
	next.Phase = PhasePeek
	next.Players = assigned
	next.CurrentPeekIndex = 0
	next.SecretWord = word
	next.SelectedCategoryIDs = ids
	next.TraitorCount = traitorCount
	next.StartingPlayerID = ""
	return next, nil
}

// Start begins a round with the table's own roster, selection and count
func (s GameState) Start(categories []Category, rng Random) (GameState, error) {
	return s.StartGame(categories, s.Players, s.SelectedCategoryIDs, s.TraitorCount, rng)
}

// IsLastPeek reports whether the current peeker is the last player
func (s GameState) IsLastPeek() bool {
	return s.Phase == PhasePeek && s.CurrentPeekIndex == len(s.Players)-1
}

// CurrentPeeker returns the player whose turn it is to peek
func (s GameState) CurrentPeeker() (Player, bool) {
	if s.Phase != PhasePeek || s.CurrentPeekIndex < 0 || s.CurrentPeekIndex >= len(s.Players) {
		return Player{}, false
	}
	return s.Players[s.CurrentPeekIndex], true
}

// Advance hands the device to the next peeker. After the last peeker the
// game moves to PLAYING and a starting player is drawn.
func (s GameState) Advance(rng Random) (GameState, error) {
	if !s.Phase.CanTransitionTo(PhasePlaying) {
		return s, fmt.Errorf("advance from %s: %w", s.Phase, ErrInvalidTransition)
	}

	next := s.clone()
	if !s.IsLastPeek() {
		next.CurrentPeekIndex++
		return next, nil
	}

	next.Phase = PhasePlaying
	next.StartingPlayerID = next.Players[rng.IntN(len(next.Players))].ID
	return next, nil
}

// Reveal shows the secret word and the traitors
func (s GameState) Reveal() (GameState, error) {
	if !s.Phase.CanTransitionTo(PhaseReveal) {
		return s, fmt.Errorf("reveal from %s: %w", s.Phase, ErrInvalidTransition)
	}

	next := s.clone()
	next.Phase = PhaseReveal
	return next, nil
}

// Reset ends the round and returns to SETUP. The roster, the category
// selection and the traitor count are kept for the next round.
func (s GameState) Reset() GameState {
	next := s.clone()
	next.Phase = PhaseSetup
	next.Players = clearRoles(s.Players)
	next.CurrentPeekIndex = 0
	next.SecretWord = Word{}
	next.StartingPlayerID = ""
	return next
}

// TraitorCountAssigned returns how many players currently hold the traitor role
func (s GameState) TraitorCountAssigned() int {
	return len(Traitors(s.Players))
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
