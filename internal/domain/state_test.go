package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupState(t *testing.T, names ...string) GameState {
	t.Helper()

	s := NewGameState(DefaultGameSettings())
	for _, name := range names {
		var err error
		s, err = s.AddPlayer("id-"+name, name)
		require.NoError(t, err)
	}
	return s
}

func startedState(t *testing.T, seed uint64) GameState {
	t.Helper()

	s := setupState(t, "A", "B", "C")
	s, err := s.SelectCategories([]string{"fruit"})
	require.NoError(t, err)

	s, err = s.Start(fruitCategories(), seeded(seed))
	require.NoError(t, err)
	return s
}

func TestNewGameState(t *testing.T) {
	s := NewGameState(DefaultGameSettings())

	assert.Equal(t, PhaseSetup, s.Phase)
	assert.Empty(t, s.Players)
	assert.True(t, s.SecretWord.IsEmpty())
	assert.Equal(t, 0, s.CurrentPeekIndex)
	assert.Equal(t, 1, s.TraitorCount)
	assert.False(t, s.CanStart())
	assert.Equal(t, 3, s.MissingPlayers())
}

func TestStartGame_Scenario(t *testing.T) {
	s := startedState(t, 1)

	assert.Equal(t, PhasePeek, s.Phase)
	assert.Equal(t, 0, s.CurrentPeekIndex)
	assert.Contains(t, []string{"Apple", "Banana"}, s.SecretWord.Term)
	assert.Equal(t, 1, s.TraitorCountAssigned())
	assert.Equal(t, []string{"id-A", "id-B", "id-C"}, []string{s.Players[0].ID, s.Players[1].ID, s.Players[2].ID})
}

func TestStartGame_DoesNotMutateInputs(t *testing.T) {
	s := setupState(t)
	players := makePlayers(4)
	players[2].IsTraitor = true
	before := make([]Player, len(players))
	copy(before, players)

	next, err := s.StartGame(fruitCategories(), players, []string{"mix"}, 2, seeded(9))
	require.NoError(t, err)

	assert.Equal(t, before, players)
	assert.Equal(t, 2, next.TraitorCountAssigned())
	assert.Equal(t, PhaseSetup, s.Phase)
}

func TestStartGame_Deterministic(t *testing.T) {
	a := startedState(t, 77)
	b := startedState(t, 77)

	assert.Equal(t, a, b)
}

func TestStartGame_ClampsTraitorCount(t *testing.T) {
	s := setupState(t)

	next, err := s.StartGame(fruitCategories(), makePlayers(4), []string{"fruit"}, 5, seeded(3))
	require.NoError(t, err)

	assert.Equal(t, 3, next.TraitorCount)
	assert.Equal(t, 3, next.TraitorCountAssigned())
}

func TestStartGame_Failures(t *testing.T) {
	base := setupState(t, "A", "B", "C")

	tests := []struct {
		name       string
		players    []Player
		categories []string
		wantErr    error
	}{
		{"too few players", makePlayers(2), []string{"fruit"}, ErrNotEnoughPlayers},
		{"no categories", makePlayers(3), nil, ErrNoCategoriesSelected},
		{"empty pool", makePlayers(3), []string{"nothing"}, ErrNoWordsAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := base.StartGame(fruitCategories(), tt.players, tt.categories, 1, seeded(1))
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, base, next)
		})
	}
}

func TestStartGame_OnlyFromSetup(t *testing.T) {
	s := startedState(t, 2)

	next, err := s.Start(fruitCategories(), seeded(2))
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, s, next)
}

func TestAdvance_PeekSequencing(t *testing.T) {
	s := startedState(t, 5)
	n := len(s.Players)

	visited := []int{}
	playingTransitions := 0
	for range n {
		require.Equal(t, PhasePeek, s.Phase)
		visited = append(visited, s.CurrentPeekIndex)

		var err error
		s, err = s.Advance(seeded(5))
		require.NoError(t, err)
		if s.Phase == PhasePlaying {
			playingTransitions++
		}
	}

	assert.Equal(t, []int{0, 1, 2}, visited)
	assert.Equal(t, 1, playingTransitions)
	assert.Equal(t, PhasePlaying, s.Phase)
}

func TestAdvance_Scenario(t *testing.T) {
	s := startedState(t, 6)
	word := s.SecretWord

	s, err := s.Advance(seeded(1))
	require.NoError(t, err)
	assert.Equal(t, PhasePeek, s.Phase)
	assert.Equal(t, 1, s.CurrentPeekIndex)

	s, err = s.Advance(seeded(1))
	require.NoError(t, err)
	assert.Equal(t, PhasePeek, s.Phase)
	assert.Equal(t, 2, s.CurrentPeekIndex)
	assert.True(t, s.IsLastPeek())

	s, err = s.Advance(fixedRandom(1))
	require.NoError(t, err)
	assert.Equal(t, PhasePlaying, s.Phase)
	assert.Equal(t, 2, s.CurrentPeekIndex)
	assert.Equal(t, word, s.SecretWord)
	assert.Equal(t, "id-B", s.StartingPlayerID)
}

func TestAdvance_OutsidePeek(t *testing.T) {
	s := setupState(t, "A", "B", "C")

	next, err := s.Advance(seeded(1))
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, s, next)
}

func TestReveal(t *testing.T) {
	s := startedState(t, 8)

	_, err := s.Reveal()
	assert.ErrorIs(t, err, ErrInvalidTransition)

	for s.Phase == PhasePeek {
		s, err = s.Advance(seeded(8))
		require.NoError(t, err)
	}

	s, err = s.Reveal()
	require.NoError(t, err)
	assert.Equal(t, PhaseReveal, s.Phase)
	assert.Equal(t, 1, s.TraitorCountAssigned())

	_, err = s.Reveal()
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestReset_FromPlaying(t *testing.T) {
	s := startedState(t, 11)
	categories := s.SelectedCategoryIDs
	for s.Phase == PhasePeek {
		var err error
		s, err = s.Advance(seeded(11))
		require.NoError(t, err)
	}

	s = s.Reset()

	assert.Equal(t, PhaseSetup, s.Phase)
	assert.Len(t, s.Players, 3)
	assert.Equal(t, 0, s.TraitorCountAssigned())
	assert.Equal(t, categories, s.SelectedCategoryIDs)
	assert.True(t, s.SecretWord.IsEmpty())
	assert.Equal(t, 0, s.CurrentPeekIndex)
	assert.Empty(t, s.StartingPlayerID)
}

func TestReset_Idempotent(t *testing.T) {
	s := startedState(t, 12)

	once := s.Reset()
	twice := once.Reset()
	thrice := twice.Reset()

	assert.Equal(t, once, twice)
	assert.Equal(t, twice, thrice)
	for _, p := range thrice.Players {
		assert.False(t, p.IsTraitor)
	}

	fresh := NewGameState(DefaultGameSettings())
	assert.Equal(t, fresh, fresh.Reset())
}

func TestReset_DoesNotTouchPreviousState(t *testing.T) {
	s := startedState(t, 13)
	traitors := s.TraitorCountAssigned()

	_ = s.Reset()

	assert.Equal(t, traitors, s.TraitorCountAssigned())
	assert.Equal(t, PhasePeek, s.Phase)
}

func TestAddPlayer(t *testing.T) {
	s := NewGameState(GameSettings{MinPlayers: 3, MaxPlayers: 3})

	s, err := s.AddPlayer("1", "  Ann  ")
	require.NoError(t, err)
	assert.Equal(t, "Ann", s.Players[0].Name)
	assert.False(t, s.Players[0].IsTraitor)

	_, err = s.AddPlayer("1", "Other")
	assert.ErrorIs(t, err, ErrDuplicatePlayer)

	_, err = s.AddPlayer("2", "   ")
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = s.AddPlayer("2", "abcdefghijklmnopqrstuvwxyz")
	assert.ErrorIs(t, err, ErrNameTooLong)

	s, err = s.AddPlayer("2", "Bob")
	require.NoError(t, err)
	s, err = s.AddPlayer("3", "Cid")
	require.NoError(t, err)

	_, err = s.AddPlayer("4", "Dan")
	assert.ErrorIs(t, err, ErrTableFull)
}

func TestRosterChangesReclampTraitorCount(t *testing.T) {
	s := setupState(t, "A", "B", "C", "D", "E")

	s, err := s.SetTraitorCount(4)
	require.NoError(t, err)
	assert.Equal(t, 4, s.TraitorCount)

	s, err = s.RemovePlayer("id-E")
	require.NoError(t, err)
	assert.Equal(t, 3, s.TraitorCount)

	s, err = s.RemovePlayer("id-D")
	require.NoError(t, err)
	s, err = s.RemovePlayer("id-C")
	require.NoError(t, err)
	assert.Equal(t, 1, s.TraitorCount)

	s, err = s.SetTraitorCount(9)
	require.NoError(t, err)
	assert.Equal(t, 1, s.TraitorCount)

	_, err = s.RemovePlayer("nobody")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestSetupOnlyInSetup(t *testing.T) {
	s := startedState(t, 14)

	_, err := s.AddPlayer("x", "X")
	assert.ErrorIs(t, err, ErrInvalidPhase)

	_, err = s.RemovePlayer("id-A")
	assert.ErrorIs(t, err, ErrInvalidPhase)

	_, err = s.SelectCategories([]string{"mix"})
	assert.ErrorIs(t, err, ErrInvalidPhase)

	_, err = s.SetTraitorCount(2)
	assert.ErrorIs(t, err, ErrInvalidPhase)
}

func TestSelectCategories_Dedupes(t *testing.T) {
	s := setupState(t, "A", "B", "C")

	s, err := s.SelectCategories([]string{"fruit", "mix", "fruit"})
	require.NoError(t, err)

	assert.Equal(t, []string{"fruit", "mix"}, s.SelectedCategoryIDs)
	assert.True(t, s.CanStart())
}

func TestCanStart(t *testing.T) {
	s := setupState(t, "A", "B")
	s, err := s.SelectCategories([]string{"fruit"})
	require.NoError(t, err)

	assert.False(t, s.CanStart())
	assert.Equal(t, 1, s.MissingPlayers())

	s, err = s.AddPlayer("id-C", "C")
	require.NoError(t, err)
	assert.True(t, s.CanStart())

	s, err = s.SelectCategories(nil)
	require.NoError(t, err)
	assert.False(t, s.CanStart())
}

func TestToggleCategory(t *testing.T) {
	all := []string{"mix", "food", "animals", "places"}

	tests := []struct {
		name     string
		selected []string
		toggle   string
		want     []string
	}{
		{"mix on selects all", []string{"food"}, "mix", all},
		{"mix off clears all", all, "mix", []string{}},
		{"last regular adds mix", []string{"food", "animals"}, "places", all},
		{"dropping regular removes mix", all, "animals", []string{"food", "places"}},
		{"regular from default mix", []string{"mix"}, "food", []string{"food"}},
		{"regular off", []string{"food", "places"}, "food", []string{"places"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := setupState(t).SelectCategories(tt.selected)
			require.NoError(t, err)

			next, err := s.ToggleCategory(tt.toggle, all)
			require.NoError(t, err)
			assert.Equal(t, tt.want, next.SelectedCategoryIDs)
			assert.Equal(t, tt.selected, s.SelectedCategoryIDs)
		})
	}
}

func TestToggleCategory_Rejects(t *testing.T) {
	all := []string{"mix", "food"}
	s := setupState(t, "Ann", "Bob", "Cid")

	_, err := s.ToggleCategory("space", all)
	assert.ErrorIs(t, err, ErrUnknownCategory)

	s, err = s.SelectCategories([]string{"mix"})
	require.NoError(t, err)
	started, err := s.Start(fruitCategories(), seeded(1))
	require.NoError(t, err)

	_, err = started.ToggleCategory("food", all)
	assert.ErrorIs(t, err, ErrInvalidPhase)
}
