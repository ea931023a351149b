package domain

// PeekCard is what the current peeker sees on the shared device
type PeekCard struct {
	Player     PlayerInfo `json:"player"`
	IsTraitor  bool       `json:"isTraitor"`
	SecretWord *Word      `json:"secretWord,omitempty"` // Only for non-traitors
	IsLast     bool       `json:"isLast"`
}

// RevealInfo is shown once the table reveals the traitors
type RevealInfo struct {
	SecretWord Word         `json:"secretWord"`
	Traitors   []PlayerInfo `json:"traitors"`
}

// TableView is the renderer-facing projection of a GameState. Roles and the
// secret word only appear on the current peek card and in REVEAL.
type TableView struct {
	TableCode           string       `json:"tableCode"`
	Phase               Phase        `json:"phase"`
	Players             []PlayerInfo `json:"players"`
	SelectedCategoryIDs []string     `json:"selectedCategoryIds"`
	TraitorCount        int          `json:"traitorCount"`
	RecommendedTraitors int          `json:"recommendedTraitors"`
	MissingPlayers      int          `json:"missingPlayers"`
	CanStart            bool         `json:"canStart"`
	CurrentPeekIndex    int          `json:"currentPeekIndex"`
	Peek                *PeekCard    `json:"peek,omitempty"`
	StartingPlayer      *PlayerInfo  `json:"startingPlayer,omitempty"`
	Reveal              *RevealInfo  `json:"reveal,omitempty"`
}

// View builds the renderer-facing projection of s
func (s GameState) View(tableCode string) *TableView {
	players := make([]PlayerInfo, 0, len(s.Players))
	for _, p := range s.Players {
		players = append(players, p.ToInfo())
	}

	categories := make([]string, len(s.SelectedCategoryIDs))
	copy(categories, s.SelectedCategoryIDs)

	view := &TableView{
		TableCode:           tableCode,
		Phase:               s.Phase,
		Players:             players,
		SelectedCategoryIDs: categories,
		TraitorCount:        s.TraitorCount,
		RecommendedTraitors: RecommendedTraitorCount(len(s.Players)),
		MissingPlayers:      s.MissingPlayers(),
		CanStart:            s.CanStart(),
		CurrentPeekIndex:    s.CurrentPeekIndex,
	}

	switch s.Phase {
	case PhasePeek:
		if peeker, ok := s.CurrentPeeker(); ok {
			card := &PeekCard{
				Player:    peeker.ToInfo(),
				IsTraitor: peeker.IsTraitor,
				IsLast:    s.IsLastPeek(),
			}
			if !peeker.IsTraitor {
				word := s.SecretWord
				card.SecretWord = &word
			}
			view.Peek = card
		}
	case PhaseReveal:
		traitors := make([]PlayerInfo, 0, s.TraitorCount)
		for _, p := range Traitors(s.Players) {
			traitors = append(traitors, p.ToInfo())
		}
		view.Reveal = &RevealInfo{
			SecretWord: s.SecretWord,
			Traitors:   traitors,
		}
	}

	if s.Phase == PhasePlaying || s.Phase == PhaseReveal {
		if idx := indexOfPlayer(s.Players, s.StartingPlayerID); idx >= 0 {
			info := s.Players[idx].ToInfo()
			view.StartingPlayer = &info
		}
	}

	return view
}
