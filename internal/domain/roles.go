package domain

// ClampTraitorCount bounds count to [1, roster-1]. Rosters too small to hold
// a traitor and a non-traitor yield 1.
func ClampTraitorCount(count, roster int) int {
	upper := roster - 1
	if count > upper {
		count = upper
	}
	if count < 1 {
		count = 1
	}
	return count
}

// RecommendedTraitorCount is the suggested traitor count for a roster size
func RecommendedTraitorCount(roster int) int {
	switch {
	case roster < 7:
		return 1
	case roster < 12:
		return 2
	default:
		return 3
	}
}

// AssignRoles picks traitorCount traitors uniformly at random and returns a
// copy of players, in the original order, with IsTraitor set. The count is
// clamped to [1, len(players)-1]; ErrInvalidTraitorCount is returned only
// when the roster has fewer than two players.
func AssignRoles(players []Player, traitorCount int, rng Random) ([]Player, error) {
	if len(players) < 2 {
		return nil, ErrInvalidTraitorCount
	}
	traitorCount = ClampTraitorCount(traitorCount, len(players))

	// Fisher-Yates on a copy; only membership is taken from the shuffle
	shuffled := make([]Player, len(players))
	copy(shuffled, players)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	traitorIDs := make(map[string]struct{}, traitorCount)
	for _, p := range shuffled[:traitorCount] {
		traitorIDs[p.ID] = struct{}{}
	}

	assigned := make([]Player, len(players))
	for i, p := range players {
		_, p.IsTraitor = traitorIDs[p.ID]
		assigned[i] = p
	}

	return assigned, nil
}

// Traitors returns the traitors among players, in roster order
func Traitors(players []Player) []Player {
	traitors := make([]Player, 0)
	for _, p := range players {
		if p.IsTraitor {
			traitors = append(traitors, p)
		}
	}
	return traitors
}
