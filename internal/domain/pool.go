package domain

// ResolvePool merges the words of the selected categories into one pool.
// Categories keep their catalog order and words their listed order. Words
// are deduplicated by exact Term; the first occurrence wins.
func ResolvePool(categories []Category, selectedIDs []string) ([]Word, error) {
	selected := make(map[string]struct{}, len(selectedIDs))
	for _, id := range selectedIDs {
		selected[id] = struct{}{}
	}

	seen := make(map[string]struct{})
	pool := make([]Word, 0)

	for _, c := range categories {
		if _, ok := selected[c.ID]; !ok {
			continue
		}
		for _, w := range c.Words {
			if _, dup := seen[w.Term]; dup {
				continue
			}
			seen[w.Term] = struct{}{}
			pool = append(pool, w)
		}
	}

	if len(pool) == 0 {
		return nil, ErrNoWordsAvailable
	}

	return pool, nil
}

// PickWord returns a uniformly chosen word from the pool
func PickWord(pool []Word, rng Random) (Word, error) {
	if len(pool) == 0 {
		return Word{}, ErrNoWordsAvailable
	}
	return pool[rng.IntN(len(pool))], nil
}
