package domain

import (
	"fmt"
	"math/rand/v2"
)

// fixedRandom always returns the same value, clamped into range
type fixedRandom int

func (f fixedRandom) IntN(n int) int {
	if int(f) >= n {
		return n - 1
	}
	return int(f)
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func makePlayers(n int) []Player {
	players := make([]Player, n)
	for i := range players {
		players[i] = NewPlayer(fmt.Sprintf("p%d", i), fmt.Sprintf("Player %d", i))
	}
	return players
}

func fruitCategories() []Category {
	apple := Word{Term: "Apple", Definition: "A red fruit"}
	banana := Word{Term: "Banana", Definition: "A yellow fruit"}
	return []Category{
		{ID: "mix", Name: "Mix", Words: []Word{apple, banana}},
		{ID: "fruit", Name: "Fruit", Words: []Word{apple, banana}},
	}
}
