package domain

import (
	"math/rand/v2"
	"sync"
)

// Random is the source of randomness for word picks, shuffles and the
// starting player. *rand.Rand from math/rand/v2 satisfies it.
type Random interface {
	// IntN returns a uniform value in [0, n). It panics if n <= 0.
	IntN(n int) int
}

type processRandom struct{}

func (processRandom) IntN(n int) int {
	return rand.IntN(n)
}

// DefaultRandom draws from the process-wide math/rand/v2 generator
var DefaultRandom Random = processRandom{}

type lockedRandom struct {
	mu  sync.Mutex
	src Random
}

// NewLockedRandom wraps src so it can be shared between goroutines.
// *rand.Rand is not safe for concurrent use.
func NewLockedRandom(src Random) Random {
	if src == nil || src == DefaultRandom {
		return DefaultRandom
	}
	if _, ok := src.(*lockedRandom); ok {
		return src
	}
	return &lockedRandom{src: src}
}

func (r *lockedRandom) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.IntN(n)
}
