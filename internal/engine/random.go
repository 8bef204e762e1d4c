package engine

import (
	"math/rand/v2"
	"sync"
)

// Rand is the only source of randomness the engine uses, so a seeded
// source makes shops, pairings and battles reproducible.
type Rand interface {
	IntN(n int) int
}

// NewRand returns a PCG-backed source. Safe for concurrent use so a
// session can hand the same source to parallel battles.
func NewRand(seed uint64) Rand {
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewRandomRand seeds from the runtime's entropy.
func NewRandomRand() Rand {
	return NewRand(rand.Uint64())
}

type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

// Shuffle is an in-place Fisher–Yates permutation.
func Shuffle[T any](r Rand, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

func choose[T any](r Rand, s []T) T {
	return s[r.IntN(len(s))]
}
