package engine

import "math/rand"

// RNG wraps math/rand.Rand behind a seeded source with call-position
// tracking. All combat randomness flows through it, so two engines with the
// same seed and inputs produce identical encounters.
type RNG struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// NewRNG creates a new deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Offset returns a uniform random integer in [-spread, +spread] inclusive.
// Damage rolls are attack plus an Offset.
func (r *RNG) Offset(spread int) int {
	r.pos++
	return r.src.Intn(2*spread+1) - spread
}

// Position returns the number of RNG calls made since creation.
func (r *RNG) Position() int64 {
	return r.pos
}
