package utils

import (
	"math/rand/v2"
)

// Rand is a seedable source of uniform random numbers.
// It is not cryptographically secure and is not safe for concurrent use;
// every connection owns its own instance.
type Rand struct {
	src *rand.Rand
}

// NewRand creates a Rand seeded with the given seed.
func NewRand(seed uint64) *Rand {
	return &Rand{src: rand.New(rand.NewPCG(seed, seed))}
}

// Int31n returns a random number in [0, n).
func (r *Rand) Int31n(n int32) int32 {
	return r.src.Int32N(n)
}

// Uint64 returns a random 64-bit value, typically used to seed a forked
// stream.
func (r *Rand) Uint64() uint64 {
	return r.src.Uint64()
}
