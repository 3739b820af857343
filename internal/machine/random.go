package machine

import (
	"math/rand/v2"
)

// RandomSource provides the random bytes used by the RND instruction.
type RandomSource interface {
	Byte() byte
}

// SeededRandom is a deterministic random source, the same seed always
// produces the same sequence of bytes.
type SeededRandom struct {
	rnd *rand.Rand
}

// NewSeededRandom returns a random source initialized with the given seed.
func NewSeededRandom(seed uint64) *SeededRandom {
	return &SeededRandom{
		rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// NewRandom returns a random source with a random seed.
func NewRandom() *SeededRandom {
	return NewSeededRandom(rand.Uint64())
}

// Byte returns the next random byte.
func (r *SeededRandom) Byte() byte {
	return byte(r.rnd.UintN(256))
}
