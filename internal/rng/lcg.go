// Package rng implements the Lehmer linear-congruential generator used to
// seed particle positions. The seed is explicit threaded state so that the
// same seed always reproduces the same stream; there is no hidden global.
package rng

import "errors"

// ErrZeroSeed is returned when a generator is constructed with seed 0,
// which would produce a degenerate all-zero stream.
var ErrZeroSeed = errors.New("rng: seed must be non-zero")

const (
	modulus    int32 = 2147483647 // 2^31 - 1, a Mersenne prime
	multiplier int32 = 16807      // 7^5, Park-Miller minimal standard

	// Schrage decomposition of the modulus: modulus = multiplier*q + r.
	// Keeps every intermediate inside 32-bit signed range.
	schrageQ int32 = 127773
	schrageR int32 = 2836

	// Matches the truncated 1/(2^31-1) constant of the reference stream;
	// using the exact reciprocal would shift draws in the last bits.
	toUnit = 4.656612875e-10
)

// Generator is a deterministic uniform source. Not safe for concurrent
// use; create one generator per goroutine instead.
type Generator struct {
	seed int32
}

// New returns a generator seeded with the given non-zero seed.
func New(seed int32) (*Generator, error) {
	if seed == 0 {
		return nil, ErrZeroSeed
	}
	return &Generator{seed: seed}, nil
}

// Seed reports the current seed state, useful for logging a resume point.
func (g *Generator) Seed() int32 { return g.seed }

// next advances the recurrence seed = 16807*seed mod (2^31-1).
func (g *Generator) next() int32 {
	k := g.seed / schrageQ
	g.seed = multiplier*(g.seed-k*schrageQ) - k*schrageR
	if g.seed < 0 {
		g.seed += modulus
	}
	return g.seed
}

// Uniform draws one value in [a, b).
func (g *Generator) Uniform(a, b float64) float64 {
	return a + (b-a)*float64(g.next())*toUnit
}

// Fill populates dst with uniform draws in [a, b), in index order.
// Callers filling a dim-major particle grid get one column of draws
// per particle, matching the layout of the position buffer.
func (g *Generator) Fill(dst []float64, a, b float64) {
	for i := range dst {
		dst[i] = a + (b-a)*float64(g.next())*toUnit
	}
}
