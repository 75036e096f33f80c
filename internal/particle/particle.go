// Package particle holds the mutable per-particle state of a simulation:
// positions, velocities and accelerations in flat float64 buffers.
//
// Buffers are dimension-major within particle: component i of particle k
// lives at index i + k*ND, so all ND components of one particle are
// adjacent. The O(np^2) force loop depends on this layout for cache
// locality; it is part of the contract, not an implementation detail.
package particle

import (
	"fmt"
	"math"

	"github.com/san-kum/mdsim/internal/rng"
)

// Position coordinates are drawn uniformly from [InitMin, InitMax).
const (
	InitMin = 0.0
	InitMax = 10.0
)

// System owns the three per-particle state buffers. The simulation
// driver holds exactly one System for the lifetime of a run; the
// initializer writes it once and the integrator mutates it in place
// every subsequent step.
type System struct {
	NP int // particle count
	ND int // spatial dimensions

	Pos []float64
	Vel []float64
	Acc []float64
}

// NewSystem allocates zeroed state for np particles in nd dimensions.
func NewSystem(np, nd int) (*System, error) {
	if np < 1 {
		return nil, fmt.Errorf("particle: particle count must be positive, got %d", np)
	}
	if nd < 1 {
		return nil, fmt.Errorf("particle: dimensions must be positive, got %d", nd)
	}
	return &System{
		NP:  np,
		ND:  nd,
		Pos: make([]float64, nd*np),
		Vel: make([]float64, nd*np),
		Acc: make([]float64, nd*np),
	}, nil
}

// At returns particle k's slice of buf, length ND.
func (s *System) At(buf []float64, k int) []float64 {
	return buf[k*s.ND : (k+1)*s.ND]
}

// Initialize draws every position coordinate from gen over
// [InitMin, InitMax) and zeroes velocities and accelerations.
// Called exactly once, before the first force evaluation.
func (s *System) Initialize(gen *rng.Generator) {
	gen.Fill(s.Pos, InitMin, InitMax)
	for i := range s.Vel {
		s.Vel[i] = 0
	}
	for i := range s.Acc {
		s.Acc[i] = 0
	}
}

// Valid reports whether all state components are finite.
func (s *System) Valid() bool {
	for _, buf := range [][]float64{s.Pos, s.Vel, s.Acc} {
		for _, v := range buf {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// Displacement writes r1 - r2 into dr and returns its Euclidean norm.
// The norm is 0 when the inputs coincide; callers dividing by it must
// treat that as a singular case.
func Displacement(r1, r2, dr []float64) float64 {
	d := 0.0
	for i := range dr {
		dr[i] = r1[i] - r2[i]
		d += dr[i] * dr[i]
	}
	return math.Sqrt(d)
}
