// Package forces evaluates the pairwise central potential and the net
// force on every particle.
//
// The potential is a harmonic well that saturates at pi/2:
//
//	v(d)  = sin(min(d, pi/2))^2
//	v'(d) = sin(2 * min(d, pi/2))
//
// The force denominator is the un-clamped distance even when the trig
// argument was clamped, so the restoring force decays with separation
// past pi/2 while the energy contribution plateaus. That asymmetry is
// part of the model, not a bug to fix.
//
// Known limitation: coincident particles (d == 0) divide by zero and
// produce NaN forces, as in the reference model. Guarding it would
// change the physics.
package forces

import (
	"math"
	"runtime"
	"sync"

	"github.com/san-kum/mdsim/internal/particle"
)

// Energies is the whole-system energy pair for one evaluation.
type Energies struct {
	Potential float64
	Kinetic   float64
}

// Total returns potential plus kinetic energy.
func (e Energies) Total() float64 { return e.Potential + e.Kinetic }

// Evaluator computes forces and energies for a fixed np/nd shape.
// A zero worker count evaluates serially; any other value partitions
// particles across that many goroutines (negative means GOMAXPROCS).
// The evaluator reuses per-call scratch and is not safe for concurrent
// Evaluate calls on the same instance.
type Evaluator struct {
	np, nd  int
	workers int
	dr      []float64
}

// NewEvaluator returns an evaluator for np particles in nd dimensions
// running with the given worker count.
func NewEvaluator(np, nd, workers int) *Evaluator {
	if workers < 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > np {
		workers = np
	}
	return &Evaluator{np: np, nd: nd, workers: workers, dr: make([]float64, nd)}
}

// Evaluate computes the net force on every particle for the current
// positions, writing the nd*np force buffer f from scratch, and returns
// the total potential and kinetic energy. Positions and velocities are
// read only. All np^2-np ordered pairs contribute; the 0.5 factor on
// each pair's potential compensates visiting both (k,j) and (j,k).
func (e *Evaluator) Evaluate(sys *particle.System, mass float64, f []float64) Energies {
	var pe float64
	if e.workers > 1 {
		pe = e.potentialParallel(sys, f)
	} else {
		pe = e.potentialRange(sys, f, 0, e.np, e.dr)
	}

	// Kinetic energy: uniform mass factors out of the per-particle sum.
	ke := 0.0
	for _, v := range sys.Vel {
		ke += v * v
	}
	ke *= 0.5 * mass

	return Energies{Potential: pe, Kinetic: ke}
}

// potentialRange accumulates potential energy and forces for particles
// [lo, hi). Rows are disjoint across ranges, so concurrent callers with
// private dr scratch never write the same force components.
func (e *Evaluator) potentialRange(sys *particle.System, f []float64, lo, hi int, dr []float64) float64 {
	const halfPi = math.Pi / 2

	pe := 0.0
	for k := lo; k < hi; k++ {
		fk := f[k*e.nd : (k+1)*e.nd]
		for i := range fk {
			fk[i] = 0
		}

		rk := sys.At(sys.Pos, k)
		for j := 0; j < e.np; j++ {
			if j == k {
				continue
			}
			d := particle.Displacement(rk, sys.At(sys.Pos, j), dr)
			d2 := math.Min(d, halfPi)

			pe += 0.5 * math.Sin(d2) * math.Sin(d2)

			// Un-clamped d in the denominator: see package comment.
			dv := math.Sin(2 * d2)
			for i := range fk {
				fk[i] -= dr[i] * dv / d
			}
		}
	}
	return pe
}

func (e *Evaluator) potentialParallel(sys *particle.System, f []float64) float64 {
	partials := make([]float64, e.workers)

	var wg sync.WaitGroup
	chunk := (e.np + e.workers - 1) / e.workers
	for w := 0; w < e.workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > e.np {
			hi = e.np
		}
		if lo >= hi {
			continue
		}

		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			dr := make([]float64, e.nd)
			partials[w] = e.potentialRange(sys, f, lo, hi, dr)
		}(w, lo, hi)
	}
	wg.Wait()

	pe := 0.0
	for _, p := range partials {
		pe += p
	}
	return pe
}
