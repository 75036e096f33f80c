// Package md owns the simulation loop: initialize once, then alternate
// force evaluation and velocity-Verlet updates for a fixed number of
// steps, tracking energy drift against the step-0 baseline.
package md

import (
	"errors"
	"fmt"

	"github.com/san-kum/mdsim/internal/forces"
	"github.com/san-kum/mdsim/internal/particle"
)

// ErrInvalidState indicates NaN or Inf appeared in particle state.
var ErrInvalidState = errors.New("md: invalid state (NaN or Inf detected)")

// Params holds the immutable parameters of one run.
type Params struct {
	Particles int     // particle count, positive
	Dims      int     // spatial dimensions, positive
	Mass      float64 // uniform particle mass, positive
	Dt        float64 // time step, positive
	Steps     int     // step count, non-negative; the loop runs Steps+1 evaluations
	Seed      int32   // RNG seed, non-zero

	// Workers sets the force-evaluation worker count: 0 serial,
	// negative GOMAXPROCS.
	Workers int

	// ValidateState stops the run with a RunError when particle state
	// turns NaN/Inf (for example after a coincident-particle division).
	// Off by default: the reference model runs unguarded.
	ValidateState bool
}

// Validate reports the first configuration error, if any.
func (p Params) Validate() error {
	if p.Particles < 1 {
		return fmt.Errorf("md: particle count must be positive, got %d", p.Particles)
	}
	if p.Dims < 1 {
		return fmt.Errorf("md: dimensions must be positive, got %d", p.Dims)
	}
	if p.Mass <= 0 {
		return fmt.Errorf("md: mass must be positive, got %g", p.Mass)
	}
	if p.Dt <= 0 {
		return fmt.Errorf("md: time step must be positive, got %g", p.Dt)
	}
	if p.Steps < 0 {
		return fmt.Errorf("md: step count must be non-negative, got %d", p.Steps)
	}
	if p.Seed == 0 {
		return fmt.Errorf("md: seed must be non-zero")
	}
	return nil
}

// Sample is the energy record of one step.
type Sample struct {
	Step      int
	Time      float64
	Potential float64
	Kinetic   float64
}

// Total returns the sample's total energy.
func (s Sample) Total() float64 { return s.Potential + s.Kinetic }

// Result collects the outcome of a run.
type Result struct {
	Baseline  float64 // total energy after the step-0 evaluation
	Potential float64 // final potential energy
	Kinetic   float64 // final kinetic energy
	Drift     float64 // (potential + kinetic - baseline) / baseline

	Samples    []Sample
	Metrics    map[string]float64
	StepsTaken int
}

// Summary formats the terminal report line.
func (r *Result) Summary() string {
	return fmt.Sprintf("potential=%f, kinetic=%f, %f", r.Potential, r.Kinetic, r.Drift)
}

// RunError carries the step and simulated time at which a run failed.
type RunError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("step %d (t=%.6f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *RunError) Unwrap() error { return e.Wrapped }

// Metric observes each step of a run and reduces it to one value.
type Metric interface {
	Name() string
	Observe(sys *particle.System, e forces.Energies, t float64)
	Value() float64
	Reset()
}

// Observer receives each step's energies as the run progresses.
type Observer interface {
	OnStep(step int, t float64, e forces.Energies)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(step int, t float64, e forces.Energies)

func (f ObserverFunc) OnStep(step int, t float64, e forces.Energies) { f(step, t, e) }
