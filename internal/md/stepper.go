package md

import (
	"github.com/san-kum/mdsim/internal/forces"
	"github.com/san-kum/mdsim/internal/integrators"
	"github.com/san-kum/mdsim/internal/particle"
	"github.com/san-kum/mdsim/internal/rng"
)

// Stepper advances a simulation one step at a time. The batch Runner
// and the live view are both built on it.
type Stepper struct {
	params Params
	sys    *particle.System
	eval   *forces.Evaluator
	integ  *integrators.Verlet
	force  []float64

	step     int
	t        float64
	energies forces.Energies
	baseline float64
}

// NewStepper validates params and allocates the four per-particle
// buffers.
func NewStepper(p Params) (*Stepper, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	sys, err := particle.NewSystem(p.Particles, p.Dims)
	if err != nil {
		return nil, err
	}
	return &Stepper{
		params: p,
		sys:    sys,
		eval:   forces.NewEvaluator(p.Particles, p.Dims, p.Workers),
		integ:  integrators.NewVerlet(),
		force:  make([]float64, p.Dims*p.Particles),
	}, nil
}

// Start runs step 0: seed positions, zero velocities and accelerations,
// evaluate forces and energies, and fix the baseline total energy.
func (s *Stepper) Start() (forces.Energies, error) {
	gen, err := rng.New(s.params.Seed)
	if err != nil {
		return forces.Energies{}, err
	}

	s.sys.Initialize(gen)
	s.energies = s.eval.Evaluate(s.sys, s.params.Mass, s.force)
	s.baseline = s.energies.Total()
	s.step = 0
	s.t = 0
	return s.energies, nil
}

// Step integrates one time step using the force array evaluated for
// the pre-update positions, then re-evaluates forces and energies for
// the new state. The order is fixed: integrating with post-update
// forces would break velocity-Verlet.
func (s *Stepper) Step() forces.Energies {
	s.integ.Step(s.sys, s.force, s.params.Mass, s.params.Dt)
	s.t += s.params.Dt
	s.step++
	s.energies = s.eval.Evaluate(s.sys, s.params.Mass, s.force)
	return s.energies
}

// Done reports whether the configured step count has been reached.
func (s *Stepper) Done() bool { return s.step >= s.params.Steps }

// Drift returns the relative deviation of the current total energy
// from the baseline, 0 when the baseline is zero.
func (s *Stepper) Drift() float64 {
	if s.baseline == 0 {
		return 0
	}
	return (s.energies.Total() - s.baseline) / s.baseline
}

func (s *Stepper) Params() Params            { return s.params }
func (s *Stepper) System() *particle.System  { return s.sys }
func (s *Stepper) Energies() forces.Energies { return s.energies }
func (s *Stepper) Baseline() float64         { return s.baseline }
func (s *Stepper) StepIndex() int            { return s.step }
func (s *Stepper) Time() float64             { return s.t }
