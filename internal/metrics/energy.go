// Package metrics provides per-step observations reduced to scalar
// diagnostics over a run.
package metrics

import (
	"math"

	"github.com/san-kum/mdsim/internal/forces"
	"github.com/san-kum/mdsim/internal/particle"
)

// EnergyDrift tracks the maximum relative deviation of total energy
// from the first observed value. A symplectic integrator with a sane
// time step keeps this small.
type EnergyDrift struct {
	baseline float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{}
}

func (m *EnergyDrift) Name() string { return "energy_drift" }

func (m *EnergyDrift) Observe(sys *particle.System, e forces.Energies, t float64) {
	total := e.Total()
	if m.samples == 0 {
		m.baseline = total
	}
	m.samples++

	if m.baseline != 0 {
		drift := math.Abs(total-m.baseline) / math.Abs(m.baseline)
		m.maxDrift = math.Max(m.maxDrift, drift)
	}
}

func (m *EnergyDrift) Value() float64 { return m.maxDrift }

func (m *EnergyDrift) Reset() {
	m.baseline = 0
	m.maxDrift = 0
	m.samples = 0
}

// Temperature reports the mean kinetic energy per degree of freedom
// over the run, the instantaneous temperature in units with k_B = 1.
type Temperature struct {
	sum     float64
	samples int
}

func NewTemperature() *Temperature {
	return &Temperature{}
}

func (m *Temperature) Name() string { return "temperature" }

func (m *Temperature) Observe(sys *particle.System, e forces.Energies, t float64) {
	dof := sys.NP * sys.ND
	if dof == 0 {
		return
	}
	m.sum += 2 * e.Kinetic / float64(dof)
	m.samples++
}

func (m *Temperature) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *Temperature) Reset() {
	m.sum = 0
	m.samples = 0
}
