package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/mdsim/internal/forces"
	"github.com/san-kum/mdsim/internal/particle"
)

func TestEnergyDrift(t *testing.T) {
	sys, _ := particle.NewSystem(1, 1)
	m := NewEnergyDrift()

	m.Observe(sys, forces.Energies{Potential: 1.0, Kinetic: 1.0}, 0)
	m.Observe(sys, forces.Energies{Potential: 1.0, Kinetic: 1.1}, 0.1)
	m.Observe(sys, forces.Energies{Potential: 0.9, Kinetic: 1.0}, 0.2)

	want := 0.1 / 2.0
	if math.Abs(m.Value()-want) > 1e-12 {
		t.Errorf("max drift: got %v, want %v", m.Value(), want)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("value after reset: got %v", m.Value())
	}
}

func TestEnergyDriftZeroBaseline(t *testing.T) {
	sys, _ := particle.NewSystem(1, 1)
	m := NewEnergyDrift()

	m.Observe(sys, forces.Energies{}, 0)
	m.Observe(sys, forces.Energies{Kinetic: 5}, 0.1)

	if m.Value() != 0 {
		t.Errorf("drift with zero baseline: got %v, want 0", m.Value())
	}
}

func TestTemperature(t *testing.T) {
	sys, _ := particle.NewSystem(4, 3) // 12 degrees of freedom
	m := NewTemperature()

	m.Observe(sys, forces.Energies{Kinetic: 6}, 0)
	m.Observe(sys, forces.Energies{Kinetic: 12}, 0.1)

	// Per-step temperatures are 1.0 and 2.0.
	if math.Abs(m.Value()-1.5) > 1e-12 {
		t.Errorf("mean temperature: got %v, want 1.5", m.Value())
	}
}

func TestTemperatureNoSamples(t *testing.T) {
	m := NewTemperature()
	if m.Value() != 0 {
		t.Errorf("value without samples: got %v", m.Value())
	}
}
