package md

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/mdsim/internal/forces"
	"github.com/san-kum/mdsim/internal/particle"
)

func validParams() Params {
	return Params{
		Particles: 2,
		Dims:      1,
		Mass:      1.0,
		Dt:        0.0001,
		Steps:     1,
		Seed:      123456789,
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero particles", func(p *Params) { p.Particles = 0 }},
		{"zero dims", func(p *Params) { p.Dims = 0 }},
		{"zero mass", func(p *Params) { p.Mass = 0 }},
		{"negative mass", func(p *Params) { p.Mass = -1 }},
		{"zero dt", func(p *Params) { p.Dt = 0 }},
		{"negative steps", func(p *Params) { p.Steps = -1 }},
		{"zero seed", func(p *Params) { p.Seed = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Error("expected error, got nil")
			}
			if _, err := NewRunner(p); err == nil {
				t.Error("expected NewRunner error, got nil")
			}
		})
	}
}

// A single short velocity-Verlet step is symplectic enough that the
// reported relative drift must be indistinguishable from zero.
func TestSingleStepDriftNearZero(t *testing.T) {
	r, err := NewRunner(validParams())
	if err != nil {
		t.Fatal(err)
	}

	result, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(result.Drift) > 1e-6 {
		t.Errorf("one-step drift too large: %v", result.Drift)
	}
	if result.Baseline == 0 {
		t.Error("expected non-zero baseline for two interacting particles")
	}
	if result.StepsTaken != 1 {
		t.Errorf("steps taken: got %d, want 1", result.StepsTaken)
	}
	if len(result.Samples) != 2 {
		t.Errorf("samples: got %d, want 2", len(result.Samples))
	}
}

func TestSingleParticleStaysInert(t *testing.T) {
	p := validParams()
	p.Particles = 1
	p.Dims = 3
	p.Steps = 5

	r, err := NewRunner(p)
	if err != nil {
		t.Fatal(err)
	}
	result, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	for _, s := range result.Samples {
		if s.Potential != 0 || s.Kinetic != 0 {
			t.Errorf("step %d: expected zero energies, got %+v", s.Step, s)
		}
	}
	if result.Drift != 0 {
		t.Errorf("drift with zero baseline: got %v, want 0", result.Drift)
	}
}

func TestZeroStepsStillReports(t *testing.T) {
	p := validParams()
	p.Steps = 0

	r, _ := NewRunner(p)
	result, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(result.Samples) != 1 {
		t.Errorf("samples: got %d, want 1", len(result.Samples))
	}
	if result.Drift != 0 {
		t.Errorf("drift after zero steps: got %v", result.Drift)
	}
	if result.Potential+result.Kinetic != result.Baseline {
		t.Error("final energies should equal baseline after zero steps")
	}
}

func TestRunDeterministic(t *testing.T) {
	p := validParams()
	p.Particles = 10
	p.Dims = 3
	p.Steps = 20

	run := func() *Result {
		r, err := NewRunner(p)
		if err != nil {
			t.Fatal(err)
		}
		res, err := r.Run(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		return res
	}

	a, b := run(), run()
	if a.Potential != b.Potential || a.Kinetic != b.Kinetic || a.Drift != b.Drift {
		t.Errorf("runs with identical seed differ: %+v vs %+v", a, b)
	}
}

func TestContextCancellation(t *testing.T) {
	p := validParams()
	p.Particles = 50
	p.Dims = 3
	p.Steps = 100000

	r, _ := NewRunner(p)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Run(ctx)
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestObserversSeeEveryStep(t *testing.T) {
	p := validParams()
	p.Steps = 7

	r, _ := NewRunner(p)
	calls := 0
	r.AddObserver(ObserverFunc(func(step int, t float64, e forces.Energies) {
		if step != calls {
			panic("steps observed out of order")
		}
		calls++
	}))

	if _, err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if calls != 8 {
		t.Errorf("observer calls: got %d, want 8", calls)
	}
}

type recordingMetric struct {
	observed int
	resets   int
}

func (m *recordingMetric) Name() string { return "recording" }
func (m *recordingMetric) Observe(sys *particle.System, e forces.Energies, t float64) {
	m.observed++
}
func (m *recordingMetric) Value() float64 { return float64(m.observed) }
func (m *recordingMetric) Reset()         { m.resets++; m.observed = 0 }

func TestMetricsCollected(t *testing.T) {
	p := validParams()
	p.Steps = 3

	r, _ := NewRunner(p)
	m := &recordingMetric{}
	r.AddMetric(m)

	result, err := r.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if m.resets != 1 {
		t.Errorf("resets: got %d, want 1", m.resets)
	}
	if result.Metrics["recording"] != 4 {
		t.Errorf("metric value: got %v, want 4", result.Metrics["recording"])
	}
}

func TestParallelRunMatchesSerial(t *testing.T) {
	p := validParams()
	p.Particles = 24
	p.Dims = 3
	p.Steps = 10

	serial, _ := NewRunner(p)
	rs, err := serial.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	p.Workers = 4
	parallel, _ := NewRunner(p)
	rp, err := parallel.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(rs.Drift-rp.Drift) > 1e-9 {
		t.Errorf("drift differs between serial and parallel: %v vs %v", rs.Drift, rp.Drift)
	}
}

func TestEnsembleRuns(t *testing.T) {
	p := validParams()
	p.Particles = 5
	p.Dims = 2
	p.Steps = 5

	ens := NewEnsemble(p, 4, 1000)
	results, err := ens.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(results) != 4 {
		t.Fatalf("results: got %d, want 4", len(results))
	}
	// Different seeds must produce different initial configurations.
	if results[0].Baseline == results[1].Baseline {
		t.Error("distinct seeds produced identical baselines")
	}
}

func TestEnsembleRejectsZeroDerivedSeed(t *testing.T) {
	p := validParams()
	ens := NewEnsemble(p, 2, -1) // seeds -1, 0

	if _, err := ens.Run(context.Background()); err == nil {
		t.Error("expected error for zero derived seed")
	}
}
