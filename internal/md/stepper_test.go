package md

import "testing"

func TestStepperRestart(t *testing.T) {
	p := validParams()
	p.Particles = 6
	p.Dims = 2
	p.Steps = 4

	s, err := NewStepper(p)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.Start(); err != nil {
		t.Fatal(err)
	}
	for !s.Done() {
		s.Step()
	}
	firstDrift := s.Drift()
	firstEnergies := s.Energies()

	// Start resets to step 0 and replays the identical trajectory.
	if _, err := s.Start(); err != nil {
		t.Fatal(err)
	}
	if s.StepIndex() != 0 || s.Time() != 0 {
		t.Errorf("restart did not reset: step %d, time %v", s.StepIndex(), s.Time())
	}
	for !s.Done() {
		s.Step()
	}

	if s.Drift() != firstDrift {
		t.Errorf("drift differs after restart: %v vs %v", s.Drift(), firstDrift)
	}
	if s.Energies() != firstEnergies {
		t.Errorf("energies differ after restart: %+v vs %+v", s.Energies(), firstEnergies)
	}
}

func TestStepperZeroSeedFailsBeforeMutation(t *testing.T) {
	p := validParams()
	s, err := NewStepper(p)
	if err != nil {
		t.Fatal(err)
	}
	s.params.Seed = 0

	if _, err := s.Start(); err == nil {
		t.Error("expected error for zero seed")
	}
	for _, v := range s.sys.Pos {
		if v != 0 {
			t.Fatal("state mutated despite seed error")
		}
	}
}
