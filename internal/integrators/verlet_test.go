package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/mdsim/internal/particle"
)

func TestStepFromRest(t *testing.T) {
	// Starting from zero velocity and acceleration, one step under a
	// constant force gives the exact half-kick results.
	sys, err := particle.NewSystem(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	sys.Pos = []float64{1, 2, 3, 4}

	mass := 2.0
	dt := 0.1
	f := []float64{1, -2, 0.5, 4}

	NewVerlet().Step(sys, f, mass, dt)

	for i := range f {
		a := f[i] / mass
		wantPos := []float64{1, 2, 3, 4}[i] + 0.5*a*dt*dt
		wantVel := 0.5 * dt * a

		if sys.Pos[i] != wantPos {
			t.Errorf("pos[%d]: got %v, want %v", i, sys.Pos[i], wantPos)
		}
		if sys.Vel[i] != wantVel {
			t.Errorf("vel[%d]: got %v, want %v", i, sys.Vel[i], wantVel)
		}
		if sys.Acc[i] != a {
			t.Errorf("acc[%d]: got %v, want %v", i, sys.Acc[i], a)
		}
	}
}

func TestStepReadsPreUpdateValues(t *testing.T) {
	// With nonzero vel and acc, the position update must use the old
	// velocity and the velocity update the old acceleration.
	sys, _ := particle.NewSystem(1, 1)
	sys.Pos[0] = 1.0
	sys.Vel[0] = 2.0
	sys.Acc[0] = 3.0

	mass := 1.0
	dt := 0.5
	f := []float64{4.0}

	NewVerlet().Step(sys, f, mass, dt)

	wantPos := 1.0 + 2.0*0.5 + 0.5*3.0*0.25
	wantVel := 2.0 + 0.5*0.5*(4.0+3.0)

	if math.Abs(sys.Pos[0]-wantPos) > 1e-15 {
		t.Errorf("pos: got %v, want %v", sys.Pos[0], wantPos)
	}
	if math.Abs(sys.Vel[0]-wantVel) > 1e-15 {
		t.Errorf("vel: got %v, want %v", sys.Vel[0], wantVel)
	}
	if sys.Acc[0] != 4.0 {
		t.Errorf("acc: got %v, want 4", sys.Acc[0])
	}
}

func TestStepLeavesForceUntouched(t *testing.T) {
	sys, _ := particle.NewSystem(1, 3)
	f := []float64{1, 2, 3}

	NewVerlet().Step(sys, f, 1.0, 0.01)

	if f[0] != 1 || f[1] != 2 || f[2] != 3 {
		t.Errorf("force buffer modified: %v", f)
	}
}
