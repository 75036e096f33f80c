// Package integrators advances particle state in time.
package integrators

import "github.com/san-kum/mdsim/internal/particle"

// Verlet is the velocity-Verlet scheme:
//
//	pos' = pos + vel*dt + 0.5*acc*dt^2
//	vel' = vel + 0.5*dt*(f/mass + acc)
//	acc' = f/mass
//
// Every right-hand side reads pre-update values only, and f must be the
// force evaluated for the pre-update positions. Each particle/dimension
// component updates independently of the others.
type Verlet struct{}

// NewVerlet returns a velocity-Verlet integrator.
func NewVerlet() *Verlet {
	return &Verlet{}
}

// Step advances sys by one time step in place. f holds the force for
// the current (pre-update) positions and is not modified.
func (v *Verlet) Step(sys *particle.System, f []float64, mass, dt float64) {
	rmass := 1.0 / mass
	halfDt := 0.5 * dt
	halfDt2 := 0.5 * dt * dt

	for i := range sys.Pos {
		a := f[i] * rmass
		sys.Pos[i] += sys.Vel[i]*dt + sys.Acc[i]*halfDt2
		sys.Vel[i] += halfDt * (a + sys.Acc[i])
		sys.Acc[i] = a
	}
}
