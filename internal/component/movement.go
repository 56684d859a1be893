package component

import "github.com/wildreach/sim/internal/mathx"

// Movement carries kinematic state. Invariant: |Velocity| <= MaxSpeed after
// any system writes to it — writers go through LimitVelocity.
type Movement struct {
	Velocity     mathx.Vec3
	Acceleration mathx.Vec3
	MaxSpeed     float64
	TurnRate     float64 // radians/sec

	// Vertical integration state.
	Grounded bool
	PeakY    float64 // highest Y since leaving the ground, for fall damage
}

// LimitVelocity re-establishes the speed invariant after a velocity write.
func (m *Movement) LimitVelocity() {
	m.Velocity = m.Velocity.ClampLen(m.MaxSpeed)
}
