package component

import "github.com/wildreach/sim/internal/mathx"

// PlayerControl holds the intent polled from the input layer once per tick.
// MoveDir is a normalized ground-plane direction; the flags are one-tick
// pulses cleared after the movement system consumes them.
type PlayerControl struct {
	MoveDir  mathx.Vec3
	Jump     bool
	Interact bool
}
