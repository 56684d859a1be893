package component

import "github.com/wildreach/sim/internal/mathx"

// Transform is an entity's placement in the world. Written by the movement
// system; everything else reads it.
type Transform struct {
	Position mathx.Vec3
	Yaw      float64 // radians about the Y axis
	Scale    float64
}
