package component

import "github.com/wildreach/sim/internal/mathx"

// ColliderShape tags the collision volume kind.
type ColliderShape int

const (
	ShapeSphere ColliderShape = iota
	ShapeCapsule
	ShapeBox
)

// Collider is read by the movement system only. Separation uses the
// horizontal bounding radius regardless of shape; the shape-specific
// extents exist for the renderer-facing snapshot and future refinement.
type Collider struct {
	Shape       ColliderShape
	Radius      float64    // sphere/capsule radius
	Height      float64    // capsule height
	HalfExtents mathx.Vec3 // box half extents
	Static      bool       // obstacles: immovable, steered around
}

// BoundingRadius is the horizontal radius used for separation tests.
func (c *Collider) BoundingRadius() float64 {
	if c.Shape == ShapeBox {
		if c.HalfExtents.X > c.HalfExtents.Z {
			return c.HalfExtents.X
		}
		return c.HalfExtents.Z
	}
	return c.Radius
}
