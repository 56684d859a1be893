package mathx

import "math"

// Vec3 is a 3D vector. Y is up; the terrain plane is (X, Z).
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// LenXZ is the horizontal (ground-plane) length.
func (v Vec3) LenXZ() float64 {
	return math.Hypot(v.X, v.Z)
}

// Normalized returns a unit vector, or the zero vector for zero input.
func (v Vec3) Normalized() Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// ClampLen limits the vector's magnitude to max. A vector already within
// the limit is returned unchanged; a longer one is rescaled to exactly max.
func (v Vec3) ClampLen(max float64) Vec3 {
	if max <= 0 {
		return Vec3{}
	}
	l := v.Len()
	if l <= max {
		return v
	}
	return v.Scale(max / l)
}

// DistXZ is the horizontal distance between two points.
func DistXZ(a, b Vec3) float64 {
	return math.Hypot(a.X-b.X, a.Z-b.Z)
}
