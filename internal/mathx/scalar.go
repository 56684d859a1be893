package mathx

import "math"

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 bounds v to [0, 1].
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// SafeDelta sanitizes a caller-supplied time delta: negative, NaN and
// infinite values become 0 so they can never corrupt integration state.
func SafeDelta(dt float64) float64 {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		return 0
	}
	return dt
}

// Lerp interpolates linearly between a and b by t ∈ [0,1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// WrapHour maps an hour value onto [0, 24), handling negatives.
func WrapHour(h float64) float64 {
	h = math.Mod(h, 24)
	if h < 0 {
		h += 24
	}
	return h
}
