package mathx

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampLen(t *testing.T) {
	v := Vec3{X: 8.3, Z: 0}
	clamped := v.ClampLen(5)
	assert.InDelta(t, 5.0, clamped.Len(), 1e-12)

	// Direction preserved.
	assert.Greater(t, clamped.X, 0.0)
	assert.Zero(t, clamped.Z)

	// Within the limit: unchanged.
	short := Vec3{X: 1, Y: 2, Z: 2}
	assert.Equal(t, short, short.ClampLen(5))

	// Diagonal vector rescales to exactly the limit.
	diag := Vec3{X: 6, Y: 0, Z: 8}
	require.InDelta(t, 10.0, diag.Len(), 1e-12)
	assert.InDelta(t, 5.0, diag.ClampLen(5).Len(), 1e-12)

	assert.Equal(t, Vec3{}, diag.ClampLen(0))
}

func TestNormalized(t *testing.T) {
	assert.Equal(t, Vec3{}, Vec3{}.Normalized())
	n := Vec3{X: 3, Z: 4}.Normalized()
	assert.InDelta(t, 1.0, n.Len(), 1e-12)
}

func TestDistXZ(t *testing.T) {
	a := Vec3{X: 1, Y: 100, Z: 1}
	b := Vec3{X: 4, Y: -50, Z: 5}
	assert.InDelta(t, 5.0, DistXZ(a, b), 1e-12)
}

func TestWrapHour(t *testing.T) {
	assert.InDelta(t, 1.5, WrapHour(25.5), 1e-12)
	assert.InDelta(t, 23.0, WrapHour(-1), 1e-12)
	assert.InDelta(t, 0.0, WrapHour(24), 1e-12)
	assert.InDelta(t, 12.0, WrapHour(12), 1e-12)
}

func TestSafeDelta(t *testing.T) {
	assert.Zero(t, SafeDelta(-0.5))
	assert.Zero(t, SafeDelta(math.NaN()))
	assert.Zero(t, SafeDelta(math.Inf(1)))
	assert.Equal(t, 0.05, SafeDelta(0.05))
}
