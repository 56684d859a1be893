package world

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wildreach/sim/internal/core/ecs"
)

func TestHeightDeterministicPerSeed(t *testing.T) {
	a := NewTerrain(1234, -0.5)
	b := NewTerrain(1234, -0.5)
	c := NewTerrain(99, -0.5)

	var diverged bool
	for x := -100.0; x <= 100; x += 7.3 {
		for z := -100.0; z <= 100; z += 7.3 {
			assert.Equal(t, a.HeightAt(x, z), b.HeightAt(x, z), "same seed must agree everywhere")
			if a.HeightAt(x, z) != c.HeightAt(x, z) {
				diverged = true
			}
		}
	}
	assert.True(t, diverged, "different seeds must produce different terrain")
}

func TestHeightWithinAmplitude(t *testing.T) {
	tr := NewTerrain(42, -0.5)
	limit := tr.Amplitude * 1.3125 // octave sum bound
	for x := -500.0; x <= 500; x += 13.7 {
		h := tr.HeightAt(x, x/2)
		assert.LessOrEqual(t, h, limit)
		assert.GreaterOrEqual(t, h, -limit)
	}
}

func TestSlopeNonNegative(t *testing.T) {
	tr := NewTerrain(42, -0.5)
	for x := -50.0; x <= 50; x += 3.1 {
		assert.GreaterOrEqual(t, tr.SlopeAt(x, -x), 0.0)
	}
}

func TestSubmerged(t *testing.T) {
	tr := NewTerrain(42, -0.5)
	assert.True(t, tr.Submerged(-1))
	assert.False(t, tr.Submerged(-0.5))
	assert.False(t, tr.Submerged(3))
}

func TestGridNearbyIsSuperset(t *testing.T) {
	g := NewGrid(16)
	a := ecs.EntityID(1)
	b := ecs.EntityID(2)
	c := ecs.EntityID(3)
	g.Insert(a, 0, 0)
	g.Insert(b, 5, 5)
	g.Insert(c, 500, 500)

	got := g.Nearby(nil, 0, 0, 10)
	assert.Contains(t, got, a)
	assert.Contains(t, got, b)
	assert.NotContains(t, got, c)

	g.Reset()
	assert.Empty(t, g.Nearby(nil, 0, 0, 10))
}
