package data

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildreach/sim/internal/component"
)

func testBiomes() *BiomeTable {
	return NewBiomeTable([]Biome{
		{Name: "west", CenterX: -100, CenterZ: 0, Radius: 80},
		{Name: "east", CenterX: 100, CenterZ: 0, Radius: 80},
		{Name: "north", CenterX: 0, CenterZ: -150, Radius: 80,
			Weather: []WeatherRow{
				{Kind: "snow", Weight: 0.7},
				{Kind: "clear", Weight: 0.3},
			}},
	})
}

func TestAtPartitionsPlane(t *testing.T) {
	bt := testBiomes()
	rng := rand.New(rand.NewSource(7))

	// Every point maps to exactly one region and it is a nearest one.
	for i := 0; i < 10000; i++ {
		x := rng.Float64()*1000 - 500
		z := rng.Float64()*1000 - 500
		got := bt.At(x, z)
		gb := bt.Get(got)
		require.NotNil(t, gb)

		gd := (x-gb.CenterX)*(x-gb.CenterX) + (z-gb.CenterZ)*(z-gb.CenterZ)
		for j := 0; j < bt.Count(); j++ {
			b := bt.Get(BiomeID(j))
			d := (x-b.CenterX)*(x-b.CenterX) + (z-b.CenterZ)*(z-b.CenterZ)
			assert.LessOrEqual(t, gd, d, "point (%f,%f) assigned to non-nearest region", x, z)
		}
	}
}

func TestAtTieBreaksToLowestIndex(t *testing.T) {
	bt := testBiomes()
	// (0,0) is equidistant from west and east.
	assert.Equal(t, BiomeID(0), bt.At(0, 0))
}

func TestWeatherWeightsParsed(t *testing.T) {
	bt := testBiomes()
	weights := bt.WeatherWeights(2)
	require.Len(t, weights, 2)
	assert.Equal(t, component.WeatherSnow, weights[0].Kind)
	assert.Equal(t, 0.7, weights[0].Weight)

	assert.Empty(t, bt.WeatherWeights(0))
}

func TestPickWeighted(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, ok := PickWeighted(rng, nil)
	assert.False(t, ok, "empty table must report no pick")

	_, ok = PickWeighted(rng, []SpawnEntry{{Species: "a", Weight: 0}, {Species: "b", Weight: -1}})
	assert.False(t, ok, "all-zero table must report no pick")

	got, ok := PickWeighted(rng, []SpawnEntry{{Species: "only", Weight: 0.5}})
	require.True(t, ok)
	assert.Equal(t, "only", got)

	// Proportional draw: the heavy row dominates over many samples.
	heavy := 0
	for i := 0; i < 5000; i++ {
		s, ok := PickWeighted(rng, []SpawnEntry{
			{Species: "rare", Weight: 1},
			{Species: "common", Weight: 9},
		})
		require.True(t, ok)
		if s == "common" {
			heavy++
		}
	}
	assert.Greater(t, heavy, 4000)
	assert.Less(t, heavy, 4900)
}

func TestPickWeatherFallback(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	_, ok := PickWeather(rng, nil)
	assert.False(t, ok)

	k, ok := PickWeather(rng, []WeatherWeight{{Kind: component.WeatherFog, Weight: 2}})
	require.True(t, ok)
	assert.Equal(t, component.WeatherFog, k)
}
