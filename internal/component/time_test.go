package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceWrapsMidnight(t *testing.T) {
	ts := NewTimeState(23.0)
	ts.AdvanceHours(2.5)
	assert.InDelta(t, 1.5, ts.Hour, 1e-9)
	assert.Equal(t, PhaseNight, ts.Phase)
}

func TestPhaseBoundaries(t *testing.T) {
	cases := []struct {
		hour float64
		want DayPhase
	}{
		{0, PhaseNight},
		{4.99, PhaseNight},
		{5, PhaseDawn},
		{6.99, PhaseDawn},
		{7, PhaseDay},
		{16.99, PhaseDay},
		{17, PhaseDusk},
		{18.99, PhaseDusk},
		{19, PhaseNight},
		{23.99, PhaseNight},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, PhaseOf(c.hour), "hour %.2f", c.hour)
	}
}

func TestLightingContinuousAcrossMidnight(t *testing.T) {
	before := NewTimeState(23.999)
	after := NewTimeState(0.001)
	assert.InDelta(t, before.AmbientLight, after.AmbientLight, 1e-3)
	assert.InDelta(t, before.FogDensity, after.FogDensity, 1e-3)
	assert.InDelta(t, before.SunIntensity, after.SunIntensity, 1e-3)
}

func TestLightingRanges(t *testing.T) {
	noon := NewTimeState(12)
	require.InDelta(t, 1.25, noon.SunIntensity, 1e-9)
	assert.InDelta(t, 0.9, noon.AmbientLight, 1e-9)
	assert.InDelta(t, 0.015, noon.FogDensity, 1e-9)

	midnight := NewTimeState(0)
	assert.Zero(t, midnight.SunIntensity)
	assert.InDelta(t, 0.2, midnight.AmbientLight, 1e-9)
	assert.InDelta(t, 0.05, midnight.FogDensity, 1e-9)
}

func TestAdvanceRejectsBadDeltas(t *testing.T) {
	ts := NewTimeState(10)
	ts.AdvanceHours(-5)
	assert.InDelta(t, 10.0, ts.Hour, 1e-12)
}
