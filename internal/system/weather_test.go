package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildreach/sim/internal/component"
)

func TestEmptyWeatherTableFallsBackToClear(t *testing.T) {
	st := newTestState() // the test biome has no weather rows
	ws := NewWeatherSystem(st, st.Log)

	w := st.Weather()
	w.DurationLeft = 0.01
	ws.Update(tick)

	// Clear drawn again: no transition, just a fresh hold.
	assert.Equal(t, component.WeatherClear, w.Current)
	assert.False(t, w.HasNext)
	assert.GreaterOrEqual(t, w.DurationLeft, st.Cfg.Weather.MinDurationSec)
}

func TestTransitionBlendsLinearly(t *testing.T) {
	st := newTestState()
	ws := NewWeatherSystem(st, st.Log)

	w := st.Weather()
	w.Next = component.WeatherRain
	w.HasNext = true
	w.TransitionProgress = 0

	ws.Update(15 * time.Second) // half of the 30s window
	require.True(t, w.HasNext)
	assert.InDelta(t, 0.5, w.TransitionProgress, 1e-9)
	assert.InDelta(t, 0.9, w.VisibilityModifier, 1e-9, "halfway between clear 1.0 and rain 0.8")
	assert.InDelta(t, 0.35, w.Intensity, 1e-9)
}

func TestTransitionCommit(t *testing.T) {
	st := newTestState()
	ws := NewWeatherSystem(st, st.Log)

	w := st.Weather()
	w.Next = component.WeatherSandstorm
	w.HasNext = true
	w.TransitionProgress = 0

	ws.Update(30 * time.Second)
	assert.Equal(t, component.WeatherSandstorm, w.Current)
	assert.False(t, w.HasNext, "a finished transition must be fully committed")
	assert.Zero(t, w.TransitionProgress)
	assert.Equal(t, 0.3, w.VisibilityModifier)
	assert.Equal(t, 4.0, w.WindMultiplier)
	assert.Greater(t, w.DurationLeft, 0.0)
}

func TestHoldCountsDown(t *testing.T) {
	st := newTestState()
	ws := NewWeatherSystem(st, st.Log)

	w := st.Weather()
	w.DurationLeft = 100
	ws.Update(time.Second)
	assert.InDelta(t, 99.0, w.DurationLeft, 1e-9)
	assert.False(t, w.HasNext)
}
