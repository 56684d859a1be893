package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var allWeatherKinds = []WeatherKind{
	WeatherClear, WeatherRain, WeatherFog, WeatherStorm, WeatherSnow, WeatherSandstorm,
}

func TestEffectsCoverEveryKind(t *testing.T) {
	for _, k := range allWeatherKinds {
		e := k.Effects()
		assert.GreaterOrEqual(t, e.Visibility, 0.0, "%s visibility", k)
		assert.LessOrEqual(t, e.Visibility, 1.0, "%s visibility", k)
		assert.Greater(t, e.Wind, 0.0, "%s wind", k)
		assert.Greater(t, e.PlayerSpeed, 0.0, "%s player speed", k)
	}
}

func TestKnownEffectValues(t *testing.T) {
	assert.Equal(t, 0.8, WeatherRain.Effects().Visibility)
	assert.Equal(t, 0.5, WeatherFog.Effects().Visibility)
	assert.Equal(t, 0.3, WeatherSandstorm.Effects().Visibility)
	assert.Equal(t, 4.0, WeatherSandstorm.Effects().Wind)
	assert.Equal(t, 3.0, WeatherStorm.Effects().Wind)
	assert.Equal(t, 0.85, WeatherSnow.Effects().PlayerSpeed)
	assert.Equal(t, WeatherEffects{Intensity: 0, Visibility: 1, Wind: 1, PlayerSpeed: 1}, WeatherClear.Effects())
}

func TestParseWeatherKindRoundTrip(t *testing.T) {
	for _, k := range allWeatherKinds {
		got, ok := ParseWeatherKind(k.String())
		assert.True(t, ok)
		assert.Equal(t, k, got)
	}
	_, ok := ParseWeatherKind("blizzard")
	assert.False(t, ok)
}

func TestApplySteady(t *testing.T) {
	w := NewWeatherState(120)
	assert.Equal(t, WeatherClear, w.Current)
	assert.Equal(t, 1.0, w.VisibilityModifier)
	assert.Equal(t, 120.0, w.DurationLeft)

	w.Current = WeatherSandstorm
	w.ApplySteady()
	assert.Equal(t, 0.3, w.VisibilityModifier)
	assert.Equal(t, 4.0, w.WindMultiplier)
}
