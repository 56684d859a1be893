package data

import (
	"math/rand"

	"github.com/wildreach/sim/internal/component"
)

// PickWeighted draws one row from a spawn table, proportional to weight.
// Returns ok=false when the table is empty or all weights are zero or
// negative.
func PickWeighted(rng *rand.Rand, entries []SpawnEntry) (string, bool) {
	total := 0.0
	for _, e := range entries {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	if total <= 0 {
		return "", false
	}
	roll := rng.Float64() * total
	for _, e := range entries {
		if e.Weight <= 0 {
			continue
		}
		roll -= e.Weight
		if roll < 0 {
			return e.Species, true
		}
	}
	// Float round-off can leave roll at ~0; last positive row wins.
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Weight > 0 {
			return entries[i].Species, true
		}
	}
	return "", false
}

// PickWeather draws a weather kind proportional to weight, ok=false on an
// empty or all-zero table.
func PickWeather(rng *rand.Rand, weights []WeatherWeight) (component.WeatherKind, bool) {
	total := 0.0
	for _, w := range weights {
		if w.Weight > 0 {
			total += w.Weight
		}
	}
	if total <= 0 {
		return component.WeatherClear, false
	}
	roll := rng.Float64() * total
	for _, w := range weights {
		if w.Weight <= 0 {
			continue
		}
		roll -= w.Weight
		if roll < 0 {
			return w.Kind, true
		}
	}
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i].Weight > 0 {
			return weights[i].Kind, true
		}
	}
	return component.WeatherClear, false
}
