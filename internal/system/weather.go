package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/wildreach/sim/internal/component"
	"github.com/wildreach/sim/internal/core/system"
	"github.com/wildreach/sim/internal/data"
	"github.com/wildreach/sim/internal/mathx"
	"github.com/wildreach/sim/internal/world"
)

// WeatherSystem runs the weather FSM: hold the current condition for a
// random duration, draw the next one from the weighted table of the
// biome the player stands in, then blend the derived modifiers linearly
// over the configured transition window before committing.
type WeatherSystem struct {
	st  *world.State
	log *zap.Logger
}

func NewWeatherSystem(st *world.State, log *zap.Logger) *WeatherSystem {
	return &WeatherSystem{st: st, log: log}
}

func (s *WeatherSystem) Phase() system.Phase { return system.PhaseWeather }

func (s *WeatherSystem) Update(dt time.Duration) {
	w := s.st.Weather()
	sec := dt.Seconds()

	if w.HasNext {
		s.advanceTransition(w, sec)
		return
	}

	w.DurationLeft -= sec
	if w.DurationLeft > 0 {
		return
	}
	s.beginTransition(w)
}

func (s *WeatherSystem) beginTransition(w *component.WeatherState) {
	next := s.drawNext()
	if next == w.Current {
		// Same condition drawn again: just extend the hold.
		w.DurationLeft = s.holdDuration()
		return
	}
	w.Next = next
	w.HasNext = true
	w.TransitionProgress = 0
	s.log.Info("weather transition started",
		zap.String("from", w.Current.String()),
		zap.String("to", next.String()),
	)
}

func (s *WeatherSystem) advanceTransition(w *component.WeatherState, sec float64) {
	span := s.st.Cfg.Weather.TransitionSec
	if span <= 0 {
		w.TransitionProgress = 1
	} else {
		w.TransitionProgress = mathx.Clamp01(w.TransitionProgress + sec/span)
	}

	from := w.Current.Effects()
	to := w.Next.Effects()
	t := w.TransitionProgress
	w.Intensity = mathx.Lerp(from.Intensity, to.Intensity, t)
	w.VisibilityModifier = mathx.Lerp(from.Visibility, to.Visibility, t)
	w.WindMultiplier = mathx.Lerp(from.Wind, to.Wind, t)
	w.SpeedModifier = mathx.Lerp(from.PlayerSpeed, to.PlayerSpeed, t)

	if t >= 1 {
		w.Current = w.Next
		w.HasNext = false
		w.TransitionProgress = 0
		w.ApplySteady()
		w.DurationLeft = s.holdDuration()
		s.log.Info("weather committed", zap.String("weather", w.Current.String()))
	}
}

// drawNext samples the weighted table of the biome containing the
// player. An empty or all-zero table falls back to clear.
func (s *WeatherSystem) drawNext() component.WeatherKind {
	id := s.st.BiomeAtPlayer()
	weights := s.st.Biomes.WeatherWeights(id)
	kind, ok := data.PickWeather(s.st.Rng, weights)
	if !ok {
		return component.WeatherClear
	}
	return kind
}

func (s *WeatherSystem) holdDuration() float64 {
	min := s.st.Cfg.Weather.MinDurationSec
	max := s.st.Cfg.Weather.MaxDurationSec
	if max <= min {
		return min
	}
	return min + s.st.Rng.Float64()*(max-min)
}
