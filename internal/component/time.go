package component

import (
	"math"

	"github.com/wildreach/sim/internal/mathx"
)

// DayPhase partitions the 24-hour clock. Exactly one phase holds for any hour.
type DayPhase int

const (
	PhaseDawn DayPhase = iota
	PhaseDay
	PhaseDusk
	PhaseNight
)

func (p DayPhase) String() string {
	switch p {
	case PhaseDawn:
		return "dawn"
	case PhaseDay:
		return "day"
	case PhaseDusk:
		return "dusk"
	case PhaseNight:
		return "night"
	default:
		return "unknown"
	}
}

// PhaseOf classifies an hour: dawn [5,7), day [7,17), dusk [17,19),
// night [19,24) ∪ [0,5).
func PhaseOf(hour float64) DayPhase {
	h := mathx.WrapHour(hour)
	switch {
	case h >= 5 && h < 7:
		return PhaseDawn
	case h >= 7 && h < 17:
		return PhaseDay
	case h >= 17 && h < 19:
		return PhaseDusk
	default:
		return PhaseNight
	}
}

// TimeState is the world-clock singleton. Created once at world init and
// mutated every tick by the time system; the derived lighting values are
// pure, continuous functions of Hour (no jumps across phase boundaries or
// the 24→0 wrap).
type TimeState struct {
	Hour  float64 // [0, 24)
	Phase DayPhase

	SunIntensity float64 // [0, 1.25]
	SunAngle     float64 // radians, 0 at sunrise, π/2 at noon
	AmbientLight float64 // [0.2, 0.9]
	FogDensity   float64 // [0.015, 0.05]
}

// NewTimeState builds the singleton at the given starting hour.
func NewTimeState(hour float64) *TimeState {
	t := &TimeState{Hour: mathx.WrapHour(hour)}
	t.recompute()
	return t
}

// AdvanceHours moves the clock forward. Negative or non-finite input is
// clamped to zero rather than propagated.
func (t *TimeState) AdvanceHours(hours float64) {
	t.Hour = mathx.WrapHour(t.Hour + mathx.SafeDelta(hours))
	t.recompute()
}

// recompute derives phase and lighting from Hour. Solar elevation is
// sin((hour-6)·π/12): −1 at midnight, 0 at 6:00/18:00, 1 at noon — its
// period is exactly 24h, so the wrap is seamless.
func (t *TimeState) recompute() {
	t.Phase = PhaseOf(t.Hour)
	t.SunAngle = (t.Hour - 6) * math.Pi / 12

	elev := math.Sin(t.SunAngle)
	daylight := math.Max(0, elev)

	t.SunIntensity = 1.25 * daylight
	t.AmbientLight = 0.2 + 0.7*daylight
	t.FogDensity = 0.015 + 0.035*(1-daylight)
}
