package system

import (
	"time"

	"github.com/wildreach/sim/internal/core/system"
	"github.com/wildreach/sim/internal/world"
)

// TimeSystem advances the simulation clock and the in-game day cycle.
// One full day spans DayLengthSec wall seconds, so the hour advances at
// 24/DayLengthSec game hours per second.
type TimeSystem struct {
	st *world.State
}

func NewTimeSystem(st *world.State) *TimeSystem {
	return &TimeSystem{st: st}
}

func (s *TimeSystem) Phase() system.Phase { return system.PhaseTime }

func (s *TimeSystem) Update(dt time.Duration) {
	s.st.Tick++
	s.st.Clock += dt.Seconds()

	ts := s.st.Time()
	hours := dt.Seconds() * 24.0 / float64(s.st.Cfg.World.DayLengthSec)
	ts.AdvanceHours(hours)
}
