package system

import (
	"time"

	"github.com/wildreach/sim/internal/core/event"
	"github.com/wildreach/sim/internal/core/system"
)

// DispatchSystem flips the event bus buffers at the start of each tick
// and delivers everything emitted during the previous one. Handlers
// therefore always observe a consistent post-tick world.
type DispatchSystem struct {
	bus *event.Bus
}

func NewDispatchSystem(bus *event.Bus) *DispatchSystem {
	return &DispatchSystem{bus: bus}
}

func (s *DispatchSystem) Phase() system.Phase { return system.PhaseInput }

func (s *DispatchSystem) Update(dt time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
