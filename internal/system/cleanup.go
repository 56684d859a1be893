package system

import (
	"time"

	"github.com/wildreach/sim/internal/core/system"
	"github.com/wildreach/sim/internal/world"
)

// CleanupSystem flushes the ECS command buffer at the end of the tick:
// deferred creations run first, then queued destructions fan out across
// every registered store.
type CleanupSystem struct {
	st *world.State
}

func NewCleanupSystem(st *world.State) *CleanupSystem {
	return &CleanupSystem{st: st}
}

func (s *CleanupSystem) Phase() system.Phase { return system.PhaseCleanup }

func (s *CleanupSystem) Update(dt time.Duration) {
	s.st.ECS.FlushCommands()
}
