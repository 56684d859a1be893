package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/wildreach/sim/internal/component"
	"github.com/wildreach/sim/internal/core/ecs"
	"github.com/wildreach/sim/internal/core/event"
	"github.com/wildreach/sim/internal/core/system"
	"github.com/wildreach/sim/internal/mathx"
	"github.com/wildreach/sim/internal/world"
)

// interactRange is how close a collector must stand to a resource.
const interactRange = 2.0

// EconomySystem owns the collect/respawn life cycle of world resources.
// Collection is idempotent per cycle: while a resource sits collected,
// further attempts are no-ops until its countdown respawns it.
type EconomySystem struct {
	st      *world.State
	log     *zap.Logger
	scratch []ecs.EntityID
}

func NewEconomySystem(st *world.State, log *zap.Logger) *EconomySystem {
	return &EconomySystem{st: st, log: log}
}

func (s *EconomySystem) Phase() system.Phase { return system.PhaseEconomy }

func (s *EconomySystem) Update(dt time.Duration) {
	sec := dt.Seconds()

	s.st.Resources.Each(func(id ecs.EntityID, res *component.Resource) {
		if !res.Collected {
			return
		}
		res.RespawnIn -= sec
		if res.RespawnIn <= 0 {
			res.Collected = false
			res.RespawnIn = 0
		}
	})

	s.handleInteract()
}

// handleInteract consumes the player's interact pulse by collecting the
// nearest available resource in range.
func (s *EconomySystem) handleInteract() {
	player := s.st.PlayerID()
	if player.IsZero() {
		return
	}
	ctrl, ok := s.st.Controls.Get(player)
	if !ok || !ctrl.Interact {
		return
	}
	ctrl.Interact = false

	pos, ok := s.st.PlayerPosition()
	if !ok {
		return
	}
	target := s.nearestAvailable(pos)
	if target.IsZero() {
		return
	}
	s.TryCollect(player, target)
}

func (s *EconomySystem) nearestAvailable(pos mathx.Vec3) ecs.EntityID {
	s.scratch = s.st.Grid.Nearby(s.scratch[:0], pos.X, pos.Z, interactRange)
	var best ecs.EntityID
	bestDist := interactRange
	for _, id := range s.scratch {
		res, ok := s.st.Resources.Get(id)
		if !ok || res.Collected {
			continue
		}
		tr, ok := s.st.Transforms.Get(id)
		if !ok {
			continue
		}
		d := mathx.DistXZ(pos, tr.Position)
		if d <= bestDist {
			best = id
			bestDist = d
		}
	}
	return best
}

// TryCollect collects a resource for an entity: restores health and
// stamina, marks the resource collected, arms the respawn countdown, and
// emits ResourceCollected. Returns false when the resource is missing or
// already collected this cycle.
func (s *EconomySystem) TryCollect(collector, resource ecs.EntityID) bool {
	res, ok := s.st.Resources.Get(resource)
	if !ok || res.Collected {
		return false
	}
	sp, ok := s.st.Species.Get(collector)
	if !ok || !sp.Alive() {
		return false
	}

	sp.Restore(res.HealthRestore, res.StaminaRestore)
	res.Collected = true
	res.CollectedAt = s.st.Clock
	res.RespawnIn = res.RespawnTime

	event.Emit(s.st.Bus, event.ResourceCollected{
		Resource:  resource,
		Collector: collector,
		Kind:      res.Kind.String(),
	})
	s.log.Debug("resource collected",
		zap.String("kind", res.Kind.String()),
		zap.Uint64("resource", uint64(resource)),
	)
	return true
}
