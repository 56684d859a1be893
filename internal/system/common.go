package system

import (
	"github.com/wildreach/sim/internal/component"
	"github.com/wildreach/sim/internal/core/ecs"
	"github.com/wildreach/sim/internal/core/event"
	"github.com/wildreach/sim/internal/world"
)

// deadGraceSeconds is how long a dead entity lingers before the spawn
// system queues its removal.
const deadGraceSeconds = 5.0

// transition moves an entity's FSM to a new state, emitting the
// state-change event. Entering StateDead is terminal: it arms the grace
// timer, zeroes movement, and emits EntityDied. Transitions out of
// StateDead are refused.
func transition(st *world.State, id ecs.EntityID, sp *component.Species, to component.BehaviorState) {
	if sp.State == to || sp.State == component.StateDead {
		return
	}
	from := sp.State
	sp.State = to
	event.Emit(st.Bus, event.StateTransitioned{
		Entity: id,
		From:   from.String(),
		To:     to.String(),
	})
	if to == component.StateDead {
		sp.DeadTimer = deadGraceSeconds
		if mv, ok := st.Movements.Get(id); ok {
			mv.Velocity = mv.Velocity.Scale(0)
			mv.Acceleration = mv.Acceleration.Scale(0)
		}
		var x, z float64
		if tr, ok := st.Transforms.Get(id); ok {
			x, z = tr.Position.X, tr.Position.Z
		}
		event.Emit(st.Bus, event.EntityDied{Entity: id, X: x, Z: z})
	}
}

// applyDamage reduces the target's health (clamped at zero), emits
// EntityDamaged, and transitions the target to StateDead when health
// reaches zero.
func applyDamage(st *world.State, target, source ecs.EntityID, amount float64) {
	sp, ok := st.Species.Get(target)
	if !ok || !sp.Alive() {
		return
	}
	if amount <= 0 {
		return
	}
	sp.ApplyDamage(amount)
	event.Emit(st.Bus, event.EntityDamaged{Entity: target, Source: source, Amount: amount})
	if sp.Health <= 0 {
		transition(st, target, sp, component.StateDead)
	}
}
