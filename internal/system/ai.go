package system

import (
	"math"
	"time"

	"github.com/wildreach/sim/internal/component"
	"github.com/wildreach/sim/internal/core/ecs"
	"github.com/wildreach/sim/internal/core/system"
	"github.com/wildreach/sim/internal/mathx"
	"github.com/wildreach/sim/internal/scripting"
	"github.com/wildreach/sim/internal/world"
)

const (
	// Target pursuit gives up at this multiple of the awareness radius.
	loseTargetFactor = 2.0

	attackCooldownSec = 1.2
	wanderSpeedFactor = 0.4
	tiredSpeedFactor  = 0.6
	fleeStaminaDrain  = 4.0 // per second while fleeing
	avoidLookahead    = 3.0
	separationRange   = 2.0
)

// AISystem drives every steered entity: it rebuilds the spatial grid,
// runs the behavior FSM, and blends the weighted steering rules into a
// desired-velocity force consumed by the movement system. Full
// evaluation happens every AICadenceTicks ticks per entity, staggered by
// entity ID; skipped ticks reuse the cached force.
type AISystem struct {
	st      *world.State
	engine  *scripting.Engine
	cadence uint64
	scratch []ecs.EntityID
}

func NewAISystem(st *world.State, engine *scripting.Engine) *AISystem {
	cadence := uint64(st.Cfg.Simulation.AICadenceTicks)
	if cadence == 0 {
		cadence = 1
	}
	return &AISystem{st: st, engine: engine, cadence: cadence}
}

func (s *AISystem) Phase() system.Phase { return system.PhaseAI }

func (s *AISystem) Update(dt time.Duration) {
	s.rebuildGrid()
	sec := dt.Seconds()

	ecs.Each3(s.st.Steerings, s.st.Species, s.st.Movements, func(id ecs.EntityID, stg *component.Steering, sp *component.Species, mv *component.Movement) {
		if stg.AttackCooldown > 0 {
			stg.AttackCooldown -= sec
		}
		if !sp.Alive() {
			stg.Force = mathx.Vec3{}
			return
		}
		tr, ok := s.st.Transforms.Get(id)
		if !ok {
			return
		}
		if (s.st.Tick+uint64(id))%s.cadence != 0 {
			return
		}
		s.think(id, tr, mv, sp, stg, sec*float64(s.cadence))
	})
}

func (s *AISystem) rebuildGrid() {
	s.st.Grid.Reset()
	s.st.Transforms.Each(func(id ecs.EntityID, tr *component.Transform) {
		s.st.Grid.Insert(id, tr.Position.X, tr.Position.Z)
	})
}

func (s *AISystem) think(id ecs.EntityID, tr *component.Transform, mv *component.Movement, sp *component.Species, stg *component.Steering, sec float64) {
	switch sp.Role {
	case component.RolePredator:
		s.thinkPredator(id, tr, mv, sp, stg)
	case component.RolePrey:
		s.thinkPrey(id, tr, mv, sp, stg, sec)
	default:
		stg.Force = mathx.Vec3{}
		return
	}
	s.steer(id, tr, mv, sp, stg, sec)
}

func (s *AISystem) thinkPredator(id ecs.EntityID, tr *component.Transform, mv *component.Movement, sp *component.Species, stg *component.Steering) {
	if !s.targetValid(stg.Target, tr.Position, stg.Awareness*loseTargetFactor) {
		stg.Target = ecs.EntityID(0)
	}
	if stg.Target.IsZero() {
		stg.Target = s.nearestHostile(id, tr.Position, stg.Awareness, func(other *component.Species) bool {
			return other.Role == component.RolePrey || other.Role == component.RolePlayer
		})
	}
	if stg.Target.IsZero() {
		s.wanderState(id, sp, stg)
		return
	}

	ttr, ok := s.st.Transforms.Get(stg.Target)
	if !ok {
		stg.Target = ecs.EntityID(0)
		s.wanderState(id, sp, stg)
		return
	}
	dist := mathx.DistXZ(tr.Position, ttr.Position)
	if dist <= sp.StrikeRange {
		transition(s.st, id, sp, component.StateAttack)
		s.strike(id, sp, stg)
		return
	}
	transition(s.st, id, sp, component.StateChase)
}

func (s *AISystem) thinkPrey(id ecs.EntityID, tr *component.Transform, mv *component.Movement, sp *component.Species, stg *component.Steering, sec float64) {
	threat := s.nearestHostile(id, tr.Position, stg.Awareness, func(other *component.Species) bool {
		return other.Role == component.RolePredator
	})
	stg.Target = threat
	if threat.IsZero() {
		sp.Restore(0, fleeStaminaDrain*sec*0.5)
		s.wanderState(id, sp, stg)
		return
	}
	sp.DrainStamina(fleeStaminaDrain * sec)
	if sp.Stamina <= 0 {
		// Exhausted: keeps moving away, just slower.
		transition(s.st, id, sp, component.StateRun)
		return
	}
	transition(s.st, id, sp, component.StateFlee)
}

// wanderState runs the idle/walk alternation. The wander timer doubles as
// the dwell timer for both states.
func (s *AISystem) wanderState(id ecs.EntityID, sp *component.Species, stg *component.Steering) {
	if sp.State != component.StateIdle && sp.State != component.StateWalk {
		// Coming out of a pursuit or flee: settle into a walk.
		stg.WanderTimer = 0
	}
	if stg.WanderTimer > 0 {
		return
	}
	stg.WanderTimer = 3 + s.st.Rng.Float64()*2
	stg.WanderAngle += (s.st.Rng.Float64() - 0.5) * math.Pi
	if s.st.Rng.Float64() < 0.35 {
		transition(s.st, id, sp, component.StateIdle)
	} else {
		transition(s.st, id, sp, component.StateWalk)
	}
}

func (s *AISystem) strike(attacker ecs.EntityID, sp *component.Species, stg *component.Steering) {
	if stg.AttackCooldown > 0 {
		return
	}
	tsp, ok := s.st.Species.Get(stg.Target)
	if !ok || !tsp.Alive() {
		return
	}
	dmg := s.engine.CalcAttackDamage(scripting.AttackContext{
		AttackerDamage: sp.AttackDamage,
		AttackerSpeed:  sp.Speed,
		TargetHealth:   tsp.Health,
		TargetStamina:  tsp.Stamina,
	})
	applyDamage(s.st, stg.Target, attacker, dmg)
	stg.AttackCooldown = attackCooldownSec
}

// steer blends the entity's weighted behavior rules into a desired
// velocity. Which rules contribute depends on the FSM state; the sum is
// clamped to the entity's speed limit.
func (s *AISystem) steer(id ecs.EntityID, tr *component.Transform, mv *component.Movement, sp *component.Species, stg *component.Steering, sec float64) {
	stg.WanderTimer -= sec

	var force mathx.Vec3
	for _, b := range stg.Behaviors {
		var f mathx.Vec3
		switch b.Kind {
		case component.BehaviorSeek:
			if sp.State == component.StateChase {
				f = s.seekForce(tr.Position, stg.Target, mv.MaxSpeed)
			}
		case component.BehaviorFlee:
			if sp.State == component.StateFlee || sp.State == component.StateRun {
				speed := mv.MaxSpeed
				if sp.State == component.StateRun {
					speed *= tiredSpeedFactor
				}
				f = s.fleeForce(tr.Position, stg.Target, speed)
			}
		case component.BehaviorWander:
			if sp.State == component.StateWalk {
				f = mathx.Vec3{
					X: math.Cos(stg.WanderAngle),
					Z: math.Sin(stg.WanderAngle),
				}.Scale(mv.MaxSpeed * wanderSpeedFactor)
			}
		case component.BehaviorAvoid:
			f = s.avoidForce(tr.Position, mv)
		case component.BehaviorSeparate:
			f = s.separateForce(id, tr.Position)
		}
		force = force.Add(f.Scale(b.Weight))
	}
	force.Y = 0
	stg.Force = force.ClampLen(mv.MaxSpeed)
}

func (s *AISystem) seekForce(pos mathx.Vec3, target ecs.EntityID, speed float64) mathx.Vec3 {
	ttr, ok := s.st.Transforms.Get(target)
	if !ok {
		return mathx.Vec3{}
	}
	d := ttr.Position.Sub(pos)
	d.Y = 0
	return d.Normalized().Scale(speed)
}

func (s *AISystem) fleeForce(pos mathx.Vec3, threat ecs.EntityID, speed float64) mathx.Vec3 {
	ttr, ok := s.st.Transforms.Get(threat)
	if !ok {
		return mathx.Vec3{}
	}
	d := pos.Sub(ttr.Position)
	d.Y = 0
	return d.Normalized().Scale(speed)
}

// avoidForce probes ahead along the current velocity and pushes away from
// water and unwalkable slopes.
func (s *AISystem) avoidForce(pos mathx.Vec3, mv *component.Movement) mathx.Vec3 {
	dir := mv.Velocity
	dir.Y = 0
	if dir.LenXZ() < 1e-6 {
		return mathx.Vec3{}
	}
	dir = dir.Normalized()
	probe := pos.Add(dir.Scale(avoidLookahead))
	h := s.st.Terrain.HeightAt(probe.X, probe.Z)
	if !s.st.Terrain.Submerged(h) && s.st.Terrain.SlopeAt(probe.X, probe.Z) < maxWalkableSlope {
		return mathx.Vec3{}
	}
	// Steer back toward where we came from, biased sideways.
	side := mathx.Vec3{X: -dir.Z, Z: dir.X}
	return dir.Scale(-1).Add(side).Normalized().Scale(mv.MaxSpeed)
}

func (s *AISystem) separateForce(id ecs.EntityID, pos mathx.Vec3) mathx.Vec3 {
	s.scratch = s.st.Grid.Nearby(s.scratch[:0], pos.X, pos.Z, separationRange)
	var push mathx.Vec3
	for _, other := range s.scratch {
		if other == id || !s.st.Species.Has(other) {
			continue
		}
		otr, ok := s.st.Transforms.Get(other)
		if !ok {
			continue
		}
		d := pos.Sub(otr.Position)
		d.Y = 0
		dist := d.LenXZ()
		if dist <= 0 || dist >= separationRange {
			continue
		}
		push = push.Add(d.Normalized().Scale((separationRange - dist) / separationRange))
	}
	return push
}

// targetValid reports whether a pursuit target is still worth chasing:
// alive, present, and within the give-up radius.
func (s *AISystem) targetValid(target ecs.EntityID, pos mathx.Vec3, maxDist float64) bool {
	if target.IsZero() || !s.st.ECS.Alive(target) {
		return false
	}
	tsp, ok := s.st.Species.Get(target)
	if !ok || !tsp.Alive() {
		return false
	}
	ttr, ok := s.st.Transforms.Get(target)
	if !ok {
		return false
	}
	return mathx.DistXZ(pos, ttr.Position) <= maxDist
}

func (s *AISystem) nearestHostile(self ecs.EntityID, pos mathx.Vec3, radius float64, match func(*component.Species) bool) ecs.EntityID {
	s.scratch = s.st.Grid.Nearby(s.scratch[:0], pos.X, pos.Z, radius)
	var best ecs.EntityID
	bestDist := radius
	for _, other := range s.scratch {
		if other == self {
			continue
		}
		osp, ok := s.st.Species.Get(other)
		if !ok || !osp.Alive() || !match(osp) {
			continue
		}
		otr, ok := s.st.Transforms.Get(other)
		if !ok {
			continue
		}
		d := mathx.DistXZ(pos, otr.Position)
		if d <= bestDist {
			best = other
			bestDist = d
		}
	}
	return best
}
