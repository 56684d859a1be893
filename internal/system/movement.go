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
	// Slopes below maxWalkableSlope are free terrain. Between it and
	// maxJumpSlope the entity must be mid-jump to make progress; at or
	// beyond maxJumpSlope horizontal movement is rejected outright.
	maxWalkableSlope = 30 * math.Pi / 180
	maxJumpSlope     = 45 * math.Pi / 180

	jumpSpeed     = 7.0
	maxStepHeight = 0.6

	waterDragFactor = 0.5 // horizontal speed multiplier while submerged
	buoyancyAccel   = 18.0
)

// MovementSystem turns intent (player input, steering forces) into
// position updates against the terrain: slope gating, gravity and
// buoyancy, fall damage on landing, and pairwise collider separation.
type MovementSystem struct {
	st      *world.State
	engine  *scripting.Engine
	scratch []ecs.EntityID
}

func NewMovementSystem(st *world.State, engine *scripting.Engine) *MovementSystem {
	return &MovementSystem{st: st, engine: engine}
}

func (s *MovementSystem) Phase() system.Phase { return system.PhaseMovement }

func (s *MovementSystem) Update(dt time.Duration) {
	sec := mathx.SafeDelta(dt.Seconds())
	if sec == 0 {
		return
	}

	ecs.Each2(s.st.Transforms, s.st.Movements, func(id ecs.EntityID, tr *component.Transform, mv *component.Movement) {
		s.integrate(id, tr, mv, sec)
	})
	s.separate()
}

func (s *MovementSystem) integrate(id ecs.EntityID, tr *component.Transform, mv *component.Movement, sec float64) {
	desired := s.desiredVelocity(id, tr, mv)

	// Consume a jump pulse before slope gating so a jump started this
	// tick already counts as airborne.
	if ctrl, ok := s.st.Controls.Get(id); ok && ctrl.Jump {
		ctrl.Jump = false
		if mv.Grounded {
			mv.Velocity.Y = jumpSpeed
			mv.Grounded = false
			mv.PeakY = tr.Position.Y
		}
	}

	pos := tr.Position
	inWater := s.st.Terrain.Submerged(pos.Y)
	if inWater {
		desired = desired.Scale(waterDragFactor)
	}

	cand := pos.Add(desired.Scale(sec))
	if !s.moveAllowed(pos, cand, mv) {
		desired.X, desired.Z = 0, 0
		cand = pos
	}

	horiz := mathx.Vec3{X: desired.X, Z: desired.Z}.ClampLen(mv.MaxSpeed)
	mv.Velocity.X = horiz.X
	mv.Velocity.Z = horiz.Z
	s.faceVelocity(tr, mv, sec)

	groundY := s.st.Terrain.HeightAt(cand.X, cand.Z)
	newY := pos.Y

	if mv.Grounded {
		if groundY >= pos.Y-maxStepHeight {
			// Walking terrain: follow the ground.
			newY = groundY
		} else {
			// Walked off a ledge.
			mv.Grounded = false
			mv.PeakY = pos.Y
		}
	}

	if !mv.Grounded {
		mv.Velocity.Y += s.st.Cfg.World.Gravity * sec
		if inWater {
			mv.Velocity.Y += buoyancyAccel * sec
		}
		newY = pos.Y + mv.Velocity.Y*sec
		if newY > mv.PeakY {
			mv.PeakY = newY
		}
		if newY <= groundY {
			newY = groundY
			s.land(id, mv, groundY, inWater)
		}
	}

	tr.Position = s.clampToWorld(mathx.Vec3{X: cand.X, Y: newY, Z: cand.Z})
}

// desiredVelocity resolves this tick's intended horizontal velocity.
// Players read input scaled by the weather speed modifier; NPCs read the
// cached steering force; the dead go nowhere.
func (s *MovementSystem) desiredVelocity(id ecs.EntityID, tr *component.Transform, mv *component.Movement) mathx.Vec3 {
	if sp, ok := s.st.Species.Get(id); ok && !sp.Alive() {
		return mathx.Vec3{}
	}
	if ctrl, ok := s.st.Controls.Get(id); ok {
		dir := ctrl.MoveDir
		dir.Y = 0
		return dir.Normalized().Scale(mv.MaxSpeed * s.st.Weather().SpeedModifier)
	}
	if stg, ok := s.st.Steerings.Get(id); ok {
		f := stg.Force
		f.Y = 0
		return f
	}
	return mathx.Vec3{}
}

// moveAllowed applies the slope and step gates to a horizontal move.
func (s *MovementSystem) moveAllowed(pos, cand mathx.Vec3, mv *component.Movement) bool {
	if cand.X == pos.X && cand.Z == pos.Z {
		return true
	}
	slope := s.st.Terrain.SlopeAt(cand.X, cand.Z)
	switch {
	case slope < maxWalkableSlope:
		// free terrain
	case slope < maxJumpSlope:
		// Steep: only a rising jump makes progress.
		if mv.Grounded || mv.Velocity.Y <= 0 {
			return false
		}
	default:
		return false
	}
	if mv.Grounded {
		candH := s.st.Terrain.HeightAt(cand.X, cand.Z)
		if candH-pos.Y > maxStepHeight {
			return false
		}
	}
	return true
}

func (s *MovementSystem) land(id ecs.EntityID, mv *component.Movement, groundY float64, inWater bool) {
	mv.Grounded = true
	mv.Velocity.Y = 0
	fall := mv.PeakY - groundY
	mv.PeakY = groundY
	if inWater {
		// Water breaks the fall entirely.
		return
	}
	safe := s.st.Cfg.World.SafeFallDist
	if fall <= safe {
		return
	}
	dmg := s.engine.CalcFallDamage(fall, safe, s.st.Cfg.World.FallDamageRate)
	applyDamage(s.st, id, id, dmg)
}

// faceVelocity eases yaw toward the movement direction at the entity's
// turn rate.
func (s *MovementSystem) faceVelocity(tr *component.Transform, mv *component.Movement, sec float64) {
	if mv.Velocity.LenXZ() < 1e-6 {
		return
	}
	target := math.Atan2(mv.Velocity.X, mv.Velocity.Z)
	diff := math.Mod(target-tr.Yaw+3*math.Pi, 2*math.Pi) - math.Pi
	maxTurn := mv.TurnRate * sec
	if mv.TurnRate <= 0 || math.Abs(diff) <= maxTurn {
		tr.Yaw = target
		return
	}
	if diff > 0 {
		tr.Yaw += maxTurn
	} else {
		tr.Yaw -= maxTurn
	}
}

func (s *MovementSystem) clampToWorld(pos mathx.Vec3) mathx.Vec3 {
	half := s.st.Cfg.World.Size / 2
	pos.X = mathx.Clamp(pos.X, -half, half)
	pos.Z = mathx.Clamp(pos.Z, -half, half)
	return pos
}

// separate resolves collider overlap between nearby entities with a
// symmetric push proportional to penetration depth. Static colliders do
// not move; the dynamic party absorbs the whole correction.
func (s *MovementSystem) separate() {
	ecs.Each2(s.st.Transforms, s.st.Colliders, func(id ecs.EntityID, tr *component.Transform, col *component.Collider) {
		if col.Static {
			return
		}
		r := col.BoundingRadius()
		s.scratch = s.st.Grid.Nearby(s.scratch[:0], tr.Position.X, tr.Position.Z, r+2)
		for _, other := range s.scratch {
			if other == id {
				continue
			}
			ocol, ok := s.st.Colliders.Get(other)
			if !ok {
				continue
			}
			otr, ok := s.st.Transforms.Get(other)
			if !ok {
				continue
			}
			minDist := r + ocol.BoundingRadius()
			d := tr.Position.Sub(otr.Position)
			d.Y = 0
			dist := d.LenXZ()
			if dist >= minDist {
				continue
			}
			overlap := minDist - dist
			var axis mathx.Vec3
			if dist > 1e-9 {
				axis = d.Normalized()
			} else {
				// Coincident centers: pick a deterministic axis.
				axis = mathx.Vec3{X: 1}
			}
			if ocol.Static {
				tr.Position = tr.Position.Add(axis.Scale(overlap))
			} else {
				// Each dynamic pair is visited from both sides, so
				// half the push per visit keeps the total symmetric.
				tr.Position = tr.Position.Add(axis.Scale(overlap / 2))
			}
		}
	})
}
