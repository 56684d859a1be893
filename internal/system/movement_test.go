package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildreach/sim/internal/component"
	"github.com/wildreach/sim/internal/mathx"
	"github.com/wildreach/sim/internal/world"
)

// steepTerrain retunes the heightfield until all three slope bands exist
// and returns a sample point in each: walkable, jump-only, and blocked.
func steepTerrain(t *testing.T, st *world.State) (flat, steep, wall mathx.Vec3) {
	st.Terrain.Amplitude = 200
	st.Terrain.Frequency = 0.08

	var haveFlat, haveSteep, haveWall bool
	for x := -200.0; x <= 200 && !(haveFlat && haveSteep && haveWall); x += 0.7 {
		for z := -200.0; z <= 200; z += 0.7 {
			s := st.Terrain.SlopeAt(x, z)
			switch {
			case !haveFlat && s < maxWalkableSlope:
				flat = mathx.Vec3{X: x, Z: z}
				haveFlat = true
			case !haveSteep && s >= maxWalkableSlope && s < maxJumpSlope:
				steep = mathx.Vec3{X: x, Z: z}
				haveSteep = true
			case !haveWall && s >= maxJumpSlope:
				wall = mathx.Vec3{X: x, Z: z}
				haveWall = true
			}
			if haveFlat && haveSteep && haveWall {
				break
			}
		}
	}
	require.True(t, haveFlat && haveSteep && haveWall, "terrain sample must contain all slope bands")
	return flat, steep, wall
}

func TestSlopeGating(t *testing.T) {
	st := newTestState()
	flat, steep, wall := steepTerrain(t, st)
	ms := NewMovementSystem(st, nil)

	from := mathx.Vec3{X: flat.X - 0.3, Z: flat.Z}
	from.Y = st.Terrain.HeightAt(flat.X, flat.Z) // beside the target, same height band

	grounded := &component.Movement{Grounded: true, MaxSpeed: 5}
	cand := mathx.Vec3{X: flat.X, Y: from.Y, Z: flat.Z}
	assert.True(t, ms.moveAllowed(from, cand, grounded), "gentle slope must be walkable")

	steepCand := mathx.Vec3{X: steep.X, Z: steep.Z}
	steepFrom := mathx.Vec3{X: steep.X - 0.1, Y: st.Terrain.HeightAt(steep.X, steep.Z), Z: steep.Z}
	assert.False(t, ms.moveAllowed(steepFrom, steepCand, grounded),
		"steep slope must reject a grounded walker")

	jumping := &component.Movement{Grounded: false, Velocity: mathx.Vec3{Y: 3}, MaxSpeed: 5}
	assert.True(t, ms.moveAllowed(steepFrom, steepCand, jumping),
		"steep slope must admit a rising jump")

	wallCand := mathx.Vec3{X: wall.X, Z: wall.Z}
	wallFrom := mathx.Vec3{X: wall.X - 0.1, Y: st.Terrain.HeightAt(wall.X, wall.Z), Z: wall.Z}
	assert.False(t, ms.moveAllowed(wallFrom, wallCand, jumping),
		"blocked slope must reject even a jump")
}

func TestStepHeightRejection(t *testing.T) {
	st := newTestState()
	ms := NewMovementSystem(st, nil)

	// Flat noise field: heights are all zero, so a low starting Y makes
	// the candidate look like a tall step.
	mv := &component.Movement{Grounded: true, MaxSpeed: 5}
	from := mathx.Vec3{X: 0, Y: -2, Z: 0}
	cand := mathx.Vec3{X: 1, Y: -2, Z: 0}
	assert.False(t, ms.moveAllowed(from, cand, mv))

	from.Y = -0.3
	assert.True(t, ms.moveAllowed(from, cand, mv))
}

func TestPlayerMovesWithWeatherModifier(t *testing.T) {
	st := newTestState()
	player := st.SpawnPlayer("wanderer", mathx.Vec3{})
	w := st.Weather()
	w.Current = component.WeatherSnow
	w.ApplySteady()

	ctrl, _ := st.Controls.Get(player)
	ctrl.MoveDir = mathx.Vec3{X: 1}

	ms := NewMovementSystem(st, nil)
	ms.Update(tick)

	mv, _ := st.Movements.Get(player)
	tr, _ := st.Transforms.Get(player)
	assert.InDelta(t, 5*0.85, mv.Velocity.X, 1e-9, "snow slows the player down")
	assert.InDelta(t, 5*0.85*tick.Seconds(), tr.Position.X, 1e-9)
}

func TestJumpAndLanding(t *testing.T) {
	st := newTestState()
	player := st.SpawnPlayer("wanderer", mathx.Vec3{})
	ctrl, _ := st.Controls.Get(player)
	ctrl.Jump = true

	ms := NewMovementSystem(st, nil)
	ms.Update(tick)

	mv, _ := st.Movements.Get(player)
	tr, _ := st.Transforms.Get(player)
	assert.False(t, mv.Grounded)
	assert.Greater(t, tr.Position.Y, 0.0)
	assert.False(t, ctrl.Jump, "jump pulse must be consumed")

	// Integrate until touchdown; a short hop deals no damage.
	for i := 0; i < 100 && !mv.Grounded; i++ {
		ms.Update(tick)
	}
	sp, _ := st.Species.Get(player)
	assert.True(t, mv.Grounded)
	assert.InDelta(t, 0.0, tr.Position.Y, 1e-9)
	assert.Equal(t, 100.0, sp.Health)
}

func TestFallDamage(t *testing.T) {
	st := newTestState()
	wolf := st.SpawnNPC("wolf", component.RolePredator, mathx.Vec3{})
	tr, _ := st.Transforms.Get(wolf)
	mv, _ := st.Movements.Get(wolf)

	// Drop from 20 units: (20 - 5) * 10 = 150 damage, clamped at death.
	mv.Grounded = false
	mv.PeakY = 20
	mv.Velocity.Y = -30
	tr.Position.Y = 1

	ms := NewMovementSystem(st, nil)
	ms.Update(tick)

	sp, _ := st.Species.Get(wolf)
	assert.Zero(t, sp.Health)
	assert.Equal(t, component.StateDead, sp.State)
	assert.True(t, mv.Grounded)
}

func TestWaterBreaksFall(t *testing.T) {
	st := newTestState()
	st.Terrain.WaterLevel = 5 // everything below y=5 counts as water
	wolf := st.SpawnNPC("wolf", component.RolePredator, mathx.Vec3{})
	tr, _ := st.Transforms.Get(wolf)
	mv, _ := st.Movements.Get(wolf)

	mv.Grounded = false
	mv.PeakY = 40
	mv.Velocity.Y = -60
	tr.Position.Y = 1

	ms := NewMovementSystem(st, nil)
	ms.Update(tick)

	sp, _ := st.Species.Get(wolf)
	assert.Equal(t, 80.0, sp.Health, "landing in water must not hurt")
}

func TestSeparationPushesOverlappingEntities(t *testing.T) {
	st := newTestState()
	a := st.SpawnNPC("wolf", component.RolePredator, mathx.Vec3{})
	b := st.SpawnNPC("wolf", component.RolePredator, mathx.Vec3{X: 0.2})
	rebuildGrid(st)

	ms := NewMovementSystem(st, nil)
	ms.Update(tick)

	atr, _ := st.Transforms.Get(a)
	btr, _ := st.Transforms.Get(b)
	dist := mathx.DistXZ(atr.Position, btr.Position)
	assert.Greater(t, dist, 0.7, "overlapping colliders must be pushed apart")
}

func TestHealthNeverNegative(t *testing.T) {
	st := newTestState()
	wolf := st.SpawnNPC("wolf", component.RolePredator, mathx.Vec3{})
	sp, _ := st.Species.Get(wolf)
	sp.ApplyDamage(1e6)
	assert.Zero(t, sp.Health)
	sp.Restore(1e6, 1e6)
	assert.Equal(t, sp.MaxHealth, sp.Health)
	assert.Equal(t, sp.MaxStamina, sp.Stamina)
}
