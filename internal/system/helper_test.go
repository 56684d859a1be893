package system

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/wildreach/sim/internal/config"
	"github.com/wildreach/sim/internal/data"
	"github.com/wildreach/sim/internal/world"
)

// newTestState builds a minimal world: one biome, flat terrain, AI
// evaluating every tick. Population targets are zero so the spawn system
// stays quiet unless a test asks for entities.
func newTestState() *world.State {
	cfg := config.Defaults()
	cfg.Simulation.AICadenceTicks = 1

	biomes := data.NewBiomeTable([]data.Biome{
		{Name: "testland", CenterX: 0, CenterZ: 0, Radius: 200},
	})
	species := data.NewSpeciesTable([]*data.SpeciesTemplate{
		{
			ID: "wolf", Role: "predator",
			MaxHealth: 80, MaxStamina: 70, Speed: 6, TurnRate: 4,
			Awareness: 25, StrikeRange: 1.8, AttackDamage: 12, Radius: 0.5,
			Behaviors: []data.BehaviorRow{
				{Kind: "seek", Weight: 1.0},
				{Kind: "wander", Weight: 0.6},
				{Kind: "avoid", Weight: 1.2},
				{Kind: "separate", Weight: 0.8},
			},
		},
		{
			ID: "deer", Role: "prey",
			MaxHealth: 60, MaxStamina: 90, Speed: 6.5, TurnRate: 5,
			Awareness: 30, Radius: 0.5,
			Behaviors: []data.BehaviorRow{
				{Kind: "flee", Weight: 1.5},
				{Kind: "wander", Weight: 0.8},
				{Kind: "separate", Weight: 0.9},
			},
		},
		{
			ID: "wanderer", Role: "player",
			MaxHealth: 100, MaxStamina: 100, Speed: 5, TurnRate: 6,
			Awareness: 20, StrikeRange: 1.5, AttackDamage: 10, Radius: 0.4,
		},
	})
	resources := data.NewResourceTable([]*data.ResourceTemplate{
		{ID: "berries", Kind: "berries", HealthRestore: 8, StaminaRestore: 12, RespawnTime: 60, Radius: 0.4},
	})

	rng := rand.New(rand.NewSource(42))
	st := world.NewState(cfg, biomes, species, resources, rng, zap.NewNop())
	st.Terrain.Amplitude = 0 // flat ground unless a test retunes it
	return st
}

// rebuildGrid indexes every transform, the way the AI phase does before
// any neighborhood query.
func rebuildGrid(st *world.State) {
	NewAISystem(st, nil).rebuildGrid()
}
