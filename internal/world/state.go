package world

import (
	"math"
	"math/rand"

	"go.uber.org/zap"

	"github.com/wildreach/sim/internal/component"
	"github.com/wildreach/sim/internal/config"
	"github.com/wildreach/sim/internal/core/ecs"
	"github.com/wildreach/sim/internal/core/event"
	"github.com/wildreach/sim/internal/data"
	"github.com/wildreach/sim/internal/mathx"
)

// State is the authoritative simulation store: the ECS world, every typed
// component store, the singletons, and the shared services systems need
// (terrain, spatial grid, data tables, rng, event bus). One State per
// world; all access is from the tick goroutine.
type State struct {
	ECS *ecs.World
	Bus *event.Bus
	Rng *rand.Rand
	Log *zap.Logger

	Clock float64 // sim seconds since world init
	Tick  uint64

	Transforms *ecs.Store[component.Transform]
	Movements  *ecs.Store[component.Movement]
	Species    *ecs.Store[component.Species]
	Steerings  *ecs.Store[component.Steering]
	Resources  *ecs.Store[component.Resource]
	Colliders  *ecs.Store[component.Collider]
	Controls   *ecs.Store[component.PlayerControl]

	Terrain       *Terrain
	Grid          *Grid
	Biomes        *data.BiomeTable
	SpeciesTable  *data.SpeciesTable
	ResourceTable *data.ResourceTable

	Cfg *config.Config

	// Resource spawn order, the stable identity used by save payloads.
	ResourceOrder []ecs.EntityID

	timeState    *component.TimeState
	weatherState *component.WeatherState
	timeID       ecs.EntityID
	weatherID    ecs.EntityID
	playerID     ecs.EntityID
}

// NewState wires up an empty world around the given tables. Singleton
// entities (time, weather) are created here and live for the process
// lifetime.
func NewState(cfg *config.Config, biomes *data.BiomeTable, species *data.SpeciesTable, resources *data.ResourceTable, rng *rand.Rand, log *zap.Logger) *State {
	if log == nil {
		log = zap.NewNop()
	}
	s := &State{
		ECS: ecs.NewWorld(),
		Bus: event.NewBus(),
		Rng: rng,
		Log: log,

		Transforms: ecs.NewStore[component.Transform](),
		Movements:  ecs.NewStore[component.Movement](),
		Species:    ecs.NewStore[component.Species](),
		Steerings:  ecs.NewStore[component.Steering](),
		Resources:  ecs.NewStore[component.Resource](),
		Colliders:  ecs.NewStore[component.Collider](),
		Controls:   ecs.NewStore[component.PlayerControl](),

		Terrain:       NewTerrain(cfg.Simulation.Seed, cfg.World.WaterLevel),
		Grid:          NewGrid(16),
		Biomes:        biomes,
		SpeciesTable:  species,
		ResourceTable: resources,
		Cfg:           cfg,
	}

	s.ECS.RegisterStore(s.Transforms)
	s.ECS.RegisterStore(s.Movements)
	s.ECS.RegisterStore(s.Species)
	s.ECS.RegisterStore(s.Steerings)
	s.ECS.RegisterStore(s.Resources)
	s.ECS.RegisterStore(s.Colliders)
	s.ECS.RegisterStore(s.Controls)

	// Singletons: plain entities in the same store, held for direct access.
	s.timeID = s.ECS.CreateEntity()
	s.timeState = component.NewTimeState(cfg.World.StartHour)

	s.weatherID = s.ECS.CreateEntity()
	hold := cfg.Weather.MinDurationSec
	if cfg.Weather.MaxDurationSec > hold {
		hold += rng.Float64() * (cfg.Weather.MaxDurationSec - hold)
	}
	s.weatherState = component.NewWeatherState(hold)

	return s
}

// Time returns the world-clock singleton.
func (s *State) Time() *component.TimeState { return s.timeState }

// Weather returns the weather singleton.
func (s *State) Weather() *component.WeatherState { return s.weatherState }

// PlayerID returns the player entity, zero before SpawnPlayer.
func (s *State) PlayerID() ecs.EntityID { return s.playerID }

// PlayerPosition returns the player's position, ok=false when no player
// exists or it lacks a transform.
func (s *State) PlayerPosition() (mathx.Vec3, bool) {
	if s.playerID.IsZero() || !s.ECS.Alive(s.playerID) {
		return mathx.Vec3{}, false
	}
	tr, ok := s.Transforms.Get(s.playerID)
	if !ok {
		return mathx.Vec3{}, false
	}
	return tr.Position, true
}

// BiomeAtPlayer returns the biome containing the player, or region 0 when
// no player exists yet.
func (s *State) BiomeAtPlayer() data.BiomeID {
	pos, ok := s.PlayerPosition()
	if !ok {
		return 0
	}
	return s.Biomes.At(pos.X, pos.Z)
}

// SpawnNPC creates a living entity from a species template at a position.
// Unknown template IDs fall back to the documented default for the role
// and are logged, never fatal.
func (s *State) SpawnNPC(templateID string, role component.Role, pos mathx.Vec3) ecs.EntityID {
	tpl := s.SpeciesTable.Get(templateID)
	if tpl == nil {
		s.Log.Warn("unknown species template, using default",
			zap.String("template", templateID), zap.String("role", role.String()))
		tpl = data.DefaultFor(role)
	}

	id := s.ECS.CreateEntity()
	pos.Y = s.Terrain.HeightAt(pos.X, pos.Z)
	s.Transforms.Set(id, &component.Transform{Position: pos, Scale: 1})
	s.Movements.Set(id, &component.Movement{
		MaxSpeed: tpl.Speed,
		TurnRate: tpl.TurnRate,
		Grounded: true,
		PeakY:    pos.Y,
	})
	s.Species.Set(id, &component.Species{
		TemplateID:   tpl.ID,
		Role:         tpl.ParsedRole(),
		Health:       tpl.MaxHealth,
		MaxHealth:    tpl.MaxHealth,
		Stamina:      tpl.MaxStamina,
		MaxStamina:   tpl.MaxStamina,
		Speed:        tpl.Speed,
		StrikeRange:  tpl.StrikeRange,
		AttackDamage: tpl.AttackDamage,
		State:        component.StateIdle,
	})
	s.Steerings.Set(id, &component.Steering{
		Behaviors:   tpl.ParsedBehaviors(),
		Awareness:   tpl.Awareness,
		WanderAngle: s.Rng.Float64() * 2 * math.Pi,
	})
	s.Colliders.Set(id, &component.Collider{
		Shape:  component.ShapeCapsule,
		Radius: tpl.Radius,
		Height: 1.6,
	})
	return id
}

// SpawnPlayer creates the player entity. Called once at world init (or on
// save load). A second call replaces the previous player.
func (s *State) SpawnPlayer(templateID string, pos mathx.Vec3) ecs.EntityID {
	if !s.playerID.IsZero() && s.ECS.Alive(s.playerID) {
		s.ECS.MarkForDestruction(s.playerID)
	}
	id := s.SpawnNPC(templateID, component.RolePlayer, pos)
	s.Controls.Set(id, &component.PlayerControl{})
	// The player carries no steering; intent comes from input.
	s.Steerings.Remove(id)
	s.playerID = id
	return id
}

// SpawnResource creates a collectible resource entity at a position and
// records it in the stable save ordering.
func (s *State) SpawnResource(templateID string, pos mathx.Vec3) ecs.EntityID {
	tpl := s.ResourceTable.Get(templateID)
	if tpl == nil {
		s.Log.Warn("unknown resource template, skipping spawn", zap.String("template", templateID))
		return 0
	}
	id := s.ECS.CreateEntity()
	pos.Y = s.Terrain.HeightAt(pos.X, pos.Z)
	s.Transforms.Set(id, &component.Transform{Position: pos, Scale: 1})
	s.Resources.Set(id, &component.Resource{
		Kind:           tpl.ParsedKind(),
		HealthRestore:  tpl.HealthRestore,
		StaminaRestore: tpl.StaminaRestore,
		RespawnTime:    tpl.RespawnTime,
	})
	s.Colliders.Set(id, &component.Collider{
		Shape:  component.ShapeSphere,
		Radius: tpl.Radius,
		Static: true,
	})
	s.ResourceOrder = append(s.ResourceOrder, id)
	return id
}
