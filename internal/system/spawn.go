package system

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/wildreach/sim/internal/component"
	"github.com/wildreach/sim/internal/core/ecs"
	"github.com/wildreach/sim/internal/core/system"
	"github.com/wildreach/sim/internal/data"
	"github.com/wildreach/sim/internal/mathx"
	"github.com/wildreach/sim/internal/world"
)

const (
	repopIntervalSec = 10.0
	repopPerCycle    = 2 // max NPC spawns per biome per cycle
	placementTries   = 10
)

// SpawnSystem maintains each biome's population: it seeds the initial
// world, queues removal of dead entities once their grace period runs
// out, and tops up NPC counts toward the biome targets on a slow cadence.
type SpawnSystem struct {
	st         *world.State
	log        *zap.Logger
	repopTimer float64

	// Per-cycle census scratch, indexed by biome.
	predators []int
	prey      []int
}

func NewSpawnSystem(st *world.State, log *zap.Logger) *SpawnSystem {
	n := st.Biomes.Count()
	return &SpawnSystem{
		st:        st,
		log:       log,
		predators: make([]int, n),
		prey:      make([]int, n),
	}
}

func (s *SpawnSystem) Phase() system.Phase { return system.PhaseSpawn }

func (s *SpawnSystem) Update(dt time.Duration) {
	sec := dt.Seconds()
	s.sweepDead(sec)

	s.repopTimer -= sec
	if s.repopTimer > 0 {
		return
	}
	s.repopTimer = repopIntervalSec
	s.repopulate()
}

// Populate seeds every biome to its configured targets. Called once at
// world init, before the first tick.
func (s *SpawnSystem) Populate() {
	for i := 0; i < s.st.Biomes.Count(); i++ {
		id := data.BiomeID(i)
		b := s.st.Biomes.Get(id)
		for n := 0; n < b.TargetPredators; n++ {
			s.spawnFromTable(id, component.RolePredator)
		}
		for n := 0; n < b.TargetPrey; n++ {
			s.spawnFromTable(id, component.RolePrey)
		}
		for n := 0; n < b.TargetResources; n++ {
			s.spawnResourceFromTable(id)
		}
		s.log.Info("biome populated",
			zap.String("biome", b.Name),
			zap.Int("predators", b.TargetPredators),
			zap.Int("prey", b.TargetPrey),
			zap.Int("resources", b.TargetResources),
		)
	}
}

func (s *SpawnSystem) sweepDead(sec float64) {
	s.st.Species.Each(func(id ecs.EntityID, sp *component.Species) {
		if sp.Alive() {
			return
		}
		sp.DeadTimer -= sec
		if sp.DeadTimer <= 0 {
			s.st.ECS.MarkForDestruction(id)
		}
	})
}

// repopulate counts living NPCs per biome and tops up toward targets, a
// few at a time so a mass die-off refills gradually.
func (s *SpawnSystem) repopulate() {
	for i := range s.predators {
		s.predators[i] = 0
		s.prey[i] = 0
	}
	ecs.Each2(s.st.Species, s.st.Transforms, func(id ecs.EntityID, sp *component.Species, tr *component.Transform) {
		if !sp.Alive() {
			return
		}
		b := s.st.Biomes.At(tr.Position.X, tr.Position.Z)
		switch sp.Role {
		case component.RolePredator:
			s.predators[b]++
		case component.RolePrey:
			s.prey[b]++
		}
	})

	for i := 0; i < s.st.Biomes.Count(); i++ {
		id := data.BiomeID(i)
		b := s.st.Biomes.Get(id)
		budget := repopPerCycle
		for s.predators[i] < b.TargetPredators && budget > 0 {
			if s.spawnFromTable(id, component.RolePredator).IsZero() {
				break
			}
			s.predators[i]++
			budget--
		}
		for s.prey[i] < b.TargetPrey && budget > 0 {
			if s.spawnFromTable(id, component.RolePrey).IsZero() {
				break
			}
			s.prey[i]++
			budget--
		}
	}
}

func (s *SpawnSystem) spawnFromTable(id data.BiomeID, role component.Role) ecs.EntityID {
	table := s.st.Biomes.SpawnTable(id, role)
	species, ok := data.PickWeighted(s.st.Rng, table)
	if !ok {
		return 0
	}
	pos := s.placement(id)
	return s.st.SpawnNPC(species, role, pos)
}

func (s *SpawnSystem) spawnResourceFromTable(id data.BiomeID) ecs.EntityID {
	table := s.st.Biomes.ResourceTable(id)
	tpl, ok := data.PickWeighted(s.st.Rng, table)
	if !ok {
		return 0
	}
	pos := s.placement(id)
	return s.st.SpawnResource(tpl, pos)
}

// placement picks a spawn point inside the biome circle, preferring dry
// walkable ground. After a bounded number of tries the last candidate is
// used as-is.
func (s *SpawnSystem) placement(id data.BiomeID) mathx.Vec3 {
	b := s.st.Biomes.Get(id)
	var pos mathx.Vec3
	for try := 0; try < placementTries; try++ {
		angle := s.st.Rng.Float64() * 2 * math.Pi
		r := b.Radius * math.Sqrt(s.st.Rng.Float64())
		pos = mathx.Vec3{
			X: b.CenterX + r*math.Cos(angle),
			Z: b.CenterZ + r*math.Sin(angle),
		}
		h := s.st.Terrain.HeightAt(pos.X, pos.Z)
		if !s.st.Terrain.Submerged(h) && s.st.Terrain.SlopeAt(pos.X, pos.Z) < maxWalkableSlope {
			return pos
		}
	}
	return pos
}
