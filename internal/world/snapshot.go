package world

import (
	"github.com/wildreach/sim/internal/component"
	"github.com/wildreach/sim/internal/core/ecs"
	"github.com/wildreach/sim/internal/mathx"
)

// Snapshots are the read-only projections handed to rendering, audio and
// UI at tick boundaries. They are value copies — consumers can hold them
// across ticks and never race with the simulation.

// TimeSnapshot mirrors the world-clock singleton.
type TimeSnapshot struct {
	Hour         float64
	Phase        string
	SunIntensity float64
	SunAngle     float64
	AmbientLight float64
	FogDensity   float64
}

// WeatherSnapshot mirrors the weather singleton.
type WeatherSnapshot struct {
	Current            string
	Transitioning      bool
	Intensity          float64
	VisibilityModifier float64
	WindMultiplier     float64
}

// EntitySnapshot carries the renderer-facing view of one living entity.
// PlayerDistance lets the renderer make its own LOD calls without touching
// simulation state.
type EntitySnapshot struct {
	ID             ecs.EntityID
	Template       string
	Role           string
	State          string
	Position       mathx.Vec3
	Yaw            float64
	Health         float64
	MaxHealth      float64
	Stamina        float64
	PlayerDistance float64
}

// ResourceSnapshot carries the renderer-facing view of one resource node.
type ResourceSnapshot struct {
	ID        ecs.EntityID
	Kind      string
	Position  mathx.Vec3
	Collected bool
}

// WorldSnapshot is the full post-tick projection.
type WorldSnapshot struct {
	Tick      uint64
	Clock     float64
	Time      TimeSnapshot
	Weather   WeatherSnapshot
	Entities  []EntitySnapshot
	Resources []ResourceSnapshot
}

// Snapshot builds the post-tick projection. Call between ticks only.
func (s *State) Snapshot() WorldSnapshot {
	t := s.Time()
	w := s.Weather()
	snap := WorldSnapshot{
		Tick:  s.Tick,
		Clock: s.Clock,
		Time: TimeSnapshot{
			Hour:         t.Hour,
			Phase:        t.Phase.String(),
			SunIntensity: t.SunIntensity,
			SunAngle:     t.SunAngle,
			AmbientLight: t.AmbientLight,
			FogDensity:   t.FogDensity,
		},
		Weather: WeatherSnapshot{
			Current:            w.Current.String(),
			Transitioning:      w.HasNext,
			Intensity:          w.Intensity,
			VisibilityModifier: w.VisibilityModifier,
			WindMultiplier:     w.WindMultiplier,
		},
	}

	playerPos, hasPlayer := s.PlayerPosition()

	ecs.Each2(s.Transforms, s.Species, func(id ecs.EntityID, tr *component.Transform, sp *component.Species) {
		e := EntitySnapshot{
			ID:        id,
			Template:  sp.TemplateID,
			Role:      sp.Role.String(),
			State:     sp.State.String(),
			Position:  tr.Position,
			Yaw:       tr.Yaw,
			Health:    sp.Health,
			MaxHealth: sp.MaxHealth,
			Stamina:   sp.Stamina,
		}
		if hasPlayer {
			e.PlayerDistance = mathx.DistXZ(tr.Position, playerPos)
		}
		snap.Entities = append(snap.Entities, e)
	})

	ecs.Each2(s.Transforms, s.Resources, func(id ecs.EntityID, tr *component.Transform, r *component.Resource) {
		snap.Resources = append(snap.Resources, ResourceSnapshot{
			ID:        id,
			Kind:      r.Kind.String(),
			Position:  tr.Position,
			Collected: r.Collected,
		})
	})

	return snap
}
