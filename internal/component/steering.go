package component

import (
	"github.com/wildreach/sim/internal/core/ecs"
	"github.com/wildreach/sim/internal/mathx"
)

// BehaviorKind names a steering rule.
type BehaviorKind int

const (
	BehaviorSeek BehaviorKind = iota
	BehaviorFlee
	BehaviorWander
	BehaviorAvoid
	BehaviorSeparate
)

func (k BehaviorKind) String() string {
	switch k {
	case BehaviorSeek:
		return "seek"
	case BehaviorFlee:
		return "flee"
	case BehaviorWander:
		return "wander"
	case BehaviorAvoid:
		return "avoid"
	case BehaviorSeparate:
		return "separate"
	default:
		return "unknown"
	}
}

// Behavior is one weighted steering rule in an entity's behavior list.
type Behavior struct {
	Kind   BehaviorKind
	Weight float64
}

// Steering holds an NPC's behavior list and AI working state. Target is a
// weak generational reference — it is looked up on use and dropped silently
// when the target has despawned.
type Steering struct {
	Behaviors []Behavior
	Target    ecs.EntityID
	Awareness float64 // detection radius

	// Wander state: heading holds for WanderTimer seconds, then re-rolls.
	WanderAngle float64
	WanderTimer float64

	// Attack cooldown countdown, seconds.
	AttackCooldown float64

	// Cached steering output, reused on ticks where AI evaluation is skipped.
	Force mathx.Vec3
}
