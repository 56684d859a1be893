package component

import "github.com/wildreach/sim/internal/mathx"

// Role tags what drives an entity: hunting, being hunted, or the player.
type Role int

const (
	RolePredator Role = iota
	RolePrey
	RolePlayer
)

func (r Role) String() string {
	switch r {
	case RolePredator:
		return "predator"
	case RolePrey:
		return "prey"
	case RolePlayer:
		return "player"
	default:
		return "unknown"
	}
}

// BehaviorState is the FSM state of a living entity. StateDead is terminal.
type BehaviorState int

const (
	StateIdle BehaviorState = iota
	StateWalk
	StateRun
	StateFlee
	StateChase
	StateAttack
	StateDead
)

func (s BehaviorState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWalk:
		return "walk"
	case StateRun:
		return "run"
	case StateFlee:
		return "flee"
	case StateChase:
		return "chase"
	case StateAttack:
		return "attack"
	case StateDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Species holds the vitals and behavioral state of a living entity.
type Species struct {
	TemplateID string
	Role       Role

	Health     float64
	MaxHealth  float64
	Stamina    float64
	MaxStamina float64
	Speed      float64

	StrikeRange  float64
	AttackDamage float64

	State     BehaviorState
	DeadTimer float64 // seconds of grace left after entering StateDead
}

// ApplyDamage reduces health, clamped at zero. Returns the new health.
func (s *Species) ApplyDamage(amount float64) float64 {
	if amount < 0 {
		amount = 0
	}
	s.Health = mathx.Clamp(s.Health-amount, 0, s.MaxHealth)
	return s.Health
}

// Restore adds health and stamina, clamped to their maxima.
func (s *Species) Restore(health, stamina float64) {
	s.Health = mathx.Clamp(s.Health+health, 0, s.MaxHealth)
	s.Stamina = mathx.Clamp(s.Stamina+stamina, 0, s.MaxStamina)
}

// DrainStamina removes stamina, clamped at zero.
func (s *Species) DrainStamina(amount float64) {
	s.Stamina = mathx.Clamp(s.Stamina-amount, 0, s.MaxStamina)
}

func (s *Species) Alive() bool {
	return s.State != StateDead
}
