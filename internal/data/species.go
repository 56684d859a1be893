package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wildreach/sim/internal/component"
)

// SpeciesTemplate defines one species archetype. Instances spawned from a
// template copy these values into their own components.
type SpeciesTemplate struct {
	ID   string `yaml:"id"`
	Role string `yaml:"role"` // "predator", "prey", "player"

	MaxHealth  float64 `yaml:"max_health"`
	MaxStamina float64 `yaml:"max_stamina"`
	Speed      float64 `yaml:"speed"`
	TurnRate   float64 `yaml:"turn_rate"`

	Awareness    float64 `yaml:"awareness"`
	StrikeRange  float64 `yaml:"strike_range"`
	AttackDamage float64 `yaml:"attack_damage"`
	Radius       float64 `yaml:"radius"` // collider radius

	Behaviors []BehaviorRow `yaml:"behaviors"`

	role      component.Role
	behaviors []component.Behavior
}

type BehaviorRow struct {
	Kind   string  `yaml:"kind"`
	Weight float64 `yaml:"weight"`
}

// ParsedRole returns the validated role tag.
func (t *SpeciesTemplate) ParsedRole() component.Role { return t.role }

// ParsedBehaviors returns a copy of the validated behavior list, safe for
// the caller to own.
func (t *SpeciesTemplate) ParsedBehaviors() []component.Behavior {
	out := make([]component.Behavior, len(t.behaviors))
	copy(out, t.behaviors)
	return out
}

type speciesFile struct {
	Species []SpeciesTemplate `yaml:"species"`
}

// SpeciesTable indexes templates by ID.
type SpeciesTable struct {
	byID map[string]*SpeciesTemplate
}

func parseRole(s string) (component.Role, bool) {
	switch s {
	case "predator":
		return component.RolePredator, true
	case "prey":
		return component.RolePrey, true
	case "player":
		return component.RolePlayer, true
	default:
		return component.RolePrey, false
	}
}

func parseBehaviorKind(s string) (component.BehaviorKind, bool) {
	switch s {
	case "seek":
		return component.BehaviorSeek, true
	case "flee":
		return component.BehaviorFlee, true
	case "wander":
		return component.BehaviorWander, true
	case "avoid":
		return component.BehaviorAvoid, true
	case "separate":
		return component.BehaviorSeparate, true
	default:
		return component.BehaviorWander, false
	}
}

// LoadSpeciesTable loads species templates from YAML, failing fast on any
// unrecognized role or behavior kind.
func LoadSpeciesTable(path string) (*SpeciesTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read species %s: %w", path, err)
	}
	var f speciesFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse species %s: %w", path, err)
	}
	t := &SpeciesTable{byID: make(map[string]*SpeciesTemplate, len(f.Species))}
	for i := range f.Species {
		sp := &f.Species[i]
		if sp.ID == "" {
			return nil, fmt.Errorf("species %s: entry %d has no id", path, i)
		}
		role, ok := parseRole(sp.Role)
		if !ok {
			return nil, fmt.Errorf("species %s: %q: unknown role %q", path, sp.ID, sp.Role)
		}
		sp.role = role
		for _, row := range sp.Behaviors {
			kind, ok := parseBehaviorKind(row.Kind)
			if !ok {
				return nil, fmt.Errorf("species %s: %q: unknown behavior %q", path, sp.ID, row.Kind)
			}
			sp.behaviors = append(sp.behaviors, component.Behavior{Kind: kind, Weight: row.Weight})
		}
		if _, dup := t.byID[sp.ID]; dup {
			return nil, fmt.Errorf("species %s: duplicate id %q", path, sp.ID)
		}
		t.byID[sp.ID] = sp
	}
	return t, nil
}

// NewSpeciesTable builds a table from pre-validated templates (tests).
func NewSpeciesTable(templates []*SpeciesTemplate) *SpeciesTable {
	t := &SpeciesTable{byID: make(map[string]*SpeciesTemplate, len(templates))}
	for _, sp := range templates {
		if r, ok := parseRole(sp.Role); ok {
			sp.role = r
		}
		for _, row := range sp.Behaviors {
			if kind, ok := parseBehaviorKind(row.Kind); ok {
				sp.behaviors = append(sp.behaviors, component.Behavior{Kind: kind, Weight: row.Weight})
			}
		}
		t.byID[sp.ID] = sp
	}
	return t
}

// Get returns a template by ID, or nil if unknown. Callers fall back to
// DefaultFor and log; an unknown key at runtime is never fatal.
func (t *SpeciesTable) Get(id string) *SpeciesTemplate {
	return t.byID[id]
}

func (t *SpeciesTable) Count() int {
	return len(t.byID)
}

// DefaultFor is the documented fallback template used when a spawn table
// references a species the table does not know.
func DefaultFor(role component.Role) *SpeciesTemplate {
	tpl := &SpeciesTemplate{
		ID:          "default_" + role.String(),
		MaxHealth:   50,
		MaxStamina:  50,
		Speed:       3,
		TurnRate:    2,
		Awareness:   12,
		StrikeRange: 1.5,
		Radius:      0.5,
		role:        role,
		behaviors: []component.Behavior{
			{Kind: component.BehaviorWander, Weight: 1},
			{Kind: component.BehaviorSeparate, Weight: 0.5},
		},
	}
	if role == component.RolePredator {
		tpl.AttackDamage = 8
		tpl.behaviors = append(tpl.behaviors, component.Behavior{Kind: component.BehaviorSeek, Weight: 1})
	}
	if role == component.RolePrey {
		tpl.behaviors = append(tpl.behaviors, component.Behavior{Kind: component.BehaviorFlee, Weight: 1.5})
	}
	return tpl
}
