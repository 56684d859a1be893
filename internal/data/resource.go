package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wildreach/sim/internal/component"
)

// ResourceTemplate defines one collectible resource archetype.
type ResourceTemplate struct {
	ID   string `yaml:"id"`
	Kind string `yaml:"kind"` // "fish", "berries", "water"

	HealthRestore  float64 `yaml:"health_restore"`
	StaminaRestore float64 `yaml:"stamina_restore"`
	RespawnTime    float64 `yaml:"respawn_time"` // seconds
	Radius         float64 `yaml:"radius"`       // interaction radius

	kind component.ResourceKind
}

// ParsedKind returns the validated resource kind.
func (t *ResourceTemplate) ParsedKind() component.ResourceKind { return t.kind }

type resourceFile struct {
	Resources []ResourceTemplate `yaml:"resources"`
}

// ResourceTable indexes resource templates by ID.
type ResourceTable struct {
	byID map[string]*ResourceTemplate
}

func parseResourceKind(s string) (component.ResourceKind, bool) {
	switch s {
	case "fish":
		return component.ResourceFish, true
	case "berries":
		return component.ResourceBerries, true
	case "water":
		return component.ResourceWater, true
	default:
		return component.ResourceBerries, false
	}
}

// LoadResourceTable loads resource templates from YAML, failing fast on
// unknown kinds.
func LoadResourceTable(path string) (*ResourceTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read resources %s: %w", path, err)
	}
	var f resourceFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse resources %s: %w", path, err)
	}
	t := &ResourceTable{byID: make(map[string]*ResourceTemplate, len(f.Resources))}
	for i := range f.Resources {
		r := &f.Resources[i]
		if r.ID == "" {
			return nil, fmt.Errorf("resources %s: entry %d has no id", path, i)
		}
		kind, ok := parseResourceKind(r.Kind)
		if !ok {
			return nil, fmt.Errorf("resources %s: %q: unknown kind %q", path, r.ID, r.Kind)
		}
		r.kind = kind
		t.byID[r.ID] = r
	}
	return t, nil
}

// NewResourceTable builds a table from pre-validated templates (tests).
func NewResourceTable(templates []*ResourceTemplate) *ResourceTable {
	t := &ResourceTable{byID: make(map[string]*ResourceTemplate, len(templates))}
	for _, r := range templates {
		if k, ok := parseResourceKind(r.Kind); ok {
			r.kind = k
		}
		t.byID[r.ID] = r
	}
	return t
}

// Get returns a template by ID, or nil if unknown.
func (t *ResourceTable) Get(id string) *ResourceTemplate {
	return t.byID[id]
}

func (t *ResourceTable) Count() int {
	return len(t.byID)
}

// ValidateRefs checks that every species and resource referenced by the
// biome spawn tables exists. Run once at boot — a dangling reference is a
// data bug worth failing on before the first tick.
func ValidateRefs(biomes *BiomeTable, species *SpeciesTable, resources *ResourceTable) error {
	for i := 0; i < biomes.Count(); i++ {
		b := biomes.Get(BiomeID(i))
		for _, e := range b.Predators {
			if species.Get(e.Species) == nil {
				return fmt.Errorf("biome %q: unknown predator species %q", b.Name, e.Species)
			}
		}
		for _, e := range b.Prey {
			if species.Get(e.Species) == nil {
				return fmt.Errorf("biome %q: unknown prey species %q", b.Name, e.Species)
			}
		}
		for _, e := range b.Resources {
			if resources.Get(e.Species) == nil {
				return fmt.Errorf("biome %q: unknown resource %q", b.Name, e.Species)
			}
		}
	}
	return nil
}
