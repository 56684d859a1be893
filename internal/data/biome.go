package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wildreach/sim/internal/component"
)

// BiomeID indexes a region in the biome table. The table order is the
// tie-break order: a point equidistant between two centers belongs to the
// lower index.
type BiomeID int

// SpawnEntry is one weighted row in a spawn table. Weights need not be
// normalized; draws are proportional.
type SpawnEntry struct {
	Species string  `yaml:"species"`
	Weight  float64 `yaml:"weight"`
}

// WeatherWeight is one weighted row in a biome's weather table.
type WeatherWeight struct {
	Kind   component.WeatherKind
	Weight float64
}

// Biome is one world region: a circular area around a center with spawn
// tables, weather weights, and renderer-facing colors passed through
// untouched.
type Biome struct {
	Name    string  `yaml:"name"`
	CenterX float64 `yaml:"center_x"`
	CenterZ float64 `yaml:"center_z"`
	Radius  float64 `yaml:"radius"`

	TerrainColor string `yaml:"terrain_color"`
	FogColor     string `yaml:"fog_color"`

	Predators []SpawnEntry `yaml:"predators"`
	Prey      []SpawnEntry `yaml:"prey"`
	Resources []SpawnEntry `yaml:"resources"`

	// Population targets maintained by the spawn system.
	TargetPredators int `yaml:"target_predators"`
	TargetPrey      int `yaml:"target_prey"`
	TargetResources int `yaml:"target_resources"`

	Weather []WeatherRow `yaml:"weather"`

	weatherParsed []WeatherWeight
}

type WeatherRow struct {
	Kind   string  `yaml:"kind"`
	Weight float64 `yaml:"weight"`
}

type biomeFile struct {
	Biomes []Biome `yaml:"biomes"`
}

// BiomeTable holds the fixed set of regions established at world init.
// Regions partition the plane by nearest center.
type BiomeTable struct {
	regions []Biome
}

// LoadBiomeTable loads biome regions from YAML. Unrecognized weather kinds
// fail the load — bad keys surface at boot, not mid-tick.
func LoadBiomeTable(path string) (*BiomeTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read biomes %s: %w", path, err)
	}
	var f biomeFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse biomes %s: %w", path, err)
	}
	if len(f.Biomes) == 0 {
		return nil, fmt.Errorf("biomes %s: no regions defined", path)
	}
	for i := range f.Biomes {
		b := &f.Biomes[i]
		if b.Name == "" {
			return nil, fmt.Errorf("biomes %s: region %d has no name", path, i)
		}
		b.weatherParsed = make([]WeatherWeight, 0, len(b.Weather))
		for _, row := range b.Weather {
			kind, ok := component.ParseWeatherKind(row.Kind)
			if !ok {
				return nil, fmt.Errorf("biomes %s: region %q: unknown weather %q", path, b.Name, row.Kind)
			}
			b.weatherParsed = append(b.weatherParsed, WeatherWeight{Kind: kind, Weight: row.Weight})
		}
	}
	return &BiomeTable{regions: f.Biomes}, nil
}

// NewBiomeTable builds a table directly from regions (tests, programmatic worlds).
func NewBiomeTable(regions []Biome) *BiomeTable {
	for i := range regions {
		b := &regions[i]
		if b.weatherParsed == nil && len(b.Weather) > 0 {
			for _, row := range b.Weather {
				if kind, ok := component.ParseWeatherKind(row.Kind); ok {
					b.weatherParsed = append(b.weatherParsed, WeatherWeight{Kind: kind, Weight: row.Weight})
				}
			}
		}
	}
	return &BiomeTable{regions: regions}
}

func (t *BiomeTable) Count() int {
	return len(t.regions)
}

// Get returns the region for an ID, or nil when out of range.
func (t *BiomeTable) Get(id BiomeID) *Biome {
	if id < 0 || int(id) >= len(t.regions) {
		return nil
	}
	return &t.regions[id]
}

// At assigns a position to exactly one region: nearest center, lowest index
// winning exact ties. Total over the plane — there is always a nearest
// region, whatever the radii say.
func (t *BiomeTable) At(x, z float64) BiomeID {
	best := BiomeID(0)
	bestDist := -1.0
	for i := range t.regions {
		dx := x - t.regions[i].CenterX
		dz := z - t.regions[i].CenterZ
		d := dx*dx + dz*dz
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = BiomeID(i)
		}
	}
	return best
}

// SpawnTable returns the weighted species rows for a role in a region.
func (t *BiomeTable) SpawnTable(id BiomeID, role component.Role) []SpawnEntry {
	b := t.Get(id)
	if b == nil {
		return nil
	}
	switch role {
	case component.RolePredator:
		return b.Predators
	case component.RolePrey:
		return b.Prey
	default:
		return nil
	}
}

// ResourceTable returns the weighted resource rows for a region.
func (t *BiomeTable) ResourceTable(id BiomeID) []SpawnEntry {
	b := t.Get(id)
	if b == nil {
		return nil
	}
	return b.Resources
}

// WeatherWeights returns the parsed weather table for a region. May be
// empty; the weather system falls back to clear.
func (t *BiomeTable) WeatherWeights(id BiomeID) []WeatherWeight {
	b := t.Get(id)
	if b == nil {
		return nil
	}
	return b.weatherParsed
}
