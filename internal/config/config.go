package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Simulation  SimulationConfig  `toml:"simulation"`
	World       WorldConfig       `toml:"world"`
	Weather     WeatherConfig     `toml:"weather"`
	Quality     QualityConfig     `toml:"quality"`
	Persistence PersistenceConfig `toml:"persistence"`
	Logging     LoggingConfig     `toml:"logging"`
}

type SimulationConfig struct {
	TickRate       time.Duration `toml:"tick_rate"`        // wall time per tick
	AICadenceTicks int           `toml:"ai_cadence_ticks"` // steering re-evaluation interval
	Seed           int64         `toml:"seed"`             // 0 = derive from clock
}

type WorldConfig struct {
	Size           float64 `toml:"size"`           // world extent along each axis
	DayLengthSec   float64 `toml:"day_length_sec"` // real seconds per 24 in-game hours
	StartHour      float64 `toml:"start_hour"`
	WaterLevel     float64 `toml:"water_level"`
	Gravity        float64 `toml:"gravity"`
	SafeFallDist   float64 `toml:"safe_fall_dist"`
	FallDamageRate float64 `toml:"fall_damage_rate"` // damage per unit beyond safe distance
	BiomeFile      string  `toml:"biome_file"`
	SpeciesFile    string  `toml:"species_file"`
	ResourceFile   string  `toml:"resource_file"`
	ScriptsDir     string  `toml:"scripts_dir"`
}

type WeatherConfig struct {
	MinDurationSec float64 `toml:"min_duration_sec"`
	MaxDurationSec float64 `toml:"max_duration_sec"`
	TransitionSec  float64 `toml:"transition_sec"`
}

type QualityConfig struct {
	WindowSize        int     `toml:"window_size"`
	MinSamples        int     `toml:"min_samples"`
	ParticleDropMs    float64 `toml:"particle_drop_ms"`
	ShadowDropMs      float64 `toml:"shadow_drop_ms"`
	ParticleRestoreMs float64 `toml:"particle_restore_ms"`
	ShadowRestoreMs   float64 `toml:"shadow_restore_ms"`
}

type PersistenceConfig struct {
	Path string `toml:"path"` // sqlite save database, empty = saves disabled
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads a toml config file over compiled defaults. A missing file is
// not an error; the defaults run a playable world on their own.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func Defaults() *Config {
	return &Config{
		Simulation: SimulationConfig{
			TickRate:       50 * time.Millisecond,
			AICadenceTicks: 3,
			Seed:           0,
		},
		World: WorldConfig{
			Size:           1000,
			DayLengthSec:   600,
			StartHour:      8,
			WaterLevel:     -0.5,
			Gravity:        -25,
			SafeFallDist:   5,
			FallDamageRate: 10,
			BiomeFile:      "data/biomes.yaml",
			SpeciesFile:    "data/species.yaml",
			ResourceFile:   "data/resources.yaml",
			ScriptsDir:     "scripts",
		},
		Weather: WeatherConfig{
			MinDurationSec: 60,
			MaxDurationSec: 180,
			TransitionSec:  30,
		},
		Quality: QualityConfig{
			WindowSize:        60,
			MinSamples:        30,
			ParticleDropMs:    20,
			ShadowDropMs:      25,
			ParticleRestoreMs: 1000.0 / 60.0, // 16.67ms — one 60fps frame
			ShadowRestoreMs:   20,
		},
		Persistence: PersistenceConfig{
			Path: "wildreach.db",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
