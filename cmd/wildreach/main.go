package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wildreach/sim/internal/config"
	coresys "github.com/wildreach/sim/internal/core/system"
	"github.com/wildreach/sim/internal/data"
	"github.com/wildreach/sim/internal/mathx"
	"github.com/wildreach/sim/internal/persist"
	"github.com/wildreach/sim/internal/scripting"
	"github.com/wildreach/sim/internal/system"
	"github.com/wildreach/sim/internal/world"
)

const (
	playerTemplate   = "wanderer"
	autoSaveSlot     = "auto"
	autoSaveInterval = 6000 // ticks; 6000 × 50ms = 5 minutes
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner() {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m          Wildreach Sim  v0.1.0            \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main simulation logic ──────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/wildreach.toml"
	if p := os.Getenv("WILDREACH_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner()

	// 3. Seed the world RNG
	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	// 4. Load data tables
	printSection("data")

	biomes, err := data.LoadBiomeTable(cfg.World.BiomeFile)
	if err != nil {
		return fmt.Errorf("load biomes: %w", err)
	}
	printStat("biomes", biomes.Count())

	speciesTable, err := data.LoadSpeciesTable(cfg.World.SpeciesFile)
	if err != nil {
		return fmt.Errorf("load species: %w", err)
	}
	printStat("species templates", speciesTable.Count())

	resourceTable, err := data.LoadResourceTable(cfg.World.ResourceFile)
	if err != nil {
		return fmt.Errorf("load resources: %w", err)
	}
	printStat("resource templates", resourceTable.Count())

	if err := data.ValidateRefs(biomes, speciesTable, resourceTable); err != nil {
		return fmt.Errorf("validate tables: %w", err)
	}

	// 5. Lua scripting engine
	engine, err := scripting.NewEngine(cfg.World.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer engine.Close()
	printOK("lua scripts loaded")

	// 6. Save store
	var store *persist.Store
	if cfg.Persistence.Path != "" {
		store, err = persist.Open(cfg.Persistence.Path)
		if err != nil {
			return fmt.Errorf("save store: %w", err)
		}
		defer store.Close()
		printOK("save database opened")
	}
	fmt.Println()

	// 7. Create world state and seed the population
	st := world.NewState(cfg, biomes, speciesTable, resourceTable, rng, log)

	ctrl := system.NewQualityController(cfg.Quality, log)
	spawnSys := system.NewSpawnSystem(st, log)

	printSection("world")
	spawnSys.Populate()
	st.SpawnPlayer(playerTemplate, mathx.Vec3{})
	printStat("entities", st.Transforms.Len())

	// 8. Apply the auto-save slot, if any
	if store != nil {
		if raw, err := store.Get(autoSaveSlot); err == nil {
			if p := world.DecodeSave(raw, log); p != nil && st.ApplySave(p) {
				printOK("auto-save restored")
			}
		} else if !errors.Is(err, persist.ErrNotFound) {
			return fmt.Errorf("read auto-save: %w", err)
		}
	}
	fmt.Println()

	// 9. Register systems
	runner := coresys.NewRunner()
	runner.Register(system.NewDispatchSystem(st.Bus))
	runner.Register(system.NewTimeSystem(st))
	runner.Register(system.NewWeatherSystem(st, log))
	runner.Register(system.NewAISystem(st, engine))
	runner.Register(system.NewMovementSystem(st, engine))
	runner.Register(system.NewEconomySystem(st, log))
	runner.Register(spawnSys)
	runner.Register(system.NewQualitySystem(ctrl))
	runner.Register(system.NewCleanupSystem(st))

	// 10. Tick loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Simulation.TickRate)
	defer ticker.Stop()

	printSection("ready")
	printReady(fmt.Sprintf("simulation loop started (tick: %s)", cfg.Simulation.TickRate))
	printReady(fmt.Sprintf("seed %d", seed))
	fmt.Println()

	saveCounter := 0
	for {
		select {
		case <-ticker.C:
			start := time.Now()
			runner.Tick(cfg.Simulation.TickRate)
			ctrl.Observe(float64(time.Since(start).Microseconds()) / 1000.0)

			saveCounter++
			if saveCounter >= autoSaveInterval {
				saveCounter = 0
				saveWorld(st, store, log)
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			saveWorld(st, store, log)
			log.Info("simulation stopped")
			return nil
		}
	}
}

func saveWorld(st *world.State, store *persist.Store, log *zap.Logger) {
	if store == nil {
		return
	}
	raw, err := st.BuildSave().Encode()
	if err != nil {
		log.Error("encode save failed", zap.Error(err))
		return
	}
	if err := store.Put(autoSaveSlot, raw); err != nil {
		log.Error("write save failed", zap.Error(err))
		return
	}
	log.Info("world saved", zap.String("slot", autoSaveSlot))
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
