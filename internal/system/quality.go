package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/wildreach/sim/internal/config"
	"github.com/wildreach/sim/internal/core/system"
)

// QualitySettings is the renderer-facing knob set the controller adjusts.
type QualitySettings struct {
	ParticleMultiplier float64 // 1.0 full, 0.5 reduced
	ShadowQuality      string  // "high" or "low"
}

// QualityController adapts render settings to sustained frame cost. It
// keeps a sliding window of frame-time samples and compares the average
// against per-knob drop and restore thresholds; the gap between them is
// the hysteresis that stops the settings from flapping.
type QualityController struct {
	cfg config.QualityConfig
	log *zap.Logger

	samples []float64 // ring buffer, milliseconds
	next    int
	count   int

	settings QualitySettings
}

func NewQualityController(cfg config.QualityConfig, log *zap.Logger) *QualityController {
	size := cfg.WindowSize
	if size <= 0 {
		size = 60
	}
	return &QualityController{
		cfg:     cfg,
		log:     log,
		samples: make([]float64, size),
		settings: QualitySettings{
			ParticleMultiplier: 1.0,
			ShadowQuality:      "high",
		},
	}
}

// Observe records one frame-time sample in milliseconds.
func (c *QualityController) Observe(ms float64) {
	c.samples[c.next] = ms
	c.next = (c.next + 1) % len(c.samples)
	if c.count < len(c.samples) {
		c.count++
	}
}

// Evaluate re-checks the thresholds against the current window average
// and reports whether either knob moved. Below MinSamples the settings
// hold still.
func (c *QualityController) Evaluate() bool {
	if c.count < c.cfg.MinSamples {
		return false
	}
	avg := c.average()
	changed := false

	switch {
	case avg > c.cfg.ParticleDropMs && c.settings.ParticleMultiplier != 0.5:
		c.settings.ParticleMultiplier = 0.5
		changed = true
		c.log.Info("particle quality reduced", zap.Float64("avg_ms", avg))
	case avg < c.cfg.ParticleRestoreMs && c.settings.ParticleMultiplier != 1.0:
		c.settings.ParticleMultiplier = 1.0
		changed = true
		c.log.Info("particle quality restored", zap.Float64("avg_ms", avg))
	}

	switch {
	case avg > c.cfg.ShadowDropMs && c.settings.ShadowQuality != "low":
		c.settings.ShadowQuality = "low"
		changed = true
		c.log.Info("shadow quality reduced", zap.Float64("avg_ms", avg))
	case avg < c.cfg.ShadowRestoreMs && c.settings.ShadowQuality != "high":
		c.settings.ShadowQuality = "high"
		changed = true
		c.log.Info("shadow quality restored", zap.Float64("avg_ms", avg))
	}
	return changed
}

func (c *QualityController) average() float64 {
	sum := 0.0
	for i := 0; i < c.count; i++ {
		sum += c.samples[i]
	}
	return sum / float64(c.count)
}

// Settings returns the current knob values.
func (c *QualityController) Settings() QualitySettings {
	return c.settings
}

// QualitySystem re-evaluates the quality controller once per tick. The
// tick loop feeds samples in via Observe; this system only applies them.
type QualitySystem struct {
	ctrl *QualityController
}

func NewQualitySystem(ctrl *QualityController) *QualitySystem {
	return &QualitySystem{ctrl: ctrl}
}

func (s *QualitySystem) Phase() system.Phase { return system.PhaseQuality }

func (s *QualitySystem) Update(dt time.Duration) {
	s.ctrl.Evaluate()
}
