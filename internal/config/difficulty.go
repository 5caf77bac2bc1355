package config

import (
	"math"

	"github.com/vovakirdan/cubesnake/internal/core"
)

// MinMoveIntervalMs is the fastest pace difficulty scaling will produce.
const MinMoveIntervalMs = 150

// DifficultyManager calculates the snake's pace from the current score.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: core.ClampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) for a score.
func (d *DifficultyManager) Level(score int) float64 {
	if !d.IsEnabled() || d.cfg.Progression.Type != "score" {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	progress := core.ClampF(float64(score)/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// MoveInterval returns the milliseconds between moves for a score.
// The pace grows from base to base / (1 + speedMultiplier) at max difficulty
// and never drops below MinMoveIntervalMs. Disabled progression returns base.
func (d *DifficultyManager) MoveInterval(baseMs int64, score int) int64 {
	if !d.cfg.Enabled {
		return baseMs
	}
	speed := 1.0 + d.Level(score)*d.cfg.Scaling.SpeedMultiplier
	if speed <= 0 {
		return baseMs
	}
	interval := int64(math.Round(float64(baseMs) / speed))
	if interval < MinMoveIntervalMs {
		interval = MinMoveIntervalMs
	}
	if interval > baseMs {
		interval = baseMs
	}
	return interval
}
