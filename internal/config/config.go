// Package config provides YAML-based game configuration loading and
// difficulty management for cube snake.
package config

import (
	"errors"
	"fmt"
)

// Apple placement strategies.
const (
	PlacementDiagonal = "diagonal" // x == y == z, the classic behavior
	PlacementAnywhere = "anywhere" // any cell of the cube
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// CubeSnakeConfig contains all configuration for the cube snake game.
type CubeSnakeConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Timing     TimingConfig     `yaml:"timing"`
	Apple      AppleConfig      `yaml:"apple"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the cube dimensions.
type BoardConfig struct {
	Size int `yaml:"size"` // Edge length in cells, odd
}

// TimingConfig defines movement and rotation pacing.
type TimingConfig struct {
	MoveIntervalMs int     `yaml:"move_interval_ms"` // Milliseconds between forward moves
	TurnSpeed      float64 `yaml:"turn_speed"`       // Degrees per millisecond of the 90° turn animation
}

// AppleConfig defines apple placement.
type AppleConfig struct {
	Placement     string `yaml:"placement"`      // "diagonal" or "anywhere"
	SpawnAttempts int    `yaml:"spawn_attempts"` // Random samples before scanning; 0 = 16 * size
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over the round.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score" or "none"
	MaxAt int    `yaml:"max_at"` // Score at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Extra speed factor at max difficulty
}

// Validate checks that the configuration describes a playable cube.
func (c CubeSnakeConfig) Validate() error {
	if c.Board.Size < 3 || c.Board.Size%2 == 0 {
		return fmt.Errorf("%w: board.size must be odd and at least 3, got %d", ErrInvalid, c.Board.Size)
	}
	if c.Timing.MoveIntervalMs <= 0 {
		return fmt.Errorf("%w: timing.move_interval_ms must be positive, got %d", ErrInvalid, c.Timing.MoveIntervalMs)
	}
	if c.Timing.TurnSpeed < 0 {
		return fmt.Errorf("%w: timing.turn_speed must not be negative, got %g", ErrInvalid, c.Timing.TurnSpeed)
	}
	switch c.Apple.Placement {
	case PlacementDiagonal, PlacementAnywhere:
	default:
		return fmt.Errorf("%w: apple.placement must be %q or %q, got %q",
			ErrInvalid, PlacementDiagonal, PlacementAnywhere, c.Apple.Placement)
	}
	if c.Apple.SpawnAttempts < 0 {
		return fmt.Errorf("%w: apple.spawn_attempts must not be negative", ErrInvalid)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings give "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
