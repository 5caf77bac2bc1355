package config

import (
	_ "embed"
)

//go:embed defaults/cubesnake.yaml
var defaultCubeSnakeYAML []byte

// DefaultCubeSnakeConfig returns the default cube snake configuration.
func DefaultCubeSnakeConfig() CubeSnakeConfig {
	return CubeSnakeConfig{
		Board: BoardConfig{
			Size: 5,
		},
		Timing: TimingConfig{
			MoveIntervalMs: 1000,
			TurnSpeed:      0.2,
		},
		Apple: AppleConfig{
			Placement:     PlacementDiagonal,
			SpawnAttempts: 0,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 20,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 2.0,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultCubeSnakeYAML
}
