package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LocalConfigPath is the project-relative config location checked by Load.
const LocalConfigPath = "configs/cubesnake.yaml"

// Load loads the cube snake configuration.
// Search order: customPath -> ~/.cubesnake/configs/cubesnake.yaml -> ./configs/cubesnake.yaml -> embedded default.
// Fields missing from a file keep their default values. A custom path that
// cannot be read, parsed or validated is an error; the fallbacks are skipped
// silently when they are absent or broken.
func Load(customPath string) (CubeSnakeConfig, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return DefaultCubeSnakeConfig(), err
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("cubesnake.yaml"); userCfgPath != "" {
		if cfg, err := loadFile(userCfgPath); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := loadFile(LocalConfigPath); err == nil {
		return cfg, nil
	}

	cfg, err := Parse(defaultCubeSnakeYAML)
	if err != nil {
		return DefaultCubeSnakeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (CubeSnakeConfig, error) {
	cfg := DefaultCubeSnakeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string) (CubeSnakeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultCubeSnakeConfig(), fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cubesnake", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *CubeSnakeConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}

// Marshal renders cfg as YAML.
func Marshal(cfg CubeSnakeConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}
