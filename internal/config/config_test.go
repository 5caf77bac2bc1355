package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if cfg != DefaultCubeSnakeConfig() {
		t.Errorf("embedded defaults drifted from DefaultCubeSnakeConfig():\n%+v\n%+v", cfg, DefaultCubeSnakeConfig())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("board:\n  size: 7\napple:\n  placement: anywhere\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Board.Size != 7 {
		t.Errorf("Board.Size = %d, expected 7", cfg.Board.Size)
	}
	if cfg.Apple.Placement != PlacementAnywhere {
		t.Errorf("Apple.Placement = %q, expected anywhere", cfg.Apple.Placement)
	}
	// Missing fields keep defaults
	if cfg.Timing.MoveIntervalMs != 1000 {
		t.Errorf("Timing.MoveIntervalMs = %d, expected default 1000", cfg.Timing.MoveIntervalMs)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing custom file should fail")
	}

	path := filepath.Join(t.TempDir(), "even.yaml")
	if err := os.WriteFile(path, []byte("board:\n  size: 4\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("Load() of an even size should wrap ErrInvalid, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CubeSnakeConfig)
		ok     bool
	}{
		{"defaults", func(*CubeSnakeConfig) {}, true},
		{"size 3", func(c *CubeSnakeConfig) { c.Board.Size = 3 }, true},
		{"size 1", func(c *CubeSnakeConfig) { c.Board.Size = 1 }, false},
		{"even size", func(c *CubeSnakeConfig) { c.Board.Size = 6 }, false},
		{"zero interval", func(c *CubeSnakeConfig) { c.Timing.MoveIntervalMs = 0 }, false},
		{"negative turn speed", func(c *CubeSnakeConfig) { c.Timing.TurnSpeed = -1 }, false},
		{"instant turn", func(c *CubeSnakeConfig) { c.Timing.TurnSpeed = 0 }, true},
		{"unknown placement", func(c *CubeSnakeConfig) { c.Apple.Placement = "edges" }, false},
		{"negative attempts", func(c *CubeSnakeConfig) { c.Apple.SpawnAttempts = -1 }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultCubeSnakeConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.ok && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, expected ErrInvalid", err)
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultCubeSnakeConfig()
	ApplyPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset: %+v", cfg.Difficulty)
	}

	ApplyPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	before := cfg
	ApplyPreset(&cfg, "")
	if cfg != before {
		t.Error("empty preset should leave config untouched")
	}

	if ParsePreset("normal") != DifficultyNormal || ParsePreset("bogus") != "" {
		t.Error("ParsePreset mismatch")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := DefaultCubeSnakeConfig()
	cfg.Board.Size = 9
	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if back != cfg {
		t.Errorf("round trip mismatch: %+v vs %+v", back, cfg)
	}
}

func TestDifficultyMoveInterval(t *testing.T) {
	cfg := DefaultCubeSnakeConfig().Difficulty

	off := NewDifficultyManager(cfg)
	if got := off.MoveInterval(1000, 50); got != 1000 {
		t.Errorf("disabled progression should keep base interval, got %d", got)
	}

	cfg.Enabled = true
	d := NewDifficultyManager(cfg)
	if got := d.MoveInterval(1000, 0); got != 1000 {
		t.Errorf("score 0 at easy level should keep base interval, got %d", got)
	}

	mid := d.MoveInterval(1000, 10)
	if mid >= 1000 || mid <= 333 {
		t.Errorf("half-way interval = %d, expected between 333 and 1000", mid)
	}

	if got := d.MoveInterval(1000, 1000); got != 333 {
		t.Errorf("max difficulty interval = %d, expected 333", got)
	}

	if got := d.MoveInterval(200, 1000); got != MinMoveIntervalMs {
		t.Errorf("interval should be floored at %d, got %d", MinMoveIntervalMs, got)
	}

	cfg.Progression.Type = "none"
	cfg.InitialLevel = 0.5
	fixed := NewDifficultyManager(cfg)
	if fixed.IsEnabled() {
		t.Error("progression type none should not be enabled")
	}
	if fixed.Level(100) != 0.5 {
		t.Errorf("Level() with type none = %v, expected initial level", fixed.Level(100))
	}
}

func TestDifficultyLevelIsClamped(t *testing.T) {
	cfg := DefaultCubeSnakeConfig().Difficulty
	cfg.Enabled = true
	cfg.Progression.Type = "none"

	cfg.InitialLevel = 3
	if got := NewDifficultyManager(cfg).Level(0); got != 1 {
		t.Errorf("initial level above 1 = %v, expected 1", got)
	}
	cfg.InitialLevel = -2
	if got := NewDifficultyManager(cfg).Level(0); got != 0 {
		t.Errorf("initial level below 0 = %v, expected 0", got)
	}
}
