package cubesnake

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/cubesnake/internal/config"
	"github.com/vovakirdan/cubesnake/internal/core"
	"github.com/vovakirdan/cubesnake/internal/registry"
)

// Variant IDs registered with the platform.
const (
	IDClassic  = "cubesnake"
	IDAnywhere = "cubesnake_anywhere"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

func init() {
	registry.Register(IDClassic, func() registry.Game {
		return New()
	})
	registry.Register(IDAnywhere, func() registry.Game {
		return NewAnywhere()
	})
}

// Game adapts a Session to the platform's fixed-rate game loop.
type Game struct {
	placement string // overrides the config when set

	runtime core.RuntimeConfig
	session *Session
	err     error // set when the session could not be created

	tick   uint64
	clock  uint64 // ticks while not paused; drives the session clock
	paused bool

	observer Observer
	onCmd    func(Command)
}

// New creates the classic variant: apples only on the main diagonal.
func New() *Game {
	return &Game{}
}

// NewAnywhere creates the variant whose apples may appear in any cell.
func NewAnywhere() *Game {
	return &Game{placement: config.PlacementAnywhere}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.placement == config.PlacementAnywhere {
		return IDAnywhere
	}
	return IDClassic
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.placement == config.PlacementAnywhere {
		return "Cube Snake (Anywhere)"
	}
	return "Cube Snake"
}

// SessionConfig loads the configuration this game would start with.
func (g *Game) SessionConfig() (SessionConfig, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return SessionConfig{}, err
	}
	config.ApplyPreset(&cfg, difficultyPreset)
	if g.placement != "" {
		cfg.Apple.Placement = g.placement
	}
	return SessionConfigFrom(cfg), nil
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.tick = 0
	g.clock = 0
	g.paused = false
	g.session = nil

	scfg, err := g.SessionConfig()
	if err != nil {
		g.err = err
		return
	}
	g.ResetWith(cfg, scfg)
}

// ResetWith starts a fresh session with an explicit configuration.
func (g *Game) ResetWith(cfg core.RuntimeConfig, scfg SessionConfig) {
	g.runtime = cfg
	g.tick = 0
	g.clock = 0
	g.paused = false

	s, err := NewSession(scfg, cfg.Seed, 0)
	if err != nil {
		g.session = nil
		g.err = err
		return
	}
	g.err = nil
	g.session = s
	s.SetObserver(g.observer)
	s.SetCommandHook(g.onCmd)
}

// SetObserver forwards session events to fn, including sessions created later.
func (g *Game) SetObserver(fn Observer) {
	g.observer = fn
	if g.session != nil {
		g.session.SetObserver(fn)
	}
}

// SetCommandHook forwards session commands to fn, including sessions created later.
func (g *Game) SetCommandHook(fn func(Command)) {
	g.onCmd = fn
	if g.session != nil {
		g.session.SetCommandHook(fn)
	}
}

// Session returns the running session, or nil if it failed to start.
func (g *Game) Session() *Session { return g.session }

// Err returns the error that prevented the session from starting or the
// last restart from succeeding.
func (g *Game) Err() error { return g.err }

// Step advances the game by one platform tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++
	if g.session == nil || g.session.Quitting() {
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionQuit) {
		g.session.Quit()
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionRestart) && g.session.Board().GameOver() {
		// A failed restart keeps the old round on screen with the error over it.
		g.err = g.session.Restart(g.runtime.TickMillis(g.clock))
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) && !g.session.Board().GameOver() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.clock++
	g.session.Tick(g.runtime.TickMillis(g.clock))

	switch {
	case input.Has(core.ActionRotateUp):
		g.session.RequestRotate(DirUp)
	case input.Has(core.ActionRotateDown):
		g.session.RequestRotate(DirDown)
	case input.Has(core.ActionRotateLeft):
		g.session.RequestRotate(DirLeft)
	case input.Has(core.ActionRotateRight):
		g.session.RequestRotate(DirRight)
	}

	return core.StepResult{State: g.State()}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	if g.session == nil {
		dst.Clear()
		renderHUD(dst, Snapshot{}, g.Title())
		msg := "no session"
		if g.err != nil {
			msg = g.err.Error()
		}
		renderOverlay(dst, "Cannot start game", msg)
		return
	}
	RenderSnapshot(dst, g.session.Snapshot(), g.Title(), g.paused)
	if g.err != nil {
		renderOverlay(dst, "Cannot restart", g.err.Error())
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{GameOver: true}
	}
	b := g.session.Board()
	return core.GameState{
		Score:    b.Score(),
		GameOver: b.GameOver(),
		Paused:   g.paused,
	}
}

// RoundDetails describes the current round for score records.
func (g *Game) RoundDetails() (length, moves int, cause string) {
	if g.session == nil {
		return 0, 0, ""
	}
	b := g.session.Board()
	if b.Cause() != nil {
		cause = b.Cause().Error()
	}
	return b.Snake().Len(), b.Moves(), cause
}

// DebugState returns a string representation of the game state.
func (g *Game) DebugState() string {
	if g.session == nil {
		return fmt.Sprintf("Tick: %d, no session: %v\n", g.tick, g.err)
	}
	snap := g.session.Snapshot()
	var b strings.Builder
	fmt.Fprintf(&b, "Tick: %d, Round: %d, Score: %d, State: %s\n", g.tick, snap.Round, snap.Score, snap.State)
	fmt.Fprintf(&b, "Snake len: %d, Head: %v, Apple: %v\n", len(snap.Snake), snap.Head(), snap.Apple)
	fmt.Fprintf(&b, "Body: %v\n", g.session.Board().Snake().Cells())
	if snap.State == StateRotating {
		fmt.Fprintf(&b, "Turning %v: %.0f%%\n", snap.Rotation, snap.Fraction*100)
	}
	return b.String()
}
