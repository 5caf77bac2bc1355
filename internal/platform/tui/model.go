package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cubesnake/internal/core"
	"github.com/vovakirdan/cubesnake/internal/games/cubesnake"
	"github.com/vovakirdan/cubesnake/internal/logging"
	"github.com/vovakirdan/cubesnake/internal/registry"
	"github.com/vovakirdan/cubesnake/internal/storage"
)

// Options carries the optional services a game model uses.
type Options struct {
	Store  *storage.Store // nil disables score saving
	Logger *log.Logger    // nil discards
	User   string         // reported in log lines, e.g. the SSH user
}

// eventSource is implemented by games that report session events.
type eventSource interface {
	SetObserver(cubesnake.Observer)
}

// roundReporter is implemented by games that can describe the round that
// just ended.
type roundReporter interface {
	RoundDetails() (length, moves int, cause string)
}

// debugStater is implemented by games that can dump their state for logs.
type debugStater interface {
	DebugState() string
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model running one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	keys       *KeyMapper
	help       help.Model
	gameState  core.GameState
	quitting   bool
	scoreSaved bool // Whether the current game over has been recorded
}

// NewModel creates a model for game. A zero seed is replaced by the clock.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, playHeight(cfg.ScreenH)),
		opts:       opts,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       NewKeyMapper(),
		help:       help.New(),
	}
	m.help.Width = cfg.ScreenW

	if src, ok := game.(eventSource); ok {
		logger := opts.Logger.With("game", game.ID())
		if opts.User != "" {
			logger = logger.With("user", opts.User)
		}
		src.SetObserver(eventLogger(logger))
	}
	return m
}

// playHeight leaves the last terminal row for the help line.
func playHeight(h int) int {
	if h > 1 {
		return h - 1
	}
	return h
}

// eventLogger turns session events into log lines.
func eventLogger(logger *log.Logger) cubesnake.Observer {
	return func(e cubesnake.Event) {
		switch e.Kind {
		case cubesnake.EventGameOver:
			logger.Info("game over", "round", e.Round, "score", e.Score, "cause", e.Cause)
		case cubesnake.EventRestart:
			logger.Info("round started", "round", e.Round)
		case cubesnake.EventAte:
			logger.Debug("apple eaten", "round", e.Round, "score", e.Score)
		case cubesnake.EventRotated:
			logger.Debug("cube turned", "round", e.Round, "rotation", e.Rotation.String())
		}
	}
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.opts.Logger.Info("session started", "game", m.game.ID(), "seed", m.config.Seed, "user", m.opts.User)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, playHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.IsScreenshot(msg) {
		m.saveScreenshot()
		return m, nil
	}
	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		// Let the game see the quit before the program stops.
		m.gameState = m.game.Step(m.inputFrame).State
		m.inputFrame.Clear()
		m.quitting = true
		m.opts.Logger.Info("session ended", "game", m.game.ID(), "score", m.gameState.Score, "user", m.opts.User)
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.gameState = m.game.Step(m.inputFrame).State
	m.inputFrame.Clear()

	if !m.gameState.GameOver {
		m.scoreSaved = false
	} else if !m.scoreSaved {
		if d, ok := m.game.(debugStater); ok {
			m.opts.Logger.Debug("final state", "game", m.game.ID(), "state", d.DebugState())
		}
		m.saveRound()
		m.scoreSaved = true
	}

	return m, tickCmd(m.config.TickRate)
}

// saveRound records a finished round with a positive score.
func (m Model) saveRound() {
	if m.opts.Store == nil || m.gameState.Score <= 0 {
		return
	}
	round := storage.Round{GameID: m.game.ID(), Score: m.gameState.Score}
	if r, ok := m.game.(roundReporter); ok {
		round.Length, round.Moves, round.Cause = r.RoundDetails()
	}
	if _, err := m.opts.Store.SaveRound(round); err != nil {
		m.opts.Logger.Warn("could not save score", "game", round.GameID, "error", err)
		return
	}
	m.opts.Logger.Info("score saved", "game", round.GameID, "score", round.Score, "length", round.Length)
}

// saveScreenshot writes the current frame as plain text under
// ~/.cubesnake/screenshots.
func (m Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.opts.Logger.Warn("screenshot skipped", "error", err)
		return
	}
	dir := filepath.Join(home, ".cubesnake", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("screenshot skipped", "error", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("screenshot failed", "error", err)
		return
	}
	m.opts.Logger.Info("screenshot saved", "path", path)
}

// View renders the current frame followed by the help line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	view := RenderScreen(m.screen)
	if m.config.ScreenH > 1 {
		view += "\n" + helpStyle.Render(m.help.View(m.keys.Keys()))
	}
	return view
}

// GameState returns the state seen on the last tick.
func (m Model) GameState() core.GameState {
	return m.gameState
}

// Run plays game in the local terminal until the player quits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
