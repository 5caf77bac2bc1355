package cubesnake

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/cubesnake/internal/config"
	"github.com/vovakirdan/cubesnake/internal/core"
)

// Direction is a player turn request. The zero value is not a direction, so
// commands without one leave it out of their JSON.
type Direction int

const (
	DirUp Direction = iota + 1
	DirDown
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection is the inverse of Direction.String.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "up":
		return DirUp, nil
	case "down":
		return DirDown, nil
	case "left":
		return DirLeft, nil
	case "right":
		return DirRight, nil
	default:
		return 0, fmt.Errorf("cubesnake: unknown direction %q", s)
	}
}

// Valid reports whether d names one of the four turns.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// MarshalText encodes d by name, e.g. "up".
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("cubesnake: cannot encode direction %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText decodes a direction name.
func (d *Direction) UnmarshalText(text []byte) error {
	v, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Rotation maps the direction to its quarter turn: up/down tip the cube
// around X, left/right spin it around Y.
func (d Direction) Rotation() Rotation {
	switch d {
	case DirUp:
		return Rotation{Axis: core.AxisX, Sign: -1}
	case DirDown:
		return Rotation{Axis: core.AxisX, Sign: 1}
	case DirLeft:
		return Rotation{Axis: core.AxisY, Sign: -1}
	case DirRight:
		return Rotation{Axis: core.AxisY, Sign: 1}
	default:
		return Rotation{}
	}
}

// SessionConfig configures a session and every board it creates.
type SessionConfig struct {
	Board      BoardConfig             `json:"board"`
	TurnSpeed  float64                 `json:"turn_speed"` // degrees per millisecond
	Difficulty config.DifficultyConfig `json:"difficulty"`
}

// DefaultSessionConfig returns the classic pacing: one move per second and a
// turn speed of 0.2°/ms.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Board:      DefaultBoardConfig(),
		TurnSpeed:  0.2,
		Difficulty: config.DefaultCubeSnakeConfig().Difficulty,
	}
}

// SessionConfigFrom converts a loaded game config.
func SessionConfigFrom(cfg config.CubeSnakeConfig) SessionConfig {
	return SessionConfig{
		Board: BoardConfig{
			Size:          cfg.Board.Size,
			MoveInterval:  int64(cfg.Timing.MoveIntervalMs),
			Placement:     cfg.Apple.Placement,
			SpawnAttempts: cfg.Apple.SpawnAttempts,
		},
		TurnSpeed:  cfg.Timing.TurnSpeed,
		Difficulty: cfg.Difficulty,
	}
}

// EventKind identifies a session event.
type EventKind int

const (
	EventAte EventKind = iota
	EventGameOver
	EventRotated
	EventRestart
)

func (k EventKind) String() string {
	switch k {
	case EventAte:
		return "ate"
	case EventGameOver:
		return "game_over"
	case EventRotated:
		return "rotated"
	case EventRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Event is reported to the session observer after the state it describes
// has been fully applied.
type Event struct {
	Kind     EventKind
	At       int64
	Score    int
	Round    int
	Cause    error
	Rotation Rotation
}

// Observer receives session events.
type Observer func(Event)

// Op names a session command.
type Op string

const (
	OpTick    Op = "tick"
	OpRotate  Op = "rotate"
	OpRestart Op = "restart"
)

// Command is one external input to a session. Commands fully determine a
// session's evolution from its seed, which is what replay traces rely on.
type Command struct {
	At  int64     `json:"t"`
	Op  Op        `json:"op"`
	Dir Direction `json:"dir,omitempty"`
}

// Session is the top-level controller. It serializes every command against a
// single board and exposes snapshots for rendering; it holds no game rules.
type Session struct {
	cfg        SessionConfig
	seed       int64
	rng        *rand.Rand
	board      *Board
	anim       RotationAnimator
	difficulty *config.DifficultyManager

	now   int64
	round int
	quit  bool

	observer Observer
	onCmd    func(Command)
}

// NewSession validates cfg and creates the first board at startMs.
func NewSession(cfg SessionConfig, seed int64, startMs int64) (*Session, error) {
	if cfg.TurnSpeed < 0 {
		return nil, fmt.Errorf("%w: turn speed must not be negative", ErrInvalidConfig)
	}
	s := &Session{
		cfg:        cfg,
		seed:       seed,
		rng:        rand.New(rand.NewSource(seed)),
		anim:       NewRotationAnimator(cfg.TurnSpeed),
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		now:        startMs,
		round:      1,
	}
	board, err := s.newBoard(startMs)
	if err != nil {
		return nil, err
	}
	s.board = board
	return s, nil
}

func (s *Session) newBoard(nowMs int64) (*Board, error) {
	rng := rand.New(rand.NewSource(s.rng.Int63()))
	board, err := NewBoard(s.cfg.Board, rng, nowMs)
	if err != nil {
		return nil, err
	}
	board.SetMoveInterval(s.difficulty.MoveInterval(s.cfg.Board.MoveInterval, 0))
	return board, nil
}

// SetObserver installs fn as the event observer; nil removes it.
func (s *Session) SetObserver(fn Observer) {
	s.observer = fn
}

// SetCommandHook installs fn to see every command the session accepts for
// processing, before it is applied; nil removes it.
func (s *Session) SetCommandHook(fn func(Command)) {
	s.onCmd = fn
}

func (s *Session) emit(e Event) {
	if s.observer != nil {
		e.Round = s.round
		s.observer(e)
	}
}

func (s *Session) record(c Command) {
	if s.onCmd != nil {
		s.onCmd(c)
	}
}

// Apply dispatches a recorded command.
func (s *Session) Apply(c Command) error {
	switch c.Op {
	case OpTick:
		s.Tick(c.At)
	case OpRotate:
		if !c.Dir.Valid() {
			return fmt.Errorf("cubesnake: rotate command at %dms has no direction", c.At)
		}
		s.now = c.At
		s.RequestRotate(c.Dir)
	case OpRestart:
		return s.Restart(c.At)
	default:
		return fmt.Errorf("cubesnake: unknown command %q", c.Op)
	}
	return nil
}

// Tick advances the session clock. A turn that finishes at nowMs is applied
// to the board before the board evaluates its move, so a move never sees a
// half-finished rotation.
func (s *Session) Tick(nowMs int64) MoveOutcome {
	if s.quit {
		return OutcomeIdle
	}
	s.record(Command{At: nowMs, Op: OpTick})
	s.now = nowMs

	if s.anim.Advance(nowMs) {
		rot := s.board.Pending()
		if s.board.CompleteRotation() {
			s.emit(Event{Kind: EventRotated, At: nowMs, Score: s.board.Score(), Rotation: rot})
		}
	}

	wasOver := s.board.GameOver()
	outcome := s.board.Tick(nowMs)
	if outcome == OutcomeAte {
		s.board.SetMoveInterval(s.difficulty.MoveInterval(s.cfg.Board.MoveInterval, s.board.Score()))
		s.emit(Event{Kind: EventAte, At: nowMs, Score: s.board.Score()})
	}
	if !wasOver && s.board.GameOver() {
		s.emit(Event{Kind: EventGameOver, At: nowMs, Score: s.board.Score(), Cause: s.board.Cause()})
	}
	return outcome
}

// RequestRotate asks for a quarter turn. It returns false for an invalid
// direction or when the board refused it because a turn is already running.
func (s *Session) RequestRotate(dir Direction) bool {
	if s.quit || !dir.Valid() {
		return false
	}
	s.record(Command{At: s.now, Op: OpRotate, Dir: dir})
	rot := dir.Rotation()
	if !s.board.RequestRotation(rot.Axis, rot.Sign) {
		return false
	}
	s.anim.Start(rot.Sign, s.now)
	return true
}

// Restart replaces the board with a brand-new one. It only has an effect
// after game over.
func (s *Session) Restart(nowMs int64) error {
	if s.quit || !s.board.GameOver() {
		return nil
	}
	s.record(Command{At: nowMs, Op: OpRestart})
	board, err := s.newBoard(nowMs)
	if err != nil {
		return err
	}
	s.board = board
	s.anim.Stop()
	s.now = nowMs
	s.round++
	s.emit(Event{Kind: EventRestart, At: nowMs})
	return nil
}

// Quit ends the session; later commands are ignored.
func (s *Session) Quit() {
	s.quit = true
}

// Quitting reports whether Quit was called.
func (s *Session) Quitting() bool { return s.quit }

// Board returns the current board. Callers must treat it as read-only.
func (s *Session) Board() *Board { return s.board }

// Seed returns the seed the session was created with.
func (s *Session) Seed() int64 { return s.seed }

// Config returns the session configuration.
func (s *Session) Config() SessionConfig { return s.cfg }

// Round returns the 1-based round number.
func (s *Session) Round() int { return s.round }

// Now returns the last clock value seen.
func (s *Session) Now() int64 { return s.now }
