package cubesnake

import "github.com/vovakirdan/cubesnake/internal/core"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying  GameStateType = "playing"
	StateRotating GameStateType = "rotating"
	StateGameOver GameStateType = "game_over"
)

// Snapshot is a self-contained copy of everything a renderer needs for one
// frame. It shares no memory with the session.
type Snapshot struct {
	Round      int
	Size       int
	Score      int
	Moves      int
	State      GameStateType
	Cause      string // Empty while playing
	Snake      []Element
	Apple      core.Vec3i
	Rotation   Rotation // Valid while State is StateRotating
	Angle      float64  // Current animation angle in degrees
	Fraction   float64  // 0..1 progress of the current turn
	IntervalMs int64
}

// Head returns the head cell of the snapshot's snake.
func (s Snapshot) Head() core.Vec3i {
	if len(s.Snake) == 0 {
		return core.Vec3i{}
	}
	return s.Snake[len(s.Snake)-1].Pos
}

// Snapshot captures the current session state for rendering, determinism
// checks and replay verification.
func (s *Session) Snapshot() Snapshot {
	b := s.board
	snap := Snapshot{
		Round:      s.round,
		Size:       b.Size(),
		Score:      b.Score(),
		Moves:      b.Moves(),
		State:      StatePlaying,
		Snake:      b.Snake().Elements(),
		Apple:      b.Apple().Pos,
		IntervalMs: b.MoveInterval(),
	}
	switch {
	case b.GameOver():
		snap.State = StateGameOver
		if b.Cause() != nil {
			snap.Cause = b.Cause().Error()
		}
	case b.Rotating():
		snap.State = StateRotating
		snap.Rotation = b.Pending()
		if s.anim.Active() {
			snap.Angle = s.anim.Angle()
			snap.Fraction = s.anim.Fraction()
		}
	}
	return snap
}
