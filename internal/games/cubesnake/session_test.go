package cubesnake

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/vovakirdan/cubesnake/internal/core"
)

func newTestSession(t *testing.T, cfg SessionConfig, seed int64) *Session {
	t.Helper()
	s, err := NewSession(cfg, seed, 0)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	return s
}

func TestDirectionMapping(t *testing.T) {
	tests := []struct {
		dir  Direction
		axis core.Axis
		sign int
	}{
		{DirUp, core.AxisX, -1},
		{DirDown, core.AxisX, 1},
		{DirLeft, core.AxisY, -1},
		{DirRight, core.AxisY, 1},
	}
	for _, tc := range tests {
		t.Run(tc.dir.String(), func(t *testing.T) {
			rot := tc.dir.Rotation()
			if rot.Axis != tc.axis || rot.Sign != tc.sign {
				t.Errorf("%v.Rotation() = %v, expected axis %v sign %d", tc.dir, rot, tc.axis, tc.sign)
			}
			back, err := ParseDirection(tc.dir.String())
			if err != nil || back != tc.dir {
				t.Errorf("ParseDirection(%q) = %v, %v", tc.dir.String(), back, err)
			}
		})
	}

	if _, err := ParseDirection("forward"); err == nil {
		t.Error("ParseDirection should reject unknown names")
	}
}

func TestCommandJSONNamesDirection(t *testing.T) {
	data, err := json.Marshal(Command{At: 5, Op: OpRotate, Dir: DirUp})
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if string(data) != `{"t":5,"op":"rotate","dir":"up"}` {
		t.Errorf("rotate command = %s", data)
	}

	data, err = json.Marshal(Command{At: 6, Op: OpTick})
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if string(data) != `{"t":6,"op":"tick"}` {
		t.Errorf("tick command = %s", data)
	}

	var c Command
	if err := json.Unmarshal([]byte(`{"t":7,"op":"rotate","dir":"left"}`), &c); err != nil || c.Dir != DirLeft {
		t.Errorf("decoded %+v, %v", c, err)
	}
	if err := json.Unmarshal([]byte(`{"t":7,"op":"rotate","dir":"sideways"}`), &c); err == nil {
		t.Error("unknown direction name should not decode")
	}
	if _, err := json.Marshal(Command{Op: OpRotate, Dir: Direction(9)}); err == nil {
		t.Error("invalid direction should not encode")
	}
}

func TestApplyRotateNeedsDirection(t *testing.T) {
	s := newTestSession(t, DefaultSessionConfig(), 3)
	if err := s.Apply(Command{At: 1, Op: OpRotate}); err == nil {
		t.Error("rotate without a direction should fail")
	}
	if s.Board().Rotating() {
		t.Error("a failed command must not start a turn")
	}
	if s.RequestRotate(Direction(0)) {
		t.Error("the zero direction is not a turn")
	}
}

func TestNewSessionRejectsBadConfig(t *testing.T) {
	cfg := DefaultSessionConfig()
	cfg.TurnSpeed = -1
	if _, err := NewSession(cfg, 1, 0); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("negative turn speed: %v", err)
	}

	cfg = DefaultSessionConfig()
	cfg.Board.Size = 6
	if _, err := NewSession(cfg, 1, 0); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("even board size: %v", err)
	}
}

func TestSessionRotationAnimates(t *testing.T) {
	s := newTestSession(t, DefaultSessionConfig(), 1)

	var events []Event
	s.SetObserver(func(e Event) { events = append(events, e) })

	if !s.RequestRotate(DirDown) {
		t.Fatal("rotation request refused")
	}
	s.Tick(100)

	snap := s.Snapshot()
	if snap.State != StateRotating {
		t.Fatalf("state = %v, expected rotating", snap.State)
	}
	if math.Abs(snap.Angle-20) > 1e-9 {
		t.Errorf("angle after 100ms = %v, expected 20", snap.Angle)
	}
	if math.Abs(snap.Fraction-20.0/90.0) > 1e-9 {
		t.Errorf("fraction = %v", snap.Fraction)
	}
	if snap.Head() != core.V3i(0, 0, 2) {
		t.Error("cells must not move before the turn completes")
	}
	if s.RequestRotate(DirLeft) {
		t.Error("second rotation during a turn should be refused")
	}

	s.Tick(450)
	snap = s.Snapshot()
	if snap.State != StatePlaying {
		t.Fatalf("state after 90° = %v, expected playing", snap.State)
	}
	if want := core.Rotate(core.V3i(0, 0, 2), core.AxisX, 1); snap.Head() != want {
		t.Errorf("head after turn = %v, expected %v", snap.Head(), want)
	}
	if len(events) != 1 || events[0].Kind != EventRotated || events[0].Rotation != DirDown.Rotation() {
		t.Errorf("events = %+v, expected one rotated event", events)
	}
}

func TestSessionCompletesRotationBeforeMove(t *testing.T) {
	cfg := DefaultSessionConfig()
	cfg.TurnSpeed = 0.09 // the turn finishes after exactly 1000ms
	s := newTestSession(t, cfg, 2)

	if !s.RequestRotate(DirUp) {
		t.Fatal("rotation request refused")
	}
	if out := s.Tick(1001); out != OutcomeMoved && out != OutcomeAte {
		t.Fatalf("outcome = %v, expected a move", out)
	}

	// Turn first: (0,0,2) -> (0,2,0), then forward to (0,2,-1).
	if head := s.Board().Snake().Head(); head != core.V3i(0, 2, -1) {
		t.Errorf("head = %v, expected (0,2,-1)", head)
	}
}

func TestSessionInstantTurn(t *testing.T) {
	cfg := DefaultSessionConfig()
	cfg.TurnSpeed = 0
	s := newTestSession(t, cfg, 3)

	s.RequestRotate(DirRight)
	if !s.Board().Rotating() {
		t.Fatal("turn should be pending until the next tick")
	}
	s.Tick(1)
	if s.Board().Rotating() {
		t.Error("zero turn speed should finish on the next tick")
	}
}

// driveToGameOver ticks the default session straight into the far wall.
func driveToGameOver(t *testing.T, s *Session) int64 {
	t.Helper()
	now := int64(0)
	for i := 0; i < 10 && !s.Board().GameOver(); i++ {
		now += s.Board().MoveInterval() + 1
		s.Tick(now)
	}
	if !s.Board().GameOver() {
		t.Fatal("session never reached game over")
	}
	return now
}

func TestSessionRestart(t *testing.T) {
	s := newTestSession(t, DefaultSessionConfig(), 4)

	var kinds []EventKind
	s.SetObserver(func(e Event) { kinds = append(kinds, e.Kind) })

	if err := s.Restart(10); err != nil || s.Round() != 1 {
		t.Fatalf("restart while playing should be ignored, round=%d err=%v", s.Round(), err)
	}

	now := driveToGameOver(t, s)
	if !errors.Is(s.Board().Cause(), ErrBoundaryViolation) {
		t.Errorf("cause = %v, expected boundary", s.Board().Cause())
	}
	moves := s.Board().Moves()
	if !s.RequestRotate(DirUp) {
		t.Error("the cube should still turn after game over")
	}
	s.Tick(now + 1000)
	if s.Board().Rotating() || s.Board().Moves() != moves {
		t.Errorf("turn after game over: rotating=%v moves=%d, expected a finished turn and %d moves",
			s.Board().Rotating(), s.Board().Moves(), moves)
	}
	if snap := s.Snapshot(); snap.State != StateGameOver {
		t.Errorf("state after turn = %s, expected game over", snap.State)
	}
	now += 1000

	if err := s.Restart(now + 10); err != nil {
		t.Fatalf("Restart() failed: %v", err)
	}
	snap := s.Snapshot()
	if snap.Round != 2 || snap.Score != 0 || snap.State != StatePlaying {
		t.Errorf("after restart: %+v", snap)
	}
	if len(snap.Snake) != 1 || snap.Head() != core.V3i(0, 0, 2) {
		t.Errorf("restart should reset the snake, got %v", snap.Snake)
	}

	var sawOver, sawRestart bool
	for _, k := range kinds {
		sawOver = sawOver || k == EventGameOver
		sawRestart = sawRestart || k == EventRestart
	}
	if !sawOver || !sawRestart {
		t.Errorf("events = %v, expected game_over and restart", kinds)
	}
}

func TestSessionGameOverEmittedOnce(t *testing.T) {
	s := newTestSession(t, DefaultSessionConfig(), 5)
	count := 0
	s.SetObserver(func(e Event) {
		if e.Kind == EventGameOver {
			count++
		}
	})

	now := driveToGameOver(t, s)
	for i := 1; i <= 5; i++ {
		s.Tick(now + int64(i)*2000)
	}
	if count != 1 {
		t.Errorf("game over reported %d times", count)
	}
}

func TestSessionQuit(t *testing.T) {
	s := newTestSession(t, DefaultSessionConfig(), 6)
	s.Quit()

	if !s.Quitting() {
		t.Error("Quitting() should report true")
	}
	if s.RequestRotate(DirLeft) {
		t.Error("rotation after quit should be refused")
	}
	if out := s.Tick(5000); out != OutcomeIdle || s.Board().Moves() != 0 {
		t.Error("ticks after quit should do nothing")
	}
}

func scriptedRun(t *testing.T, seed int64, hook func(Command)) *Session {
	t.Helper()
	s := newTestSession(t, DefaultSessionConfig(), seed)
	s.SetCommandHook(hook)

	dirs := []Direction{DirUp, DirLeft, DirDown, DirRight}
	for now := int64(0); now <= 20000; now += 50 {
		s.Tick(now)
		if now%1500 == 0 {
			s.RequestRotate(dirs[(now/1500)%4])
		}
		if s.Board().GameOver() {
			if err := s.Restart(now); err != nil {
				t.Fatal(err)
			}
		}
	}
	return s
}

func TestSessionDeterministic(t *testing.T) {
	a := scriptedRun(t, 42, nil)
	b := scriptedRun(t, 42, nil)
	if !reflect.DeepEqual(a.Snapshot(), b.Snapshot()) {
		t.Errorf("same seed and inputs diverged:\n%+v\n%+v", a.Snapshot(), b.Snapshot())
	}
}

func TestSessionApplyReproducesRun(t *testing.T) {
	var cmds []Command
	orig := scriptedRun(t, 7, func(c Command) { cmds = append(cmds, c) })
	if len(cmds) == 0 {
		t.Fatal("no commands recorded")
	}

	replay := newTestSession(t, DefaultSessionConfig(), 7)
	for _, c := range cmds {
		if err := replay.Apply(c); err != nil {
			t.Fatalf("Apply(%+v) failed: %v", c, err)
		}
	}
	if !reflect.DeepEqual(orig.Snapshot(), replay.Snapshot()) {
		t.Errorf("replayed session diverged:\n%+v\n%+v", orig.Snapshot(), replay.Snapshot())
	}

	if err := replay.Apply(Command{Op: "jump"}); err == nil {
		t.Error("unknown op should fail")
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	s := newTestSession(t, DefaultSessionConfig(), 8)
	snap := s.Snapshot()
	snap.Snake[0].Pos = core.V3i(9, 9, 9)

	if s.Board().Snake().Head() == core.V3i(9, 9, 9) {
		t.Error("mutating a snapshot changed the session")
	}
}

func TestSessionDifficultySpeedsUp(t *testing.T) {
	cfg := DefaultSessionConfig()
	cfg.Difficulty.Enabled = true
	s := newTestSession(t, cfg, 9)

	b := s.Board()
	setBody(b, core.V3i(1, 1, 2))
	b.apple = NewApple(core.V3i(1, 1, 1))

	before := b.MoveInterval()
	if out := s.Tick(before + 1); out != OutcomeAte {
		t.Fatalf("outcome = %v, expected ate", out)
	}
	if after := b.MoveInterval(); after >= before {
		t.Errorf("interval after eating = %d, expected less than %d", after, before)
	}
}
