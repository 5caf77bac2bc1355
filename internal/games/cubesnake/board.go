package cubesnake

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/vovakirdan/cubesnake/internal/config"
	"github.com/vovakirdan/cubesnake/internal/core"
)

var (
	// ErrBoundaryViolation ends a round when the head would leave the cube.
	ErrBoundaryViolation = errors.New("cubesnake: head left the cube")
	// ErrSelfCollision ends a round when the head would enter the body.
	ErrSelfCollision = errors.New("cubesnake: head hit the body")
	// ErrNoFreeCell means no eligible apple cell is free.
	ErrNoFreeCell = errors.New("cubesnake: no free cell for the apple")
	// ErrInvalidConfig is wrapped by board configuration errors.
	ErrInvalidConfig = errors.New("cubesnake: invalid board config")
)

// BoardConfig holds the rule parameters of a single board.
type BoardConfig struct {
	Size          int    `json:"size"`                     // Edge length, odd
	MoveInterval  int64  `json:"move_interval_ms"`         // Milliseconds between forward moves
	Placement     string `json:"placement"`                // config.PlacementDiagonal or config.PlacementAnywhere
	SpawnAttempts int    `json:"spawn_attempts,omitempty"` // Random apple samples before a full scan; 0 = 16 * Size
}

// DefaultBoardConfig returns the classic 5x5x5 board.
func DefaultBoardConfig() BoardConfig {
	return BoardConfig{
		Size:         5,
		MoveInterval: 1000,
		Placement:    config.PlacementDiagonal,
	}
}

// Validate checks the board parameters.
func (c BoardConfig) Validate() error {
	if c.Size < 3 || c.Size%2 == 0 {
		return fmt.Errorf("%w: size must be odd and at least 3, got %d", ErrInvalidConfig, c.Size)
	}
	if c.MoveInterval <= 0 {
		return fmt.Errorf("%w: move interval must be positive, got %d", ErrInvalidConfig, c.MoveInterval)
	}
	if c.Placement != config.PlacementDiagonal && c.Placement != config.PlacementAnywhere {
		return fmt.Errorf("%w: unknown apple placement %q", ErrInvalidConfig, c.Placement)
	}
	if c.SpawnAttempts < 0 {
		return fmt.Errorf("%w: spawn attempts must not be negative", ErrInvalidConfig)
	}
	return nil
}

func (c BoardConfig) attempts() int {
	if c.SpawnAttempts > 0 {
		return c.SpawnAttempts
	}
	return 16 * c.Size
}

// Rotation is a queued quarter turn of the whole cube.
type Rotation struct {
	Axis core.Axis
	Sign int // +1 or -1
}

// Angle returns the signed target angle of the turn in degrees.
func (r Rotation) Angle() float64 {
	return float64(90 * r.Sign)
}

func (r Rotation) String() string {
	if r.Sign > 0 {
		return "+" + r.Axis.String()
	}
	return "-" + r.Axis.String()
}

// Board is the cube state machine. It owns the snake, the apple and the score
// and makes every rule decision.
type Board struct {
	cfg  BoardConfig
	half int
	rng  *rand.Rand

	snake *Snake
	apple Element
	score int

	gameOver bool
	cause    error

	rotating bool
	pending  Rotation

	lastMove int64
	moves    int
}

// NewBoard creates a board with a one-cell snake centered on the front face
// and a freshly spawned apple. startMs is the clock value the first move
// interval is measured from.
func NewBoard(cfg BoardConfig, rng *rand.Rand, startMs int64) (*Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	half := cfg.Size / 2
	b := &Board{
		cfg:      cfg,
		half:     half,
		rng:      rng,
		snake:    NewSnake(core.V3i(0, 0, half)),
		lastMove: startMs,
	}
	if err := b.SpawnApple(); err != nil {
		return nil, fmt.Errorf("cubesnake: cannot place first apple: %w", err)
	}
	return b, nil
}

// SpawnApple moves the apple to a random eligible cell the snake does not occupy.
//
// Diagonal placement draws one value and uses it for all three coordinates.
// Sampling is bounded; when it runs out the eligible cells are scanned in
// order, and ErrNoFreeCell is returned only if every one is taken.
func (b *Board) SpawnApple() error {
	for range b.cfg.attempts() {
		p := b.sampleCell()
		if !b.snake.TestPosition(p) {
			b.apple = NewApple(p)
			return nil
		}
	}

	for _, p := range b.eligibleCells() {
		if !b.snake.TestPosition(p) {
			b.apple = NewApple(p)
			return nil
		}
	}
	return ErrNoFreeCell
}

func (b *Board) sampleCell() core.Vec3i {
	if b.cfg.Placement == config.PlacementAnywhere {
		return core.V3i(
			b.rng.Intn(b.cfg.Size)-b.half,
			b.rng.Intn(b.cfg.Size)-b.half,
			b.rng.Intn(b.cfg.Size)-b.half,
		)
	}
	k := b.rng.Intn(b.cfg.Size) - b.half
	return core.V3i(k, k, k)
}

// eligibleCells lists the cells the placement allows, in scan order.
func (b *Board) eligibleCells() []core.Vec3i {
	anywhere := b.cfg.Placement == config.PlacementAnywhere
	var cells []core.Vec3i
	for x := -b.half; x <= b.half; x++ {
		for y := -b.half; y <= b.half; y++ {
			for z := -b.half; z <= b.half; z++ {
				if p := core.V3i(x, y, z); anywhere || p.Diagonal() {
					cells = append(cells, p)
				}
			}
		}
	}
	return cells
}

// eatApple is called by the snake after its head reached the apple.
func (b *Board) eatApple() {
	b.score++
	if err := b.SpawnApple(); err != nil {
		b.end(err)
	}
}

func (b *Board) end(cause error) {
	if b.gameOver {
		return
	}
	b.gameOver = true
	b.cause = cause
}

// Tick moves the snake forward when more than one move interval has passed
// since the last move. Rule violations end the round; they are reported
// through the outcome and Cause, never as an error.
func (b *Board) Tick(nowMs int64) MoveOutcome {
	if b.gameOver || nowMs <= b.lastMove+b.cfg.MoveInterval {
		return OutcomeIdle
	}
	b.lastMove = nowMs

	outcome := b.snake.Forward(b)
	switch {
	case outcome == OutcomeBoundary:
		b.end(ErrBoundaryViolation)
	case outcome.Failed():
		b.end(ErrSelfCollision)
	default:
		b.moves++
	}
	return outcome
}

// RequestRotation starts a quarter turn if none is in progress. It returns
// false, changing nothing, while another turn is running. Turning is still
// allowed after game over so the player can inspect the final position; Tick
// makes no moves by then.
func (b *Board) RequestRotation(axis core.Axis, sign int) bool {
	if b.rotating {
		return false
	}
	if sign > 0 {
		sign = 1
	} else {
		sign = -1
	}
	b.pending = Rotation{Axis: axis, Sign: sign}
	b.rotating = true
	return true
}

// CompleteRotation remaps the snake and the apple with the recorded turn and
// returns to idle. It reports whether a turn was pending.
func (b *Board) CompleteRotation() bool {
	if !b.rotating {
		return false
	}
	angle := b.pending.Angle()
	b.snake.Update(b.pending.Axis, angle)
	b.apple.Update(b.pending.Axis, angle)
	b.rotating = false
	return true
}

// SetMoveInterval changes the pace of future moves.
func (b *Board) SetMoveInterval(ms int64) {
	if ms > 0 {
		b.cfg.MoveInterval = ms
	}
}

// Size returns the cube edge length.
func (b *Board) Size() int { return b.cfg.Size }

// Half returns the largest coordinate magnitude.
func (b *Board) Half() int { return b.half }

// Score returns the number of apples eaten.
func (b *Board) Score() int { return b.score }

// GameOver reports whether the round has ended.
func (b *Board) GameOver() bool { return b.gameOver }

// Cause returns why the round ended, or nil while playing.
func (b *Board) Cause() error { return b.cause }

// Rotating reports whether a quarter turn is in progress.
func (b *Board) Rotating() bool { return b.rotating }

// Pending returns the recorded turn; only meaningful while Rotating.
func (b *Board) Pending() Rotation { return b.pending }

// Snake returns the snake. Callers must not mutate it.
func (b *Board) Snake() *Snake { return b.snake }

// Apple returns the apple.
func (b *Board) Apple() Element { return b.apple }

// Moves returns the number of successful forward moves.
func (b *Board) Moves() int { return b.moves }

// MoveInterval returns the current pace in milliseconds.
func (b *Board) MoveInterval() int64 { return b.cfg.MoveInterval }
