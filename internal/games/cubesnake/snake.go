package cubesnake

import "github.com/vovakirdan/cubesnake/internal/core"

// forward is the fixed move direction in board coordinates. Rotating the
// cube is the only way to steer.
var forward = core.V3i(0, 0, -1)

// MoveOutcome describes what a single tick did to the snake.
type MoveOutcome int

const (
	OutcomeIdle      MoveOutcome = iota // No move was due
	OutcomeMoved                        // Advanced one cell
	OutcomeAte                          // Advanced onto the apple and grew
	OutcomeBoundary                     // Would have left the cube
	OutcomeCollision                    // Would have entered its own body
)

// Failed reports whether the outcome ends the round.
func (o MoveOutcome) Failed() bool {
	return o == OutcomeBoundary || o == OutcomeCollision
}

func (o MoveOutcome) String() string {
	switch o {
	case OutcomeIdle:
		return "idle"
	case OutcomeMoved:
		return "moved"
	case OutcomeAte:
		return "ate"
	case OutcomeBoundary:
		return "boundary"
	case OutcomeCollision:
		return "collision"
	default:
		return "unknown"
	}
}

// Snake is an ordered run of cells. Index 0 is the tail, the last element is the head.
type Snake struct {
	body []Element
}

// NewSnake creates a one-cell snake at start.
func NewSnake(start core.Vec3i) *Snake {
	return &Snake{body: []Element{{Kind: KindBody, Pos: start}}}
}

// Head returns the head cell.
func (s *Snake) Head() core.Vec3i {
	return s.body[len(s.body)-1].Pos
}

// Len returns the number of cells.
func (s *Snake) Len() int {
	return len(s.body)
}

// Cells returns the positions from tail to head.
func (s *Snake) Cells() []core.Vec3i {
	cells := make([]core.Vec3i, len(s.body))
	for i, e := range s.body {
		cells[i] = e.Pos
	}
	return cells
}

// Elements returns a copy of the body from tail to head.
func (s *Snake) Elements() []Element {
	out := make([]Element, len(s.body))
	copy(out, s.body)
	return out
}

// TestPosition reports whether any cell of the snake occupies p.
func (s *Snake) TestPosition(p core.Vec3i) bool {
	for _, e := range s.body {
		if e.Pos == p {
			return true
		}
	}
	return false
}

// Forward advances the head one cell towards -z.
//
// Both failure checks run before anything changes, so a failed move leaves
// the snake untouched. Eating the apple scores through the board and keeps the
// tail; any other successful move drops the tail.
func (s *Snake) Forward(b *Board) MoveOutcome {
	next := s.Head().Add(forward)
	if !next.Within(b.Half()) {
		return OutcomeBoundary
	}
	if s.TestPosition(next) {
		return OutcomeCollision
	}

	s.body[len(s.body)-1].Body = true
	s.body = append(s.body, Element{Kind: KindBody, Pos: next})

	if next == b.apple.Pos {
		b.eatApple()
		return OutcomeAte
	}

	s.body = s.body[1:]
	return OutcomeMoved
}

// Update rotates every cell by a quarter turn around axis.
func (s *Snake) Update(axis core.Axis, angle float64) {
	for i := range s.body {
		s.body[i].Update(axis, angle)
	}
}
