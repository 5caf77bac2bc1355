package cubesnake

import "github.com/vovakirdan/cubesnake/internal/core"

// Kind tags what an Element is. Renderers switch on it to pick a shape and color.
type Kind int

const (
	KindBody Kind = iota
	KindApple
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindBody:
		return "body"
	case KindApple:
		return "apple"
	default:
		return "unknown"
	}
}

// Element is a single occupied cell of the cube.
type Element struct {
	Kind Kind
	Pos  core.Vec3i
	// Body marks a snake cell that has been passed by the head. It is only a
	// rendering hint; game rules never read it.
	Body bool
}

// NewApple returns an apple element at p.
func NewApple(p core.Vec3i) Element {
	return Element{Kind: KindApple, Pos: p}
}

// Update rotates the element by a quarter turn around axis. The sign of
// angle selects the turn direction.
func (e *Element) Update(axis core.Axis, angle float64) {
	e.Pos = core.Rotate(e.Pos, axis, core.SignOf(angle))
}

// Glyph returns the rune used to draw the element.
func (e Element) Glyph() rune {
	switch e.Kind {
	case KindApple:
		return '●'
	case KindBody:
		if e.Body {
			return 'o'
		}
		return '@'
	default:
		return '?'
	}
}

// Color returns the display color of the element.
func (e Element) Color() core.Color {
	switch e.Kind {
	case KindApple:
		return core.ColorBrightRed
	case KindBody:
		if e.Body {
			return core.ColorYellow
		}
		return core.ColorBrightGreen
	default:
		return core.ColorDefault
	}
}
