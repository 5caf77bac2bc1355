// Package core provides fundamental types and utilities for the cube snake game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "fmt"

// Vec3i is an integer cell coordinate inside the cube.
// It is a comparable value type, so == compares component-wise.
type Vec3i struct {
	X, Y, Z int
}

// V3i creates a new Vec3i.
func V3i(x, y, z int) Vec3i {
	return Vec3i{X: x, Y: y, Z: z}
}

// Add returns the component-wise sum of two vectors.
func (v Vec3i) Add(o Vec3i) Vec3i {
	return Vec3i{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Diagonal reports whether all three components are equal.
func (v Vec3i) Diagonal() bool {
	return v.X == v.Y && v.Y == v.Z
}

// Within reports whether every component lies in [-half, half].
func (v Vec3i) Within(half int) bool {
	return Abs(v.X) <= half && Abs(v.Y) <= half && Abs(v.Z) <= half
}

func (v Vec3i) String() string {
	return fmt.Sprintf("(%d,%d,%d)", v.X, v.Y, v.Z)
}

// Axis names a rotation axis of the cube.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ // defined for completeness, never produced by input
)

// String returns the lowercase axis name.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "unknown"
	}
}

// Rotate turns p by a quarter turn around axis. A positive sign turns one way,
// anything else the other. Four identical turns return the original cell.
//
//	X: (x, y, z) -> (x, -s*z, s*y)
//	Y: (x, y, z) -> (s*z, y, -s*x)
//	Z: (x, y, z) -> (-s*y, s*x, z)
func Rotate(p Vec3i, axis Axis, sign int) Vec3i {
	s := normSign(sign)
	switch axis {
	case AxisX:
		return Vec3i{X: p.X, Y: -s * p.Z, Z: s * p.Y}
	case AxisY:
		return Vec3i{X: s * p.Z, Y: p.Y, Z: -s * p.X}
	case AxisZ:
		return Vec3i{X: -s * p.Y, Y: s * p.X, Z: p.Z}
	default:
		return p
	}
}

// SignOf maps a rotation angle to a turn sign: positive angles give +1,
// zero and negative angles give -1.
func SignOf(angle float64) int {
	if angle > 0 {
		return 1
	}
	return -1
}

func normSign(sign int) int {
	if sign > 0 {
		return 1
	}
	return -1
}

// Rect represents an axis-aligned rectangle on the screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
