package cubesnake

import "math"

// RotationAnimator tracks the visible angle of a quarter turn. It exists for
// renderers only; the board changes coordinates once, when Advance reports the
// turn has finished.
type RotationAnimator struct {
	speed  float64 // degrees per millisecond; <= 0 finishes on the next Advance
	sign   int
	angle  float64
	last   int64
	active bool
}

// NewRotationAnimator creates an idle animator.
func NewRotationAnimator(degreesPerMs float64) RotationAnimator {
	return RotationAnimator{speed: degreesPerMs}
}

// Start begins a turn in the direction of sign at time nowMs.
func (a *RotationAnimator) Start(sign int, nowMs int64) {
	a.sign = 1
	if sign <= 0 {
		a.sign = -1
	}
	a.angle = 0
	a.last = nowMs
	a.active = true
}

// Advance moves the angle forward to nowMs and reports whether the turn
// reached 90° during this call. A finished animator resets to zero.
func (a *RotationAnimator) Advance(nowMs int64) bool {
	if !a.active {
		return false
	}
	dt := nowMs - a.last
	if dt < 0 {
		dt = 0
	}
	a.last = nowMs

	if a.speed > 0 {
		a.angle += float64(a.sign) * a.speed * float64(dt)
		if math.Abs(a.angle) < 90 {
			return false
		}
	}
	a.angle = 0
	a.active = false
	return true
}

// Stop abandons the animation without signalling completion.
func (a *RotationAnimator) Stop() {
	a.angle = 0
	a.active = false
}

// Active reports whether a turn is being animated.
func (a RotationAnimator) Active() bool { return a.active }

// Angle returns the current signed angle in degrees.
func (a RotationAnimator) Angle() float64 { return a.angle }

// Fraction returns how much of the turn is done, from 0 to 1.
func (a RotationAnimator) Fraction() float64 {
	if !a.active {
		return 0
	}
	return math.Min(1, math.Abs(a.angle)/90)
}
