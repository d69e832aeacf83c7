package engine

import (
	"math"

	"consolefps/internal/world"
)

// Key is a logical control, mapped to physical keys by each backend.
type Key int

const (
	KeyForward Key = iota
	KeyBack
	KeyTurnLeft
	KeyTurnRight
	KeyQuit
)

func (k Key) String() string {
	switch k {
	case KeyForward:
		return "forward"
	case KeyBack:
		return "back"
	case KeyTurnLeft:
		return "turn-left"
	case KeyTurnRight:
		return "turn-right"
	case KeyQuit:
		return "quit"
	}
	return "unknown"
}

// KeySet is a fixed Keyboard, used for headless runs and tests.
type KeySet map[Key]bool

func (s KeySet) Pressed(k Key) bool { return s[k] }

// NoKeys never reports a key as held.
var NoKeys Keyboard = KeySet(nil)

// Update advances p by elapsed seconds of held keys. Moves that would end
// in a wall or off the map are undone, restoring the previous pose.
func (e *Engine) Update(p world.Player, elapsed float64, keys Keyboard) world.Player {
	if elapsed <= 0 {
		return p
	}
	if keys.Pressed(KeyTurnLeft) {
		p.Angle -= e.cfg.TurnSpeed * elapsed
	}
	if keys.Pressed(KeyTurnRight) {
		p.Angle += e.cfg.TurnSpeed * elapsed
	}
	p.Angle = normalizeAngle(p.Angle)

	if keys.Pressed(KeyForward) {
		p = e.move(p, e.cfg.Speed*elapsed)
	}
	if keys.Pressed(KeyBack) {
		p = e.move(p, -e.cfg.Speed*elapsed)
	}
	return p
}

func (e *Engine) move(p world.Player, dist float64) world.Player {
	old := p
	dx, dy := p.Facing()
	p.X += dx * dist
	p.Y += dy * dist
	if e.level.Map.Blocked(p.X, p.Y) {
		return old
	}
	return p
}

// normalizeAngle wraps a into [0, 2π).
func normalizeAngle(a float64) float64 {
	const tau = 2 * math.Pi
	a -= tau * math.Floor(a/tau)
	if a >= tau {
		a = 0
	}
	return a
}
