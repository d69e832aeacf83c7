package world

import (
	"fmt"
	"math"
)

// Player is the camera pose. Angle 0 looks along +y; the facing vector is
// (sin(Angle), cos(Angle)).
type Player struct {
	X, Y  float64
	Angle float64
}

// Facing returns the unit view vector.
func (p Player) Facing() (dx, dy float64) {
	return math.Sin(p.Angle), math.Cos(p.Angle)
}

// Cell returns the integer cell the player stands in.
func (p Player) Cell() (col, row int) {
	return int(p.X), int(p.Y)
}

func (p Player) String() string {
	return fmt.Sprintf("X=%3.2f, Y=%3.2f, A=%3.2f", p.X, p.Y, p.Angle)
}

// CheckStart verifies that p stands inside m on a floor cell.
func CheckStart(m *Map, p Player) error {
	if m.Blocked(p.X, p.Y) {
		return fmt.Errorf("%w: (%.2f, %.2f)", ErrStart, p.X, p.Y)
	}
	return nil
}
