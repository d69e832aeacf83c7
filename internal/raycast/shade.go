package raycast

import (
	"consolefps/internal/frame"
)

// Wall shade tiers, nearest to farthest.
const (
	ShadeSolid  = '█'
	ShadeDense  = '▓'
	ShadeMedium = '▒'
	ShadeLight  = '░'
	ShadeNone   = ' '
)

// Sky is drawn above the wall slice.
const Sky = ' '

// WallShade picks the wall glyph for a hit at distance. Each band includes
// its upper threshold; distance == maxDepth is already blank.
func WallShade(distance, maxDepth float64, boundary bool) rune {
	switch {
	case boundary:
		return ShadeNone
	case distance <= maxDepth/4:
		return ShadeSolid
	case distance <= maxDepth/3:
		return ShadeDense
	case distance <= maxDepth/2:
		return ShadeMedium
	case distance < maxDepth:
		return ShadeLight
	default:
		return ShadeNone
	}
}

// FloorShade picks the floor glyph for screen row y of height rows. Rows
// nearest the bottom of the screen are densest.
func FloorShade(y, height int) rune {
	half := float64(height) / 2
	b := 1 - (float64(y)-half)/half
	switch {
	case b < 0.25:
		return '#'
	case b < 0.5:
		return 'x'
	case b < 0.75:
		return '.'
	case b < 0.9:
		return '-'
	default:
		return ' '
	}
}

// Slice returns the last sky row and the last wall row of a column whose
// wall lies at distance. Non-positive distances are raised to minDistance
// so the division is always defined.
func Slice(height int, distance, minDistance float64) (ceiling, floor int) {
	if distance <= 0 {
		distance = minDistance
	}
	h := float64(height)
	ceiling = int(h/2 - h/distance)
	floor = height - ceiling
	return ceiling, floor
}

// DrawColumn renders one screen column for res into buf.
func DrawColumn(buf *frame.Buffer, col int, res Result, p Params) {
	height := buf.Height()
	ceiling, floor := Slice(height, res.Distance, p.Step)
	shade := WallShade(res.Distance, p.MaxDepth, res.Boundary)

	for y := 0; y < height; y++ {
		switch {
		case y <= ceiling:
			buf.Set(col, y, Sky)
		case y <= floor:
			buf.Set(col, y, shade)
		default:
			buf.Set(col, y, FloorShade(y, height))
		}
	}
}
