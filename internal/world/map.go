// Package world holds the tile map and the player pose.
package world

import (
	"errors"
	"fmt"
)

var (
	// ErrMap reports a malformed map definition.
	ErrMap = errors.New("bad map")
	// ErrStart reports a start pose outside the map or inside a wall.
	ErrStart = errors.New("bad start position")
)

// Cell is a single map tile.
type Cell uint8

const (
	Floor Cell = iota
	Wall
)

// Glyphs used by Parse and by the minimap.
const (
	WallGlyph  = '#'
	FloorGlyph = '.'
)

// Map is an immutable grid of cells stored row-major: index = row*width + col.
// Column is the x axis, row the y axis.
type Map struct {
	width  int
	height int
	cells  []Cell
}

// New builds a map from a flat cell slice. The slice is copied.
func New(width, height int, cells []Cell) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrMap, width, height)
	}
	if len(cells) != width*height {
		return nil, fmt.Errorf("%w: %d cells for %dx%d", ErrMap, len(cells), width, height)
	}
	m := &Map{width: width, height: height, cells: make([]Cell, len(cells))}
	copy(m.cells, cells)
	return m, nil
}

// Parse builds a map from text rows, '#' for walls and '.' for floor.
func Parse(rows []string) (*Map, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrMap)
	}
	width := len([]rune(rows[0]))
	cells := make([]Cell, 0, width*len(rows))
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMap, y, len(runes), width)
		}
		for x, r := range runes {
			switch r {
			case WallGlyph:
				cells = append(cells, Wall)
			case FloorGlyph:
				cells = append(cells, Floor)
			default:
				return nil, fmt.Errorf("%w: unknown glyph %q at %d,%d", ErrMap, r, x, y)
			}
		}
	}
	return New(width, len(rows), cells)
}

func (m *Map) Width() int  { return m.width }
func (m *Map) Height() int { return m.height }

// InBounds reports whether (x, y) lies inside the grid.
func (m *Map) InBounds(x, y float64) bool {
	return x >= 0 && y >= 0 && x < float64(m.width) && y < float64(m.height)
}

// IsWall truncates (x, y) to a cell and reports whether it is a wall.
// The caller must check InBounds first.
func (m *Map) IsWall(x, y float64) bool {
	return m.cells[int(y)*m.width+int(x)] == Wall
}

// Blocked reports whether (x, y) is outside the map or inside a wall.
func (m *Map) Blocked(x, y float64) bool {
	return !m.InBounds(x, y) || m.IsWall(x, y)
}

// CellAt returns the cell at integer coordinates; outside cells read as Wall.
func (m *Map) CellAt(col, row int) Cell {
	if col < 0 || row < 0 || col >= m.width || row >= m.height {
		return Wall
	}
	return m.cells[row*m.width+col]
}

// Glyph returns the minimap rune for a cell.
func (m *Map) Glyph(col, row int) rune {
	if m.CellAt(col, row) == Wall {
		return WallGlyph
	}
	return FloorGlyph
}

// Rows renders the map back to text, one string per row.
func (m *Map) Rows() []string {
	rows := make([]string, m.height)
	line := make([]rune, m.width)
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			line[x] = m.Glyph(x, y)
		}
		rows[y] = string(line)
	}
	return rows
}
