// Package frame implements the character frame buffer the renderer draws
// into and the display sinks read from.
package frame

import (
	"errors"
	"fmt"

	"golang.org/x/text/width"
)

// ErrSize reports a buffer constructed with non-positive dimensions.
var ErrSize = errors.New("invalid frame size")

// Blank is the rune a fresh buffer is filled with.
const Blank = ' '

// Buffer is a row-major grid of runes, len(cells) == width*height always.
type Buffer struct {
	width  int
	height int
	cells  []rune
}

// New allocates a blank width x height buffer.
func New(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrSize, width, height)
	}
	b := &Buffer{width: width, height: height, cells: make([]rune, width*height)}
	b.Fill(Blank)
	return b, nil
}

func (b *Buffer) Width() int  { return b.width }
func (b *Buffer) Height() int { return b.height }
func (b *Buffer) Len() int    { return len(b.cells) }

// Cells exposes the backing slice. Sinks must not retain it past Present.
func (b *Buffer) Cells() []rune { return b.cells }

// Fill overwrites every cell with r.
func (b *Buffer) Fill(r rune) {
	for i := range b.cells {
		b.cells[i] = r
	}
}

// Set writes r at (x, y). Writes outside the buffer are dropped and
// reported as false.
func (b *Buffer) Set(x, y int, r rune) bool {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return false
	}
	b.cells[y*b.width+x] = r
	return true
}

// At reads (x, y); outside cells read as Blank.
func (b *Buffer) At(x, y int) rune {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return Blank
	}
	return b.cells[y*b.width+x]
}

// Row returns row y as a string. y is clamped like WriteText.
func (b *Buffer) Row(y int) string {
	y = b.clampRow(y)
	return string(b.cells[y*b.width : (y+1)*b.width])
}

// Rows returns every row as a string.
func (b *Buffer) Rows() []string {
	rows := make([]string, b.height)
	for y := range rows {
		rows[y] = b.Row(y)
	}
	return rows
}

// CopyFrom copies src into b. Both must share dimensions.
func (b *Buffer) CopyFrom(src *Buffer) error {
	if src.width != b.width || src.height != b.height {
		return fmt.Errorf("%w: copy %dx%d into %dx%d", ErrSize, src.width, src.height, b.width, b.height)
	}
	copy(b.cells, src.cells)
	return nil
}

// WriteText writes s into row starting at column 0. A row past the last
// one is clamped to the last row (and a negative row to the first), and
// text running past the right edge is cut off. It returns the number of
// cells written.
func (b *Buffer) WriteText(row int, s string) int {
	return b.WriteTextAt(0, row, s)
}

// WriteTextAt is WriteText starting at column col.
func (b *Buffer) WriteTextAt(col, row int, s string) int {
	row = b.clampRow(row)
	n := 0
	x := col
	for _, r := range width.Narrow.String(s) {
		if x >= b.width {
			break
		}
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			r = '?'
		}
		if b.Set(x, row, r) {
			n++
		}
		x++
	}
	return n
}

func (b *Buffer) clampRow(y int) int {
	switch {
	case y < 0:
		return 0
	case y >= b.height:
		return b.height - 1
	}
	return y
}
