package engine

import (
	"fmt"

	"consolefps/internal/frame"
	"consolefps/internal/raycast"
	"consolefps/internal/world"
)

// PlayerGlyph marks the player on the minimap.
const PlayerGlyph = 'P'

// Cast fills and returns one ray result per screen column for p. The
// slice is reused by the next call.
func (e *Engine) Cast(p world.Player, width int) []raycast.Result {
	if cap(e.results) < width {
		e.results = make([]raycast.Result, width)
	}
	e.results = e.results[:width]
	for c := range e.results {
		angle := raycast.RayAngle(c, width, p.Angle, e.params.FOV)
		e.results[c] = raycast.Cast(e.level.Map, p.X, p.Y, angle, e.params)
	}
	return e.results
}

// Render overwrites every cell of st.Buffer: wall columns with sky and
// floor, then the debug text, then the minimap on top.
func (e *Engine) Render(st State) {
	buf := st.Buffer
	for c, res := range e.Cast(st.Player, buf.Width()) {
		raycast.DrawColumn(buf, c, res, e.params)
	}

	buf.WriteText(0, fmt.Sprintf("FPS=%3.2f", st.FPS))
	buf.WriteText(1, st.Player.String())

	e.drawMinimap(buf, st.Player)
}

// MinimapOrigin is the screen cell of map cell (0, 0): the minimap hugs the
// top-right corner.
func (e *Engine) MinimapOrigin(buf *frame.Buffer) (x, y int) {
	return buf.Width() - e.level.Map.Width(), 0
}

func (e *Engine) drawMinimap(buf *frame.Buffer, p world.Player) {
	m := e.level.Map
	ox, oy := e.MinimapOrigin(buf)
	for row := 0; row < m.Height(); row++ {
		for col := 0; col < m.Width(); col++ {
			buf.Set(ox+col, oy+row, m.Glyph(col, row))
		}
	}
	col, row := p.Cell()
	buf.Set(ox+col, oy+row, PlayerGlyph)
}
