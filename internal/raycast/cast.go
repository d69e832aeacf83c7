// Package raycast marches rays through a tile map and turns the hit
// distances into shaded character columns.
package raycast

import (
	"math"
	"sort"

	"consolefps/internal/config"
	"consolefps/internal/world"
)

// Params are the fixed parameters of every cast.
type Params struct {
	FOV            float64
	MaxDepth       float64
	Step           float64
	BoundTolerance float64
}

// ParamsFrom extracts cast parameters from cfg.
func ParamsFrom(cfg config.Config) Params {
	return Params{
		FOV:            cfg.FOV,
		MaxDepth:       cfg.MaxDepth,
		Step:           cfg.Step,
		BoundTolerance: cfg.BoundTolerance,
	}
}

// Result is the outcome of a single ray.
type Result struct {
	Distance float64
	Hit      bool
	// Boundary is set when the ray passes within BoundTolerance of one of
	// the three nearest corners of the wall cell it hit.
	Boundary bool
}

// RayAngle returns the angle of screen column col out of width when the
// player faces facing.
func RayAngle(col, width int, facing, fov float64) float64 {
	return facing - fov/2 + float64(col)/float64(width)*fov
}

// Cast marches from (x, y) along angle in Step increments. It stops on the
// first wall cell, on leaving the map, or once the distance reaches
// MaxDepth. Leaving the map or running out of depth yields MaxDepth with
// no hit. The returned distance never exceeds MaxDepth.
func Cast(m *world.Map, x, y, angle float64, p Params) Result {
	eyeX, eyeY := math.Sin(angle), math.Cos(angle)

	d := 0.0
	for i := 1; d < p.MaxDepth; i++ {
		d = float64(i) * p.Step
		tx, ty := x+eyeX*d, y+eyeY*d

		if !m.InBounds(tx, ty) {
			return Result{Distance: p.MaxDepth}
		}
		if !m.IsWall(tx, ty) {
			continue
		}
		return Result{
			Distance: math.Min(d, p.MaxDepth),
			Hit:      true,
			Boundary: onCorner(int(tx), int(ty), x, y, eyeX, eyeY, p.BoundTolerance),
		}
	}
	return Result{Distance: p.MaxDepth}
}

type corner struct {
	dist float64
	dot  float64
}

// onCorner reports whether the ray (eyeX, eyeY) from (x, y) runs close to
// one of the three nearest corners of cell (cx, cy). The farthest corner is
// always hidden behind the cell.
func onCorner(cx, cy int, x, y, eyeX, eyeY, tolerance float64) bool {
	corners := make([]corner, 0, 4)
	for tx := 0; tx < 2; tx++ {
		for ty := 0; ty < 2; ty++ {
			vx := float64(cx+tx) - x
			vy := float64(cy+ty) - y
			d := math.Hypot(vx, vy)
			if d == 0 {
				continue
			}
			corners = append(corners, corner{dist: d, dot: (eyeX*vx + eyeY*vy) / d})
		}
	}
	sort.Slice(corners, func(i, j int) bool { return corners[i].dist < corners[j].dist })

	for i := 0; i < len(corners) && i < 3; i++ {
		// Rounding can push a perfectly aligned dot product past 1.
		dot := math.Max(-1, math.Min(1, corners[i].dot))
		if math.Acos(dot) < tolerance {
			return true
		}
	}
	return false
}
