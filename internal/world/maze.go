package world

import (
	"fmt"
	"math/rand"
)

///////////////////////////////////////////////////////////////
// MAZE GENERATION (DFS + LOOP CARVING)
///////////////////////////////////////////////////////////////

// DefaultChaos is the share of cells probed for loop carving.
const DefaultChaos = 0.2

// Maze carves a size x size maze with a randomized depth-first search
// starting at (1, 1), then knocks out a chaos share of walls that already
// separate two open cells so the maze gets loops. size must be odd.
func Maze(size int, rng *rand.Rand, chaos float64) (Level, error) {
	if size < 5 || size%2 == 0 {
		return Level{}, fmt.Errorf("%w: maze size %d must be odd and at least 5", ErrMap, size)
	}

	cells := make([]Cell, size*size)
	for i := range cells {
		cells[i] = Wall
	}
	at := func(x, y int) *Cell { return &cells[y*size+x] }

	type cell struct{ x, y int }
	stack := []cell{{1, 1}}
	*at(1, 1) = Floor
	dirs := []cell{{0, -2}, {2, 0}, {0, 2}, {-2, 0}}

	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		rng.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })

		for _, d := range dirs {
			nx := current.x + d.x
			ny := current.y + d.y
			if nx > 0 && nx < size-1 && ny > 0 && ny < size-1 && *at(nx, ny) == Wall {
				*at(nx, ny) = Floor
				*at(current.x+d.x/2, current.y+d.y/2) = Floor
				stack = append(stack, cell{nx, ny})
			}
		}
	}

	// Loops: open walls that have at least two open neighbours.
	probes := int(float64(size*size) * chaos)
	for i := 0; i < probes; i++ {
		x := rng.Intn(size-2) + 1
		y := rng.Intn(size-2) + 1
		if *at(x, y) != Wall {
			continue
		}
		open := 0
		for _, d := range [...]cell{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
			if *at(x+d.x, y+d.y) == Floor {
				open++
			}
		}
		if open >= 2 {
			*at(x, y) = Floor
		}
	}

	m, err := New(size, size, cells)
	if err != nil {
		return Level{}, err
	}
	return Level{Map: m, Start: Player{X: 1.5, Y: 1.5}}, nil
}
