package world

import (
	"fmt"
	"math/rand"

	"consolefps/internal/config"
)

// Level is a map together with its default start pose.
type Level struct {
	Map   *Map
	Start Player
}

var defaultRows = []string{
	"################",
	"#..............#",
	"#..##......##..#",
	"#..#........#..#",
	"#..............#",
	"#.....####......",
	"#.....#........#",
	"#.....#........#",
	"#..............#",
	"#.........##...#",
	"###.......##...#",
	"#..............#",
	"#...#######....#",
	"#..............#",
	"#..............#",
	"#######...######",
}

// Default returns the built-in 16x16 level with the player at (8, 8).
func Default() Level {
	m, err := Parse(defaultRows)
	if err != nil {
		panic(err)
	}
	return Level{Map: m, Start: Player{X: 8, Y: 8}}
}

// Room returns a size x size room with walls only on its border and the
// player in the middle.
func Room(size int) (Level, error) {
	if size < 3 {
		return Level{}, fmt.Errorf("%w: room size %d", ErrMap, size)
	}
	cells := make([]Cell, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if x == 0 || y == 0 || x == size-1 || y == size-1 {
				cells[y*size+x] = Wall
			}
		}
	}
	m, err := New(size, size, cells)
	if err != nil {
		return Level{}, err
	}
	mid := float64(size / 2)
	return Level{Map: m, Start: Player{X: mid, Y: mid}}, nil
}

// Load builds the level selected by cfg and applies its start override.
func Load(cfg config.Config) (Level, error) {
	var (
		lvl Level
		err error
	)
	switch cfg.Map {
	case config.MapDefault:
		lvl = Default()
	case config.MapRoom:
		lvl, err = Room(cfg.RoomSize)
	case config.MapMaze:
		lvl, err = Maze(cfg.MazeSize, rand.New(rand.NewSource(cfg.Seed)), DefaultChaos)
	default:
		err = fmt.Errorf("%w: unknown map %q", ErrMap, cfg.Map)
	}
	if err != nil {
		return Level{}, err
	}

	x, y, ok, err := cfg.StartPos()
	if err != nil {
		return Level{}, err
	}
	if ok {
		lvl.Start.X, lvl.Start.Y = x, y
	}
	lvl.Start.Angle = cfg.StartAngle
	if err := CheckStart(lvl.Map, lvl.Start); err != nil {
		return Level{}, err
	}
	return lvl, nil
}
