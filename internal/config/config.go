// Package config centralizes every tunable of the renderer.
package config

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Map kinds.
const (
	MapDefault = "default"
	MapRoom    = "room"
	MapMaze    = "maze"
)

// Backends.
const (
	BackendTerminal = "terminal"
	BackendWindow   = "window"
	BackendStream   = "stream"
	BackendSnapshot = "snapshot"
)

// Classic command-line FPS values.
const (
	DefaultScreenWidth    = 120
	DefaultScreenHeight   = 40
	DefaultFOV            = math.Pi / 4
	DefaultMaxDepth       = 16.0
	DefaultStep           = 0.1
	DefaultBoundTolerance = 0.01
	DefaultSpeed          = 5.0
	DefaultMapSize        = 16
	DefaultMazeSize       = 31

	// DefaultKeyHold outlasts the usual terminal auto-repeat delay
	// (250 to 500 ms), so a held key does not stall before repeats start.
	DefaultKeyHold = 550 * time.Millisecond
)

// Config is the full set of runtime parameters. Zero ScreenWidth or
// ScreenHeight means "take the size of the display surface".
type Config struct {
	ScreenWidth  int
	ScreenHeight int

	FOV            float64
	MaxDepth       float64
	Step           float64
	BoundTolerance float64

	Speed     float64
	TurnSpeed float64

	Map      string
	RoomSize int
	MazeSize int
	Seed     int64

	// Start is "x,y" in map units; empty means the level's own start.
	Start      string
	StartAngle float64

	Backend  string
	Frames   int
	Tick     time.Duration
	KeyHold  time.Duration
	Snapshot string

	// SnapshotEvery writes one numbered PNG per frame instead of
	// overwriting Snapshot.
	SnapshotEvery bool

	LogFile  string
	LogLevel string
}

// Default returns the classic settings: a 120x40 screen, a 45° field of
// view, sixteen units of depth and the built-in 16x16 level.
func Default() Config {
	return Config{
		ScreenWidth:    DefaultScreenWidth,
		ScreenHeight:   DefaultScreenHeight,
		FOV:            DefaultFOV,
		MaxDepth:       DefaultMaxDepth,
		Step:           DefaultStep,
		BoundTolerance: DefaultBoundTolerance,
		Speed:          DefaultSpeed,
		TurnSpeed:      DefaultSpeed * 0.75,
		Map:            MapDefault,
		RoomSize:       DefaultMapSize,
		MazeSize:       DefaultMazeSize,
		Backend:        BackendTerminal,
		KeyHold:        DefaultKeyHold,
		Snapshot:       "frame.png",
		LogLevel:       "info",
	}
}

// Validate reports the first inconsistent field.
func (c Config) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"fov", c.FOV}, {"depth", c.MaxDepth}, {"step", c.Step},
		{"bound tolerance", c.BoundTolerance}, {"speed", c.Speed},
		{"turn speed", c.TurnSpeed}, {"start angle", c.StartAngle},
	} {
		if !finite(f.v) {
			return fmt.Errorf("%w: %s %v is not finite", ErrInvalid, f.name, f.v)
		}
	}

	switch {
	case c.ScreenWidth < 0 || c.ScreenHeight < 0:
		return fmt.Errorf("%w: screen %dx%d", ErrInvalid, c.ScreenWidth, c.ScreenHeight)
	case c.FOV <= 0 || c.FOV >= 2*math.Pi:
		return fmt.Errorf("%w: fov %v outside (0, 2π)", ErrInvalid, c.FOV)
	case c.Step <= 0:
		return fmt.Errorf("%w: step %v must be positive", ErrInvalid, c.Step)
	case c.MaxDepth <= c.Step:
		return fmt.Errorf("%w: depth %v must exceed step %v", ErrInvalid, c.MaxDepth, c.Step)
	case c.BoundTolerance < 0:
		return fmt.Errorf("%w: bound tolerance %v", ErrInvalid, c.BoundTolerance)
	case c.Speed < 0 || c.TurnSpeed < 0:
		return fmt.Errorf("%w: negative speed", ErrInvalid)
	case c.Frames < 0:
		return fmt.Errorf("%w: frames %d", ErrInvalid, c.Frames)
	case c.Tick < 0 || c.KeyHold < 0:
		return fmt.Errorf("%w: negative duration", ErrInvalid)
	}

	if _, _, _, err := c.StartPos(); err != nil {
		return err
	}

	switch c.Map {
	case MapDefault:
	case MapRoom:
		if c.RoomSize < 3 {
			return fmt.Errorf("%w: room size %d below 3", ErrInvalid, c.RoomSize)
		}
	case MapMaze:
		if c.MazeSize < 5 || c.MazeSize%2 == 0 {
			return fmt.Errorf("%w: maze size %d must be odd and at least 5", ErrInvalid, c.MazeSize)
		}
	default:
		return fmt.Errorf("%w: unknown map %q", ErrInvalid, c.Map)
	}

	switch c.Backend {
	case BackendTerminal, BackendWindow, BackendStream:
	case BackendSnapshot:
		if c.Snapshot == "" {
			return fmt.Errorf("%w: snapshot backend needs an output path", ErrInvalid)
		}
		if c.ScreenWidth == 0 || c.ScreenHeight == 0 {
			return fmt.Errorf("%w: snapshot backend needs explicit screen size", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalid, c.Backend)
	}
	return nil
}

// WithScreen returns a copy with any zero screen dimension replaced by the
// surface size.
func (c Config) WithScreen(width, height int) Config {
	if c.ScreenWidth == 0 {
		c.ScreenWidth = width
	}
	if c.ScreenHeight == 0 {
		c.ScreenHeight = height
	}
	return c
}

// StartPos parses Start. ok is false when Start is empty.
func (c Config) StartPos() (x, y float64, ok bool, err error) {
	if strings.TrimSpace(c.Start) == "" {
		return 0, 0, false, nil
	}
	xs, ys, found := strings.Cut(c.Start, ",")
	if !found {
		return 0, 0, false, fmt.Errorf("%w: start %q is not x,y", ErrInvalid, c.Start)
	}
	if x, err = strconv.ParseFloat(strings.TrimSpace(xs), 64); err != nil {
		return 0, 0, false, fmt.Errorf("%w: start x: %v", ErrInvalid, err)
	}
	if y, err = strconv.ParseFloat(strings.TrimSpace(ys), 64); err != nil {
		return 0, 0, false, fmt.Errorf("%w: start y: %v", ErrInvalid, err)
	}
	if !finite(x) || !finite(y) {
		return 0, 0, false, fmt.Errorf("%w: start %q is not finite", ErrInvalid, c.Start)
	}
	return x, y, true, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
