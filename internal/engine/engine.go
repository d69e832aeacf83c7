// Package engine runs the raycast renderer loop: it advances the player from
// polled key state, composes each frame and hands it to a display sink.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"consolefps/internal/config"
	"consolefps/internal/frame"
	"consolefps/internal/logging"
	"consolefps/internal/raycast"
	"consolefps/internal/world"
)

var (
	// ErrQuit is returned by Tick when the quit key is down.
	ErrQuit = errors.New("quit requested")
	// ErrClosed is returned by a Display whose surface has gone away.
	ErrClosed = errors.New("display closed")
)

// Display presents a finished frame. A non-nil error other than ErrClosed
// only costs that one frame.
type Display interface {
	Present(buf *frame.Buffer) error
}

// Keyboard reports whether a key is currently held.
type Keyboard interface {
	Pressed(k Key) bool
}

// State is everything that changes from one frame to the next. Tick takes
// a State and returns the next one.
type State struct {
	Player world.Player
	Buffer *frame.Buffer
	// Last is the timestamp of the previous tick; zero before the first.
	Last    time.Time
	Frame   int
	FPS     float64
	Dropped int
}

// Engine holds the immutable parts of the renderer: configuration, map and
// cast parameters.
type Engine struct {
	cfg     config.Config
	level   world.Level
	params  raycast.Params
	results []raycast.Result
	log     *slog.Logger
}

// New checks cfg and lvl for consistency. cfg must carry the final screen
// size; surface-sized configs are resolved by the backend beforehand.
func New(cfg config.Config, lvl world.Level) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.ScreenWidth <= 0 || cfg.ScreenHeight <= 0 {
		return nil, fmt.Errorf("%w: unresolved screen size %dx%d", config.ErrInvalid, cfg.ScreenWidth, cfg.ScreenHeight)
	}
	if lvl.Map == nil {
		return nil, fmt.Errorf("%w: no map", world.ErrMap)
	}
	if err := world.CheckStart(lvl.Map, lvl.Start); err != nil {
		return nil, err
	}
	return &Engine{
		cfg:     cfg,
		level:   lvl,
		params:  raycast.ParamsFrom(cfg),
		results: make([]raycast.Result, cfg.ScreenWidth),
		log:     logging.Logger().With("component", "engine"),
	}, nil
}

// Map returns the map being rendered.
func (e *Engine) Map() *world.Map { return e.level.Map }

// Config returns the configuration the engine was built with.
func (e *Engine) Config() config.Config { return e.cfg }

// NewState allocates the frame buffer and places the player at the level
// start.
func (e *Engine) NewState() (State, error) {
	buf, err := frame.New(e.cfg.ScreenWidth, e.cfg.ScreenHeight)
	if err != nil {
		return State{}, err
	}
	return State{Player: e.level.Start, Buffer: buf}, nil
}
