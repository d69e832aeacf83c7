// Package window presents frames in a desktop window through ebiten,
// drawing the character buffer with the Go Mono font.
package window

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"

	"consolefps/internal/engine"
	"consolefps/internal/frame"
	"consolefps/internal/logging"
)

const (
	fontSize = 14
	title    = "consolefps"
)

var (
	background = color.RGBA{10, 10, 15, 255}
	foreground = color.RGBA{200, 200, 210, 255}
)

///////////////////////////////////////////////////////////////
// KEYBOARD
///////////////////////////////////////////////////////////////

var keyBindings = map[engine.Key][]ebiten.Key{
	engine.KeyForward:   {ebiten.KeyW, ebiten.KeyArrowUp},
	engine.KeyBack:      {ebiten.KeyS, ebiten.KeyArrowDown},
	engine.KeyTurnLeft:  {ebiten.KeyA, ebiten.KeyArrowLeft},
	engine.KeyTurnRight: {ebiten.KeyD, ebiten.KeyArrowRight},
	engine.KeyQuit:      {ebiten.KeyEscape, ebiten.KeyQ},
}

// Keyboard polls ebiten's key state.
type Keyboard struct{}

func (Keyboard) Pressed(k engine.Key) bool {
	for _, key := range keyBindings[k] {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}

///////////////////////////////////////////////////////////////
// GAME
///////////////////////////////////////////////////////////////

// Game drives the engine from ebiten's update loop: one Tick per Update.
// It is also the engine's Display: Present keeps the frame for Draw.
type Game struct {
	ctx    context.Context
	eng    *engine.Engine
	keys   engine.Keyboard
	st     engine.State
	shown  *frame.Buffer
	lines  string
	face   *text.GoTextFace
	cellW  int
	cellH  int
	frames int
}

// NewGame prepares a window game for eng starting from st.
func NewGame(ctx context.Context, eng *engine.Engine, st engine.State) (*Game, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	face := &text.GoTextFace{Source: src, Size: fontSize}
	m := face.Metrics()

	shown, err := frame.New(st.Buffer.Width(), st.Buffer.Height())
	if err != nil {
		return nil, err
	}
	return &Game{
		ctx:    ctx,
		eng:    eng,
		keys:   Keyboard{},
		st:     st,
		shown:  shown,
		face:   face,
		cellW:  int(math.Ceil(text.Advance("M", face))),
		cellH:  int(math.Ceil(m.HAscent + m.HDescent)),
		frames: eng.Config().Frames,
	}, nil
}

// Present implements engine.Display.
func (g *Game) Present(buf *frame.Buffer) error {
	if err := g.shown.CopyFrom(buf); err != nil {
		return err
	}
	g.lines = strings.Join(g.shown.Rows(), "\n")
	return nil
}

func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	var err error
	g.st, err = g.eng.Tick(g.st, time.Now(), g.keys, g)
	switch {
	case errors.Is(err, engine.ErrQuit), errors.Is(err, engine.ErrClosed):
		return ebiten.Termination
	case err != nil:
		return err
	}
	if g.frames > 0 && g.st.Frame >= g.frames {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	op := &text.DrawOptions{}
	op.LineSpacing = float64(g.cellH)
	op.ColorScale.ScaleWithColor(foreground)
	text.Draw(screen, g.lines, g.face, op)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.shown.Width() * g.cellW, g.shown.Height() * g.cellH
}

// Run opens the window and blocks until it is closed, the quit key is
// pressed, ctx is cancelled or the frame limit is reached.
func Run(ctx context.Context, eng *engine.Engine, st engine.State) error {
	g, err := NewGame(ctx, eng, st)
	if err != nil {
		return err
	}
	w, h := g.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(title)

	log := logging.Logger().With("component", "window")
	log.Info("opening window", "width", w, "height", h)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	log.Info("window closed", "frames", g.st.Frame, "dropped", g.st.Dropped)
	return nil
}
