// Package terminal presents frames on a tcell screen and reads the
// keyboard from its event stream.
package terminal

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"consolefps/internal/engine"
	"consolefps/internal/frame"
	"consolefps/internal/logging"
)

// Screen is an engine.Display backed by a tcell.Screen.
type Screen struct {
	screen tcell.Screen
	style  tcell.Style
	keys   *KeyState
	closed atomic.Bool
	done   chan struct{}
	log    *slog.Logger
}

// Open acquires the controlling terminal.
func Open(hold time.Duration) (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create terminal screen: %w", err)
	}
	return New(s, hold)
}

// New initializes s and starts pumping its events into the key state.
func New(s tcell.Screen, hold time.Duration) (*Screen, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("init terminal screen: %w", err)
	}
	s.HideCursor()
	style := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	s.SetStyle(style)
	s.Clear()

	scr := &Screen{
		screen: s,
		style:  style,
		keys:   NewKeyState(hold),
		done:   make(chan struct{}),
		log:    logging.Logger().With("component", "terminal"),
	}
	go scr.pump()
	return scr, nil
}

// Size reports the terminal size in cells.
func (s *Screen) Size() (width, height int) {
	return s.screen.Size()
}

// Keys returns the keyboard fed by this screen.
func (s *Screen) Keys() *KeyState { return s.keys }

// Present copies buf onto the screen, clipped to the terminal size.
func (s *Screen) Present(buf *frame.Buffer) error {
	if s.closed.Load() {
		return engine.ErrClosed
	}
	w, h := s.screen.Size()
	w = min(w, buf.Width())
	h = min(h, buf.Height())
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s.screen.SetContent(x, y, buf.At(x, y), nil, s.style)
		}
	}
	s.screen.Show()
	return nil
}

// Close restores the terminal and waits for the event pump to stop.
func (s *Screen) Close() {
	s.screen.Fini()
	<-s.done
}

func (s *Screen) pump() {
	defer close(s.done)
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			s.closed.Store(true)
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if k, ok := mapKey(ev); ok {
				s.keys.Press(k, ev.When())
			}
		case *tcell.EventResize:
			w, h := ev.Size()
			s.log.Debug("terminal resized", "width", w, "height", h)
			s.screen.Sync()
		}
	}
}
