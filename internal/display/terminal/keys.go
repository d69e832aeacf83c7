package terminal

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"consolefps/internal/engine"
)

// KeyState turns the terminal's key events into held-key state. Terminals
// report presses and auto-repeats but never releases, so a key counts as
// held for hold after its last event. Quit latches.
type KeyState struct {
	mu   sync.Mutex
	hold time.Duration
	last map[engine.Key]time.Time
	quit bool
	now  func() time.Time
}

// NewKeyState returns a KeyState that keeps keys down for hold.
func NewKeyState(hold time.Duration) *KeyState {
	return &KeyState{
		hold: hold,
		last: make(map[engine.Key]time.Time),
		now:  time.Now,
	}
}

// Press records an event for k at time at.
func (s *KeyState) Press(k engine.Key, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if k == engine.KeyQuit {
		s.quit = true
		return
	}
	s.last[k] = at
}

// Pressed implements engine.Keyboard.
func (s *KeyState) Pressed(k engine.Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if k == engine.KeyQuit {
		return s.quit
	}
	at, ok := s.last[k]
	return ok && s.now().Sub(at) <= s.hold
}

// mapKey translates a tcell key event into a control.
func mapKey(ev *tcell.EventKey) (engine.Key, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return engine.KeyForward, true
	case tcell.KeyDown:
		return engine.KeyBack, true
	case tcell.KeyLeft:
		return engine.KeyTurnLeft, true
	case tcell.KeyRight:
		return engine.KeyTurnRight, true
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return engine.KeyQuit, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return engine.KeyForward, true
		case 's', 'S':
			return engine.KeyBack, true
		case 'a', 'A':
			return engine.KeyTurnLeft, true
		case 'd', 'D':
			return engine.KeyTurnRight, true
		case 'q', 'Q':
			return engine.KeyQuit, true
		}
	}
	return 0, false
}
