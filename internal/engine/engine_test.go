package engine

import (
	"errors"
	"testing"

	"consolefps/internal/config"
	"consolefps/internal/frame"
	"consolefps/internal/world"
)

// recorder is a Display that keeps a copy of every presented frame.
type recorder struct {
	frames [][]string
	err    error
}

func (r *recorder) Present(buf *frame.Buffer) error {
	if r.err != nil {
		return r.err
	}
	r.frames = append(r.frames, buf.Rows())
	return nil
}

func roomLevel(t *testing.T) world.Level {
	t.Helper()
	lvl, err := world.Room(16)
	if err != nil {
		t.Fatal(err)
	}
	return lvl
}

func newEngine(t *testing.T, lvl world.Level, mutate ...func(*config.Config)) (*Engine, State) {
	t.Helper()
	cfg := config.Default()
	for _, m := range mutate {
		m(&cfg)
	}
	e, err := New(cfg, lvl)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	st, err := e.NewState()
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}
	return e, st
}

func TestNew(t *testing.T) {
	lvl := roomLevel(t)

	t.Run("unresolved size", func(t *testing.T) {
		cfg := config.Default()
		cfg.ScreenWidth = 0
		if _, err := New(cfg, lvl); !errors.Is(err, config.ErrInvalid) {
			t.Errorf("New() error = %v, want ErrInvalid", err)
		}
	})
	t.Run("invalid config", func(t *testing.T) {
		cfg := config.Default()
		cfg.Step = 0
		if _, err := New(cfg, lvl); !errors.Is(err, config.ErrInvalid) {
			t.Errorf("New() error = %v, want ErrInvalid", err)
		}
	})
	t.Run("start in wall", func(t *testing.T) {
		bad := lvl
		bad.Start = world.Player{X: 0.5, Y: 3}
		if _, err := New(config.Default(), bad); !errors.Is(err, world.ErrStart) {
			t.Errorf("New() error = %v, want ErrStart", err)
		}
	})
	t.Run("no map", func(t *testing.T) {
		if _, err := New(config.Default(), world.Level{}); !errors.Is(err, world.ErrMap) {
			t.Errorf("New() error = %v, want ErrMap", err)
		}
	})
}

func TestNewStateBuffer(t *testing.T) {
	e, st := newEngine(t, roomLevel(t), func(c *config.Config) {
		c.ScreenWidth, c.ScreenHeight = 80, 24
	})
	if st.Buffer.Len() != 80*24 {
		t.Errorf("buffer length = %d, want %d", st.Buffer.Len(), 80*24)
	}
	if st.Player != e.level.Start {
		t.Errorf("player = %v, want level start", st.Player)
	}
}
