package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"consolefps/internal/config"
	"consolefps/internal/frame"
)

// fakeClock advances by step on every call.
func fakeClock(step time.Duration) Clock {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

// countingKeys presses quit after n polls of the quit key.
type countingKeys struct {
	KeySet
	quitAfter int
	polls     int
}

func (k *countingKeys) Pressed(key Key) bool {
	if key == KeyQuit {
		k.polls++
		return k.polls > k.quitAfter
	}
	return k.KeySet.Pressed(key)
}

type flakyDisplay struct {
	calls int
	inner recorder
}

func (d *flakyDisplay) Present(buf *frame.Buffer) error {
	d.calls++
	if d.calls%2 == 0 {
		return errors.New("write failed")
	}
	return d.inner.Present(buf)
}

type closingDisplay struct{ after int }

func (d *closingDisplay) Present(*frame.Buffer) error {
	d.after--
	if d.after < 0 {
		return ErrClosed
	}
	return nil
}

func TestTickElapsedAndFPS(t *testing.T) {
	e, st := newEngine(t, roomLevel(t))
	rec := &recorder{}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	st, err := e.Tick(st, start, NoKeys, rec)
	if err != nil {
		t.Fatal(err)
	}
	if st.FPS != 0 {
		t.Errorf("first frame FPS = %v, want 0", st.FPS)
	}

	st, err = e.Tick(st, start.Add(20*time.Millisecond), KeySet{KeyForward: true}, rec)
	if err != nil {
		t.Fatal(err)
	}
	if st.FPS < 49.9 || st.FPS > 50.1 {
		t.Errorf("FPS = %v, want 50", st.FPS)
	}
	if st.Frame != 2 || len(rec.frames) != 2 {
		t.Errorf("frames = %d presented = %d, want 2", st.Frame, len(rec.frames))
	}
	if want := 8 + e.cfg.Speed*0.02; st.Player.Y < want-eps || st.Player.Y > want+eps {
		t.Errorf("player y = %v, want %v", st.Player.Y, want)
	}
	if got := rec.frames[1][0][:9]; got != "FPS=50.00" {
		t.Errorf("presented row 0 = %q", got)
	}
}

func TestTickQuit(t *testing.T) {
	e, st := newEngine(t, roomLevel(t))
	rec := &recorder{}
	if _, err := e.Tick(st, time.Now(), KeySet{KeyQuit: true}, rec); !errors.Is(err, ErrQuit) {
		t.Fatalf("Tick() error = %v, want ErrQuit", err)
	}
	if len(rec.frames) != 0 {
		t.Error("quit tick should not present")
	}
}

func TestTickPresentFailureIsNotFatal(t *testing.T) {
	e, st := newEngine(t, roomLevel(t))
	d := &flakyDisplay{}
	clock := fakeClock(10 * time.Millisecond)
	for i := 0; i < 6; i++ {
		var err error
		if st, err = e.Tick(st, clock(), NoKeys, d); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}
	if st.Dropped != 3 || len(d.inner.frames) != 3 || st.Frame != 6 {
		t.Errorf("dropped=%d presented=%d frame=%d, want 3/3/6", st.Dropped, len(d.inner.frames), st.Frame)
	}
}

func TestRunFrameLimit(t *testing.T) {
	e, st := newEngine(t, roomLevel(t), func(c *config.Config) { c.Frames = 5 })
	rec := &recorder{}
	st, err := e.Run(context.Background(), st, NoKeys, rec, fakeClock(16*time.Millisecond))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if st.Frame != 5 || len(rec.frames) != 5 {
		t.Errorf("frame=%d presented=%d, want 5", st.Frame, len(rec.frames))
	}
}

func TestRunQuitKey(t *testing.T) {
	e, st := newEngine(t, roomLevel(t))
	rec := &recorder{}
	keys := &countingKeys{KeySet: KeySet{KeyTurnLeft: true}, quitAfter: 3}
	st, err := e.Run(context.Background(), st, keys, rec, fakeClock(16*time.Millisecond))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(rec.frames) != 3 {
		t.Errorf("presented %d frames, want 3", len(rec.frames))
	}
	if st.Player.Angle == 0 {
		t.Error("turn key should have rotated the player")
	}
}

func TestRunClosedDisplay(t *testing.T) {
	e, st := newEngine(t, roomLevel(t))
	st, err := e.Run(context.Background(), st, NoKeys, &closingDisplay{after: 2}, fakeClock(time.Millisecond))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if st.Frame != 3 {
		t.Errorf("frame = %d, want 3", st.Frame)
	}
}

func TestRunCancelled(t *testing.T) {
	e, st := newEngine(t, roomLevel(t), func(c *config.Config) { c.Tick = time.Millisecond })
	ctx, cancel := context.WithCancel(context.Background())
	rec := &recorder{}

	done := make(chan error, 1)
	go func() {
		_, err := e.Run(ctx, st, NoKeys, rec, nil)
		done <- err
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
