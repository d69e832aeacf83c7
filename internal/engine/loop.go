package engine

import (
	"context"
	"errors"
	"time"
)

// Clock supplies frame timestamps.
type Clock func() time.Time

///////////////////////////////////////////////////////////////
// TICK
///////////////////////////////////////////////////////////////

// Tick runs one frame: measure elapsed time, move, render, present. It
// returns ErrQuit when the quit key is held and ErrClosed when the display
// has gone away; any other present failure is logged and skipped.
func (e *Engine) Tick(st State, now time.Time, keys Keyboard, d Display) (State, error) {
	if keys.Pressed(KeyQuit) {
		return st, ErrQuit
	}

	elapsed := 0.0
	if !st.Last.IsZero() {
		elapsed = now.Sub(st.Last).Seconds()
	}
	st.Last = now
	st.FPS = 0
	if elapsed > 0 {
		st.FPS = 1 / elapsed
	}

	st.Player = e.Update(st.Player, elapsed, keys)
	e.Render(st)
	st.Frame++

	if err := d.Present(st.Buffer); err != nil {
		if errors.Is(err, ErrClosed) {
			return st, err
		}
		st.Dropped++
		e.log.Warn("present failed, frame skipped", "frame", st.Frame, "err", err)
	}
	return st, nil
}

///////////////////////////////////////////////////////////////
// RUN
///////////////////////////////////////////////////////////////

// Run ticks until the quit key, ctx cancellation, a closed display or the
// configured frame limit. Quit and close are normal exits and return nil;
// cancellation returns ctx.Err().
func (e *Engine) Run(ctx context.Context, st State, keys Keyboard, d Display, clock Clock) (State, error) {
	if clock == nil {
		clock = time.Now
	}

	var tick <-chan time.Time
	if e.cfg.Tick > 0 {
		t := time.NewTicker(e.cfg.Tick)
		defer t.Stop()
		tick = t.C
	}

	e.log.Info("render loop started",
		"width", st.Buffer.Width(), "height", st.Buffer.Height(),
		"map", e.cfg.Map, "frames", e.cfg.Frames)

	for {
		if err := ctx.Err(); err != nil {
			e.log.Info("render loop cancelled", "frames", st.Frame)
			return st, err
		}

		var err error
		st, err = e.Tick(st, clock(), keys, d)
		switch {
		case errors.Is(err, ErrQuit), errors.Is(err, ErrClosed):
			e.log.Info("render loop stopped", "reason", err, "frames", st.Frame, "dropped", st.Dropped)
			return st, nil
		case err != nil:
			return st, err
		}

		if e.cfg.Frames > 0 && st.Frame >= e.cfg.Frames {
			e.log.Info("frame limit reached", "frames", st.Frame, "dropped", st.Dropped)
			return st, nil
		}

		if tick != nil {
			select {
			case <-ctx.Done():
			case <-tick:
			}
		}
	}
}
