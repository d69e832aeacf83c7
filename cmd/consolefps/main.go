// Command consolefps renders a first-person raycast view of a tile map in
// the terminal, a window, a text stream or PNG snapshots.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"syscall"

	"consolefps/internal/config"
	"consolefps/internal/display/snapshot"
	"consolefps/internal/display/stream"
	"consolefps/internal/display/terminal"
	"consolefps/internal/display/window"
	"consolefps/internal/engine"
	"consolefps/internal/logging"
	"consolefps/internal/world"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("consolefps: ")

	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}

	closeLog, err := setupLogging(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		closeLog()
		log.Fatal(err)
	}
}

func parseFlags(args []string) (config.Config, error) {
	cfg := config.Default()
	fovDeg := cfg.FOV * 180 / math.Pi

	fs := flag.NewFlagSet("consolefps", flag.ContinueOnError)
	fs.IntVar(&cfg.ScreenWidth, "width", cfg.ScreenWidth, "screen width in cells (0 = surface width)")
	fs.IntVar(&cfg.ScreenHeight, "height", cfg.ScreenHeight, "screen height in cells (0 = surface height)")
	fs.Float64Var(&fovDeg, "fov", fovDeg, "field of view in degrees")
	fs.Float64Var(&cfg.MaxDepth, "depth", cfg.MaxDepth, "maximum ray distance in map units")
	fs.Float64Var(&cfg.Step, "step", cfg.Step, "ray march step in map units")
	fs.Float64Var(&cfg.Speed, "speed", cfg.Speed, "walking speed in map units per second")
	fs.Float64Var(&cfg.TurnSpeed, "turn", cfg.TurnSpeed, "turning speed in radians per second")
	fs.StringVar(&cfg.Map, "map", cfg.Map, "map: default, room or maze")
	fs.IntVar(&cfg.RoomSize, "room-size", cfg.RoomSize, "side of the room map")
	fs.IntVar(&cfg.MazeSize, "maze-size", cfg.MazeSize, "side of the maze map (odd)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "maze seed")
	fs.StringVar(&cfg.Start, "start", cfg.Start, "start position x,y (empty = level start)")
	fs.Float64Var(&cfg.StartAngle, "angle", cfg.StartAngle, "start facing angle in radians")
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "display: terminal, window, stream or snapshot")
	fs.IntVar(&cfg.Frames, "frames", cfg.Frames, "stop after this many frames (0 = run until quit)")
	fs.DurationVar(&cfg.Tick, "tick", cfg.Tick, "minimum time between frames (0 = uncapped)")
	fs.DurationVar(&cfg.KeyHold, "key-hold", cfg.KeyHold, "how long a terminal key event counts as held")
	fs.StringVar(&cfg.Snapshot, "snapshot", cfg.Snapshot, "PNG path for the snapshot backend")
	fs.BoolVar(&cfg.SnapshotEvery, "snapshot-every", cfg.SnapshotEvery, "write one numbered PNG per frame")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "log file (empty = no logging)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	cfg.FOV = fovDeg * math.Pi / 180

	if cfg.Backend == config.BackendSnapshot && cfg.Frames == 0 {
		cfg.Frames = 1
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// setupLogging routes slog to cfg.LogFile. The returned func closes it and
// is safe to call twice.
func setupLogging(cfg config.Config) (func(), error) {
	if cfg.LogFile == "" {
		return func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{
		Level: logging.ParseLevel(cfg.LogLevel),
	})))
	closed := false
	return func() {
		if closed {
			return
		}
		closed = true
		logging.SetLogger(nil)
		f.Close()
	}, nil
}

func run(ctx context.Context, cfg config.Config) error {
	switch cfg.Backend {
	case config.BackendTerminal:
		return runTerminal(ctx, cfg)
	case config.BackendWindow:
		return runWindow(ctx, cfg)
	case config.BackendStream:
		return runStream(ctx, cfg, os.Stdout)
	case config.BackendSnapshot:
		return runSnapshot(ctx, cfg)
	}
	return fmt.Errorf("unknown backend %q", cfg.Backend)
}

// newEngine loads the level and builds the engine for a resolved screen.
func newEngine(cfg config.Config) (*engine.Engine, engine.State, error) {
	lvl, err := world.Load(cfg)
	if err != nil {
		return nil, engine.State{}, err
	}
	eng, err := engine.New(cfg, lvl)
	if err != nil {
		return nil, engine.State{}, err
	}
	st, err := eng.NewState()
	if err != nil {
		return nil, engine.State{}, err
	}
	return eng, st, nil
}

// loop runs eng until it stops; cancellation is a normal exit.
func loop(ctx context.Context, eng *engine.Engine, st engine.State, keys engine.Keyboard, d engine.Display) error {
	if _, err := eng.Run(ctx, st, keys, d, nil); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runTerminal(ctx context.Context, cfg config.Config) error {
	scr, err := terminal.Open(cfg.KeyHold)
	if err != nil {
		return fmt.Errorf("acquire terminal: %w", err)
	}
	defer scr.Close()

	eng, st, err := newEngine(cfg.WithScreen(scr.Size()))
	if err != nil {
		return err
	}
	return loop(ctx, eng, st, scr.Keys(), scr)
}

func runWindow(ctx context.Context, cfg config.Config) error {
	eng, st, err := newEngine(cfg.WithScreen(config.DefaultScreenWidth, config.DefaultScreenHeight))
	if err != nil {
		return err
	}
	return window.Run(ctx, eng, st)
}

func runStream(ctx context.Context, cfg config.Config, out *os.File) error {
	w, h, err := stream.TerminalSize(out)
	ansi := err == nil
	if !ansi {
		w, h = config.DefaultScreenWidth, config.DefaultScreenHeight
	}

	eng, st, err := newEngine(cfg.WithScreen(w, h))
	if err != nil {
		return err
	}
	sink := stream.New(out, ansi)
	defer sink.Close()
	return loop(ctx, eng, st, engine.NoKeys, sink)
}

func runSnapshot(ctx context.Context, cfg config.Config) error {
	shots, err := snapshot.New(cfg.Snapshot, snapshot.DefaultSize, cfg.SnapshotEvery)
	if err != nil {
		return fmt.Errorf("acquire snapshot writer: %w", err)
	}
	eng, st, err := newEngine(cfg)
	if err != nil {
		return err
	}
	st, err = eng.Run(ctx, st, engine.NoKeys, shots, nil)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if st.Frame > 0 && st.Dropped == st.Frame {
		return fmt.Errorf("no snapshot written to %s", cfg.Snapshot)
	}
	logging.Logger().Info("snapshots written", "path", cfg.Snapshot, "frames", st.Frame-st.Dropped)
	return nil
}
