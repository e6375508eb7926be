// Command rigdemo drives an RTS camera rig from a glfw window or a scripted input file and
// logs where the camera goes. With -trace it writes one CSV row per smoothing tick.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/Carmen-Shannon/oxy-rts/common"
	"github.com/Carmen-Shannon/oxy-rts/engine"
	"github.com/Carmen-Shannon/oxy-rts/engine/camera"
	"github.com/Carmen-Shannon/oxy-rts/engine/config"
	"github.com/Carmen-Shannon/oxy-rts/engine/game_object"
	"github.com/Carmen-Shannon/oxy-rts/engine/input"
	"github.com/Carmen-Shannon/oxy-rts/engine/rig"
	"github.com/Carmen-Shannon/oxy-rts/engine/trace"
	"github.com/Carmen-Shannon/oxy-rts/engine/window"
)

func init() {
	// glfw must stay on the main thread.
	runtime.LockOSThread()
}

type options struct {
	configPath string
	headless   bool
	scriptPath string
	duration   time.Duration
	tracePath  string
	watch      bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to config.yaml (empty = use defaults)")
	flag.BoolVar(&opts.headless, "headless", false, "Run without a window")
	flag.StringVar(&opts.scriptPath, "script", "", "Input script to replay instead of live input")
	flag.DurationVar(&opts.duration, "duration", 0, "Stop after this long (0 = until the window closes or the script ends)")
	flag.StringVar(&opts.tracePath, "trace", "", "Tick trace CSV path (overrides trace.path)")
	flag.BoolVar(&opts.watch, "watch", false, "Reload -config when it changes")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(opts, logger); err != nil {
		logger.Error("rigdemo failed", "error", err)
		os.Exit(1)
	}
}

func run(opts options, logger *slog.Logger) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.headless && opts.scriptPath == "" && opts.duration <= 0 {
		return errors.New("a headless run needs -script or -duration to end")
	}

	// ── Rig ─────────────────────────────────────────────────────────────
	rigNode := game_object.NewGameObject(
		game_object.WithName("rig"),
		game_object.WithPosition(0, 20, 0),
	)
	camNode := game_object.NewGameObject(
		game_object.WithName("camera"),
		game_object.WithPosition(0, 50, 0),
		game_object.WithRotation(300, 0, 0),
		game_object.WithParent(rigNode),
	)

	// ── Input ───────────────────────────────────────────────────────────
	var (
		win    window.Window
		player input.Player
		source rig.InputSource
	)
	if opts.scriptPath != "" {
		script, err := input.LoadScript(opts.scriptPath)
		if err != nil {
			return err
		}
		player, err = input.NewPlayer(script, input.WithLogger(logger.With("component", "script")))
		if err != nil {
			return err
		}
		source = player
		logger.Info("replaying input script", "path", opts.scriptPath, "steps", len(script.Steps), "seconds", script.Duration())
	}
	if !opts.headless {
		win, err = window.NewWindow(
			window.WithTitle(cfg.Window.Title),
			window.WithSize(cfg.Window.Width, cfg.Window.Height),
		)
		if err != nil {
			return err
		}
		if source == nil {
			source = win
		}
	}

	ctrl := rig.NewRigController(rigNode, camNode,
		rig.WithConfig(cfg.Rig),
		rig.WithInput(source),
		rig.WithLogger(logger.With("component", "rig")),
	)

	width, height := cfg.Window.Width, cfg.Window.Height
	if source != nil {
		width, height = source.ScreenSize()
	}
	cam := camera.NewCamera(
		camera.WithNode(camNode),
		camera.WithAspect(float32(width)/float32(max(height, 1))),
	)

	// ── Trace ───────────────────────────────────────────────────────────
	var rec trace.Recorder
	traceOpts := []trace.RecorderBuilderOption{
		trace.WithBatchSize(cfg.Trace.BatchSize),
		trace.WithLogger(logger.With("component", "trace")),
	}
	if path := common.Coalesce(opts.tracePath, cfg.Trace.Path); path != "" {
		if rec, err = trace.Create(path, traceOpts...); err != nil {
			return err
		}
		logger.Info("tracing ticks", "path", path)
	} else {
		rec = trace.NewRecorder(nil, traceOpts...)
	}

	// ── Engine ──────────────────────────────────────────────────────────
	engineOpts := []engine.EngineBuilderOption{
		engine.WithTickRate(float64(cfg.Engine.TickRate)),
		engine.WithFrameLimit(float64(cfg.Engine.FrameLimit)),
		engine.WithProfiling(cfg.Engine.Profiling),
		engine.WithLogger(logger),
	}
	if win != nil {
		engineOpts = append(engineOpts, engine.WithWindow(win))
	}
	eng := engine.NewEngine(engineOpts...)

	eng.SetResizeCallback(func(w, h int) {
		if h > 0 {
			cam.SetAspect(float32(w) / float32(h))
		}
	})

	var sinceLog float32
	eng.SetFrameCallback(func(dt float32) {
		if player != nil {
			player.Advance(dt)
			if player.Done() && opts.duration <= 0 {
				eng.Quit()
			}
		}
		ctrl.FrameUpdate(dt)
		cam.Update()

		if sinceLog += dt; sinceLog >= 1 {
			sinceLog = 0
			logger.Info("camera",
				"position", cam.Position(),
				"forward", cam.Forward(),
				"multiplier", ctrl.ProximityMultiplier(),
			)
		}
	})

	var (
		tick    int
		elapsed float32
	)
	eng.SetTickCallback(func(dt float32) {
		ctrl.PhysicsUpdate(dt)
		tick++
		elapsed += dt
		rec.Record(trace.SampleOf(tick, elapsed, rigNode, camNode, ctrl.Targets()))
	})

	// ── Hot reload ──────────────────────────────────────────────────────
	if opts.watch {
		if opts.configPath == "" {
			return errors.New("-watch needs -config")
		}
		w, err := config.Watch(opts.configPath, logger.With("component", "config"))
		if err != nil {
			return err
		}
		defer w.Close()
		go applyReloads(w, ctrl, eng, logger)
	}

	if opts.duration > 0 {
		time.AfterFunc(opts.duration, eng.Quit)
	}

	logger.Info("starting rig demo",
		"headless", opts.headless,
		"tick_rate", cfg.Engine.TickRate,
		"cadence", cfg.Rig.Cadence,
	)
	eng.Run()

	if err := rec.Close(); err != nil {
		return fmt.Errorf("finishing trace: %w", err)
	}
	logger.Info("rig demo finished",
		"rig_position", rigNode.LocalPosition(),
		"camera_height", camNode.LocalPosition().Y(),
		"summary", rec.Summary(),
	)
	return nil
}

// applyReloads feeds validated configuration edits into the running controller and engine
// until the watcher is closed.
func applyReloads(w *config.Watcher, ctrl rig.RigController, eng engine.Engine, logger *slog.Logger) {
	for {
		select {
		case cfg, ok := <-w.Updates:
			if !ok {
				return
			}
			ctrl.SetConfig(cfg.Rig)
			eng.SetTickRate(float64(cfg.Engine.TickRate))
			logger.Info("applied config", "tick_rate", cfg.Engine.TickRate, "cadence", cfg.Rig.Cadence)
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logger.Warn("keeping previous config", "error", err)
		}
	}
}
