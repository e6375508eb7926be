package engine

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-rts/engine/profiler"
	"github.com/Carmen-Shannon/oxy-rts/engine/window"
)

// engine implements the Engine interface.
// Coordinates the tick, frame and window threads.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window
	logger *slog.Logger

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	engineTickRate atomic.Int64 // time.Duration between ticks
	tickCallback   func(deltaTime float32)
	frameCallback  func(deltaTime float32)
	resizeCallback func(width, height int)

	frameLimit time.Duration // minimum frame duration; 0 = uncapped

	ticks  atomic.Uint64
	frames atomic.Uint64
}

// Engine is the main entry point for the engine.
// It runs a fixed-rate tick loop and a visual frame loop on their own goroutines, and
// optionally pumps a window's message loop on the calling goroutine.
type Engine interface {
	// Window returns the underlying window, or nil when running headless.
	//
	// Returns:
	//   - window.Window: the window instance or nil
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	// The tick callback will be called at this rate; a running engine picks up the change immediately.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// TickRate returns the configured tick interval.
	//
	// Returns:
	//   - time.Duration: the interval between ticks
	TickRate() time.Duration

	// SetTickCallback registers the function called each engine tick.
	// Use this for the rig's smoothing step and anything else that must run at a fixed cadence.
	// Must be set before Run.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetFrameCallback registers the function called each visual frame.
	// Use this for input sampling and camera matrix updates. Must be set before Run.
	//
	// Parameters:
	//   - callback: function to call each frame, receiving the delta time in seconds
	SetFrameCallback(callback func(deltaTime float32))

	// SetResizeCallback registers the function called when the window is resized.
	//
	// Parameters:
	//   - callback: function receiving the new framebuffer size in pixels
	SetResizeCallback(callback func(width, height int))

	// SetFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the frame loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetFrameLimit(fps float64)

	// Ticks returns the number of tick callbacks fired so far.
	//
	// Returns:
	//   - uint64: the tick count
	Ticks() uint64

	// Frames returns the number of frame callbacks fired so far.
	//
	// Returns:
	//   - uint64: the frame count
	Frames() uint64

	// Run starts the tick and frame loops and blocks until the engine stops: until the window
	// closes, or until Quit when headless. With a window, Run must be called from the main
	// goroutine that created it.
	Run()

	// Quit signals all engine goroutines to stop.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// Without WithWindow the engine runs headless.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
	}
	e.engineTickRate.Store(int64(time.Second / 60))

	for _, opt := range options {
		opt(e)
	}

	if e.logger == nil {
		e.logger = slog.Default()
	}
	e.profiler = profiler.NewProfiler("frame", e.logger)

	if e.window != nil {
		e.window.SetResizeCallback(func(width, height int) {
			if e.resizeCallback != nil {
				e.resizeCallback(width, height)
			}
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Run() {
	e.running.Store(true)
	e.handle()

	if e.window != nil {
		e.window.ProcessMessages()
		e.signalQuit()
	}

	e.wg.Wait()
	if e.window != nil {
		if err := e.window.Close(); err != nil {
			e.logger.Warn("closing window", "error", err)
		}
	}
	e.running.Store(false)
	e.logger.Info("engine stopped", "ticks", e.ticks.Load(), "frames", e.frames.Load())
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
		if e.window != nil {
			e.window.RequestClose()
		}
	})
}

// handle launches the tick and frame goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.wg.Add(2)
	go e.handleTicks()
	go e.handleFrames()
}

// handleTicks runs the fixed-rate tick loop in its own goroutine.
// Fires the tick callback at the configured tick rate and listens for dynamic rate changes
// via tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleTicks() {
	defer e.wg.Done()

	ticker := time.NewTicker(time.Duration(e.engineTickRate.Load()))
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now

			if e.tickCallback != nil {
				e.tickCallback(dt)
			}
			e.ticks.Add(1)
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.logger.Debug("tick rate changed", "interval", newRate)
		}
	}
}

// handleFrames runs the uncapped (or frame-limited) frame loop in its own goroutine.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (e *engine) handleFrames() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("frame goroutine recovered from panic", "panic", r)
			e.signalQuit()
		}
	}()

	lastFrame := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			now := time.Now()
			dt := float32(now.Sub(lastFrame).Seconds())
			lastFrame = now

			if e.frameCallback != nil {
				e.frameCallback(dt)
			}
			e.frames.Add(1)

			if e.profilingEnabled.Load() {
				e.profiler.Tick()
			}

			if e.frameLimit > 0 {
				if remaining := e.frameLimit - time.Since(now); remaining > 0 {
					time.Sleep(remaining)
				}
			} else if e.window == nil {
				// Headless frames have no vsync to pace them.
				time.Sleep(time.Millisecond)
			}
		}
	}
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

// SetTickRate sets the engine tick rate in ticks per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	newRate := tickInterval(fps)
	e.engineTickRate.Store(int64(newRate))

	if !e.running.Load() {
		return
	}

	// Non-blocking send - if channel is full, replace the pending value
	select {
	case e.tickRateChannel <- newRate:
	default:
		select {
		case <-e.tickRateChannel:
		default:
		}
		e.tickRateChannel <- newRate
	}
}

func (e *engine) TickRate() time.Duration {
	return time.Duration(e.engineTickRate.Load())
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

// SetFrameCallback registers the function called each frame.
func (e *engine) SetFrameCallback(callback func(deltaTime float32)) {
	e.frameCallback = callback
}

func (e *engine) SetResizeCallback(callback func(width, height int)) {
	e.resizeCallback = callback
}

// SetFrameLimit sets an optional frame rate cap.
// Pass 0 to uncap the frame loop.
func (e *engine) SetFrameLimit(fps float64) {
	e.frameLimit = frameInterval(fps)
}

func (e *engine) Ticks() uint64 {
	return e.ticks.Load()
}

func (e *engine) Frames() uint64 {
	return e.frames.Load()
}

// tickInterval converts a rate to a ticker interval, defaulting to 60Hz.
func tickInterval(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(float64(time.Second) / fps)
}

// frameInterval converts a frame cap to a minimum frame duration, 0 meaning uncapped.
func frameInterval(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
