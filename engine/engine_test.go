package engine

import (
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEngine_HeadlessRunsBothLoops(t *testing.T) {
	e := NewEngine(WithTickRate(200), WithFrameLimit(500), WithLogger(quietLogger()))

	var ticks, frames atomic.Int64
	var badDt atomic.Bool
	e.SetTickCallback(func(dt float32) {
		if !(dt > 0) {
			badDt.Store(true)
		}
		ticks.Add(1)
	})
	e.SetFrameCallback(func(dt float32) {
		frames.Add(1)
	})

	time.AfterFunc(150*time.Millisecond, e.Quit)
	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Quit")
	}

	if ticks.Load() == 0 || frames.Load() == 0 {
		t.Fatalf("ticks = %d frames = %d, want both > 0", ticks.Load(), frames.Load())
	}
	if uint64(ticks.Load()) != e.Ticks() || uint64(frames.Load()) != e.Frames() {
		t.Errorf("counters disagree: %d/%d vs %d/%d", ticks.Load(), frames.Load(), e.Ticks(), e.Frames())
	}
	if badDt.Load() {
		t.Error("tick callback received a non-positive dt")
	}
	if e.Window() != nil {
		t.Error("headless engine has a window")
	}

	e.Quit()
}

func TestEngine_SetTickRate(t *testing.T) {
	e := NewEngine(WithTickRate(50), WithLogger(quietLogger()))
	if got := e.TickRate(); got != 20*time.Millisecond {
		t.Fatalf("tick rate = %v, want 20ms", got)
	}

	e.SetTickRate(0)
	if got := e.TickRate(); got != time.Second/60 {
		t.Errorf("tick rate = %v, want the 60Hz default", got)
	}

	time.AfterFunc(100*time.Millisecond, e.Quit)
	go func() {
		time.Sleep(20 * time.Millisecond)
		e.SetTickRate(250)
		e.SetTickRate(500)
	}()
	e.Run()

	if got := e.TickRate(); got != 2*time.Millisecond {
		t.Errorf("tick rate = %v after runtime change, want 2ms", got)
	}
}

func TestEngine_PanicInFrameStopsEngine(t *testing.T) {
	e := NewEngine(WithLogger(quietLogger()))
	e.SetFrameCallback(func(float32) { panic("boom") })

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("engine kept running after a frame panic")
	}
}
