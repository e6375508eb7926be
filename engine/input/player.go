package input

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-rts/engine/rig"
)

type playerImpl struct {
	mu *sync.Mutex

	script *Script
	logger *slog.Logger

	index   int     // current step
	inStep  float32 // seconds spent in the current step
	elapsed float32 // seconds since the start of playback
	done    bool

	held   map[uint32]bool
	x, y   float32
	scroll float32
	middle bool
}

// Player replays a Script as a rig.InputSource. The owner advances it once per visual frame,
// before the rig controller samples it.
type Player interface {
	rig.InputSource

	// Advance moves playback forward by dt seconds, crossing as many step boundaries as needed.
	//
	// Parameters:
	//   - dt: elapsed time in seconds; non-positive values are ignored
	Advance(dt float32)

	// Done reports whether a non-looping script has played to the end.
	// A finished player holds no keys and no buttons.
	//
	// Returns:
	//   - bool: true once playback has finished
	Done() bool

	// Step returns the index of the step currently being played.
	//
	// Returns:
	//   - int: the step index
	Step() int

	// Elapsed returns the total playback time.
	//
	// Returns:
	//   - float32: seconds since playback started
	Elapsed() float32
}

var _ Player = &playerImpl{}

// NewPlayer creates a Player positioned at the first step of the script, with the pointer at
// the center of the script's screen.
//
// Parameters:
//   - script: the script to replay; it is validated first
//   - options: functional options to configure the player
//
// Returns:
//   - Player: the newly created player
//   - error: the script's validation error
func NewPlayer(script *Script, options ...PlayerBuilderOption) (Player, error) {
	if err := script.Validate(); err != nil {
		return nil, fmt.Errorf("invalid input script: %w", err)
	}
	p := &playerImpl{
		mu:     &sync.Mutex{},
		script: script,
		held:   make(map[uint32]bool),
		x:      float32(script.Screen[0]) / 2,
		y:      float32(script.Screen[1]) / 2,
	}
	for _, option := range options {
		option(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	p.enter(0)
	return p, nil
}

// enter applies the step at index i, or finishes playback past the last step.
// Caller must hold the mutex.
func (p *playerImpl) enter(i int) {
	if i >= len(p.script.Steps) {
		if !p.script.Loop || len(p.script.Steps) == 0 {
			p.finish()
			return
		}
		i = 0
	}
	p.index = i
	step := p.script.Steps[i]

	clear(p.held)
	for _, code := range step.codes {
		p.held[code] = true
	}
	if step.Pointer != nil {
		p.x, p.y = step.Pointer[0], step.Pointer[1]
	}
	p.scroll += step.Scroll
	p.middle = step.Middle

	p.logger.Debug("input script step",
		"step", i,
		"keys", step.Keys,
		"elapsed", p.elapsed,
	)
}

// finish releases all input and marks playback as done.
// Caller must hold the mutex.
func (p *playerImpl) finish() {
	p.done = true
	clear(p.held)
	p.middle = false
	p.scroll = 0
	p.logger.Debug("input script finished", "elapsed", p.elapsed)
}

func (p *playerImpl) Advance(dt float32) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.done || !(dt > 0) {
		return
	}
	p.elapsed += dt
	p.inStep += dt
	for !p.done && p.inStep >= p.script.Steps[p.index].Duration {
		p.inStep -= p.script.Steps[p.index].Duration
		p.enter(p.index + 1)
	}
}

func (p *playerImpl) Done() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

func (p *playerImpl) Step() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.index
}

func (p *playerImpl) Elapsed() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.elapsed
}

// --- rig.InputSource implementation ---

func (p *playerImpl) PointerPosition() (x, y float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.x, p.y
}

func (p *playerImpl) ScrollDelta() float32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	d := p.scroll
	p.scroll = 0
	return d
}

func (p *playerImpl) MiddleButtonHeld() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.middle
}

func (p *playerImpl) KeyHeld(keyCode uint32) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.held[keyCode]
}

func (p *playerImpl) ScreenSize() (width, height int) {
	return p.script.Screen[0], p.script.Screen[1]
}
