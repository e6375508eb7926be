package window

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-rts/engine/rig"
)

// inputState records the latest polled input so that the frame loop can read it from a
// different goroutine than the one running the platform message loop.
type inputState struct {
	mu *sync.Mutex

	held   map[uint32]bool
	x, y   float32
	inside bool
	scroll float32
	middle bool
	width  int
	height int
}

var _ rig.InputSource = &inputState{}

func newInputState(width, height int) *inputState {
	return &inputState{
		mu:     &sync.Mutex{},
		held:   make(map[uint32]bool),
		width:  width,
		height: height,
	}
}

// --- event recording (platform side) ---

func (s *inputState) keyDown(keyCode uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.held[keyCode] = true
}

func (s *inputState) keyUp(keyCode uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.held, keyCode)
}

func (s *inputState) addScroll(delta float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scroll += delta
}

// moveCursor records a cursor position in window coordinates. A position outside the
// client area counts as the cursor having left the window.
func (s *inputState) moveCursor(x, y float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.x, s.y = x, y
	s.inside = x >= 0 && y >= 0 && x < float32(s.width) && y < float32(s.height)
}

func (s *inputState) setInside(inside bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inside = inside
}

func (s *inputState) setMiddle(held bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.middle = held
}

func (s *inputState) resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
}

// releaseAll clears held keys and buttons, used when the window loses focus so that a key
// released elsewhere does not stay stuck down.
func (s *inputState) releaseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.held)
	s.middle = false
}

// --- rig.InputSource implementation ---

// PointerPosition reports the screen center until the cursor is known to be inside the
// window, so border movement stays idle while the pointer is elsewhere.
func (s *inputState) PointerPosition() (x, y float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.inside {
		return float32(s.width) / 2, float32(s.height) / 2
	}
	return s.x, s.y
}

func (s *inputState) ScrollDelta() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.scroll
	s.scroll = 0
	return d
}

func (s *inputState) MiddleButtonHeld() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.middle
}

func (s *inputState) KeyHeld(keyCode uint32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.held[keyCode]
}

func (s *inputState) ScreenSize() (width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}
