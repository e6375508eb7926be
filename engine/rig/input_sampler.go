package rig

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-rts/common"
)

// Bindings lists the key codes bound to each rig action. Any held key of a list triggers the action.
type Bindings struct {
	Forward     []uint32
	Back        []uint32
	Left        []uint32
	Right       []uint32
	RotateUp    []uint32
	RotateDown  []uint32
	RotateLeft  []uint32
	RotateRight []uint32
	ZoomIn      []uint32
	ZoomOut     []uint32
}

// DefaultBindings returns WASD plus arrows for panning, T/G for pitch, Q/E for yaw and R/F for zoom.
//
// Returns:
//   - Bindings: the default key bindings
func DefaultBindings() Bindings {
	return Bindings{
		Forward:     []uint32{common.KeyW, common.KeyUp},
		Back:        []uint32{common.KeyS, common.KeyDown},
		Left:        []uint32{common.KeyA, common.KeyLeft},
		Right:       []uint32{common.KeyD, common.KeyRight},
		RotateUp:    []uint32{common.KeyT},
		RotateDown:  []uint32{common.KeyG},
		RotateLeft:  []uint32{common.KeyQ},
		RotateRight: []uint32{common.KeyE},
		ZoomIn:      []uint32{common.KeyR},
		ZoomOut:     []uint32{common.KeyF},
	}
}

// accumulator is the write side of the target state that the sampler feeds.
type accumulator interface {
	addMove(v mgl32.Vec3)
	addZoom(v mgl32.Vec3)
	addRotation(axis Axis, delta float32) error
}

// inputSampler turns one frame of polled input into target-state deltas.
// It remembers the pointer position between frames to derive middle-drag deltas.
type inputSampler struct {
	bindings Bindings

	dragging bool
	lastX    float32
	lastY    float32
}

func newInputSampler(bindings Bindings) *inputSampler {
	return &inputSampler{bindings: bindings}
}

// anyHeld reports whether any of the keys is held.
func anyHeld(in InputSource, keys []uint32) bool {
	for _, k := range keys {
		if in.KeyHeld(k) {
			return true
		}
	}
	return false
}

// sample reads the input source once and forwards scaled deltas to acc.
//
// Parameters:
//   - in: the input source to poll
//   - acc: receiver of the deltas
//   - cfg: speeds and toggles for this frame
//   - rigRotation: current rig rotation, used to orient pan directions
//   - multiplier: proximity multiplier for this frame
//   - dt: elapsed visual-frame time in seconds
func (s *inputSampler) sample(in InputSource, acc accumulator, cfg Config, rigRotation mgl32.Quat, multiplier, dt float32) {
	forward := rigRotation.Rotate(Forward)
	right := rigRotation.Rotate(Right)

	moveStep := cfg.scaled(cfg.MoveSpeed) * multiplier * dt
	rotateStep := cfg.scaled(cfg.RotateSpeed) * multiplier * dt
	zoomVector := mgl32.Vec3{0, -cfg.scaled(cfg.ZoomSpeed), 0}

	// Pointer: scroll zoom, middle-drag orbit, screen-edge pan.
	if scroll := in.ScrollDelta(); cfg.CanZoom && scroll != 0 {
		acc.addZoom(zoomVector.Mul(scroll * cfg.MouseZoomMultiplier * multiplier * dt))
	}

	px, py := in.PointerPosition()
	canRotate := cfg.CanRotateVertically || cfg.CanRotateHorizontally
	if canRotate && in.MiddleButtonHeld() {
		if !s.dragging {
			s.dragging = true
			s.lastX, s.lastY = px, py
		}
		dx, dy := px-s.lastX, py-s.lastY
		s.lastX, s.lastY = px, py

		// Y grows downward, so dragging up (dy < 0) lowers the pitch.
		dragStep := cfg.DragRotateSpeed * multiplier * dt
		if cfg.CanRotateVertically {
			_ = acc.addRotation(AxisVertical, dy*dragStep)
		}
		if cfg.CanRotateHorizontally {
			_ = acc.addRotation(AxisHorizontal, -dx*dragStep)
		}
	} else {
		s.dragging = false
	}

	if cfg.UseBorderMovement && cfg.CanMove {
		w, h := in.ScreenSize()
		thickness := float32(h) * cfg.BorderEffectRange
		if py <= thickness {
			acc.addMove(forward.Mul(moveStep))
		}
		if py >= float32(h)-thickness {
			acc.addMove(forward.Mul(-moveStep))
		}
		if px >= float32(w)-thickness {
			acc.addMove(right.Mul(moveStep))
		}
		if px <= thickness {
			acc.addMove(right.Mul(-moveStep))
		}
	}

	// Keyboard.
	b := s.bindings
	if cfg.CanMove {
		if anyHeld(in, b.Forward) {
			acc.addMove(forward.Mul(moveStep))
		}
		if anyHeld(in, b.Back) {
			acc.addMove(forward.Mul(-moveStep))
		}
		if anyHeld(in, b.Right) {
			acc.addMove(right.Mul(moveStep))
		}
		if anyHeld(in, b.Left) {
			acc.addMove(right.Mul(-moveStep))
		}
	}

	if cfg.CanRotateVertically {
		if anyHeld(in, b.RotateUp) {
			_ = acc.addRotation(AxisVertical, rotateStep)
		}
		if anyHeld(in, b.RotateDown) {
			_ = acc.addRotation(AxisVertical, -rotateStep)
		}
	}
	if cfg.CanRotateHorizontally {
		if anyHeld(in, b.RotateLeft) {
			_ = acc.addRotation(AxisHorizontal, rotateStep)
		}
		if anyHeld(in, b.RotateRight) {
			_ = acc.addRotation(AxisHorizontal, -rotateStep)
		}
	}

	if cfg.CanZoom {
		if anyHeld(in, b.ZoomIn) {
			acc.addZoom(zoomVector.Mul(multiplier * dt))
		}
		if anyHeld(in, b.ZoomOut) {
			acc.addZoom(zoomVector.Mul(-multiplier * dt))
		}
	}
}
