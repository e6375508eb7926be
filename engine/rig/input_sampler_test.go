package rig

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-rts/common"
)

// With the fixture's defaults (speed scale 100, multiplier 1) and dt 0.01, a held move key
// shifts the target by 2 units, a held rotate key by 2 degrees and a held zoom key by 4 units.
const sampleDt = 0.01

func TestSample_Keyboard(t *testing.T) {
	tests := []struct {
		name      string
		keys      []uint32
		wantPos   mgl32.Vec3
		wantZoom  float32
		wantPitch float32
		wantYaw   float32
	}{
		{"idle", nil, mgl32.Vec3{0, 20, 0}, 100, 300, 0},
		{"forward", []uint32{common.KeyW}, mgl32.Vec3{0, 20, -2}, 100, 300, 0},
		{"forward twice bound", []uint32{common.KeyW, common.KeyUp}, mgl32.Vec3{0, 20, -2}, 100, 300, 0},
		{"back", []uint32{common.KeyS}, mgl32.Vec3{0, 20, 2}, 100, 300, 0},
		{"diagonal", []uint32{common.KeyW, common.KeyD}, mgl32.Vec3{2, 20, -2}, 100, 300, 0},
		{"left arrow", []uint32{common.KeyLeft}, mgl32.Vec3{-2, 20, 0}, 100, 300, 0},
		{"opposites cancel", []uint32{common.KeyA, common.KeyD}, mgl32.Vec3{0, 20, 0}, 100, 300, 0},
		{"zoom in", []uint32{common.KeyR}, mgl32.Vec3{0, 20, 0}, 96, 300, 0},
		{"pitch up", []uint32{common.KeyT}, mgl32.Vec3{0, 20, 0}, 100, 302, 0},
		{"pitch down", []uint32{common.KeyG}, mgl32.Vec3{0, 20, 0}, 100, 298, 0},
		{"yaw left", []uint32{common.KeyQ}, mgl32.Vec3{0, 20, 0}, 100, 300, 2},
		{"yaw right", []uint32{common.KeyE}, mgl32.Vec3{0, 20, 0}, 100, 300, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRigFixture(t, DefaultConfig())
			for _, k := range tt.keys {
				f.input.keys[k] = true
			}

			f.ctrl.FrameUpdate(sampleDt)

			ts := f.ctrl.Targets()
			if !approxVec(ts.Position, tt.wantPos) {
				t.Errorf("position = %v, want %v", ts.Position, tt.wantPos)
			}
			if !approx(ts.Zoom.Y(), tt.wantZoom) {
				t.Errorf("zoom = %v, want %v", ts.Zoom.Y(), tt.wantZoom)
			}
			if !approx(ts.VerticalAngle, tt.wantPitch) {
				t.Errorf("pitch = %v, want %v", ts.VerticalAngle, tt.wantPitch)
			}
			if !approx(ts.HorizontalAngle, tt.wantYaw) {
				t.Errorf("yaw = %v, want %v", ts.HorizontalAngle, tt.wantYaw)
			}
		})
	}
}

func TestSample_MoveFollowsYaw(t *testing.T) {
	f := newRigFixture(t, DefaultConfig())
	f.rig.rot = common.AxisAngle(90, Up)
	f.ctrl.Reset()
	f.input.keys[common.KeyW] = true

	f.ctrl.FrameUpdate(sampleDt)

	// Forward (0,0,-1) yawed 90 degrees about +Y points down -X.
	if got := f.ctrl.Targets().Position; !approxVec(got, mgl32.Vec3{-2, 20, 0}) {
		t.Errorf("position = %v, want (-2,20,0)", got)
	}
}

func TestSample_ProximityScalesInput(t *testing.T) {
	f := newRigFixture(t, DefaultConfig())
	f.camera.pos = mgl32.Vec3{0, 0, 0}
	f.ctrl.Reset()
	f.input.keys[common.KeyD] = true

	f.ctrl.FrameUpdate(sampleDt)

	if got := f.ctrl.Targets().Position.X(); !approx(got, 2*0.32) {
		t.Errorf("x = %v, want %v", got, 2*0.32)
	}
}

func TestSample_BorderMovement(t *testing.T) {
	// 800x600 screen with range 0.01 gives a 6 pixel border.
	tests := []struct {
		name    string
		x, y    float32
		border  bool
		wantPos mgl32.Vec3
	}{
		{"center", 400, 300, true, mgl32.Vec3{0, 20, 0}},
		{"top edge", 400, 0, true, mgl32.Vec3{0, 20, -2}},
		{"inside top band", 400, 5, true, mgl32.Vec3{0, 20, -2}},
		{"just outside band", 400, 8, true, mgl32.Vec3{0, 20, 0}},
		{"bottom edge", 400, 599, true, mgl32.Vec3{0, 20, 2}},
		{"right edge", 799, 300, true, mgl32.Vec3{2, 20, 0}},
		{"left edge", 0, 300, true, mgl32.Vec3{-2, 20, 0}},
		{"top left corner", 0, 0, true, mgl32.Vec3{-2, 20, -2}},
		{"disabled", 400, 0, false, mgl32.Vec3{0, 20, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.UseBorderMovement = tt.border
			f := newRigFixture(t, cfg)
			f.input.x, f.input.y = tt.x, tt.y

			f.ctrl.FrameUpdate(sampleDt)

			if got := f.ctrl.Targets().Position; !approxVec(got, tt.wantPos) {
				t.Errorf("position = %v, want %v", got, tt.wantPos)
			}
		})
	}
}

func TestSample_ScrollZoom(t *testing.T) {
	f := newRigFixture(t, DefaultConfig())
	f.input.scroll = 1

	f.ctrl.FrameUpdate(sampleDt)

	// 400 zoom units * multiplier 5 * dt 0.01 = 20.
	if got := f.ctrl.Targets().Zoom.Y(); !approx(got, 80) {
		t.Errorf("zoom = %v, want 80", got)
	}
	if f.input.scroll != 0 {
		t.Error("scroll delta was not consumed")
	}

	f.ctrl.FrameUpdate(sampleDt)
	if got := f.ctrl.Targets().Zoom.Y(); !approx(got, 80) {
		t.Errorf("zoom = %v after idle frame, want 80", got)
	}
}

func TestSample_ScrollMultiplierIgnoresSpeedScale(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SpeedScale = 50
	f := newRigFixture(t, cfg)
	f.input.scroll = 1

	f.ctrl.FrameUpdate(sampleDt)

	// 4 * 50 zoom units * multiplier 5 * dt 0.01 = 10. Scaling the multiplier as well would
	// overshoot to the minimum height.
	if got := f.ctrl.Targets().Zoom.Y(); !approx(got, 90) {
		t.Errorf("zoom = %v, want 90", got)
	}
}

func TestSample_MiddleDrag(t *testing.T) {
	f := newRigFixture(t, DefaultConfig())
	f.input.middle = true
	f.input.x, f.input.y = 100, 100

	// Press frame: no delta yet.
	f.ctrl.FrameUpdate(sampleDt)
	ts := f.ctrl.Targets()
	if !approx(ts.VerticalAngle, 300) || !approx(ts.HorizontalAngle, 0) {
		t.Fatalf("press frame rotated the rig: %+v", ts)
	}

	// Drag 10px right and 10px up: 10 * 20 * 0.01 = 2 degrees on each axis.
	f.input.x, f.input.y = 110, 90
	f.ctrl.FrameUpdate(sampleDt)
	ts = f.ctrl.Targets()
	if !approx(ts.VerticalAngle, 298) {
		t.Errorf("pitch = %v, want 298", ts.VerticalAngle)
	}
	if !approx(ts.HorizontalAngle, -2) {
		t.Errorf("yaw = %v, want -2", ts.HorizontalAngle)
	}

	// Release then press elsewhere: the jump is not treated as a drag.
	f.input.middle = false
	f.ctrl.FrameUpdate(sampleDt)
	f.input.middle = true
	f.input.x, f.input.y = 300, 300
	f.ctrl.FrameUpdate(sampleDt)
	if got := f.ctrl.Targets(); !approx(got.HorizontalAngle, -2) {
		t.Errorf("yaw = %v after re-press, want -2", got.HorizontalAngle)
	}
}

func TestSample_DisabledFeaturesIgnoreInput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CanMove = false
	cfg.CanZoom = false
	cfg.CanRotateHorizontally = false
	cfg.CanRotateVertically = false
	f := newRigFixture(t, cfg)
	before := f.ctrl.Targets()

	for _, k := range []uint32{common.KeyW, common.KeyR, common.KeyT, common.KeyQ} {
		f.input.keys[k] = true
	}
	f.input.scroll = 3
	f.input.x, f.input.y = 0, 0
	f.ctrl.FrameUpdate(sampleDt)

	if after := f.ctrl.Targets(); after != before {
		t.Errorf("targets changed with every feature off: %+v -> %+v", before, after)
	}
}

func TestFrameUpdate_ZeroDtSkipsSampling(t *testing.T) {
	f := newRigFixture(t, DefaultConfig())
	f.input.keys[common.KeyW] = true
	f.input.scroll = 1

	f.ctrl.FrameUpdate(0)

	if got := f.ctrl.Targets().Position; got != (mgl32.Vec3{0, 20, 0}) {
		t.Errorf("position = %v, want unchanged", got)
	}
	if f.input.scroll != 1 {
		t.Error("scroll consumed on a zero-length frame")
	}
}

func TestFrameUpdate_NoInputSource(t *testing.T) {
	f := newRigFixture(t, DefaultConfig())
	f.ctrl.SetInput(nil)
	f.ctrl.AddMove(mgl32.Vec3{1000, 0, 0})

	f.ctrl.FrameUpdate(sampleDt)

	if got := f.ctrl.Targets().Position.X(); got != 50 {
		t.Errorf("x = %v, want 50 (clamped without input)", got)
	}
}
