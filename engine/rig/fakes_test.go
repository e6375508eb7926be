package rig

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-rts/common"
)

type fakeTransform struct {
	pos mgl32.Vec3
	rot mgl32.Quat
}

func newFakeTransform(pos mgl32.Vec3, rot mgl32.Quat) *fakeTransform {
	return &fakeTransform{pos: pos, rot: rot}
}

func (f *fakeTransform) LocalPosition() mgl32.Vec3     { return f.pos }
func (f *fakeTransform) SetLocalPosition(p mgl32.Vec3) { f.pos = p }
func (f *fakeTransform) LocalRotation() mgl32.Quat     { return f.rot }
func (f *fakeTransform) SetLocalRotation(q mgl32.Quat) { f.rot = q }

type fakeInput struct {
	keys          map[uint32]bool
	x, y          float32
	scroll        float32
	middle        bool
	width, height int
}

func newFakeInput() *fakeInput {
	return &fakeInput{
		keys:   make(map[uint32]bool),
		x:      400,
		y:      300,
		width:  800,
		height: 600,
	}
}

func (f *fakeInput) PointerPosition() (float32, float32) { return f.x, f.y }
func (f *fakeInput) MiddleButtonHeld() bool              { return f.middle }
func (f *fakeInput) KeyHeld(keyCode uint32) bool         { return f.keys[keyCode] }
func (f *fakeInput) ScreenSize() (int, int)              { return f.width, f.height }

func (f *fakeInput) ScrollDelta() float32 {
	s := f.scroll
	f.scroll = 0
	return s
}

// rigFixture builds a controller with the rig at (0,20,0) and the camera at height 100
// (normalized height 1, so the proximity multiplier is exactly 1) pitched to 300 degrees.
type rigFixture struct {
	rig    *fakeTransform
	camera *fakeTransform
	input  *fakeInput
	logs   *bytes.Buffer
	ctrl   RigController
}

func newRigFixture(t *testing.T, cfg Config) *rigFixture {
	t.Helper()
	f := &rigFixture{
		rig:    newFakeTransform(mgl32.Vec3{0, 20, 0}, mgl32.QuatIdent()),
		camera: newFakeTransform(mgl32.Vec3{0, 100, 0}, common.AxisAngle(300, Right)),
		input:  newFakeInput(),
		logs:   &bytes.Buffer{},
	}
	f.ctrl = NewRigController(f.rig, f.camera,
		WithConfig(cfg),
		WithInput(f.input),
		WithLogger(slog.New(slog.NewTextHandler(f.logs, nil))),
	)
	return f
}

// approx compares with an absolute tolerance. mgl32 thresholds are relative and
// collapse to epsilon squared when either side is zero.
func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) <= 1e-3
}

func approxVec(a, b mgl32.Vec3) bool {
	for i := range a {
		if !approx(a[i], b[i]) {
			return false
		}
	}
	return true
}

func approxQuat(a, b mgl32.Quat) bool {
	return approx(a.W, b.W) && approxVec(a.V, b.V)
}
