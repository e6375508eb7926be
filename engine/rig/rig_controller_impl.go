package rig

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Carmen-Shannon/oxy-rts/common"
)

// rigControllerImpl is the single implementation of RigController.
type rigControllerImpl struct {
	mu *sync.Mutex

	rig    TransformHandle // yaw + ground position
	camera TransformHandle // pitch + zoom height
	input  InputSource

	cfg      Config
	curve    *ProximityCurve
	bindings Bindings
	sampler  *inputSampler
	logger   *slog.Logger

	start   mgl32.Vec3
	targets TargetState
	dirty   bool // targets changed since the last clamp
}

// Compile-time interface compliance checks
var (
	_ RigController = &rigControllerImpl{}
	_ accumulator   = &rigControllerImpl{}
)

// NewRigController creates a controller for the given rig and camera nodes. The start position
// and the initial target state are captured from the nodes' current local transforms.
// Panics if either handle is nil.
//
// Parameters:
//   - rig: the node that pans and yaws
//   - camera: the child node that zooms and pitches
//   - options: functional options to configure the controller
//
// Returns:
//   - RigController: the newly created controller
func NewRigController(rig, camera TransformHandle, options ...RigControllerOption) RigController {
	if rig == nil || camera == nil {
		panic("rig controller requires both a rig and a camera transform")
	}

	rc := &rigControllerImpl{
		mu:       &sync.Mutex{},
		rig:      rig,
		camera:   camera,
		cfg:      DefaultConfig(),
		bindings: DefaultBindings(),
	}

	for _, option := range options {
		option(rc)
	}

	if rc.curve == nil {
		rc.curve = NewProximityCurve()
	}
	if rc.logger == nil {
		rc.logger = slog.Default()
	}
	rc.sampler = newInputSampler(rc.bindings)

	rc.reset()
	return rc
}

// --- internal helpers ---

// reset captures the start position and target state from the transforms.
// Caller must hold the mutex.
func (rc *rigControllerImpl) reset() {
	rc.start = rc.rig.LocalPosition()

	_, yaw, _ := common.EulerDegrees(rc.rig.LocalRotation())
	pitch, _, _ := common.EulerDegrees(rc.camera.LocalRotation())

	rc.targets = TargetState{
		Position:        rc.start,
		Zoom:            rc.camera.LocalPosition(),
		HorizontalAngle: yaw,
		VerticalAngle:   pitch,
	}
	rc.dirty = true
	rc.sampler.dragging = false

	rc.logger.Debug("rig controller reset",
		"start", rc.start,
		"yaw", yaw,
		"pitch", pitch,
	)
}

// clampTargets applies the bounds to the target state.
// Caller must hold the mutex.
func (rc *rigControllerImpl) clampTargets() {
	rc.targets.Clamp(rc.cfg, rc.start)
	rc.dirty = false
}

// proximityMultiplier evaluates the curve at the camera's normalized height.
// Caller must hold the mutex.
func (rc *rigControllerImpl) proximityMultiplier() float32 {
	if !rc.cfg.EvaluateProximity {
		return 1
	}
	var t float32
	if maxY := rc.cfg.MaxPosition.Y(); maxY > 0 {
		t = rc.camera.LocalPosition().Y() / maxY
	}
	return rc.curve.Evaluate(t)
}

// smooth moves every enabled transform a dt-scaled fraction toward its clamped target.
// Caller must hold the mutex.
func (rc *rigControllerImpl) smooth(dt float32) {
	if rc.dirty {
		rc.clampTargets()
	}

	f := mgl32.Clamp(dt*rc.cfg.LerpSpeed, 0, 1)
	if !(f > 0) {
		return
	}

	if rc.cfg.CanMove {
		rc.rig.SetLocalPosition(lerp(rc.rig.LocalPosition(), rc.targets.Position, f))
	}
	if rc.cfg.CanZoom {
		rc.camera.SetLocalPosition(lerp(rc.camera.LocalPosition(), rc.targets.Zoom, f))
	}
	if rc.cfg.CanRotateVertically {
		to := common.AxisAngle(rc.targets.VerticalAngle, AxisVertical.Vector())
		rc.camera.SetLocalRotation(slerp(rc.camera.LocalRotation(), to, f))
	}
	if rc.cfg.CanRotateHorizontally {
		to := common.AxisAngle(rc.targets.HorizontalAngle, AxisHorizontal.Vector())
		rc.rig.SetLocalRotation(slerp(rc.rig.LocalRotation(), to, f))
	}
}

// lerp returns a + (b - a) * f. At a == b the result is exactly a.
func lerp(a, b mgl32.Vec3, f float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(f))
}

// slerp interpolates along the shorter arc between two rotations.
func slerp(from, to mgl32.Quat, f float32) mgl32.Quat {
	if from.Dot(to) < 0 {
		to = to.Scale(-1)
	}
	return mgl32.QuatSlerp(from, to, f)
}

// --- accumulator implementation (caller must hold the mutex) ---

func (rc *rigControllerImpl) addMove(v mgl32.Vec3) {
	if !rc.cfg.CanMove {
		return
	}
	rc.targets.Position = rc.targets.Position.Add(v)
	rc.dirty = true
}

func (rc *rigControllerImpl) addZoom(v mgl32.Vec3) {
	if !rc.cfg.CanZoom {
		return
	}
	rc.targets.Zoom = rc.targets.Zoom.Add(v)
	rc.dirty = true
}

func (rc *rigControllerImpl) addRotation(axis Axis, delta float32) error {
	if !axis.Valid() {
		rc.logger.Error("rotation requested about an unsupported axis",
			"axis", axis.String(),
			"delta", delta,
		)
		return fmt.Errorf("%w: %s", ErrInvalidAxis, axis)
	}
	if (axis == AxisVertical && !rc.cfg.CanRotateVertically) ||
		(axis == AxisHorizontal && !rc.cfg.CanRotateHorizontally) {
		return nil
	}

	angle := ClampAngle(rc.cfg, axis, rc.targets.Angle(axis)+delta)
	rc.targets.setAngle(axis, angle)
	rc.dirty = true
	return nil
}

// --- RigController implementation ---

func (rc *rigControllerImpl) FrameUpdate(dt float32) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if dt > 0 && rc.input != nil {
		rc.sampler.sample(rc.input, rc, rc.cfg, rc.rig.LocalRotation(), rc.proximityMultiplier(), dt)
	}
	rc.clampTargets()

	if rc.cfg.Cadence == CadenceFrame {
		rc.smooth(dt)
	}
}

func (rc *rigControllerImpl) PhysicsUpdate(dt float32) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.cfg.Cadence == CadenceFrame {
		return
	}
	rc.smooth(dt)
}

func (rc *rigControllerImpl) AddMove(v mgl32.Vec3) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.addMove(v)
}

func (rc *rigControllerImpl) AddZoom(v mgl32.Vec3) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.addZoom(v)
}

func (rc *rigControllerImpl) AddRotation(axis Axis, delta float32) error {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.addRotation(axis, delta)
}

func (rc *rigControllerImpl) ClampTargets() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.clampTargets()
}

func (rc *rigControllerImpl) ProximityMultiplier() float32 {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.proximityMultiplier()
}

func (rc *rigControllerImpl) Targets() TargetState {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.targets
}

func (rc *rigControllerImpl) StartPosition() mgl32.Vec3 {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.start
}

func (rc *rigControllerImpl) Config() Config {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.cfg
}

func (rc *rigControllerImpl) SetConfig(cfg Config) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.cfg = cfg
	rc.dirty = true
}

func (rc *rigControllerImpl) SetInput(in InputSource) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.input = in
	rc.sampler.dragging = false
}

func (rc *rigControllerImpl) Reset() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.reset()
}

func (rc *rigControllerImpl) Rig() TransformHandle {
	return rc.rig
}

func (rc *rigControllerImpl) Camera() TransformHandle {
	return rc.camera
}
