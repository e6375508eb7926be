package rig

import (
	"github.com/go-gl/mathgl/mgl32"
)

// RigController drives a rig/camera node pair from polled input.
// FrameUpdate samples input, accumulates and clamps the target state once per visual frame.
// PhysicsUpdate smooths the transforms toward the clamped targets once per physics tick.
// Both may be called from different goroutines; the target state is guarded by a single mutex.
type RigController interface {
	// FrameUpdate samples the attached InputSource, accumulates deltas into the target state
	// and clamps it. With CadenceFrame it also runs the smoothing step with the same dt.
	//
	// Parameters:
	//   - dt: elapsed visual-frame time in seconds (zero and negative values sample nothing)
	FrameUpdate(dt float32)

	// PhysicsUpdate runs one smoothing step with CadenceFixed. It is a no-op with CadenceFrame.
	//
	// Parameters:
	//   - dt: elapsed tick time in seconds
	PhysicsUpdate(dt float32)

	// AddMove adds a delta to the rig position target. Ignored while moving is disabled.
	//
	// Parameters:
	//   - v: the delta in rig parent space
	AddMove(v mgl32.Vec3)

	// AddZoom adds a delta to the camera zoom target. Ignored while zooming is disabled.
	//
	// Parameters:
	//   - v: the delta; only Y survives clamping
	AddZoom(v mgl32.Vec3)

	// AddRotation adds delta degrees to the target angle of one pivot axis and applies that
	// axis's limit when enabled. Ignored while rotation about that axis is disabled.
	//
	// Parameters:
	//   - axis: AxisVertical or AxisHorizontal
	//   - delta: angle delta in degrees
	//
	// Returns:
	//   - error: ErrInvalidAxis for any other axis value; the target state is left untouched
	AddRotation(axis Axis, delta float32) error

	// ClampTargets enforces the position, zoom and angle bounds on the target state.
	ClampTargets()

	// ProximityMultiplier returns the input multiplier for the camera's current height.
	//
	// Returns:
	//   - float32: the multiplier, 1 when proximity evaluation is disabled
	ProximityMultiplier() float32

	// Targets returns a copy of the current target state.
	//
	// Returns:
	//   - TargetState: the target state
	Targets() TargetState

	// StartPosition returns the rig's local position captured at initialization.
	// Panning bounds are relative to it.
	//
	// Returns:
	//   - mgl32.Vec3: the start position
	StartPosition() mgl32.Vec3

	// Config returns the active configuration.
	//
	// Returns:
	//   - Config: the configuration
	Config() Config

	// SetConfig replaces the configuration. Takes effect on the next update call.
	//
	// Parameters:
	//   - cfg: the new configuration
	SetConfig(cfg Config)

	// SetInput attaches the input source read by FrameUpdate. A nil source disables sampling.
	//
	// Parameters:
	//   - in: the input source
	SetInput(in InputSource)

	// Reset re-reads the start position and the target state from the current transforms.
	Reset()

	// Rig returns the rig transform handle.
	//
	// Returns:
	//   - TransformHandle: the rig node
	Rig() TransformHandle

	// Camera returns the camera transform handle.
	//
	// Returns:
	//   - TransformHandle: the camera node
	Camera() TransformHandle
}
