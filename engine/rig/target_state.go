package rig

import (
	"github.com/go-gl/mathgl/mgl32"
)

// TargetState is the pose the smoothing driver steers toward. Angles are in degrees.
type TargetState struct {
	Position        mgl32.Vec3 // rig local position
	Zoom            mgl32.Vec3 // camera local position; only Y is meaningful
	HorizontalAngle float32    // rig yaw about Up
	VerticalAngle   float32    // camera pitch about Right
}

// Angle returns the target angle for the given axis.
//
// Parameters:
//   - axis: the pivot axis
//
// Returns:
//   - float32: the target angle in degrees, zero for an invalid axis
func (ts TargetState) Angle(axis Axis) float32 {
	switch axis {
	case AxisVertical:
		return ts.VerticalAngle
	case AxisHorizontal:
		return ts.HorizontalAngle
	}
	return 0
}

// setAngle stores the angle for a valid axis. Invalid axes are ignored.
func (ts *TargetState) setAngle(axis Axis, angle float32) {
	switch axis {
	case AxisVertical:
		ts.VerticalAngle = angle
	case AxisHorizontal:
		ts.HorizontalAngle = angle
	}
}

// Clamp enforces the bounds. Horizontal-plane components of Position are clamped relative to
// start; Y is left alone since height belongs to the zoom target. Zoom is reduced to its
// clamped Y component. Each clamp is skipped when its feature toggle is off. Angles are
// re-limited as well so that a limit enabled at runtime holds before the next rotation input.
//
// Parameters:
//   - cfg: the bounds and toggles to apply
//   - start: the rig's local position at initialization
func (ts *TargetState) Clamp(cfg Config, start mgl32.Vec3) {
	if cfg.CanMove {
		ts.Position = mgl32.Vec3{
			mgl32.Clamp(ts.Position.X(), start.X()+cfg.MinPosition.X(), start.X()+cfg.MaxPosition.X()),
			ts.Position.Y(),
			mgl32.Clamp(ts.Position.Z(), start.Z()+cfg.MinPosition.Z(), start.Z()+cfg.MaxPosition.Z()),
		}
	}
	if cfg.CanZoom {
		ts.Zoom = mgl32.Vec3{0, mgl32.Clamp(ts.Zoom.Y(), cfg.MinPosition.Y(), cfg.MaxPosition.Y()), 0}
	}
	ts.VerticalAngle = ClampAngle(cfg, AxisVertical, ts.VerticalAngle)
	ts.HorizontalAngle = ClampAngle(cfg, AxisHorizontal, ts.HorizontalAngle)
}

// ClampAngle limits an angle to the configured range of its axis when that axis's limit
// toggle is on. Otherwise the angle is returned unchanged and may leave [0, 360).
//
// Parameters:
//   - cfg: the angle ranges and limit toggles
//   - axis: the pivot axis the angle belongs to
//   - angle: the candidate angle in degrees
//
// Returns:
//   - float32: the limited angle
func ClampAngle(cfg Config, axis Axis, angle float32) float32 {
	switch {
	case axis == AxisVertical && cfg.LimitVerticalRotation:
		return mgl32.Clamp(angle, cfg.MinVerticalAngle, cfg.MaxVerticalAngle)
	case axis == AxisHorizontal && cfg.LimitHorizontalRotation:
		return mgl32.Clamp(angle, cfg.MinHorizontalAngle, cfg.MaxHorizontalAngle)
	}
	return angle
}
